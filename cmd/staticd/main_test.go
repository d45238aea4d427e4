package main

import "testing"

func TestParseArgs_Valid(t *testing.T) {
	cfg, err := parseArgs([]string{"staticd", "127.0.0.1", "8080"})
	if err != nil {
		t.Fatalf("parseArgs failed: %v", err)
	}
	if cfg.addr.String() != "127.0.0.1" {
		t.Errorf("Expected address 127.0.0.1, got %s", cfg.addr)
	}
	if cfg.port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.port)
	}
}

func TestParseArgs_Invalid(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"no arguments", []string{"staticd"}},
		{"missing port", []string{"staticd", "127.0.0.1"}},
		{"extra argument", []string{"staticd", "127.0.0.1", "8080", "extra"}},
		{"bad address", []string{"staticd", "not-an-ip", "8080"}},
		{"ipv6 address", []string{"staticd", "::1", "8080"}},
		{"bad port", []string{"staticd", "127.0.0.1", "http"}},
		{"port zero", []string{"staticd", "127.0.0.1", "0"}},
		{"port too large", []string{"staticd", "127.0.0.1", "65535"}},
		{"negative port", []string{"staticd", "127.0.0.1", "-1"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseArgs(tc.args); err == nil {
				t.Errorf("Expected error for %v", tc.args)
			}
		})
	}
}
