package main

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/picoserv/staticd/resource"
	"github.com/picoserv/staticd/router"
	"github.com/picoserv/staticd/server"
	"github.com/picoserv/staticd/transport"
)

// defaultRoutes is the process-wide static route table, consumed
// read-only by the router.
var defaultRoutes = []router.Route{
	{Path: "/", Link: "./public_html/index.html"},
	{Path: "/test", Link: "./public_html/test.html"},
	// Add more route mappings as needed
}

type config struct {
	addr net.IP
	port uint16
}

// parseArgs validates the two positional arguments: an IPv4 address and
// a port in 1-65534.
func parseArgs(args []string) (config, error) {
	if len(args) != 3 {
		return config{}, fmt.Errorf("expected 2 arguments, got %d", len(args)-1)
	}

	addr := net.ParseIP(args[1])
	if addr == nil || addr.To4() == nil {
		return config{}, fmt.Errorf("invalid IP address: %s", args[1])
	}

	port, err := strconv.Atoi(args[2])
	if err != nil || port <= 0 || port > 65534 {
		return config{}, fmt.Errorf("invalid port number: %s", args[2])
	}

	return config{addr: addr, port: uint16(port)}, nil
}

func main() {
	cfg, err := parseArgs(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\nUsage: %s <ip-address> <port>\n", err, os.Args[0])
		os.Exit(1)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	listener := transport.NewTcpListener()
	if err := listener.Bind(cfg.addr.String(), cfg.port); err != nil {
		logger.Error().Err(err).Msg("failed to bind")
		os.Exit(1)
	}
	defer listener.Close()

	rt := router.New(defaultRoutes, resource.NewLoader(), router.SilentDrop,
		logger.With().Str("component", "router").Logger())

	srv := server.New(listener, rt, logger)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("server terminated")
		os.Exit(1)
	}
}
