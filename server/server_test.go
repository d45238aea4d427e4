package server

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/picoserv/staticd/resource"
	"github.com/picoserv/staticd/router"
	"github.com/picoserv/staticd/transport"
)

func setupTestServer(t *testing.T, routes []router.Route, policy router.MethodPolicy) *Server {
	t.Helper()

	rt := router.New(routes, resource.NewLoader(), policy, zerolog.Nop())
	return New(nil, rt, zerolog.Nop())
}

func writeResource(t *testing.T, name string, contents []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("Failed to write resource: %v", err)
	}
	return path
}

func TestServer_HandleBuffer_RoundTrip(t *testing.T) {
	contents := []byte("<html><body>hello</body></html>")
	link := writeResource(t, "index.html", contents)
	srv := setupTestServer(t, []router.Route{{Path: "/", Link: link}}, router.SilentDrop)

	var sink bytes.Buffer
	if err := srv.HandleBuffer([]byte("GET / HTTP/1.1\r\nHost: localhost\r\n\r\n"), &sink); err != nil {
		t.Fatalf("HandleBuffer failed: %v", err)
	}

	want := fmt.Sprintf(
		"HTTP/1.1 200 OK\r\nContent-Type: text/html;charset=UTF-8\r\nContent-Length: %d\r\n\r\n%s",
		len(contents), contents)
	if sink.String() != want {
		t.Errorf("Response mismatch:\nwant %q\ngot  %q", want, sink.String())
	}
}

func TestServer_HandleBuffer_Miss404(t *testing.T) {
	srv := setupTestServer(t, []router.Route{{Path: "/", Link: "irrelevant"}}, router.SilentDrop)

	var sink bytes.Buffer
	if err := srv.HandleBuffer([]byte("GET /missing HTTP/1.1\r\n\r\n"), &sink); err != nil {
		t.Fatalf("HandleBuffer failed: %v", err)
	}

	want := "HTTP/1.1 404 Not Found\r\nContent-Type: text/html;charset=UTF-8\r\nContent-Length: 0\r\n\r\n"
	if sink.String() != want {
		t.Errorf("Response mismatch:\nwant %q\ngot  %q", want, sink.String())
	}
}

func TestServer_HandleBuffer_UnsupportedMethodWritesNothing(t *testing.T) {
	link := writeResource(t, "index.html", []byte("index"))
	srv := setupTestServer(t, []router.Route{{Path: "/", Link: link}}, router.SilentDrop)

	rawRequests := []string{
		"POST / HTTP/1.1\r\nContent-Length: 2\r\n\r\nhi",
		"PUT / HTTP/1.1\r\n\r\n",
		"DELETE / HTTP/1.1\r\n\r\n",
		"", // empty buffer parses to an empty method
	}

	for _, raw := range rawRequests {
		var sink bytes.Buffer
		if err := srv.HandleBuffer([]byte(raw), &sink); err != nil {
			t.Errorf("HandleBuffer(%q) returned error: %v", raw, err)
		}
		if sink.Len() != 0 {
			t.Errorf("Expected no bytes written for %q, got %q", raw, sink.String())
		}
	}
}

func TestServer_HandleBuffer_Idempotent(t *testing.T) {
	link := writeResource(t, "index.html", []byte("stable contents"))
	srv := setupTestServer(t, []router.Route{{Path: "/", Link: link}}, router.SilentDrop)

	raw := []byte("GET / HTTP/1.1\r\n\r\n")
	var first, second bytes.Buffer
	if err := srv.HandleBuffer(raw, &first); err != nil {
		t.Fatalf("First HandleBuffer failed: %v", err)
	}
	if err := srv.HandleBuffer(raw, &second); err != nil {
		t.Fatalf("Second HandleBuffer failed: %v", err)
	}

	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Errorf("Responses differ across identical requests:\nfirst  %q\nsecond %q",
			first.String(), second.String())
	}
}

func TestServer_HandleBuffer_LoadFailure500(t *testing.T) {
	srv := setupTestServer(t, []router.Route{
		{Path: "/", Link: filepath.Join(t.TempDir(), "gone.html")},
	}, router.SilentDrop)

	var sink bytes.Buffer
	if err := srv.HandleBuffer([]byte("GET / HTTP/1.1\r\n\r\n"), &sink); err != nil {
		t.Fatalf("HandleBuffer failed: %v", err)
	}

	want := "HTTP/1.1 500 Internal Server Error\r\nContent-Type: text/html;charset=UTF-8\r\nContent-Length: 0\r\n\r\n"
	if sink.String() != want {
		t.Errorf("Response mismatch:\nwant %q\ngot  %q", want, sink.String())
	}
}

func TestServer_HandleBuffer_MethodNotAllowedPolicy(t *testing.T) {
	link := writeResource(t, "index.html", []byte("index"))
	srv := setupTestServer(t, []router.Route{{Path: "/", Link: link}}, router.RespondMethodNotAllowed)

	var sink bytes.Buffer
	if err := srv.HandleBuffer([]byte("POST / HTTP/1.1\r\n\r\n"), &sink); err != nil {
		t.Fatalf("HandleBuffer failed: %v", err)
	}

	want := "HTTP/1.1 405 Method Not Allowed\r\nContent-Type: text/html;charset=UTF-8\r\nContent-Length: 0\r\n\r\n"
	if sink.String() != want {
		t.Errorf("Response mismatch:\nwant %q\ngot  %q", want, sink.String())
	}
}

func TestServer_EndToEnd_TCP(t *testing.T) {
	contents := []byte("<html>end to end</html>")
	link := writeResource(t, "index.html", contents)

	listener := transport.NewTcpListener()
	if err := listener.Bind("127.0.0.1", 0); err != nil {
		t.Fatalf("Failed to bind listener: %v", err)
	}

	rt := router.New([]router.Route{{Path: "/", Link: link}}, resource.NewLoader(),
		router.SilentDrop, zerolog.Nop())
	srv := New(listener, rt, zerolog.Nop())

	done := make(chan error, 1)
	go func() { done <- srv.Run() }()

	client, err := net.Dial("tcp", listener.Addr().String())
	if err != nil {
		t.Fatalf("Failed to dial server: %v", err)
	}
	defer client.Close()

	if _, err := client.Write([]byte("GET / HTTP/1.1\r\nHost: localhost\r\n\r\n")); err != nil {
		t.Fatalf("Client write failed: %v", err)
	}

	// The server closes the connection after one response, so read to EOF.
	response, err := io.ReadAll(client)
	if err != nil {
		t.Fatalf("Client read failed: %v", err)
	}

	want := fmt.Sprintf(
		"HTTP/1.1 200 OK\r\nContent-Type: text/html;charset=UTF-8\r\nContent-Length: %d\r\n\r\n%s",
		len(contents), contents)
	if string(response) != want {
		t.Errorf("Response mismatch:\nwant %q\ngot  %q", want, response)
	}

	listener.Close()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned error after listener close: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after listener close")
	}
}

func TestServer_EndToEnd_SilentDropClosesConnection(t *testing.T) {
	link := writeResource(t, "index.html", []byte("index"))

	listener := transport.NewTcpListener()
	if err := listener.Bind("127.0.0.1", 0); err != nil {
		t.Fatalf("Failed to bind listener: %v", err)
	}
	defer listener.Close()

	rt := router.New([]router.Route{{Path: "/", Link: link}}, resource.NewLoader(),
		router.SilentDrop, zerolog.Nop())
	srv := New(listener, rt, zerolog.Nop())

	go srv.Run()

	client, err := net.Dial("tcp", listener.Addr().String())
	if err != nil {
		t.Fatalf("Failed to dial server: %v", err)
	}
	defer client.Close()

	if _, err := client.Write([]byte("POST / HTTP/1.1\r\nContent-Length: 2\r\n\r\nhi")); err != nil {
		t.Fatalf("Client write failed: %v", err)
	}

	response, err := io.ReadAll(client)
	if err != nil {
		t.Fatalf("Client read failed: %v", err)
	}
	if len(response) != 0 {
		t.Errorf("Expected connection closed without a response, got %q", response)
	}
}

func TestConnState_String(t *testing.T) {
	states := map[connState]string{
		stateAwaitingRequest: "awaiting-request",
		stateParsing:         "parsing",
		stateRouting:         "routing",
		stateSerializing:     "serializing",
		stateSending:         "sending",
		stateClosed:          "closed",
		connState(99):        "unknown",
	}

	for st, want := range states {
		if st.String() != want {
			t.Errorf("Expected %q, got %q", want, st.String())
		}
	}
}
