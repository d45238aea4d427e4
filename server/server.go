// Package server runs the sequential accept loop and drives one
// request/response cycle per accepted connection.
package server

import (
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/picoserv/staticd/httperr"
	"github.com/picoserv/staticd/protocol"
	"github.com/picoserv/staticd/router"
	"github.com/picoserv/staticd/transport"
)

// connState tracks the per-connection handling phase. stateClosed is
// reached on every exit path, whether or not a response was written.
type connState uint8

const (
	stateAwaitingRequest connState = iota
	stateParsing
	stateRouting
	stateSerializing
	stateSending
	stateClosed
)

func (s connState) String() string {
	switch s {
	case stateAwaitingRequest:
		return "awaiting-request"
	case stateParsing:
		return "parsing"
	case stateRouting:
		return "routing"
	case stateSerializing:
		return "serializing"
	case stateSending:
		return "sending"
	case stateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Server accepts connections one at a time and processes each fully
// before the next accept. There is no shared mutable state across
// connections besides the immutable route table inside the router.
type Server struct {
	listener transport.Listener
	router   *router.Router
	log      zerolog.Logger
}

// New creates a Server over a bound listener and a configured router.
func New(listener transport.Listener, rt *router.Router, log zerolog.Logger) *Server {
	return &Server{
		listener: listener,
		router:   rt,
		log:      log,
	}
}

// Run accepts and handles connections until the listener is closed.
// Accept errors other than listener shutdown are logged and the loop
// continues; they never take the server down.
func (s *Server) Run() error {
	s.log.Info().Msg("server listening")

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if herr, ok := err.(*httperr.Error); ok &&
				herr.TransportErr != nil && *herr.TransportErr == httperr.ConnectionClosed {
				s.log.Info().Msg("listener closed, stopping")
				return nil
			}
			s.log.Error().Err(err).Msg("accept failed")
			continue
		}
		s.handleConn(conn)
	}
}

// handleConn runs exactly one request/response cycle and closes the
// connection on every exit path.
func (s *Server) handleConn(conn *transport.Conn) {
	st := stateAwaitingRequest
	log := s.log.With().Stringer("remote", conn.RemoteAddr()).Logger()
	log.Debug().Stringer("state", st).Msg("connection accepted")

	defer func() {
		st = stateClosed
		if err := conn.Close(); err != nil {
			log.Error().Err(err).Stringer("state", st).Msg("close failed")
			return
		}
		log.Debug().Stringer("state", st).Msg("connection closed")
	}()

	buf := make([]byte, transport.RecvBufferSize)
	n, err := conn.ReadRequest(buf)
	if err != nil {
		log.Error().Err(err).Msg("receive failed")
		return
	}
	log.Debug().Str("raw", escapeCRLF(buf[:n])).Msg("received request")

	if err := s.HandleBuffer(buf[:n], conn); err != nil {
		log.Error().Err(err).Msg("request handling failed")
	}
}

// HandleBuffer runs the protocol engine over one raw request buffer:
// parse, route, serialize, write. When the router drops the request
// (unsupported method under the silent-drop policy) nothing is written
// to w and the returned error is nil; the drop is logged only.
func (s *Server) HandleBuffer(raw []byte, w io.Writer) error {
	st := stateParsing
	req := protocol.ParseRequest(raw)
	s.log.Debug().Stringer("state", st).Str("method", req.Method).Str("path", req.Path).Msg("request parsed")

	st = stateRouting
	resp, err := s.router.Route(req)
	if err != nil {
		s.log.Debug().Stringer("state", st).Err(err).Msg("request dropped without response")
		return nil
	}
	if resp == nil {
		return nil
	}

	st = stateSerializing
	wire := protocol.SerializeResponse(resp)

	st = stateSending
	if _, err := w.Write(wire); err != nil {
		return err
	}
	s.log.Debug().Stringer("state", st).Str("raw", escapeCRLF(wire)).Msg("response sent")
	return nil
}

// escapeCRLF makes raw wire bytes printable in log output.
func escapeCRLF(b []byte) string {
	r := strings.NewReplacer("\r", "\\r", "\n", "\\n")
	return r.Replace(string(b))
}
