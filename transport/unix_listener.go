package transport

import (
	"errors"
	"net"
	"strings"

	"github.com/picoserv/staticd/httperr"
)

// UnixListener implements the Listener interface using Unix domain sockets
type UnixListener struct {
	listener net.Listener
}

// NewUnixListener creates a new UnixListener instance
func NewUnixListener() *UnixListener {
	return &UnixListener{
		listener: nil,
	}
}

// Bind binds a Unix domain socket listener to the specified path.
// The port parameter is ignored for Unix sockets.
func (l *UnixListener) Bind(path string, port uint16) error {
	listener, err := net.Listen("unix", path)
	if err != nil {
		if strings.Contains(err.Error(), "no such file") ||
			strings.Contains(err.Error(), "address already in use") {
			return httperr.NewTransportError(httperr.SocketBindFailure, err)
		}
		return httperr.NewTransportError(httperr.SocketBindFailure, err)
	}

	l.listener = listener
	return nil
}

// Accept blocks for the next inbound Unix socket connection
func (l *UnixListener) Accept() (*Conn, error) {
	if l.listener == nil {
		return nil, httperr.NewTransportError(httperr.SocketAcceptFailure, nil)
	}

	conn, err := l.listener.Accept()
	if err != nil {
		if errors.Is(err, net.ErrClosed) {
			return nil, httperr.NewTransportError(httperr.ConnectionClosed, err)
		}
		return nil, httperr.NewTransportError(httperr.SocketAcceptFailure, err)
	}

	return &Conn{conn: conn}, nil
}

// Addr returns the bound socket address
func (l *UnixListener) Addr() net.Addr {
	if l.listener == nil {
		return nil
	}
	return l.listener.Addr()
}

// Close closes the Unix domain socket listener
func (l *UnixListener) Close() error {
	if l.listener == nil {
		return nil // Idempotent close
	}

	err := l.listener.Close()
	l.listener = nil

	if err != nil {
		return httperr.NewTransportError(httperr.SocketCloseFailure, err)
	}

	return nil
}
