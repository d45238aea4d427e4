package transport

import (
	"errors"
	"io"
	"net"
	"syscall"

	"github.com/picoserv/staticd/httperr"
)

// Conn wraps one accepted connection. It is owned by exactly one
// request/response cycle and is closed before the next accept.
type Conn struct {
	conn net.Conn
}

// ReadRequest performs a single bounded receive into buf. A zero-byte
// read or EOF is classified as ConnectionClosed.
func (c *Conn) ReadRequest(buf []byte) (int, error) {
	if c.conn == nil {
		return 0, httperr.NewTransportError(httperr.SocketReadFailure, nil)
	}

	n, err := c.conn.Read(buf)
	if err != nil {
		if errors.Is(err, io.EOF) || (n == 0 && len(buf) > 0) {
			return n, httperr.NewTransportError(httperr.ConnectionClosed, err)
		}
		return n, httperr.NewTransportError(httperr.SocketReadFailure, err)
	}

	return n, nil
}

// Write sends data to the connected peer
func (c *Conn) Write(buf []byte) (int, error) {
	if c.conn == nil {
		return 0, httperr.NewTransportError(httperr.SocketWriteFailure, nil)
	}

	n, err := c.conn.Write(buf)
	if err != nil {
		// Check for broken pipe or connection reset
		if errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) {
			return n, httperr.NewTransportError(httperr.ConnectionClosed, err)
		}
		return n, httperr.NewTransportError(httperr.SocketWriteFailure, err)
	}

	return n, nil
}

// RemoteAddr returns the peer address, or nil after Close.
func (c *Conn) RemoteAddr() net.Addr {
	if c.conn == nil {
		return nil
	}
	return c.conn.RemoteAddr()
}

// Close closes the connection
func (c *Conn) Close() error {
	if c.conn == nil {
		return nil // Idempotent close
	}

	err := c.conn.Close()
	c.conn = nil

	if err != nil {
		return httperr.NewTransportError(httperr.SocketCloseFailure, err)
	}

	return nil
}
