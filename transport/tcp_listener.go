package transport

import (
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/picoserv/staticd/httperr"
)

// TcpListener implements the Listener interface using TCP sockets
type TcpListener struct {
	listener net.Listener
}

// NewTcpListener creates a new TcpListener instance
func NewTcpListener() *TcpListener {
	return &TcpListener{
		listener: nil,
	}
}

// Bind binds a TCP listener to the specified host and port
func (l *TcpListener) Bind(host string, port uint16) error {
	addr := fmt.Sprintf("%s:%d", host, port)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		// Classify bind errors using syscall errno where available
		if errors.Is(err, syscall.EADDRINUSE) || errors.Is(err, syscall.EACCES) {
			return httperr.NewTransportError(httperr.SocketBindFailure, err)
		}
		return httperr.NewTransportError(httperr.SocketBindFailure, err)
	}

	l.listener = listener
	return nil
}

// Accept blocks for the next inbound TCP connection
func (l *TcpListener) Accept() (*Conn, error) {
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

	// Set TCP_NODELAY to disable Nagle's algorithm for lower latency
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		if err := tcpConn.SetNoDelay(true); err != nil {
			conn.Close()
			return nil, httperr.NewTransportError(httperr.InitFailure, err)
		}
	}

	return &Conn{conn: conn}, nil
}

// Addr returns the bound address
func (l *TcpListener) Addr() net.Addr {
	if l.listener == nil {
		return nil
	}
	return l.listener.Addr()
}

// Close closes the TCP listener
func (l *TcpListener) Close() error {
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
