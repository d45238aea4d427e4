package transport

import "net"

// RecvBufferSize is the fixed size of the single receive performed per
// connection. A request larger than this is truncated at the socket.
const RecvBufferSize = 30000

// Listener defines the interface for accepting inbound connections.
// Implementations include TCP and Unix domain sockets.
type Listener interface {
	// Bind binds the listener to the specified host and port.
	// For Unix sockets, the host parameter is the socket path and port is ignored.
	Bind(host string, port uint16) error

	// Accept blocks until an inbound connection arrives.
	// Returns a ConnectionClosed error once the listener is closed.
	Accept() (*Conn, error)

	// Addr returns the bound address, or nil before Bind.
	Addr() net.Addr

	// Close closes the listener.
	Close() error
}
