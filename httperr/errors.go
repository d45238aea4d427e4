package httperr

import "fmt"

// TransportError represents errors that occur at the socket layer
type TransportError int

const (
	SocketBindFailure TransportError = iota
	SocketAcceptFailure
	SocketReadFailure
	SocketWriteFailure
	ConnectionClosed
	SocketCloseFailure
	InitFailure
)

func (e TransportError) Error() string {
	switch e {
	case SocketBindFailure:
		return "Socket bind failed"
	case SocketAcceptFailure:
		return "Socket accept failed"
	case SocketReadFailure:
		return "Socket read failed"
	case SocketWriteFailure:
		return "Socket write failed"
	case ConnectionClosed:
		return "Connection closed"
	case SocketCloseFailure:
		return "Socket close failed"
	case InitFailure:
		return "Initialization failed"
	default:
		return fmt.Sprintf("Unknown transport error: %d", e)
	}
}

// ProtocolError represents errors that occur at the HTTP protocol layer
type ProtocolError int

const (
	MalformedRequestLine ProtocolError = iota
	UnsupportedMethod
)

func (e ProtocolError) Error() string {
	switch e {
	case MalformedRequestLine:
		return "Malformed request line"
	case UnsupportedMethod:
		return "Unsupported HTTP method"
	default:
		return fmt.Sprintf("Unknown protocol error: %d", e)
	}
}

// StorageError represents errors that occur while loading resources
type StorageError int

const (
	OpenFailure StorageError = iota
	ReadFailure
	ShortRead
)

func (e StorageError) Error() string {
	switch e {
	case OpenFailure:
		return "Resource open failed"
	case ReadFailure:
		return "Resource read failed"
	case ShortRead:
		return "Resource read returned fewer bytes than its size"
	default:
		return fmt.Sprintf("Unknown storage error: %d", e)
	}
}

// Error is the top-level error type that wraps transport, protocol and
// storage errors
type Error struct {
	TransportErr *TransportError
	ProtocolErr  *ProtocolError
	StorageErr   *StorageError
	underlying   error
}

func (e *Error) Error() string {
	if e.TransportErr != nil {
		if e.underlying != nil {
			return fmt.Sprintf("Transport Error: %s (underlying: %v)", e.TransportErr.Error(), e.underlying)
		}
		return fmt.Sprintf("Transport Error: %s", e.TransportErr.Error())
	}
	if e.ProtocolErr != nil {
		if e.underlying != nil {
			return fmt.Sprintf("Protocol Error: %s (underlying: %v)", e.ProtocolErr.Error(), e.underlying)
		}
		return fmt.Sprintf("Protocol Error: %s", e.ProtocolErr.Error())
	}
	if e.StorageErr != nil {
		if e.underlying != nil {
			return fmt.Sprintf("Storage Error: %s (underlying: %v)", e.StorageErr.Error(), e.underlying)
		}
		return fmt.Sprintf("Storage Error: %s", e.StorageErr.Error())
	}
	if e.underlying != nil {
		return e.underlying.Error()
	}
	return "Unknown error"
}

func (e *Error) Unwrap() error {
	return e.underlying
}

// NewTransportError creates a new Error with a TransportError
func NewTransportError(te TransportError, underlying error) *Error {
	return &Error{
		TransportErr: &te,
		underlying:   underlying,
	}
}

// NewProtocolError creates a new Error with a ProtocolError
func NewProtocolError(pe ProtocolError, underlying error) *Error {
	return &Error{
		ProtocolErr: &pe,
		underlying:  underlying,
	}
}

// NewStorageError creates a new Error with a StorageError
func NewStorageError(se StorageError, underlying error) *Error {
	return &Error{
		StorageErr: &se,
		underlying: underlying,
	}
}
