package protocol

// Size caps for untrusted request fields. Oversized values are truncated,
// never rejected.
const (
	MaxMethodLen        = 9
	MaxPathLen          = 99
	MaxBodySize         = 4096
	MaxStatusMessageLen = 49
)

// Request represents a parsed HTTP request.
//
// Method and Path are populated together or not at all: if the raw buffer
// does not contain two space-delimited tokens, both stay empty and the
// router treats the request as carrying an unsupported method.
type Request struct {
	Method string
	Path   string

	// Body is nil when the request carried no Content-Length header or no
	// blank-line separator. BodySize is the declared Content-Length, which
	// may exceed len(Body) when the declaration overshoots the bytes
	// actually received or the MaxBodySize cap.
	Body     []byte
	BodySize int
}

// Response represents an HTTP response to be serialized.
type Response struct {
	StatusCode    int
	StatusMessage string
	Content       []byte
}

// NewResponse creates a Response with an empty, non-nil content buffer.
func NewResponse(statusCode int, statusMessage string) *Response {
	return &Response{
		StatusCode:    statusCode,
		StatusMessage: statusMessage,
		Content:       []byte{},
	}
}

// ContentLength returns the true byte length of the content buffer. The
// serializer derives the Content-Length header from this, never from a
// stored counter that could go stale.
func (r *Response) ContentLength() int {
	return len(r.Content)
}
