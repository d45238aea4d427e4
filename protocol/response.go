package protocol

import (
	"bytes"
	"fmt"
)

// SerializeResponse converts a Response into its exact wire form:
//
//	HTTP/1.1 <code> <message>\r\n
//	Content-Type: text/html;charset=UTF-8\r\n
//	Content-Length: <n>\r\n
//	\r\n
//	<content>
//
// The Content-Length header is always derived from the real content
// buffer, so a response whose content was discarded reports 0.
func SerializeResponse(resp *Response) []byte {
	message := resp.StatusMessage
	if len(message) > MaxStatusMessageLen {
		message = message[:MaxStatusMessageLen]
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "HTTP/1.1 %d %s\r\n", resp.StatusCode, message)
	buf.WriteString("Content-Type: text/html;charset=UTF-8\r\n")
	fmt.Fprintf(&buf, "Content-Length: %d\r\n", resp.ContentLength())
	buf.WriteString("\r\n")
	buf.Write(resp.Content)
	return buf.Bytes()
}
