package protocol

import (
	"bytes"
	"strconv"
)

var (
	headerSeparator  = []byte("\r\n\r\n")
	contentLengthKey = []byte("Content-Length:")
)

// ParseRequest converts a raw request buffer into a Request. It is total:
// malformed input yields a Request with empty method and path rather than
// an error, and the router rejects it as an unsupported method.
func ParseRequest(raw []byte) *Request {
	req := &Request{}

	method, rest := nextToken(raw)
	path, _ := nextToken(rest)
	if len(method) > 0 && len(path) > 0 {
		req.Method = string(truncate(method, MaxMethodLen))
		req.Path = string(truncate(path, MaxPathLen))

		if pos := bytes.Index(raw, contentLengthKey); pos >= 0 {
			req.BodySize = parseLengthValue(raw[pos+len(contentLengthKey):])

			if sep := bytes.Index(raw, headerSeparator); sep >= 0 {
				body := raw[sep+len(headerSeparator):]
				n := req.BodySize
				if n > MaxBodySize {
					n = MaxBodySize
				}
				if n > len(body) {
					n = len(body)
				}
				req.Body = append([]byte{}, body[:n]...)
			}
		}
	}

	return req
}

// nextToken returns the first run of non-space bytes and the remainder of
// the buffer after it. Only the space character delimits tokens; a token
// may therefore span line breaks when the request line is truncated.
func nextToken(buf []byte) (token, rest []byte) {
	i := 0
	for i < len(buf) && buf[i] == ' ' {
		i++
	}
	j := i
	for j < len(buf) && buf[j] != ' ' {
		j++
	}
	return buf[i:j], buf[j:]
}

// parseLengthValue reads the integer following a Content-Length key,
// skipping optional whitespace. A missing or malformed value counts as 0.
func parseLengthValue(buf []byte) int {
	i := 0
	for i < len(buf) && (buf[i] == ' ' || buf[i] == '\t') {
		i++
	}
	j := i
	for j < len(buf) && buf[j] >= '0' && buf[j] <= '9' {
		j++
	}
	if j == i {
		return 0
	}
	n, err := strconv.Atoi(string(buf[i:j]))
	if err != nil {
		return 0
	}
	return n
}

func truncate(buf []byte, max int) []byte {
	if len(buf) > max {
		return buf[:max]
	}
	return buf
}
