// Package router maps request paths to file-backed resources using a
// static ordered table.
package router

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/picoserv/staticd/httperr"
	"github.com/picoserv/staticd/protocol"
	"github.com/picoserv/staticd/resource"
)

// HandlerFunc generates a response directly, bypassing file-backed
// dispatch for its route.
type HandlerFunc func(req *protocol.Request) *protocol.Response

// Route associates an exact-match request path with the resource to
// serve. A non-nil Handler fully overrides loading Link from storage.
type Route struct {
	Path    string
	Link    string
	Handler HandlerFunc
}

// MethodPolicy selects how requests with a non-GET method are answered.
type MethodPolicy int

const (
	// SilentDrop closes the connection without writing a response.
	SilentDrop MethodPolicy = iota
	// RespondMethodNotAllowed sends a 405 with an empty body.
	RespondMethodNotAllowed
)

// Router resolves parsed requests against an immutable route table.
type Router struct {
	routes []Route
	loader *resource.Loader
	policy MethodPolicy
	log    zerolog.Logger
}

// New creates a Router over a copy of the given table. The table is
// never mutated afterwards, so a Router is safe to reuse across
// connections.
func New(routes []Route, loader *resource.Loader, policy MethodPolicy, log zerolog.Logger) *Router {
	return &Router{
		routes: append([]Route{}, routes...),
		loader: loader,
		policy: policy,
		log:    log,
	}
}

// Route decides the response for a parsed request. A nil response with a
// non-nil error is the drop path: no bytes are to be written and the
// connection closes. The error carries MalformedRequestLine when parsing
// produced no method at all, UnsupportedMethod otherwise.
func (r *Router) Route(req *protocol.Request) (*protocol.Response, error) {
	if !strings.HasPrefix(req.Method, "GET") {
		if req.Method == "" {
			r.log.Warn().Msg("dropping request with malformed request line")
			if r.policy == RespondMethodNotAllowed {
				return protocol.NewResponse(405, "Method Not Allowed"), nil
			}
			return nil, httperr.NewProtocolError(httperr.MalformedRequestLine, nil)
		}
		r.log.Warn().Str("method", req.Method).Msg("unsupported HTTP method")
		if r.policy == RespondMethodNotAllowed {
			return protocol.NewResponse(405, "Method Not Allowed"), nil
		}
		return nil, httperr.NewProtocolError(httperr.UnsupportedMethod, nil)
	}

	return r.routeGet(req), nil
}

// routeGet scans the table in declared order and serves the first exact
// match. Both sides of the comparison are capped at the maximum path
// length, matching the truncation the parser applies.
func (r *Router) routeGet(req *protocol.Request) *protocol.Response {
	resp := protocol.NewResponse(404, "Not Found")

	for i := range r.routes {
		if capPath(r.routes[i].Path) != capPath(req.Path) {
			continue
		}
		if h := r.routes[i].Handler; h != nil {
			return h(req)
		}

		contents, size, err := r.loader.Load(r.routes[i].Link)
		if err != nil {
			r.log.Error().Err(err).Str("link", r.routes[i].Link).Msg("resource load failed")
			resp.StatusCode = 500
			resp.StatusMessage = "Internal Server Error"
			resp.Content = []byte{}
			return resp
		}

		resp.StatusCode = 200
		resp.StatusMessage = "OK"
		resp.Content = contents
		r.log.Debug().Str("path", req.Path).Int64("size", size).Msg("route matched")
		return resp
	}

	return resp
}

func capPath(p string) string {
	if len(p) > protocol.MaxPathLen {
		return p[:protocol.MaxPathLen]
	}
	return p
}
