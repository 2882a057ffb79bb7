package dockersock

import (
	"bytes"
	"fmt"

	"github.com/enetx/g"
	"github.com/enetx/http"
)

// FormatRequest assembles a complete, transport-ready HTTP/1.1 request buffer
// from an endpoint path (with any query string already attached), a method and
// an optional body. It is a pure construction step: no I/O, no side effects,
// and the returned buffer is never handed out partially built.
//
// The endpoint must be non-empty and begin with "/"; the method must be one
// of GET, POST, PUT, DELETE or HEAD. Anything else is an *ErrRequestFormat,
// which is distinct from the transport and framing failures so callers can
// tell configuration errors apart from daemon errors.
func FormatRequest(endpoint, method, body g.String) g.Result[g.Bytes] {
	if endpoint.Empty() || !endpoint.StartsWith("/") {
		return g.Err[g.Bytes](&ErrRequestFormat{
			Msg: fmt.Sprintf("endpoint %q must be a non-empty path beginning with /", endpoint),
		})
	}

	if endpoint.ContainsAnyChars(" \t\r\n") {
		return g.Err[g.Bytes](&ErrRequestFormat{
			Msg: fmt.Sprintf("endpoint %q contains whitespace", endpoint),
		})
	}

	switch method.Std() {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodHead:
	default:
		return g.Err[g.Bytes](&ErrRequestFormat{
			Msg: fmt.Sprintf("unsupported method %q", method),
		})
	}

	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s %s HTTP/1.1\r\n", method, endpoint)
	fmt.Fprintf(&buf, "Host: %s\r\n", _hostHeader)
	buf.WriteString("Connection: close\r\n")

	if !body.Empty() {
		buf.WriteString("Content-Type: application/json\r\n")
		fmt.Fprintf(&buf, "Content-Length: %d\r\n", len(body))
	}

	buf.WriteString("\r\n")
	buf.WriteString(body.Std())

	return g.Ok(g.Bytes(buf.Bytes()))
}
