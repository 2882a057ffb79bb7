package dockersock

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/enetx/g"
)

// headerSeparator is the blank line dividing an HTTP header block from the
// body. The body is everything after its first occurrence.
var headerSeparator = []byte("\r\n\r\n")

// Response is a parsed HTTP response from the daemon. Only the framing is
// interpreted: the body is returned exactly as received past the separator,
// with no content sniffing, decompression or charset handling.
type Response struct {
	StatusCode int      // numeric status from the status line
	Proto      g.String // protocol token, e.g. "HTTP/1.1"
	Body       g.String // payload, verbatim
	rawHeaders g.Bytes  // header block excluding the separator
}

// RawHeaders returns the unparsed header block of the response.
func (r *Response) RawHeaders() g.Bytes { return r.rawHeaders }

// IsSuccess reports whether the status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ParseResponse interprets raw bytes as an HTTP response and extracts the
// body. Failures are distinct by cause: empty input is *ErrNoResponse (there
// was nothing to parse), while a missing separator or an unreadable status
// line is *ErrMalformedResponse (a response arrived but its framing is
// broken). JSON decoding is never attempted here; that belongs to the
// resource layer, which only ever sees the extracted body.
func ParseResponse(raw g.Bytes) g.Result[*Response] {
	if len(raw) == 0 {
		return g.Err[*Response](&ErrNoResponse{Msg: "empty response"})
	}

	sep := bytes.Index(raw, headerSeparator)
	if sep < 0 {
		return g.Err[*Response](&ErrMalformedResponse{Msg: "no header/body separator found"})
	}

	head := raw[:sep]
	body := raw[sep+len(headerSeparator):]

	statusLine, _, _ := bytes.Cut(head, []byte("\r\n"))

	proto, rest, found := bytes.Cut(statusLine, []byte(" "))
	if !found || !bytes.HasPrefix(proto, []byte("HTTP/")) {
		return g.Err[*Response](&ErrMalformedResponse{
			Msg: fmt.Sprintf("invalid status line %q", statusLine),
		})
	}

	codeToken, _, _ := bytes.Cut(rest, []byte(" "))

	code, err := strconv.Atoi(string(codeToken))
	if err != nil {
		return g.Err[*Response](&ErrMalformedResponse{
			Msg: fmt.Sprintf("invalid status code %q", codeToken),
		})
	}

	return g.Ok(&Response{
		StatusCode: code,
		Proto:      g.String(proto),
		Body:       g.String(body),
		rawHeaders: g.Bytes(head),
	})
}
