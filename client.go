// Package dockersock is a client for the Docker daemon's HTTP API over a
// local socket. It builds HTTP/1.1 requests by hand, sends them through a
// pluggable one-shot Transport, and parses the raw responses back, without
// delegating to a full HTTP client stack. Resource families (containers,
// images, networks, version) are thin typed layers over one uniform call
// contract.
package dockersock

import (
	"github.com/enetx/g"
)

// Client talks to the Docker daemon. The zero configuration returned by
// NewClient targets the default Unix socket; use Builder to change the
// transport or its timeouts.
//
// A Client holds no per-call state: every operation is a single stateless
// round trip, so concurrent calls are independent.
type Client struct {
	transport Transport
	builder   *Builder
}

// NewClient creates a Client wired to the daemon's default Unix socket.
func NewClient() *Client {
	return &Client{transport: NewUnixTransport(_socketPath)}
}

// GetTransport returns the Transport used by the Client.
func (c *Client) GetTransport() Transport { return c.transport }

// Builder returns a new Builder associated with this client, allowing
// method chaining to configure the transport before use.
func (c *Client) Builder() *Builder {
	c.builder = &Builder{cli: c, cliMWs: newMiddleware[*Client]()}
	return c.builder
}

// Do performs one round trip: format the request, send it through the
// transport, parse the raw response. The three failure kinds it can return
// are mutually exclusive: *ErrRequestFormat (the request could not be
// prepared), *ErrNoResponse (the transport obtained nothing) and
// *ErrMalformedResponse (bytes arrived but the framing is broken).
func (c *Client) Do(endpoint, method, body g.String) g.Result[*Response] {
	req := FormatRequest(endpoint, method, body)
	if req.IsErr() {
		return g.Err[*Response](req.Err())
	}

	raw := c.transport.Send(req.Ok())
	if raw.IsNone() {
		return g.Err[*Response](&ErrNoResponse{Msg: endpoint.Std()})
	}

	return ParseResponse(raw.Some())
}

// Call is the uniform contract every resource operation funnels through:
// Do, then extract the response body. The error taxonomy of Do is preserved
// verbatim; it is the only error surface the resource layer adds to (with
// *ErrDecode/*ErrEncode for its JSON step).
func (c *Client) Call(endpoint, method, body g.String) g.Result[g.String] {
	resp := c.Do(endpoint, method, body)
	if resp.IsErr() {
		return g.Err[g.String](resp.Err())
	}

	return g.Ok(resp.Ok().Body)
}
