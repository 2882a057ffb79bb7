package dockersock

import (
	"errors"
	"time"

	"github.com/enetx/g"
)

// Builder configures a Client through an ordered chain of configuration
// functions. Transport selection runs before timeout adjustments regardless
// of the order the methods were chained in.
type Builder struct {
	cli    *Client
	cliMWs *middleware[*Client]
}

// Build applies the accumulated configuration and returns the ready Client.
// The first configuration error aborts the build.
func (b *Builder) Build() g.Result[*Client] {
	if err := b.cliMWs.run(b.cli); err != nil {
		return g.Err[*Client](err)
	}

	return g.Ok(b.cli)
}

// addCliMW adds a client configuration function with the given priority.
func (b *Builder) addCliMW(priority int, fn func(*Client) error) *Builder {
	b.cliMWs.add(priority, fn)
	return b
}

// UnixSocket points the client at the Unix domain socket at path.
func (b *Builder) UnixSocket(path g.String) *Builder {
	return b.addCliMW(0, func(c *Client) error { return unixSocketMW(c, path) })
}

// TCP points the client at a daemon listening on addr (host:port).
func (b *Builder) TCP(addr g.String) *Builder {
	return b.addCliMW(0, func(c *Client) error { return tcpMW(c, addr) })
}

// Transport installs a custom transport collaborator, replacing the socket
// transports entirely. Useful for tests and for callers that manage their
// own connections.
func (b *Builder) Transport(t Transport) *Builder {
	return b.addCliMW(0, func(c *Client) error { return transportMW(c, t) })
}

// DialTimeout sets the timeout for establishing the socket connection.
func (b *Builder) DialTimeout(d time.Duration) *Builder {
	return b.addCliMW(999, func(c *Client) error { return dialTimeoutMW(c, d) })
}

// ReadTimeout sets the deadline for completing one full request/response
// exchange on the connection.
func (b *Builder) ReadTimeout(d time.Duration) *Builder {
	return b.addCliMW(999, func(c *Client) error { return readTimeoutMW(c, d) })
}

// unixSocketMW configures the client to connect via a Unix domain socket.
func unixSocketMW(client *Client, path g.String) error {
	if path.Empty() {
		return errors.New("unix socket path is empty")
	}

	client.transport = NewUnixTransport(path)

	return nil
}

// tcpMW configures the client to connect to a TCP-exposed daemon.
func tcpMW(client *Client, addr g.String) error {
	if addr.Empty() {
		return errors.New("tcp address is empty")
	}

	client.transport = NewTCPTransport(addr)

	return nil
}

// transportMW installs a caller-supplied transport.
func transportMW(client *Client, t Transport) error {
	if t == nil {
		return errors.New("transport is nil")
	}

	client.transport = t

	return nil
}

// dialTimeoutMW adjusts the dial timeout on the configured transport.
func dialTimeoutMW(client *Client, d time.Duration) error {
	ts, ok := client.transport.(timeoutSetter)
	if !ok {
		return errors.New("transport does not support timeouts")
	}

	ts.setDialTimeout(d)

	return nil
}

// readTimeoutMW adjusts the read deadline on the configured transport.
func readTimeoutMW(client *Client, d time.Duration) error {
	ts, ok := client.transport.(timeoutSetter)
	if !ok {
		return errors.New("transport does not support timeouts")
	}

	ts.setReadTimeout(d)

	return nil
}
