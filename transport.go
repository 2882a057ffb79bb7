package dockersock

import (
	"bytes"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/enetx/g"
)

// Transport is the collaborator every Client sends through. It receives a
// fully formatted request buffer and returns the raw bytes of the daemon's
// response, or None when no response could be obtained (connect, write or
// read failure). Implementations must be safe for concurrent use; the ones
// in this package dial a fresh connection per call and share no state.
type Transport interface {
	Send(req g.Bytes) g.Option[g.Bytes]
}

// UnixTransport sends requests over a Unix domain socket, the transport the
// Docker daemon listens on by default. One call is one connection: dial,
// write the whole request, read the whole response, close.
type UnixTransport struct {
	path        g.String
	dialTimeout time.Duration
	readTimeout time.Duration
}

// NewUnixTransport creates a transport for the Unix socket at path.
func NewUnixTransport(path g.String) *UnixTransport {
	return &UnixTransport{
		path:        path,
		dialTimeout: _dialTimeout,
		readTimeout: _readTimeout,
	}
}

func (t *UnixTransport) setDialTimeout(d time.Duration) { t.dialTimeout = d }
func (t *UnixTransport) setReadTimeout(d time.Duration) { t.readTimeout = d }

// Send writes req over a fresh socket connection and drains the response.
func (t *UnixTransport) Send(req g.Bytes) g.Option[g.Bytes] {
	return roundTrip("unix", t.path.Std(), t.dialTimeout, t.readTimeout, req)
}

// TCPTransport sends requests over TCP, for daemons exposed with
// DOCKER_HOST=tcp://host:port. Same one-shot semantics as UnixTransport.
type TCPTransport struct {
	addr        g.String
	dialTimeout time.Duration
	readTimeout time.Duration
}

// NewTCPTransport creates a transport for the daemon at addr (host:port).
func NewTCPTransport(addr g.String) *TCPTransport {
	return &TCPTransport{
		addr:        addr,
		dialTimeout: _dialTimeout,
		readTimeout: _readTimeout,
	}
}

func (t *TCPTransport) setDialTimeout(d time.Duration) { t.dialTimeout = d }
func (t *TCPTransport) setReadTimeout(d time.Duration) { t.readTimeout = d }

// Send writes req over a fresh TCP connection and drains the response.
func (t *TCPTransport) Send(req g.Bytes) g.Option[g.Bytes] {
	return roundTrip("tcp", t.addr.Std(), t.dialTimeout, t.readTimeout, req)
}

// timeoutSetter is implemented by the transports whose timeouts the Builder
// can adjust after construction.
type timeoutSetter interface {
	setDialTimeout(time.Duration)
	setReadTimeout(time.Duration)
}

// roundTrip performs the single blocking exchange both transports share.
// Any failure collapses to None: the caller only needs to know that no
// response was obtained.
func roundTrip(network, addr string, dialTimeout, readTimeout time.Duration, req g.Bytes) g.Option[g.Bytes] {
	conn, err := net.DialTimeout(network, addr, dialTimeout)
	if err != nil {
		return g.None[g.Bytes]()
	}

	defer conn.Close()

	if readTimeout > 0 {
		conn.SetDeadline(time.Now().Add(readTimeout))
	}

	if _, err := conn.Write(req); err != nil {
		return g.None[g.Bytes]()
	}

	return readResponse(conn)
}

// readResponse drains a single HTTP response from conn. Once the header block
// is complete it uses Content-Length to stop at the message boundary; without
// a Content-Length it reads until the daemon closes the connection (requests
// are sent with Connection: close).
func readResponse(conn net.Conn) g.Option[g.Bytes] {
	var (
		raw        g.Bytes
		headerSize int
		contentLen = -1
	)

	chunk := make([]byte, _readBufferSize)

	for {
		n, err := conn.Read(chunk)
		if n > 0 {
			raw = append(raw, chunk[:n]...)

			if headerSize == 0 {
				if pos := bytes.Index(raw, headerSeparator); pos >= 0 {
					headerSize = pos + len(headerSeparator)
					contentLen = parseContentLength(raw[:headerSize])
				}
			}

			if headerSize > 0 && contentLen >= 0 && len(raw) >= headerSize+contentLen {
				return g.Some(raw[:headerSize+contentLen])
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) && len(raw) > 0 {
				// A known Content-Length that was never reached means the
				// daemon hung up mid-message; nothing usable was obtained.
				if contentLen >= 0 && len(raw) < headerSize+contentLen {
					return g.None[g.Bytes]()
				}

				return g.Some(raw)
			}

			return g.None[g.Bytes]()
		}
	}
}

// parseContentLength extracts the Content-Length value from a raw header
// block, or -1 when the header is absent or unreadable.
func parseContentLength(head g.Bytes) int {
	for line := range bytes.Lines(head) {
		key, value, found := bytes.Cut(line, []byte(":"))
		if !found {
			continue
		}

		if strings.EqualFold(strings.TrimSpace(string(key)), "content-length") {
			n, err := strconv.Atoi(strings.TrimSpace(string(value)))
			if err != nil {
				return -1
			}

			return n
		}
	}

	return -1
}
