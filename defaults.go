package dockersock

import "time"

// Default configuration constants for the dockersock client.
const (
	// _socketPath is the Unix socket the Docker daemon listens on by default.
	_socketPath = "/var/run/docker.sock"

	// _hostHeader is the Host header value sent with every request.
	// The daemon routes on the path alone but rejects requests without a Host.
	_hostHeader = "localhost"

	// _dialTimeout is the default timeout for establishing the socket
	// connection. Prevents hanging on a daemon that is down or wedged.
	_dialTimeout = 10 * time.Second

	// _readTimeout is the default deadline for writing the request and
	// reading back the complete response on one connection.
	_readTimeout = 30 * time.Second

	// _readBufferSize is the chunk size used when draining a response from
	// the socket.
	_readBufferSize = 4096
)
