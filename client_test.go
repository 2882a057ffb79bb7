package dockersock_test

import (
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/donflopez/dockersock"
	"github.com/enetx/g"
	"github.com/enetx/http"
)

// fakeTransport records the last formatted request and replays a canned
// response, standing in for the daemon socket.
type fakeTransport struct {
	lastReq g.Bytes
	resp    g.Option[g.Bytes]
	calls   int
}

func (f *fakeTransport) Send(req g.Bytes) g.Option[g.Bytes] {
	f.lastReq = req
	f.calls++
	return f.resp
}

// httpResponse frames body as a minimal HTTP/1.1 200 response.
func httpResponse(body string) g.Option[g.Bytes] {
	raw := fmt.Sprintf(
		"HTTP/1.1 200 OK\r\nContent-Type: application/json\r\nContent-Length: %d\r\n\r\n%s",
		len(body), body,
	)

	return g.Some(g.Bytes(raw))
}

// newFakeClient wires a client to a fake transport answering with resp.
func newFakeClient(t *testing.T, resp g.Option[g.Bytes]) (*dockersock.Client, *fakeTransport) {
	t.Helper()

	fake := &fakeTransport{resp: resp}

	result := dockersock.NewClient().Builder().Transport(fake).Build()
	if result.IsErr() {
		t.Fatalf("failed to build client: %v", result.Err())
	}

	return result.Ok(), fake
}

func TestCallReturnsBody(t *testing.T) {
	t.Parallel()

	client, _ := newFakeClient(t, httpResponse(`{"Version":"27.0.1"}`))

	result := client.Call("/version", "GET", "")
	if result.IsErr() {
		t.Fatalf("unexpected error: %v", result.Err())
	}

	if result.Ok() != `{"Version":"27.0.1"}` {
		t.Errorf("unexpected body: %q", result.Ok())
	}
}

func TestCallNoResponse(t *testing.T) {
	t.Parallel()

	client, _ := newFakeClient(t, g.None[g.Bytes]())

	result := client.Call("/version", "GET", "")
	if result.IsOk() {
		t.Fatal("expected a transport failure")
	}

	var noResp *dockersock.ErrNoResponse
	if !errors.As(result.Err(), &noResp) {
		t.Errorf("expected *ErrNoResponse, got %T", result.Err())
	}
}

func TestCallMalformedResponse(t *testing.T) {
	t.Parallel()

	client, _ := newFakeClient(t, g.Some(g.Bytes("not an http response")))

	result := client.Call("/version", "GET", "")
	if result.IsOk() {
		t.Fatal("expected a framing failure")
	}

	var malformed *dockersock.ErrMalformedResponse
	if !errors.As(result.Err(), &malformed) {
		t.Errorf("expected *ErrMalformedResponse, got %T", result.Err())
	}
}

func TestCallFormatFailureSkipsTransport(t *testing.T) {
	t.Parallel()

	client, fake := newFakeClient(t, httpResponse("{}"))

	result := client.Call("no-leading-slash", "GET", "")
	if result.IsOk() {
		t.Fatal("expected a formatting failure")
	}

	var formatErr *dockersock.ErrRequestFormat
	if !errors.As(result.Err(), &formatErr) {
		t.Errorf("expected *ErrRequestFormat, got %T", result.Err())
	}

	if fake.calls != 0 {
		t.Errorf("a request that could not be prepared must never be sent, got %d sends", fake.calls)
	}
}

func TestDoExposesStatus(t *testing.T) {
	t.Parallel()

	client, _ := newFakeClient(t, g.Some(g.Bytes("HTTP/1.1 404 Not Found\r\n\r\n{\"message\":\"no such container\"}")))

	result := client.Do("/containers/nope/json", "GET", "")
	if result.IsErr() {
		t.Fatalf("unexpected error: %v", result.Err())
	}

	resp := result.Ok()

	if resp.StatusCode != 404 {
		t.Errorf("expected status 404, got %d", resp.StatusCode)
	}

	if resp.IsSuccess() {
		t.Error("404 must not count as success")
	}
}

func TestBuilderTransportSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func() g.Result[*dockersock.Client]
		check func(dockersock.Transport) bool
	}{
		{
			"unix socket",
			func() g.Result[*dockersock.Client] {
				return dockersock.NewClient().Builder().UnixSocket("/tmp/test.sock").Build()
			},
			func(tr dockersock.Transport) bool { _, ok := tr.(*dockersock.UnixTransport); return ok },
		},
		{
			"tcp",
			func() g.Result[*dockersock.Client] {
				return dockersock.NewClient().Builder().TCP("127.0.0.1:2375").Build()
			},
			func(tr dockersock.Transport) bool { _, ok := tr.(*dockersock.TCPTransport); return ok },
		},
		{
			"timeouts apply after transport regardless of chaining order",
			func() g.Result[*dockersock.Client] {
				return dockersock.NewClient().Builder().
					DialTimeout(time.Second).
					ReadTimeout(2 * time.Second).
					UnixSocket("/tmp/test.sock").
					Build()
			},
			func(tr dockersock.Transport) bool { _, ok := tr.(*dockersock.UnixTransport); return ok },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.build()
			if result.IsErr() {
				t.Fatalf("failed to build client: %v", result.Err())
			}

			if !tt.check(result.Ok().GetTransport()) {
				t.Errorf("unexpected transport %T", result.Ok().GetTransport())
			}
		})
	}
}

func TestBuilderRejectsBadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func() g.Result[*dockersock.Client]
	}{
		{
			"empty socket path",
			func() g.Result[*dockersock.Client] {
				return dockersock.NewClient().Builder().UnixSocket("").Build()
			},
		},
		{
			"empty tcp address",
			func() g.Result[*dockersock.Client] {
				return dockersock.NewClient().Builder().TCP("").Build()
			},
		},
		{
			"nil transport",
			func() g.Result[*dockersock.Client] {
				return dockersock.NewClient().Builder().Transport(nil).Build()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.build().IsOk() {
				t.Fatal("expected build to fail")
			}
		})
	}
}

func TestClientAgainstUnixSocketServer(t *testing.T) {
	t.Parallel()

	socket := filepath.Join(t.TempDir(), "docker.sock")

	ln, err := net.Listen("unix", socket)
	if err != nil {
		t.Fatalf("failed to listen on %s: %v", socket, err)
	}

	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/version":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"Version":"27.0.1","ApiVersion":"1.45"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})}

	go srv.Serve(ln)
	defer srv.Close()

	result := dockersock.NewClient().Builder().
		UnixSocket(g.String(socket)).
		ReadTimeout(5 * time.Second).
		Build()
	if result.IsErr() {
		t.Fatalf("failed to build client: %v", result.Err())
	}

	info := result.Ok().GetVersionInfo()
	if info.IsErr() {
		t.Fatalf("version call failed: %v", info.Err())
	}

	if !info.Ok().Contains("27.0.1") {
		t.Errorf("unexpected version payload: %q", info.Ok())
	}
}
