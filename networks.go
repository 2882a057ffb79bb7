package dockersock

import (
	"encoding/json"

	"github.com/enetx/g"
	"github.com/enetx/http"
)

// Network is one record from the daemon's network list endpoint.
type Network struct {
	Id       string            `json:"Id"`
	Name     string            `json:"Name"`
	Driver   string            `json:"Driver"`
	Scope    string            `json:"Scope"`
	Internal bool              `json:"Internal"`
	Labels   map[string]string `json:"Labels"`
}

// Networks is the capability for the daemon's network endpoints.
type Networks interface {
	ListNetworks() g.Result[g.Slice[Network]]
}

// ListNetworks lists the networks known to the daemon.
func (c *Client) ListNetworks() g.Result[g.Slice[Network]] {
	resp := c.Call("/networks", http.MethodGet, "")
	if resp.IsErr() {
		return g.Err[g.Slice[Network]](resp.Err())
	}

	var networks g.Slice[Network]
	if err := json.Unmarshal(resp.Ok().Bytes(), &networks); err != nil {
		return g.Err[g.Slice[Network]](&ErrDecode{Err: err})
	}

	return g.Ok(networks)
}
