package dockersock

import (
	"github.com/enetx/g"
	"github.com/enetx/http"
)

// Version is the capability for the daemon's version and system information
// endpoints. Both return the daemon's JSON payload as an opaque string; the
// shape of these blobs varies across daemon versions, so no schema is
// imposed here.
type Version interface {
	GetVersionInfo() g.Result[g.String]
	GetSystemInfo() g.Result[g.String]
}

// GetVersionInfo returns the daemon's version blurb (GET /version).
func (c *Client) GetVersionInfo() g.Result[g.String] {
	return c.Call("/version", http.MethodGet, "")
}

// GetSystemInfo returns the daemon's system-wide information (GET /info).
func (c *Client) GetSystemInfo() g.Result[g.String] {
	return c.Call("/info", http.MethodGet, "")
}
