package dockersock

import (
	"encoding/json"

	"github.com/enetx/g"
	"github.com/enetx/http"
)

// Image is one record from the daemon's image list endpoint.
type Image struct {
	Id          string            `json:"Id"`
	ParentId    string            `json:"ParentId"`
	RepoTags    []string          `json:"RepoTags"`
	RepoDigests []string          `json:"RepoDigests"`
	Created     int64             `json:"Created"`
	Size        int64             `json:"Size"`
	SharedSize  int64             `json:"SharedSize"`
	Labels      map[string]string `json:"Labels"`
	Containers  int64             `json:"Containers"`
}

// Images is the capability for the daemon's image endpoints.
type Images interface {
	ListImages(all bool) g.Result[g.Slice[Image]]
}

// ListImages lists the images known to the daemon. With all set, intermediate
// layers are included.
func (c *Client) ListImages(all bool) g.Result[g.Slice[Image]] {
	endpoint := g.String("/images/json")
	if all {
		endpoint += "?all=true"
	}

	resp := c.Call(endpoint, http.MethodGet, "")
	if resp.IsErr() {
		return g.Err[g.Slice[Image]](resp.Err())
	}

	var images g.Slice[Image]
	if err := json.Unmarshal(resp.Ok().Bytes(), &images); err != nil {
		return g.Err[g.Slice[Image]](&ErrDecode{Err: err})
	}

	return g.Ok(images)
}
