package dockersock

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/enetx/g"
	"github.com/enetx/http"
)

// Container is one record from the daemon's container list endpoint.
type Container struct {
	Id         string            `json:"Id"`
	Names      []string          `json:"Names"`
	Image      string            `json:"Image"`
	ImageID    string            `json:"ImageID"`
	Command    string            `json:"Command"`
	State      string            `json:"State"`
	Status     string            `json:"Status"`
	Ports      []Port            `json:"Ports"`
	Labels     map[string]string `json:"Labels"`
	SizeRw     int64             `json:"SizeRw"`
	SizeRootFs int64             `json:"SizeRootFs"`
	HostConfig HostConfig        `json:"HostConfig"`
	Mounts     []Mount           `json:"Mounts"`
}

// Port is a published port mapping on a container.
type Port struct {
	PrivatePort uint32 `json:"PrivatePort"`
	PublicPort  uint32 `json:"PublicPort"`
	Type        string `json:"Type"`
}

// HostConfig is the subset of host settings the list endpoint reports.
type HostConfig struct {
	NetworkMode string `json:"NetworkMode"`
}

// Mount is a mount point attached to a container.
type Mount struct {
	Name        string `json:"Name"`
	Source      string `json:"Source"`
	Destination string `json:"Destination"`
	Driver      string `json:"Driver"`
	Mode        string `json:"Mode"`
	RW          bool   `json:"RW"`
	Propagation string `json:"Propagation"`
}

// ContainerConfig is the configuration sent to the create endpoint. Every
// field has a safe zero default; start from NewContainerConfig and override
// only what you need.
type ContainerConfig struct {
	Image        string            `json:"Image"`
	Cmd          []string          `json:"Cmd"`
	Hostname     string            `json:"Hostname"`
	Domainname   string            `json:"Domainname"`
	User         string            `json:"User"`
	AttachStdin  bool              `json:"AttachStdin"`
	AttachStdout bool              `json:"AttachStdout"`
	AttachStderr bool              `json:"AttachStderr"`
	Tty          bool              `json:"Tty"`
	OpenStdin    bool              `json:"OpenStdin"`
	StdinOnce    bool              `json:"StdinOnce"`
	Env          []string          `json:"Env"`
	Entrypoint   string            `json:"Entrypoint"`
	Labels       map[string]string `json:"Labels,omitempty"`
	WorkingDir   string            `json:"WorkingDir"`
}

// NewContainerConfig returns a fully defaulted configuration for running cmd
// in image: empty strings and sequences, false booleans. Override selected
// fields with the With* methods before creating the container.
func NewContainerConfig(image string, cmd ...string) *ContainerConfig {
	if cmd == nil {
		cmd = []string{}
	}

	return &ContainerConfig{
		Image: image,
		Cmd:   cmd,
		Env:   []string{},
	}
}

// WithHostname sets the container hostname.
func (cc *ContainerConfig) WithHostname(hostname string) *ContainerConfig {
	cc.Hostname = hostname
	return cc
}

// WithDomainname sets the container domain name.
func (cc *ContainerConfig) WithDomainname(domainname string) *ContainerConfig {
	cc.Domainname = domainname
	return cc
}

// WithUser sets the user the container process runs as.
func (cc *ContainerConfig) WithUser(user string) *ContainerConfig {
	cc.User = user
	return cc
}

// WithTty allocates a pseudo-TTY.
func (cc *ContainerConfig) WithTty() *ContainerConfig {
	cc.Tty = true
	return cc
}

// WithOpenStdin keeps stdin open even when not attached.
func (cc *ContainerConfig) WithOpenStdin() *ContainerConfig {
	cc.OpenStdin = true
	return cc
}

// WithEnv appends environment entries in KEY=value form.
func (cc *ContainerConfig) WithEnv(env ...string) *ContainerConfig {
	cc.Env = append(cc.Env, env...)
	return cc
}

// WithEntrypoint overrides the image entrypoint.
func (cc *ContainerConfig) WithEntrypoint(entrypoint string) *ContainerConfig {
	cc.Entrypoint = entrypoint
	return cc
}

// WithLabels merges labels into the configuration.
func (cc *ContainerConfig) WithLabels(labels map[string]string) *ContainerConfig {
	if cc.Labels == nil {
		cc.Labels = make(map[string]string, len(labels))
	}

	for k, v := range labels {
		cc.Labels[k] = v
	}

	return cc
}

// WithWorkingDir sets the working directory inside the container.
func (cc *ContainerConfig) WithWorkingDir(dir string) *ContainerConfig {
	cc.WorkingDir = dir
	return cc
}

// CreateResponse is the daemon's acknowledgment of a create request.
type CreateResponse struct {
	Id       string   `json:"Id"`
	Warnings []string `json:"Warnings"`
}

// Containers is the capability covering the daemon's container endpoints.
// *Client implements it. Every method is a single stateless round trip
// through the uniform call contract; none of them reaches into the transport
// directly.
type Containers interface {
	ListRunningContainers(limit g.Option[int]) g.Result[g.Slice[Container]]
	ListAllContainers(limit g.Option[int]) g.Result[g.Slice[Container]]
	ListContainersWithFilter(filter g.String, limit g.Option[int]) g.Result[g.Slice[Container]]
	CreateContainer(name g.String, config *ContainerConfig) g.Result[CreateResponse]
	CreateContainerMinimal(name, image g.String, cmd ...g.String) g.Result[CreateResponse]
	InspectContainer(id g.String) g.Result[g.String]
	StartContainer(id g.String) g.Result[g.String]
	StopContainer(id g.String, timeout int) g.Result[g.String]
	RestartContainer(id g.String, timeout int) g.Result[g.String]
}

// ListRunningContainers lists the running containers, optionally capped at
// limit records. The query is always ?size=true so records carry disk usage.
func (c *Client) ListRunningContainers(limit g.Option[int]) g.Result[g.Slice[Container]] {
	return c.listContainers(listQuery(false, limit, ""))
}

// ListAllContainers lists every container whether running or stopped. The
// query is always ?all=true&size=true; this is fixed behavior of the list
// operations, not an option.
func (c *Client) ListAllContainers(limit g.Option[int]) g.Result[g.Slice[Container]] {
	return c.listContainers(listQuery(true, limit, ""))
}

// ListContainersWithFilter lists all containers matching filter. The filter
// grammar is the daemon's own, see the Engine API ContainerList operation.
func (c *Client) ListContainersWithFilter(filter g.String, limit g.Option[int]) g.Result[g.Slice[Container]] {
	return c.listContainers(listQuery(true, limit, filter))
}

// CreateContainer creates a container named name from config and returns the
// daemon's acknowledgment carrying the assigned identifier.
func (c *Client) CreateContainer(name g.String, config *ContainerConfig) g.Result[CreateResponse] {
	if name.Empty() {
		return g.Err[CreateResponse](&ErrRequestFormat{Msg: "container name is empty"})
	}

	if config == nil || config.Image == "" {
		return g.Err[CreateResponse](&ErrRequestFormat{Msg: "container config has no image reference"})
	}

	body, err := json.Marshal(config)
	if err != nil {
		return g.Err[CreateResponse](&ErrEncode{Err: err})
	}

	endpoint := g.String("/containers/create?name=" + url.QueryEscape(name.Std()))

	resp := c.Call(endpoint, http.MethodPost, g.String(body))
	if resp.IsErr() {
		return g.Err[CreateResponse](resp.Err())
	}

	var created CreateResponse
	if err := json.Unmarshal(resp.Ok().Bytes(), &created); err != nil {
		return g.Err[CreateResponse](&ErrDecode{Err: err})
	}

	return g.Ok(created)
}

// CreateContainerMinimal creates a container from just an image reference and
// a command; everything else keeps its documented default.
func (c *Client) CreateContainerMinimal(name, image g.String, cmd ...g.String) g.Result[CreateResponse] {
	args := make([]string, len(cmd))
	for i, arg := range cmd {
		args[i] = arg.Std()
	}

	return c.CreateContainer(name, NewContainerConfig(image.Std(), args...))
}

// InspectContainer returns the full detail record for one container as an
// opaque JSON string.
func (c *Client) InspectContainer(id g.String) g.Result[g.String] {
	return c.Call(containerEndpoint(id, "json"), http.MethodGet, "")
}

// StartContainer starts a created or stopped container. The daemon answers
// with an empty body on success.
func (c *Client) StartContainer(id g.String) g.Result[g.String] {
	return c.Call(containerEndpoint(id, "start"), http.MethodPost, "")
}

// StopContainer stops a running container, giving it timeout seconds before
// it is killed.
func (c *Client) StopContainer(id g.String, timeout int) g.Result[g.String] {
	endpoint := containerEndpoint(id, "stop") + g.String(fmt.Sprintf("?t=%d", timeout))
	return c.Call(endpoint, http.MethodPost, "")
}

// RestartContainer restarts a container with the same timeout semantics as
// StopContainer.
func (c *Client) RestartContainer(id g.String, timeout int) g.Result[g.String] {
	endpoint := containerEndpoint(id, "restart") + g.String(fmt.Sprintf("?t=%d", timeout))
	return c.Call(endpoint, http.MethodPost, "")
}

// listContainers runs one list round trip and decodes the body into typed
// records. A body whose shape does not match is an *ErrDecode carrying the
// json package's diagnostic verbatim.
func (c *Client) listContainers(query g.String) g.Result[g.Slice[Container]] {
	resp := c.Call("/containers/json"+query, http.MethodGet, "")
	if resp.IsErr() {
		return g.Err[g.Slice[Container]](resp.Err())
	}

	var containers g.Slice[Container]
	if err := json.Unmarshal(resp.Ok().Bytes(), &containers); err != nil {
		return g.Err[g.Slice[Container]](&ErrDecode{Err: err})
	}

	return g.Ok(containers)
}

// containerEndpoint builds /containers/{id}/{op} with the identifier escaped.
func containerEndpoint(id g.String, op string) g.String {
	return g.String("/containers/" + url.PathEscape(id.Std()) + "/" + op)
}

// listQuery composes the fixed query grammar of the list operations:
// ?all=true&size=true&limit=N&filter=F with each parameter present only when
// its option was supplied (all and size are unconditional for their calls).
func listQuery(all bool, limit g.Option[int], filter g.String) g.String {
	var b strings.Builder

	b.WriteByte('?')

	if all {
		b.WriteString("all=true&")
	}

	b.WriteString("size=true")

	if limit.IsSome() {
		fmt.Fprintf(&b, "&limit=%d", limit.Some())
	}

	if !filter.Empty() {
		b.WriteString("&filter=")
		b.WriteString(url.QueryEscape(filter.Std()))
	}

	return g.String(b.String())
}
