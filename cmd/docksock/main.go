// Command docksock is a thin CLI over the dockersock client library,
// mainly useful for poking at a daemon socket and for debugging the raw
// request/response exchange with --debug.
package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/donflopez/dockersock"
	"github.com/enetx/g"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	socketPath string
	hostAddr   string
	debug      bool
)

// debugTransport wraps a real transport and traces every exchange.
type debugTransport struct {
	next dockersock.Transport
}

func (d *debugTransport) Send(req g.Bytes) g.Option[g.Bytes] {
	logrus.WithField("bytes", len(req)).Debug("sending request")
	logrus.Debug(string(req))

	resp := d.next.Send(req)
	if resp.IsNone() {
		logrus.Debug("no response obtained")
		return resp
	}

	logrus.WithField("bytes", len(resp.Some())).Debug("response received")
	logrus.Debug(string(resp.Some()))

	return resp
}

// buildClient wires a client according to the global flags.
func buildClient() (*dockersock.Client, error) {
	var transport dockersock.Transport
	if hostAddr != "" {
		transport = dockersock.NewTCPTransport(g.String(hostAddr))
	} else {
		transport = dockersock.NewUnixTransport(g.String(socketPath))
	}

	if debug {
		transport = &debugTransport{next: transport}
	}

	result := dockersock.NewClient().Builder().Transport(transport).Build()
	if result.IsErr() {
		return nil, result.Err()
	}

	return result.Ok(), nil
}

func limitOption(limit int) g.Option[int] {
	if limit > 0 {
		return g.Some(limit)
	}

	return g.None[int]()
}

func newPsCmd() *cobra.Command {
	var (
		all    bool
		limit  int
		filter string
	)

	cmd := &cobra.Command{
		Use:   "ps",
		Short: "List containers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient()
			if err != nil {
				return err
			}

			var result g.Result[g.Slice[dockersock.Container]]
			switch {
			case filter != "":
				result = client.ListContainersWithFilter(g.String(filter), limitOption(limit))
			case all:
				result = client.ListAllContainers(limitOption(limit))
			default:
				result = client.ListRunningContainers(limitOption(limit))
			}

			if result.IsErr() {
				return result.Err()
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "CONTAINER ID\tIMAGE\tCOMMAND\tSTATUS\tNAMES")

			for _, c := range result.Ok() {
				id := c.Id
				if len(id) > 12 {
					id = id[:12]
				}

				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					id, c.Image, c.Command, c.Status, strings.Join(c.Names, ","))
			}

			return w.Flush()
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include stopped containers")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "cap the number of records")
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "daemon-side list filter")

	return cmd
}

func newCreateCmd() *cobra.Command {
	var (
		env     []string
		workdir string
		tty     bool
	)

	cmd := &cobra.Command{
		Use:   "create NAME IMAGE [COMMAND...]",
		Short: "Create a container",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient()
			if err != nil {
				return err
			}

			config := dockersock.NewContainerConfig(args[1], args[2:]...).WithEnv(env...)
			if workdir != "" {
				config.WithWorkingDir(workdir)
			}
			if tty {
				config.WithTty()
			}

			result := client.CreateContainer(g.String(args[0]), config)
			if result.IsErr() {
				return result.Err()
			}

			for _, warning := range result.Ok().Warnings {
				logrus.Warn(warning)
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Ok().Id)

			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&env, "env", "e", nil, "environment entries (KEY=value)")
	cmd.Flags().StringVarP(&workdir, "workdir", "w", "", "working directory inside the container")
	cmd.Flags().BoolVarP(&tty, "tty", "t", false, "allocate a pseudo-TTY")

	return cmd
}

// rawCmd builds a command that prints an opaque JSON payload as-is.
func rawCmd(use, short string, call func(*dockersock.Client, []string) g.Result[g.String], args cobra.PositionalArgs) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			client, err := buildClient()
			if err != nil {
				return err
			}

			result := call(client, cmdArgs)
			if result.IsErr() {
				return result.Err()
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Ok())

			return nil
		},
	}
}

func newLifecycleCmd(use, short string, call func(*dockersock.Client, g.String, int) g.Result[g.String]) *cobra.Command {
	var timeout int

	cmd := &cobra.Command{
		Use:   use + " CONTAINER",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient()
			if err != nil {
				return err
			}

			result := call(client, g.String(args[0]), timeout)
			if result.IsErr() {
				return result.Err()
			}

			fmt.Fprintln(cmd.OutOrStdout(), args[0])

			return nil
		},
	}

	cmd.Flags().IntVarP(&timeout, "time", "t", 10, "seconds to wait before killing the container")

	return cmd
}

func newImagesCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "images",
		Short: "List images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient()
			if err != nil {
				return err
			}

			result := client.ListImages(all)
			if result.IsErr() {
				return result.Err()
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "IMAGE ID\tREPO TAGS\tSIZE")

			for _, img := range result.Ok() {
				id := strings.TrimPrefix(img.Id, "sha256:")
				if len(id) > 12 {
					id = id[:12]
				}

				fmt.Fprintf(w, "%s\t%s\t%d\n", id, strings.Join(img.RepoTags, ","), img.Size)
			}

			return w.Flush()
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include intermediate layers")

	return cmd
}

func newNetworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List networks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient()
			if err != nil {
				return err
			}

			result := client.ListNetworks()
			if result.IsErr() {
				return result.Err()
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "NETWORK ID\tNAME\tDRIVER\tSCOPE")

			for _, n := range result.Ok() {
				id := n.Id
				if len(id) > 12 {
					id = id[:12]
				}

				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", id, n.Name, n.Driver, n.Scope)
			}

			return w.Flush()
		},
	}
}

func main() {
	root := &cobra.Command{
		Use:           "docksock",
		Short:         "Talk to a Docker daemon over its socket with hand-built HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	root.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ToLower(name))
	})

	root.PersistentFlags().StringVar(&socketPath, "socket", "/var/run/docker.sock", "path to the daemon's Unix socket")
	root.PersistentFlags().StringVar(&hostAddr, "host", "", "TCP address of the daemon (overrides --socket)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "trace raw requests and responses")

	root.AddCommand(
		newPsCmd(),
		newCreateCmd(),
		rawCmd("inspect CONTAINER", "Show full container detail", func(c *dockersock.Client, args []string) g.Result[g.String] {
			return c.InspectContainer(g.String(args[0]))
		}, cobra.ExactArgs(1)),
		newLifecycleCmd("start", "Start a container", func(c *dockersock.Client, id g.String, _ int) g.Result[g.String] {
			return c.StartContainer(id)
		}),
		newLifecycleCmd("stop", "Stop a running container", func(c *dockersock.Client, id g.String, t int) g.Result[g.String] {
			return c.StopContainer(id, t)
		}),
		newLifecycleCmd("restart", "Restart a container", func(c *dockersock.Client, id g.String, t int) g.Result[g.String] {
			return c.RestartContainer(id, t)
		}),
		newImagesCmd(),
		newNetworksCmd(),
		rawCmd("version", "Show daemon version information", func(c *dockersock.Client, _ []string) g.Result[g.String] {
			return c.GetVersionInfo()
		}, cobra.NoArgs),
		rawCmd("info", "Show system-wide daemon information", func(c *dockersock.Client, _ []string) g.Result[g.String] {
			return c.GetSystemInfo()
		}, cobra.NoArgs),
	)

	if err := root.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
