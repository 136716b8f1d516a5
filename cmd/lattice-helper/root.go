package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	gocommand "github.com/goliatone/go-command"
	latticegocommand "github.com/goliatone/go-lattice/adapters/gocommand"
	"github.com/goliatone/go-lattice/cmd/internal/bootstrap"
	"github.com/goliatone/go-lattice/core"
	"github.com/spf13/cobra"
)

const (
	FlagConfig    = "config"
	FlagLogLevel  = "log-level"
	FlagRegion    = "region"
	FlagTransport = "transport"
	FlagOutput    = "output"
	FlagMetrics   = "metrics"

	OutputText = "text"
	OutputJSON = "json"
)

type Builder func(ctx context.Context, opts bootstrap.Options) (*bootstrap.Runtime, error)

// app holds the runtime shared by subcommands for one invocation.
type app struct {
	build Builder
	rt    *bootstrap.Runtime
	subs  latticegocommand.Subscriptions

	metrics *core.MemoryMetricsRecorder
	stderr  io.Writer
}

func New() *cobra.Command {
	return newRootCommand(bootstrap.Build)
}

func newRootCommand(build Builder) *cobra.Command {
	a := &app{build: build}
	cmd := &cobra.Command{
		Use:               "lattice-helper",
		Short:             "Resolve VPC Lattice entities and send signed requests to mesh services",
		SilenceUsage:      true,
		DisableAutoGenTag: true,
	}

	flags := cmd.PersistentFlags()
	flags.String(FlagConfig, "", "YAML configuration file layered under LATTICE_* environment variables")
	flags.String(FlagLogLevel, "", "log level: trace, debug, info, warn, error")
	flags.String(FlagRegion, "", "AWS region, overrides configuration")
	flags.String(FlagTransport, "", "transport used by forward: rest or dryrun")
	flags.StringP(FlagOutput, "o", OutputText, "output format: text or json")
	flags.Bool(FlagMetrics, false, "print operation counters to stderr after the command")

	cmd.AddCommand(
		newResolveCommand(a),
		newListCommand(a),
		newForwardCommand(a),
		newVersionCommand(),
	)
	return cmd
}

// setup builds the runtime and subscribes the service handlers on the
// command dispatcher.
func (a *app) setup(cmd *cobra.Command) error {
	if a.rt != nil {
		return nil
	}
	flags := cmd.Flags()
	configPath, _ := flags.GetString(FlagConfig)
	logLevel, _ := flags.GetString(FlagLogLevel)
	region, _ := flags.GetString(FlagRegion)
	transportKind, _ := flags.GetString(FlagTransport)
	withMetrics, _ := flags.GetBool(FlagMetrics)

	opts := bootstrap.Options{
		ConfigPath: configPath,
		Overrides:  core.Config{Region: region},
		LogWriter:  cmd.ErrOrStderr(),
		LogLevel:   logLevel,
		Transport:  transportKind,
	}
	if withMetrics {
		a.metrics = core.NewMemoryMetricsRecorder()
		a.stderr = cmd.ErrOrStderr()
		opts.Metrics = a.metrics
	}

	rt, err := a.build(cmd.Context(), opts)
	if err != nil {
		return err
	}
	subs, err := latticegocommand.RegisterService(latticegocommand.NewRegistryAdapter(gocommand.NewRegistry()), rt.Service)
	if err != nil {
		return err
	}
	a.rt = rt
	a.subs = subs
	return nil
}

func (a *app) close() {
	if a == nil {
		return
	}
	a.subs.Unsubscribe()
	a.subs = nil
	a.rt = nil
	if a.metrics != nil {
		writeMetrics(a.stderr, a.metrics.Snapshot())
		a.metrics = nil
	}
}

// writeMetrics prints one "name|tag=value count" line per counter series.
func writeMetrics(w io.Writer, snapshot map[string]int64) {
	if w == nil {
		return
	}
	keys := make([]string, 0, len(snapshot))
	for key := range snapshot {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "%s %d\n", key, snapshot[key])
	}
}

func outputFormat(cmd *cobra.Command) (string, error) {
	format, err := cmd.Flags().GetString(FlagOutput)
	if err != nil {
		return "", err
	}
	switch format {
	case OutputText, OutputJSON:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", format)
	}
}

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
