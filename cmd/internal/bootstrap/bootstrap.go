// Package bootstrap assembles the service used by the Lambda entrypoints and
// the operator CLI: configuration, logging, AWS config, the VPC Lattice
// lister and the signing transport.
package bootstrap

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	sdk "github.com/aws/aws-sdk-go-v2/service/vpclattice"
	"github.com/goliatone/go-lattice/adapters/gologger"
	"github.com/goliatone/go-lattice/auth"
	"github.com/goliatone/go-lattice/core"
	"github.com/goliatone/go-lattice/providers/vpclattice"
	"github.com/goliatone/go-lattice/transport"
	glog "github.com/goliatone/go-logger/glog"
)

const EnvLogLevel = "LATTICE_LOG_LEVEL"

type Options struct {
	// ConfigPath is an optional YAML file layered under the environment.
	ConfigPath string
	// Overrides is the runtime layer and wins over file and environment.
	Overrides core.Config
	LogWriter io.Writer
	LogLevel  string
	// Transport selects the adapter kind, rest unless set.
	Transport string
	// HTTPClient is used by the rest transport when set.
	HTTPClient transport.HTTPDoer

	// Metrics receives the service counters and histograms. Nop when nil.
	Metrics core.MetricsRecorder

	AWSOptions     []func(*awsconfig.LoadOptions) error
	LatticeOptions []func(*sdk.Options)
}

type Runtime struct {
	Service *core.Service
	Logger  *glog.BaseLogger
	Config  core.Config
	AWS     aws.Config
}

func Build(ctx context.Context, opts Options) (*Runtime, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	level := strings.TrimSpace(opts.LogLevel)
	if level == "" {
		level = os.Getenv(EnvLogLevel)
	}
	logger := gologger.New(gologger.Options{Writer: opts.LogWriter, Level: level})

	loader := core.ChainRawConfigLoader{}
	if path := strings.TrimSpace(opts.ConfigPath); path != "" {
		loader = append(loader, core.YAMLFileConfigLoader{Path: path})
	}
	loader = append(loader, core.EnvConfigLoader{})
	configProvider := core.NewCfgxConfigProvider(loader)

	defaults := core.DefaultConfig()
	loaded, err := configProvider.Load(ctx, defaults)
	if err != nil {
		return nil, err
	}
	cfg, err := core.GoOptionsResolver{}.Resolve(defaults, loaded, opts.Overrides)
	if err != nil {
		return nil, err
	}

	awsOptions := append([]func(*awsconfig.LoadOptions) error{}, opts.AWSOptions...)
	if region := strings.TrimSpace(cfg.Region); region != "" {
		awsOptions = append(awsOptions, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsOptions...)
	if err != nil {
		return nil, err
	}

	signer, err := auth.NewSigV4SignerFromConfig(awsCfg, cfg.SigningService())
	if err != nil {
		return nil, err
	}
	adapter, err := transport.NewDefaultRegistry().Build(opts.Transport, transport.AdapterOptions{
		Client:               opts.HTTPClient,
		Signer:               signer,
		MaxResponseBodyBytes: cfg.Forward.MaxResponseBodyBytes,
	})
	if err != nil {
		return nil, err
	}
	lister := vpclattice.NewFromConfig(awsCfg, vpclattice.Config{PageSize: int32(cfg.Resolve.PageSize)}, opts.LatticeOptions...)

	svc, err := core.NewService(opts.Overrides,
		core.WithConfigProvider(configProvider),
		core.WithLogger(logger),
		core.WithLoggerProvider(logger),
		core.WithMetricsRecorder(opts.Metrics),
		core.WithLister(lister),
		core.WithTransport(adapter),
	)
	if err != nil {
		return nil, err
	}

	return &Runtime{
		Service: svc,
		Logger:  logger,
		Config:  svc.Config(),
		AWS:     awsCfg,
	}, nil
}
