package lattice

import "github.com/goliatone/go-lattice/core"

type Config = core.Config

type Option = core.Option

type Service = core.Service

type ServiceDependencies = core.ServiceDependencies
type EntityLister = core.EntityLister
type Signer = core.Signer
type TransportAdapter = core.TransportAdapter
type MetricsRecorder = core.MetricsRecorder

type EntityKind = core.EntityKind
type Entity = core.Entity
type ListingPage = core.ListingPage

type ResolutionRequest = core.ResolutionRequest
type ResolutionResult = core.ResolutionResult

type ForwardRequest = core.ForwardRequest
type ForwardResponse = core.ForwardResponse

const (
	EntityKindServiceNetwork = core.EntityKindServiceNetwork
	EntityKindService        = core.EntityKindService
)

var (
	WithLogger          = core.WithLogger
	WithLoggerProvider  = core.WithLoggerProvider
	WithMetricsRecorder = core.WithMetricsRecorder
	WithErrorFactory    = core.WithErrorFactory
	WithErrorMapper     = core.WithErrorMapper
	WithConfigProvider  = core.WithConfigProvider
	WithOptionsResolver = core.WithOptionsResolver
	WithLister          = core.WithLister
	WithTransport       = core.WithTransport
	WithOperationIDFunc = core.WithOperationIDFunc
)

var (
	IsFetchError    = core.IsFetchError
	IsNotFoundError = core.IsNotFoundError
	IsSigningError  = core.IsSigningError
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	return core.NewService(cfg, opts...)
}

func Setup(cfg Config, opts ...Option) (*Service, error) {
	return core.Setup(cfg, opts...)
}
