package core

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

type Service struct {
	config          Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	errorFactory    ErrorFactory
	errorMapper     ErrorMapper
	configProvider  ConfigProvider
	optionsResolver OptionsResolver
	lister          EntityLister
	resolver        *Resolver
	transport       TransportAdapter
	operationID     OperationIDFunc
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	builder := defaultServiceBuilder(cfg)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("lattice", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("lattice"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.operationID == nil {
		builder.operationID = defaultOperationID
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	svc := &Service{
		config:          finalConfig,
		logger:          logger,
		loggerProvider:  provider,
		metricsRecorder: builder.metricsRecorder,
		errorFactory:    builder.errorFactory,
		errorMapper:     builder.errorMapper,
		configProvider:  builder.configProvider,
		optionsResolver: builder.optionsResolver,
		lister:          builder.lister,
		transport:       builder.transport,
		operationID:     builder.operationID,
	}
	if builder.lister != nil {
		svc.resolver = NewResolver(builder.lister)
	}
	return svc, nil
}

func Setup(cfg Config, opts ...Option) (*Service, error) {
	return NewService(cfg, opts...)
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (s *Service) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.config
}

func (s *Service) Logger() Logger {
	if s == nil {
		return glog.Nop()
	}
	return s.logger
}

func (s *Service) Dependencies() ServiceDependencies {
	if s == nil {
		return ServiceDependencies{}
	}
	return ServiceDependencies{
		Logger:          s.logger,
		LoggerProvider:  s.loggerProvider,
		MetricsRecorder: s.metricsRecorder,
		ErrorFactory:    s.errorFactory,
		ErrorMapper:     s.errorMapper,
		ConfigProvider:  s.configProvider,
		OptionsResolver: s.optionsResolver,
		Lister:          s.lister,
		Transport:       s.transport,
	}
}

// Resolve maps req.TargetName to the identifier of the first matching entity
// in listing order.
func (s *Service) Resolve(ctx context.Context, req ResolutionRequest) (result ResolutionResult, err error) {
	if s == nil {
		return ResolutionResult{}, fmt.Errorf("core: service is nil")
	}
	startedAt := time.Now().UTC()
	if req.Kind == "" {
		req.Kind = s.config.DefaultKind()
	}
	fields := map[string]any{
		"target_name": req.TargetName,
		"kind":        string(req.Kind),
	}
	defer func() {
		if err == nil {
			fields["entity_id"] = result.ID
			fields["pages_fetched"] = result.PagesFetched
		} else {
			fields["error_code"] = errorTextCode(err)
		}
		s.observeOperation(ctx, startedAt, "resolve", err, fields)
	}()

	if err = req.Validate(); err != nil {
		err = s.mapError(err)
		return ResolutionResult{}, err
	}
	if kind, kindErr := ParseEntityKind(string(req.Kind)); kindErr == nil {
		req.Kind = kind
		fields["kind"] = string(kind)
	}
	if s.resolver == nil {
		err = s.mapError(s.errorFactory("core: entity lister is not configured", goerrors.CategoryInternal))
		return ResolutionResult{}, err
	}
	result, err = s.resolver.Resolve(ctx, req)
	if err != nil {
		err = s.mapError(err)
		return ResolutionResult{}, err
	}
	return result, nil
}

func (s *Service) mapError(err error) error {
	if err == nil {
		return nil
	}
	if s == nil || s.errorMapper == nil {
		return err
	}
	mapped := s.errorMapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func errorTextCode(err error) string {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich.TextCode
	}
	return ""
}
