package core

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultSigningService       = "vpc-lattice-svcs"
	DefaultForwardContentType   = "application/json"
	DefaultForwardBody          = "data-that-is-not-important"
	DefaultForwardTimeoutSecond = 30
	DefaultMaxResponseBodyBytes = int64(10 << 20)
	maxListingPageSize          = 100
)

type ResolveConfig struct {
	PageSize    int    `koanf:"page_size" mapstructure:"page_size" yaml:"page_size"`
	DefaultKind string `koanf:"default_kind" mapstructure:"default_kind" yaml:"default_kind"`
}

type ForwardConfig struct {
	SigningService       string `koanf:"signing_service" mapstructure:"signing_service" yaml:"signing_service"`
	TimeoutSeconds       int    `koanf:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	MaxResponseBodyBytes int64  `koanf:"max_response_body_bytes" mapstructure:"max_response_body_bytes" yaml:"max_response_body_bytes"`
	ContentType          string `koanf:"content_type" mapstructure:"content_type" yaml:"content_type"`
	DefaultBody          string `koanf:"default_body" mapstructure:"default_body" yaml:"default_body"`
}

type Config struct {
	ServiceName string        `koanf:"service_name" mapstructure:"service_name" yaml:"service_name"`
	Region      string        `koanf:"region" mapstructure:"region" yaml:"region"`
	Resolve     ResolveConfig `koanf:"resolve" mapstructure:"resolve" yaml:"resolve"`
	Forward     ForwardConfig `koanf:"forward" mapstructure:"forward" yaml:"forward"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "lattice",
		Resolve: ResolveConfig{
			DefaultKind: string(EntityKindServiceNetwork),
		},
		Forward: ForwardConfig{
			SigningService:       DefaultSigningService,
			TimeoutSeconds:       DefaultForwardTimeoutSecond,
			MaxResponseBodyBytes: DefaultMaxResponseBodyBytes,
			ContentType:          DefaultForwardContentType,
			DefaultBody:          DefaultForwardBody,
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if c.Resolve.PageSize < 0 || c.Resolve.PageSize > maxListingPageSize {
		return fmt.Errorf("core: resolve.page_size must be between 0 and %d", maxListingPageSize)
	}
	if _, err := ParseEntityKind(c.Resolve.DefaultKind); err != nil {
		return fmt.Errorf("core: resolve.default_kind is invalid: %w", err)
	}
	if c.Forward.TimeoutSeconds < 0 {
		return fmt.Errorf("core: forward.timeout_seconds must be >= 0")
	}
	if c.Forward.MaxResponseBodyBytes < 0 {
		return fmt.Errorf("core: forward.max_response_body_bytes must be >= 0")
	}
	return nil
}

func (c Config) DefaultKind() EntityKind {
	kind, err := ParseEntityKind(c.Resolve.DefaultKind)
	if err != nil {
		return EntityKindServiceNetwork
	}
	return kind
}

func (c Config) ForwardTimeout() time.Duration {
	if c.Forward.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Forward.TimeoutSeconds) * time.Second
}

func (c Config) SigningService() string {
	if service := strings.TrimSpace(c.Forward.SigningService); service != "" {
		return service
	}
	return DefaultSigningService
}

func ValidateEndpoint(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("core: endpoint is required")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("core: invalid endpoint %q: %w", trimmed, err)
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("core: invalid endpoint scheme %q", parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return nil, fmt.Errorf("core: invalid endpoint %q: host is required", trimmed)
	}
	return parsed, nil
}
