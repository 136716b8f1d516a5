package core

import (
	"context"
	"net/http"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

// EntityLister returns a single listing page per call. An empty token asks
// for the first page.
type EntityLister interface {
	ListEntities(ctx context.Context, kind EntityKind, token string) (ListingPage, error)
}

type EntityListerFunc func(ctx context.Context, kind EntityKind, token string) (ListingPage, error)

func (fn EntityListerFunc) ListEntities(ctx context.Context, kind EntityKind, token string) (ListingPage, error) {
	return fn(ctx, kind, token)
}

type Signer interface {
	Sign(ctx context.Context, req *http.Request) error
}

type SignerFunc func(ctx context.Context, req *http.Request) error

func (fn SignerFunc) Sign(ctx context.Context, req *http.Request) error {
	return fn(ctx, req)
}

type TransportRequest struct {
	Method               string
	URL                  string
	Headers              map[string]string
	Body                 []byte
	Metadata             map[string]any
	Timeout              time.Duration
	MaxResponseBodyBytes int64
}

type TransportResponse struct {
	StatusCode int
	Status     string
	Headers    map[string]string
	Body       []byte
	Metadata   map[string]any
}

type TransportAdapter interface {
	Kind() string
	Do(ctx context.Context, req TransportRequest) (TransportResponse, error)
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

// OperationIDFunc derives a correlation id for a single operation, usually
// the Lambda request id.
type OperationIDFunc func(ctx context.Context) string

type ServiceDependencies struct {
	Logger          Logger
	LoggerProvider  LoggerProvider
	MetricsRecorder MetricsRecorder
	ErrorFactory    ErrorFactory
	ErrorMapper     ErrorMapper
	ConfigProvider  ConfigProvider
	OptionsResolver OptionsResolver
	Lister          EntityLister
	Transport       TransportAdapter
}
