package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-lattice/command"
	"github.com/goliatone/go-lattice/core"
	glog "github.com/goliatone/go-logger/glog"
)

const ServerErrorBody = "Server error - check lambda logs\n"

// LatticeRequestEvent accepts the direct invoke payload ({"url": ...}) and
// the custom resource shape (ResourceProperties.endpoint).
type LatticeRequestEvent struct {
	URL                string            `json:"url,omitempty"`
	Method             string            `json:"method,omitempty"`
	Body               string            `json:"body,omitempty"`
	Headers            map[string]string `json:"headers,omitempty"`
	ResourceProperties map[string]any    `json:"ResourceProperties,omitempty"`
}

func (e LatticeRequestEvent) Endpoint() string {
	if url := strings.TrimSpace(e.URL); url != "" {
		return url
	}
	if value, ok := stringProperty(e.ResourceProperties, "endpoint"); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

type LatticeRequestHandler struct {
	forwarder gocmd.Commander[command.ForwardRequestMessage]
	logger    core.Logger
}

func NewLatticeRequestHandler(forwarder gocmd.Commander[command.ForwardRequestMessage], logger core.Logger) *LatticeRequestHandler {
	return &LatticeRequestHandler{forwarder: forwarder, logger: glog.Ensure(logger)}
}

// Handle signs and sends the request, passing the downstream status through.
// Failures never surface as invocation errors; they are logged and reported
// as a 500 response.
func (h *LatticeRequestHandler) Handle(ctx context.Context, event LatticeRequestEvent) (events.ALBTargetGroupResponse, error) {
	logger := glog.Nop()
	if h != nil && h.logger != nil {
		logger = h.logger.WithContext(ctx)
	}
	if h == nil || h.forwarder == nil {
		logger.Error("lattice request failed", "error", "request forwarder is not configured")
		return serverError(), nil
	}

	collector := gocmd.NewResult[core.ForwardResponse]()
	runCtx := gocmd.ContextWithResult(ctx, collector)
	endpoint := event.Endpoint()
	err := h.forwarder.Execute(runCtx, command.ForwardRequestMessage{Request: core.ForwardRequest{
		Endpoint: endpoint,
		Method:   event.Method,
		Body:     event.Body,
		Headers:  event.Headers,
	}})
	if err != nil {
		logger.Error("lattice request failed", "endpoint", endpoint, "error", err.Error())
		return serverError(), nil
	}
	out, ok := collector.Load()
	if !ok {
		logger.Error("lattice request failed", "endpoint", endpoint, "error", "no response recorded")
		return serverError(), nil
	}

	logger.Info("lattice request completed",
		"endpoint", endpoint,
		"status_code", out.StatusCode,
		"body", string(out.Body),
	)
	return events.ALBTargetGroupResponse{
		StatusCode:        out.StatusCode,
		StatusDescription: out.StatusDescription(),
		Headers:           out.Headers,
		Body:              string(out.Body),
	}, nil
}

func serverError() events.ALBTargetGroupResponse {
	return events.ALBTargetGroupResponse{
		StatusCode:        http.StatusInternalServerError,
		StatusDescription: "500 Internal Server Error",
		Body:              ServerErrorBody,
	}
}
