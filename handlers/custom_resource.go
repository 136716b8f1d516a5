package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/cfn"
	gocmd "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-lattice/core"
	"github.com/goliatone/go-lattice/query"
	glog "github.com/goliatone/go-logger/glog"
)

const (
	PropertyServiceNetworkName = "serviceNetworkName"
	PropertyServiceName        = "serviceName"
	DataServiceNetworkID       = "serviceNetworkId"
	DataServiceID              = "serviceId"
)

// CustomResourceResponse is the onEvent result the CDK provider framework
// expects.
type CustomResourceResponse struct {
	PhysicalResourceID string         `json:"PhysicalResourceId"`
	Data               map[string]any `json:"Data,omitempty"`
}

type CustomResourceHandler struct {
	resolver gocmd.Querier[query.ResolveEntityMessage, core.ResolutionResult]
	logger   core.Logger
}

func NewCustomResourceHandler(
	resolver gocmd.Querier[query.ResolveEntityMessage, core.ResolutionResult],
	logger core.Logger,
) *CustomResourceHandler {
	return &CustomResourceHandler{resolver: resolver, logger: glog.Ensure(logger)}
}

// Handle resolves the name in ResourceProperties to an identifier. Delete
// events echo the existing physical id without calling the API.
func (h *CustomResourceHandler) Handle(ctx context.Context, event cfn.Event) (CustomResourceResponse, error) {
	if h == nil || h.resolver == nil {
		return CustomResourceResponse{}, goerrors.New("handlers: entity resolver is required", goerrors.CategoryInternal).
			WithTextCode(core.LatticeErrorInternal)
	}
	logger := h.logger.WithContext(ctx)

	if event.RequestType == cfn.RequestDelete {
		logger.Info("custom resource delete",
			"request_id", event.RequestID,
			"physical_resource_id", event.PhysicalResourceID,
		)
		return CustomResourceResponse{PhysicalResourceID: event.PhysicalResourceID}, nil
	}

	name, kind, dataKey, err := targetFromProperties(event.ResourceProperties)
	if err != nil {
		logger.Error("custom resource rejected", "request_id", event.RequestID, "error", err.Error())
		return CustomResourceResponse{}, err
	}

	result, err := h.resolver.Query(ctx, query.ResolveEntityMessage{TargetName: name, Kind: kind})
	if err != nil {
		logger.Error("custom resource lookup failed",
			"request_id", event.RequestID,
			"request_type", string(event.RequestType),
			"target_name", name,
			"error", err.Error(),
		)
		return CustomResourceResponse{}, err
	}

	logger.Info("custom resource resolved",
		"request_id", event.RequestID,
		"request_type", string(event.RequestType),
		"target_name", name,
		"entity_id", result.ID,
		"pages_fetched", result.PagesFetched,
	)
	return CustomResourceResponse{
		PhysicalResourceID: result.ID,
		Data:               map[string]any{dataKey: result.ID},
	}, nil
}

func targetFromProperties(props map[string]any) (string, core.EntityKind, string, error) {
	if name, ok := stringProperty(props, PropertyServiceNetworkName); ok {
		return name, core.EntityKindServiceNetwork, DataServiceNetworkID, nil
	}
	if name, ok := stringProperty(props, PropertyServiceName); ok {
		return name, core.EntityKindService, DataServiceID, nil
	}
	return "", "", "", goerrors.NewValidation("handlers: validation failed", goerrors.FieldError{
		Field:   "ResourceProperties",
		Message: fmt.Sprintf("one of %s or %s is required", PropertyServiceNetworkName, PropertyServiceName),
	}).WithTextCode(core.LatticeErrorBadInput)
}

func stringProperty(props map[string]any, key string) (string, bool) {
	raw, ok := props[key]
	if !ok || raw == nil {
		return "", false
	}
	value, ok := raw.(string)
	if !ok {
		value = fmt.Sprint(raw)
	}
	if strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}
