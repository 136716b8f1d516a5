package core

import (
	"fmt"
	"strings"
)

type EntityKind string

const (
	EntityKindServiceNetwork EntityKind = "service_network"
	EntityKindService        EntityKind = "service"
)

func ParseEntityKind(raw string) (EntityKind, error) {
	normalized := strings.TrimSpace(strings.ToLower(raw))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	switch normalized {
	case "", string(EntityKindServiceNetwork), "servicenetwork", "network":
		return EntityKindServiceNetwork, nil
	case string(EntityKindService):
		return EntityKindService, nil
	default:
		return "", fmt.Errorf("core: unsupported entity kind %q", raw)
	}
}

func (k EntityKind) Label() string {
	switch k {
	case EntityKindService:
		return "Service"
	default:
		return "ServiceNetwork"
	}
}

// Entity is the subset of a listed resource that resolution needs.
type Entity struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	ARN  string `json:"arn,omitempty"`
}

// ListingPage is one page of a paginated listing. An empty NextToken means
// the provider has no further pages.
type ListingPage struct {
	Items     []Entity `json:"items"`
	NextToken string   `json:"next_token,omitempty"`
}

func (p ListingPage) HasMore() bool {
	return strings.TrimSpace(p.NextToken) != ""
}

type ResolutionRequest struct {
	TargetName string
	Kind       EntityKind
}

func (r ResolutionRequest) Validate() error {
	if strings.TrimSpace(r.TargetName) == "" {
		return fmt.Errorf("core: target name is required")
	}
	if r.Kind != "" {
		if _, err := ParseEntityKind(string(r.Kind)); err != nil {
			return err
		}
	}
	return nil
}

type ResolutionResult struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	ARN          string     `json:"arn,omitempty"`
	Kind         EntityKind `json:"kind"`
	PagesFetched int        `json:"pages_fetched"`
}

type ForwardRequest struct {
	Endpoint string
	Method   string
	Body     string
	Headers  map[string]string
}

type ForwardResponse struct {
	StatusCode int
	Status     string
	Headers    map[string]string
	Body       []byte
}

func (r ForwardResponse) StatusDescription() string {
	status := strings.TrimSpace(r.Status)
	if status != "" {
		return status
	}
	return statusDescription(r.StatusCode)
}
