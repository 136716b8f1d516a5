package devkit

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-lattice/core"
)

const maxConformancePages = 1000

func ValidateTransportAdapterConformance(
	ctx context.Context,
	adapter core.TransportAdapter,
	request core.TransportRequest,
) error {
	if adapter == nil {
		return fmt.Errorf("devkit: transport adapter is required")
	}
	if strings.TrimSpace(adapter.Kind()) == "" {
		return fmt.Errorf("devkit: transport adapter kind is required")
	}
	_, err := adapter.Do(ctx, request)
	return err
}

// ValidateListerConformance walks every page for kind and checks that the
// listing terminates, never repeats a token and only returns named entities
// with identifiers. It returns the number of pages walked.
func ValidateListerConformance(ctx context.Context, lister core.EntityLister, kind core.EntityKind) (int, error) {
	if lister == nil {
		return 0, fmt.Errorf("devkit: entity lister is required")
	}
	seen := map[string]struct{}{}
	token := ""
	for pages := 1; pages <= maxConformancePages; pages++ {
		page, err := lister.ListEntities(ctx, kind, token)
		if err != nil {
			return pages, fmt.Errorf("devkit: page %d: %w", pages, err)
		}
		for index, item := range page.Items {
			if strings.TrimSpace(item.Name) == "" || strings.TrimSpace(item.ID) == "" {
				return pages, fmt.Errorf("devkit: page %d item %d is missing name or id", pages, index)
			}
		}
		if !page.HasMore() {
			return pages, nil
		}
		if _, ok := seen[page.NextToken]; ok {
			return pages, fmt.Errorf("devkit: page %d repeated token %q", pages, page.NextToken)
		}
		seen[page.NextToken] = struct{}{}
		token = page.NextToken
	}
	return maxConformancePages, fmt.Errorf("devkit: listing did not terminate after %d pages", maxConformancePages)
}
