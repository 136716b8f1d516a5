package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Resolver maps a name to an identifier by walking a paginated listing in
// page order. It holds no state between calls.
type Resolver struct {
	lister EntityLister
}

func NewResolver(lister EntityLister) *Resolver {
	return &Resolver{lister: lister}
}

// Resolve returns the first entity named req.TargetName. Page fetch failures
// surface as fetch errors and are never reported as not found.
func (r *Resolver) Resolve(ctx context.Context, req ResolutionRequest) (ResolutionResult, error) {
	if r == nil || r.lister == nil {
		return ResolutionResult{}, fmt.Errorf("core: entity lister is not configured")
	}
	if err := req.Validate(); err != nil {
		return ResolutionResult{}, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	kind, err := ParseEntityKind(string(req.Kind))
	if err != nil {
		return ResolutionResult{}, err
	}
	target := req.TargetName

	token := ""
	pages := 0
	seen := map[string]struct{}{}
	for {
		if err := ctx.Err(); err != nil {
			return ResolutionResult{}, NewFetchError(err, target, pages+1, token, FetchReasonContextCanceled)
		}
		page, err := r.lister.ListEntities(ctx, kind, token)
		pages++
		if err != nil {
			reason := FetchReasonProviderError
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				reason = FetchReasonContextCanceled
			}
			return ResolutionResult{}, NewFetchError(err, target, pages, token, reason)
		}

		for _, item := range page.Items {
			if item.Name == target {
				return ResolutionResult{
					ID:           item.ID,
					Name:         item.Name,
					ARN:          item.ARN,
					Kind:         kind,
					PagesFetched: pages,
				}, nil
			}
		}

		next := strings.TrimSpace(page.NextToken)
		if next == "" {
			return ResolutionResult{}, NewNotFoundError(kind, target, pages)
		}
		if _, ok := seen[next]; ok || next == token {
			return ResolutionResult{}, NewFetchError(
				fmt.Errorf("core: provider repeated continuation token %q", next),
				target,
				pages,
				token,
				FetchReasonRepeatedToken,
			)
		}
		seen[token] = struct{}{}
		token = next
	}
}
