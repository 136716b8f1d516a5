package query

import (
	"context"

	"github.com/goliatone/go-lattice/core"
)

type EntityResolver interface {
	Resolve(ctx context.Context, req core.ResolutionRequest) (core.ResolutionResult, error)
}

type ResolveEntityQuery struct {
	resolver EntityResolver
}

func NewResolveEntityQuery(resolver EntityResolver) *ResolveEntityQuery {
	return &ResolveEntityQuery{resolver: resolver}
}

func (q *ResolveEntityQuery) Query(ctx context.Context, msg ResolveEntityMessage) (core.ResolutionResult, error) {
	if q == nil || q.resolver == nil {
		return core.ResolutionResult{}, queryDependencyError("query: entity resolver is required")
	}
	if err := msg.Validate(); err != nil {
		return core.ResolutionResult{}, err
	}
	return q.resolver.Resolve(ctx, core.ResolutionRequest{
		TargetName: msg.TargetName,
		Kind:       msg.Kind,
	})
}

type ListEntitiesQuery struct {
	lister core.EntityLister
}

func NewListEntitiesQuery(lister core.EntityLister) *ListEntitiesQuery {
	return &ListEntitiesQuery{lister: lister}
}

func (q *ListEntitiesQuery) Query(ctx context.Context, msg ListEntitiesMessage) (core.ListingPage, error) {
	if q == nil || q.lister == nil {
		return core.ListingPage{}, queryDependencyError("query: entity lister is required")
	}
	if err := msg.Validate(); err != nil {
		return core.ListingPage{}, err
	}
	kind, _ := core.ParseEntityKind(string(msg.Kind))
	return q.lister.ListEntities(ctx, kind, msg.Token)
}
