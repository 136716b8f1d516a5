package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-lattice/core"
)

var (
	_ gocmd.Querier[ResolveEntityMessage, core.ResolutionResult] = (*ResolveEntityQuery)(nil)
	_ gocmd.Querier[ListEntitiesMessage, core.ListingPage]       = (*ListEntitiesQuery)(nil)
	_ EntityResolver                                             = (*core.Service)(nil)
)
