package query

import (
	"strings"

	"github.com/goliatone/go-lattice/core"
)

const (
	TypeResolveEntity = "lattice.query.entity.resolve"
	TypeListEntities  = "lattice.query.entity.list"
)

type ResolveEntityMessage struct {
	TargetName string
	Kind       core.EntityKind
}

func (ResolveEntityMessage) Type() string { return TypeResolveEntity }

func (m ResolveEntityMessage) Validate() error {
	if strings.TrimSpace(m.TargetName) == "" {
		return queryValidationError("target_name", "target name is required")
	}
	if m.Kind != "" {
		if _, err := core.ParseEntityKind(string(m.Kind)); err != nil {
			return queryWrapValidation(err, "query: invalid entity kind")
		}
	}
	return nil
}

// ListEntitiesMessage asks for a single listing page. An empty Token is the
// first page.
type ListEntitiesMessage struct {
	Kind  core.EntityKind
	Token string
}

func (ListEntitiesMessage) Type() string { return TypeListEntities }

func (m ListEntitiesMessage) Validate() error {
	if _, err := core.ParseEntityKind(string(m.Kind)); err != nil {
		return queryWrapValidation(err, "query: invalid entity kind")
	}
	return nil
}
