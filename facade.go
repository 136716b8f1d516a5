package lattice

import (
	"fmt"

	latticecommand "github.com/goliatone/go-lattice/command"
	"github.com/goliatone/go-lattice/core"
	latticequery "github.com/goliatone/go-lattice/query"
)

type Commands struct {
	Forward *latticecommand.ForwardRequestCommand
}

type Queries struct {
	Resolve *latticequery.ResolveEntityQuery
	List    *latticequery.ListEntitiesQuery
}

// Facade bundles the command and query handlers built on one service.
type Facade struct {
	service  *core.Service
	commands Commands
	queries  Queries
}

func NewFacade(service *core.Service) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("lattice: service is required")
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		Forward: latticecommand.NewForwardRequestCommand(service),
	}
	facade.queries = Queries{
		Resolve: latticequery.NewResolveEntityQuery(service),
	}
	if lister := service.Dependencies().Lister; lister != nil {
		facade.queries.List = latticequery.NewListEntitiesQuery(lister)
	}
	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() *core.Service {
	if f == nil {
		return nil
	}
	return f.service
}
