package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-lattice/core"
)

type RequestForwarder interface {
	Forward(ctx context.Context, req core.ForwardRequest) (core.ForwardResponse, error)
}

// ForwardRequestCommand sends a signed request and stores the downstream
// response in the result collector carried by ctx, when there is one.
type ForwardRequestCommand struct {
	forwarder RequestForwarder
}

func NewForwardRequestCommand(forwarder RequestForwarder) *ForwardRequestCommand {
	return &ForwardRequestCommand{forwarder: forwarder}
}

func (c *ForwardRequestCommand) Execute(ctx context.Context, msg ForwardRequestMessage) error {
	if c == nil || c.forwarder == nil {
		return commandDependencyError("command: request forwarder is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	out, err := c.forwarder.Forward(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
