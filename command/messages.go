package command

import (
	"strings"

	"github.com/goliatone/go-lattice/core"
)

const TypeForwardRequest = "lattice.command.request.forward"

type ForwardRequestMessage struct {
	Request core.ForwardRequest
}

func (ForwardRequestMessage) Type() string { return TypeForwardRequest }

func (m ForwardRequestMessage) Validate() error {
	if strings.TrimSpace(m.Request.Endpoint) == "" {
		return commandValidationError("endpoint", "endpoint is required")
	}
	if _, err := core.ValidateEndpoint(m.Request.Endpoint); err != nil {
		return commandWrapValidation(err, "command: invalid endpoint")
	}
	return nil
}
