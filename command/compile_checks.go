package command

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-lattice/core"
)

var (
	_ gocmd.Commander[ForwardRequestMessage] = (*ForwardRequestCommand)(nil)
	_ RequestForwarder                       = (*core.Service)(nil)
)
