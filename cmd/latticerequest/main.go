// Command latticerequest is the Lambda that sends a SigV4 signed request to
// a VPC Lattice service endpoint and reports the downstream status.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/goliatone/go-lattice/adapters/gologger"
	"github.com/goliatone/go-lattice/cmd/internal/bootstrap"
	latticecommand "github.com/goliatone/go-lattice/command"
	"github.com/goliatone/go-lattice/handlers"
)

func main() {
	rt, err := bootstrap.Build(context.Background(), bootstrap.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "latticerequest: bootstrap: %v\n", err)
		os.Exit(1)
	}
	handler := handlers.NewLatticeRequestHandler(latticecommand.NewForwardRequestCommand(rt.Service), rt.Logger.GetLogger("latticerequest"))

	lambda.Start(func(ctx context.Context, event handlers.LatticeRequestEvent) (events.ALBTargetGroupResponse, error) {
		return handler.Handle(gologger.ContextWithLambdaRequest(ctx), event)
	})
}
