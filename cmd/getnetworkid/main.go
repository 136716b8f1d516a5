// Command getnetworkid is the onEvent Lambda for the custom resource that
// looks up a VPC Lattice service network id by name.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/goliatone/go-lattice/adapters/gologger"
	"github.com/goliatone/go-lattice/cmd/internal/bootstrap"
	"github.com/goliatone/go-lattice/handlers"
	latticequery "github.com/goliatone/go-lattice/query"
)

func main() {
	rt, err := bootstrap.Build(context.Background(), bootstrap.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "getnetworkid: bootstrap: %v\n", err)
		os.Exit(1)
	}
	handler := handlers.NewCustomResourceHandler(latticequery.NewResolveEntityQuery(rt.Service), rt.Logger.GetLogger("getnetworkid"))

	lambda.Start(func(ctx context.Context, event cfn.Event) (handlers.CustomResourceResponse, error) {
		return handler.Handle(gologger.ContextWithLambdaRequest(ctx), event)
	})
}
