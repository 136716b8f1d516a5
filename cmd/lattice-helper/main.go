// Command lattice-helper is the operator CLI for resolving VPC Lattice
// entities and sending signed requests to mesh endpoints.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := New().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
