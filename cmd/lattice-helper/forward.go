package main

import (
	"fmt"
	"strings"

	gocommand "github.com/goliatone/go-command"
	latticegocommand "github.com/goliatone/go-lattice/adapters/gocommand"
	latticecommand "github.com/goliatone/go-lattice/command"
	"github.com/goliatone/go-lattice/core"
	"github.com/spf13/cobra"
)

const (
	FlagMethod = "method"
	FlagBody   = "body"
	FlagHeader = "header"
)

type forwardOutput struct {
	StatusCode        int               `json:"statusCode"`
	StatusDescription string            `json:"statusDescription"`
	Headers           map[string]string `json:"headers,omitempty"`
	Body              string            `json:"body"`
}

func newForwardCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forward <url>",
		Short: "Send a SigV4 signed request to a VPC Lattice service endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			method, _ := cmd.Flags().GetString(FlagMethod)
			body, _ := cmd.Flags().GetString(FlagBody)
			rawHeaders, _ := cmd.Flags().GetStringArray(FlagHeader)
			headers, err := parseHeaders(rawHeaders)
			if err != nil {
				return err
			}
			if err := a.setup(cmd); err != nil {
				return err
			}
			defer a.close()

			collector := gocommand.NewResult[core.ForwardResponse]()
			ctx := gocommand.ContextWithResult(cmd.Context(), collector)
			err = latticegocommand.Dispatch(ctx, latticecommand.ForwardRequestMessage{
				Request: core.ForwardRequest{
					Endpoint: args[0],
					Method:   method,
					Body:     body,
					Headers:  headers,
				},
			})
			if err != nil {
				return err
			}
			response, ok := collector.Load()
			if !ok {
				return fmt.Errorf("forward produced no response")
			}

			if format == OutputJSON {
				return writeJSON(cmd.OutOrStdout(), forwardOutput{
					StatusCode:        response.StatusCode,
					StatusDescription: response.StatusDescription(),
					Headers:           response.Headers,
					Body:              string(response.Body),
				})
			}
			fmt.Fprintln(cmd.ErrOrStderr(), response.StatusDescription())
			_, err = cmd.OutOrStdout().Write(response.Body)
			return err
		},
	}
	cmd.Flags().String(FlagMethod, "", "HTTP method (default POST)")
	cmd.Flags().String(FlagBody, "", "request body (default placeholder payload for non-GET requests)")
	cmd.Flags().StringArrayP(FlagHeader, "H", nil, "request header as key=value, repeatable")
	return cmd
}

func parseHeaders(raw []string) (map[string]string, error) {
	headers := make(map[string]string, len(raw))
	for _, entry := range raw {
		// The first separator wins so values may contain '=' or ':'.
		idx := strings.IndexAny(entry, "=:")
		if idx < 0 {
			return nil, fmt.Errorf("invalid header %q, expected key=value", entry)
		}
		key, value := strings.TrimSpace(entry[:idx]), entry[idx+1:]
		if key == "" {
			return nil, fmt.Errorf("invalid header %q, expected key=value", entry)
		}
		headers[key] = strings.TrimSpace(value)
	}
	return headers, nil
}
