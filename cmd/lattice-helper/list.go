package main

import (
	"fmt"
	"text/tabwriter"

	latticegocommand "github.com/goliatone/go-lattice/adapters/gocommand"
	"github.com/goliatone/go-lattice/core"
	latticequery "github.com/goliatone/go-lattice/query"
	"github.com/spf13/cobra"
)

const FlagToken = "token"

func newListCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of entities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			kind, err := kindFlag(cmd)
			if err != nil {
				return err
			}
			token, _ := cmd.Flags().GetString(FlagToken)
			if err := a.setup(cmd); err != nil {
				return err
			}
			defer a.close()
			if kind == "" {
				kind = a.rt.Config.DefaultKind()
			}
			page, err := latticegocommand.Query[latticequery.ListEntitiesMessage, core.ListingPage](
				cmd.Context(),
				latticequery.ListEntitiesMessage{Kind: kind, Token: token},
			)
			if err != nil {
				return err
			}
			if format == OutputJSON {
				return writeJSON(cmd.OutOrStdout(), page)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tID\tARN")
			for _, item := range page.Items {
				fmt.Fprintf(w, "%s\t%s\t%s\n", item.Name, item.ID, item.ARN)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if page.HasMore() {
				_, err = fmt.Fprintf(cmd.ErrOrStderr(), "next token: %s\n", page.NextToken)
			}
			return err
		},
	}
	cmd.Flags().String(FlagKind, "", "entity kind: service_network or service (default from config)")
	cmd.Flags().String(FlagToken, "", "continuation token from a previous page")
	return cmd
}
