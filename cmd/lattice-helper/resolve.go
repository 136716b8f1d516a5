package main

import (
	"fmt"

	latticegocommand "github.com/goliatone/go-lattice/adapters/gocommand"
	"github.com/goliatone/go-lattice/core"
	latticequery "github.com/goliatone/go-lattice/query"
	"github.com/spf13/cobra"
)

const FlagKind = "kind"

func newResolveCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <name>",
		Short: "Resolve an entity name to its identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			kind, err := kindFlag(cmd)
			if err != nil {
				return err
			}
			if err := a.setup(cmd); err != nil {
				return err
			}
			defer a.close()
			result, err := latticegocommand.Query[latticequery.ResolveEntityMessage, core.ResolutionResult](
				cmd.Context(),
				latticequery.ResolveEntityMessage{TargetName: args[0], Kind: kind},
			)
			if err != nil {
				return err
			}
			if format == OutputJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), result.ID)
			return err
		},
	}
	cmd.Flags().String(FlagKind, "", "entity kind: service_network or service (default from config)")
	return cmd
}

func kindFlag(cmd *cobra.Command) (core.EntityKind, error) {
	raw, err := cmd.Flags().GetString(FlagKind)
	if err != nil {
		return "", err
	}
	if raw == "" {
		return "", nil
	}
	return core.ParseEntityKind(raw)
}
