package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var o listOptions

	cmd := &cobra.Command{
		Use:   "list <kind>",
		Short: "List a catalog with filters, stat cards and pagination",
		Long: `List one of: ` + strings.Join(catalogKinds(), ", ") + `.

Filters combine with AND. A value of "all" (or an empty value) leaves a
filter inactive. Changing any filter starts again from page 1.

Examples:
  exchange-catalog list mentors --where hostCountry=Spain
  exchange-catalog list accommodations --max monthlyRent=700 --any amenities=wifi,gym
  exchange-catalog list universities --search lisbon --page 2 --csv out/unis.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := lookupCatalog(args[0])
			if err != nil {
				return err
			}
			return c.list(cmd.Context(), a, o)
		},
	}

	f := cmd.Flags()
	o.filterFlags.register(f)
	f.IntVarP(&o.page, "page", "p", 1, "Page number")
	f.StringVar(&o.csvPath, "csv", "", "Also export every matching record to this CSV file")
	f.BoolVar(&o.retry, "retry", false, "Retry once if loading fails")
	f.BoolVar(&o.noStats, "no-stats", false, "Hide the stat cards")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <kind> <id>",
		Short: "Show one record and add it to recently viewed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := lookupCatalog(args[0])
			if err != nil {
				return err
			}
			return c.show(cmd.Context(), a, args[1])
		},
	}
}

func newOptionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "options <kind> <field>",
		Short: "List the distinct values a filter dropdown offers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := lookupCatalog(args[0])
			if err != nil {
				return err
			}
			return c.options(cmd.Context(), a, args[1])
		},
	}
}
