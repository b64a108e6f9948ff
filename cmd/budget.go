package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"exchange-catalog/models"
	"exchange-catalog/services"
	"exchange-catalog/storage"
)

const budgetDraft = "budget"

func newBudgetCmd(a *app) *cobra.Command {
	var (
		in        models.BudgetInput
		fromDraft bool
		saveDraft bool
	)

	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Estimate monthly and total exchange costs",
		Long: `Estimate monthly and total costs for an exchange stay.

With --from-draft the last saved inputs are loaded first; any flag given on
the command line overrides the saved value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			drafts := storage.NewDrafts(a.kv)
			input := in

			if fromDraft {
				var saved models.BudgetInput
				ok, err := drafts.Load(budgetDraft, &saved)
				if err != nil {
					return err
				}
				if ok {
					input = mergeBudget(saved, in, cmd.Flags().Changed)
				} else {
					a.logger.Warn("[budget] no saved draft, using flags only")
				}
			}

			a.insights.PrintBudget(services.CalculateBudget(input))

			if saveDraft {
				a.warnIfNoStorage()
				if err := drafts.Save(budgetDraft, input); err != nil {
					return fmt.Errorf("save budget draft: %w", err)
				}
				a.logger.Debug("[budget] draft saved")
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&in.Rent, "rent", 0, "Monthly rent")
	f.Float64Var(&in.Food, "food", 0, "Monthly food")
	f.Float64Var(&in.Transport, "transport", 0, "Monthly transport")
	f.Float64Var(&in.Utilities, "utilities", 0, "Monthly utilities")
	f.Float64Var(&in.Leisure, "leisure", 0, "Monthly leisure")
	f.Float64Var(&in.Other, "other", 0, "Other monthly costs")
	f.Float64Var(&in.Income, "income", 0, "Monthly grant or income")
	f.IntVar(&in.Months, "months", 5, "Length of stay in months")
	f.BoolVar(&fromDraft, "from-draft", false, "Start from the saved budget draft")
	f.BoolVar(&saveDraft, "save-draft", false, "Save these inputs as the budget draft")
	return cmd
}

// mergeBudget overlays the explicitly set flags onto a saved input.
func mergeBudget(saved, flags models.BudgetInput, changed func(string) bool) models.BudgetInput {
	out := saved
	if changed("rent") {
		out.Rent = flags.Rent
	}
	if changed("food") {
		out.Food = flags.Food
	}
	if changed("transport") {
		out.Transport = flags.Transport
	}
	if changed("utilities") {
		out.Utilities = flags.Utilities
	}
	if changed("leisure") {
		out.Leisure = flags.Leisure
	}
	if changed("other") {
		out.Other = flags.Other
	}
	if changed("income") {
		out.Income = flags.Income
	}
	if changed("months") {
		out.Months = flags.Months
	}
	return out
}
