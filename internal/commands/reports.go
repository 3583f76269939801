package commands

import (
	"time"

	portssvc "github.com/SscSPs/budget_reconciler/internal/core/ports/services"
	"github.com/SscSPs/budget_reconciler/internal/dto"
	"github.com/spf13/cobra"
)

func newGridCommand() *cobra.Command {
	var flags reportFlags
	var q dto.BudgetGridQuery

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Reconcile planned against actual amounts over a month window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.validate(); err != nil {
				return err
			}
			q.ReportingCurrency = flags.currency
			query, err := q.ToDomain(time.Now().UTC())
			if err != nil {
				return err
			}

			return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
				res, err := svc.Reporting.BudgetGrid(cmd.Context(), flags.workspaceID, query)
				if err != nil {
					return err
				}
				return writeJSON(cmd, dto.ToBudgetGridResponse(res))
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&q.MonthFrom, "from", "", "first month of the window, YYYY-MM (required)")
	cmd.Flags().StringVar(&q.MonthTo, "to", "", "last month of the window, YYYY-MM (required)")
	cmd.Flags().StringVar(&q.ActualFrom, "actual-from", "", "first month with actuals, YYYY-MM")
	cmd.Flags().StringVar(&q.ActualTo, "actual-to", "", "last month with actuals, YYYY-MM")
	cmd.Flags().StringVar(&q.CurrentMonth, "current", "", "month treated as current, YYYY-MM")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newFxCommand() *cobra.Command {
	var flags reportFlags
	var q dto.FxBreakdownQuery

	cmd := &cobra.Command{
		Use:   "fx",
		Short: "Break a month's balance change down by currency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.validate(); err != nil {
				return err
			}
			month, err := q.ParseMonth()
			if err != nil {
				return err
			}

			return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
				res, err := svc.Reporting.FxBreakdown(cmd.Context(), flags.workspaceID, month, flags.currency)
				if err != nil {
					return err
				}
				return writeJSON(cmd, dto.ToFxBreakdownResponse(res))
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&q.Month, "month", "", "month, YYYY-MM (required)")
	_ = cmd.MarkFlagRequired("month")

	return cmd
}

func newBalancesCommand() *cobra.Command {
	var flags reportFlags
	var q dto.BalancesQuery

	cmd := &cobra.Command{
		Use:   "balances",
		Short: "List account balances as of a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.validate(); err != nil {
				return err
			}
			asOf, err := q.ParseAsOf(time.Now().UTC())
			if err != nil {
				return err
			}

			return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
				res, err := svc.Reporting.BalancesSummary(cmd.Context(), flags.workspaceID, asOf, flags.currency)
				if err != nil {
					return err
				}
				return writeJSON(cmd, dto.ToBalancesSummaryResponse(res))
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&q.AsOf, "as-of", "", "as-of date, YYYY-MM-DD (default now)")

	return cmd
}

func newYearCommand() *cobra.Command {
	var flags reportFlags
	var q dto.YearTotalsQuery

	cmd := &cobra.Command{
		Use:   "year",
		Short: "Compute full-year planned and actual totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.validate(); err != nil {
				return err
			}
			current, err := q.ParseCurrentMonth(time.Now().UTC())
			if err != nil {
				return err
			}

			return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
				res, err := svc.Reporting.YearTotals(cmd.Context(), flags.workspaceID, q.Year, current, flags.currency)
				if err != nil {
					return err
				}
				return writeJSON(cmd, dto.ToYearTotalsResponse(res))
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&q.Year, "year", time.Now().UTC().Year(), "calendar year")
	cmd.Flags().StringVar(&q.CurrentMonth, "current", "", "month treated as current, YYYY-MM")

	return cmd
}

func newRateCommand() *cobra.Command {
	var q dto.ResolveRateQuery

	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Resolve the rate converting one currency into another",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf, err := q.ParseAsOf(time.Now().UTC())
			if err != nil {
				return err
			}

			return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
				rate, err := svc.ExchangeRate.ResolveRate(cmd.Context(), q.Source, q.Reporting, asOf)
				if err != nil {
					return err
				}
				return writeJSON(cmd, dto.ToResolvedRateResponse(rate))
			})
		},
	}

	cmd.Flags().StringVar(&q.Source, "source", "", "source currency (required)")
	cmd.Flags().StringVar(&q.Reporting, "reporting", "", "reporting currency (required)")
	cmd.Flags().StringVar(&q.AsOf, "as-of", "", "as-of date, YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("reporting")

	return cmd
}
