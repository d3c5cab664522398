package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	kellyOdds int
	kellyEdge float64
)

func init() {
	kellyCmd.Flags().IntVarP(&kellyOdds, "odds", "o", 0, "American odds")
	kellyCmd.Flags().Float64VarP(&kellyEdge, "edge", "e", 0, "Edge in percentage points")
	_ = kellyCmd.MarkFlagRequired("odds")
	_ = kellyCmd.MarkFlagRequired("edge")
}

var impliedCmd = &cobra.Command{
	Use:   "implied <odds>",
	Short: "Convert American odds to implied probability",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		odds, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("odds must be an integer: %w", err)
		}
		props, _, err := newPropService()
		if err != nil {
			return err
		}
		quote, err := props.Quote(odds)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), quote)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%+d  decimal %.3f  implied %.2f%%\n", quote.American, quote.Decimal, quote.ImpliedProbability*100)
		return nil
	},
}

var kellyCmd = &cobra.Command{
	Use:   "kelly",
	Short: "Size a stake with capped quarter Kelly against the bankroll",
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := newBankrollService(nowFunc())
		if err != nil {
			return err
		}
		rec, err := bank.RecommendStake(kellyOdds, kellyEdge)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), rec)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Kelly fraction:  %.4f\n", rec.KellyFraction)
		fmt.Fprintf(out, "Stake:           $%s (%s units)\n", rec.Amount.StringFixed(2), rec.Units.StringFixed(2))
		fmt.Fprintf(out, "Payout if won:   $%s\n", rec.Payout.StringFixed(2))
		return nil
	},
}

var sharpeCmd = &cobra.Command{
	Use:   "sharpe <value> <value> [value...]",
	Short: "Annualized Sharpe ratio of daily bankroll values",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		values := make([]float64, 0, len(args))
		for _, a := range args {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", a, err)
			}
			values = append(values, v)
		}
		props, _, err := newPropService()
		if err != nil {
			return err
		}
		ratio, err := props.SharpeRatio(values)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]float64{"sharpe_ratio": ratio})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sharpe ratio: %.2f\n", ratio)
		return nil
	},
}
