package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var (
	betsSport   string
	betsOutcome string
	exportDir   string
	curvePeriod string
)

// nowFunc is replaced in tests.
var nowFunc = time.Now

func init() {
	bankrollBetsCmd.Flags().StringVar(&betsSport, "sport", "all", "Filter by sport")
	bankrollBetsCmd.Flags().StringVar(&betsOutcome, "outcome", "all", "Filter by outcome: all, wins, losses, pending")
	bankrollExportCmd.Flags().StringVarP(&exportDir, "dir", "d", ".", "Directory to write the export into")
	bankrollCurveCmd.Flags().StringVarP(&curvePeriod, "period", "p", "30d", "Chart period: 7d, 30d, 90d, 1y, all")

	bankrollCmd.AddCommand(bankrollSummaryCmd, bankrollBetsCmd, bankrollCurveCmd, bankrollExportCmd)
}

var bankrollCmd = &cobra.Command{
	Use:   "bankroll",
	Short: "Inspect the bankroll tracker",
}

var bankrollSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show bankroll, ROI, win rate and risk metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := newBankrollService(nowFunc())
		if err != nil {
			return err
		}
		summary := bank.Summary()
		risk := bank.Risk(nil)
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{"summary": summary, "risk": risk})
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Bankroll\t$%s\n", summary.Bankroll.StringFixed(2))
		fmt.Fprintf(w, "Units\t%s (unit $%s)\n", summary.Units.StringFixed(2), summary.UnitSize.StringFixed(2))
		fmt.Fprintf(w, "ROI\t%s%%\n", summary.ROIPercent.StringFixed(2))
		fmt.Fprintf(w, "Win rate\t%s%% (%d/%d)\n", summary.WinRatePercent.StringFixed(2), summary.TotalWins, summary.TotalBets)
		fmt.Fprintf(w, "Pending bets\t%d\n", summary.PendingBets)
		fmt.Fprintf(w, "Sharpe ratio\t%.2f\n", summary.SharpeRatio)
		fmt.Fprintf(w, "Max drawdown\t%.2f%%\n", summary.MaxDrawdownPercent)
		fmt.Fprintf(w, "Daily P&L\t$%s\n", risk.DailyPnL.StringFixed(2))
		fmt.Fprintf(w, "Stop loss\t$%s (hit: %t)\n", risk.StopLoss.StringFixed(2), risk.StopLossHit)
		fmt.Fprintf(w, "Daily target\t$%s (hit: %t)\n", risk.DailyTarget.StringFixed(2), risk.DailyTargetHit)
		return w.Flush()
	},
}

var bankrollBetsCmd = &cobra.Command{
	Use:   "bets",
	Short: "List bet history",
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := newBankrollService(nowFunc())
		if err != nil {
			return err
		}
		bets, err := bank.Bets(betsSport, betsOutcome)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), bets)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tSPORT\tBET\tODDS\tEDGE\tSTAKE\tP&L\tSTATUS")
		for _, b := range bets {
			fmt.Fprintf(w, "%s\t%s\t%s\t%+d\t%.1f%%\t%su\t%s\t%s\n",
				b.PlacedAt.Format("2006-01-02"), b.Sport, b.Description, b.Odds,
				b.EdgePercent, b.StakeUnits.String(), b.ProfitLoss.StringFixed(2), b.Status)
		}
		return w.Flush()
	},
}

var bankrollCurveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Print the equity curve as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := newBankrollService(nowFunc())
		if err != nil {
			return err
		}
		curve, err := bank.Curve(curvePeriod)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), curve)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), curve.ToCSV())
		return err
	},
}

var bankrollExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the bankroll snapshot to a dated JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := newBankrollService(nowFunc())
		if err != nil {
			return err
		}
		path := filepath.Join(exportDir, bank.ExportFilename())
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()

		snap, err := bank.Export(f)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bets and %d curve points to %s\n", len(snap.BetHistory), len(snap.GrowthData), path)
		return nil
	},
}
