package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/prop-edge/internal/service"
)

var (
	evalStatKind string
	evalLine     float64
	evalOdds     int
	evalSport    string
)

func init() {
	evaluateCmd.Flags().StringVarP(&evalStatKind, "stat", "s", "points", "Statistic: points, rebounds, assists, rebounds_assists")
	evaluateCmd.Flags().Float64VarP(&evalLine, "line", "l", 0, "Market line")
	evaluateCmd.Flags().IntVarP(&evalOdds, "odds", "o", -110, "American odds on the over")
	evaluateCmd.Flags().StringVar(&evalSport, "sport", "", "Sport label")
	_ = evaluateCmd.MarkFlagRequired("line")
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <player>",
	Short: "Price a player prop against a line",
	Example: `  propedge evaluate "Nikola Jokic" --stat points --line 27.5 --odds -110
  propedge evaluate "Nikola Jokic" --stat rebounds_assists --line 22.5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		props, _, err := newPropService()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.DataSourceTimeout()+5*time.Second)
		defer cancel()

		result, err := props.Evaluate(ctx, service.PropRequest{
			Player:   args[0],
			Sport:    evalSport,
			StatKind: evalStatKind,
			Line:     evalLine,
			Odds:     evalOdds,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, result)
		}

		fmt.Fprintf(out, "%s  %s %.1f @ %+d\n", result.Player, result.Kind.DisplayName(), result.Line, result.Odds)
		fmt.Fprintf(out, "  Expected value:  %.2f (%s)\n", result.Projection.Mean, result.Projection.Distribution)
		if result.LastGamesAverage != nil {
			fmt.Fprintf(out, "  Last games avg:  %.1f\n", *result.LastGamesAverage)
		}
		fmt.Fprintf(out, "  P(over):         %.1f%%\n", result.Probability*100)
		fmt.Fprintf(out, "  Prediction:      %s\n", result.Prediction)
		fmt.Fprintf(out, "  Edge:            %+.1f%%\n", result.EdgePercent)
		fmt.Fprintf(out, "  Confidence:      %s\n", result.Confidence)
		fmt.Fprintf(out, "  Kelly stake:     %.2f%% of bankroll\n", result.KellyFraction*100)
		fmt.Fprintf(out, "  %s\n", result.Recommendation)
		return nil
	},
}
