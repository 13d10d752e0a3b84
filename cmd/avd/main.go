package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ChristopherRabotin/avd"
	"github.com/spf13/cobra"
)

const scenarioEnv = "AVD_CONFIG"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("[error] %s", err)
	}
}

func newRootCmd() *cobra.Command {
	var (
		scenario string
		debug    bool
	)
	root := &cobra.Command{
		Use:           "avd",
		Short:         "Conceptual sizing of fixed wing aircraft",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&scenario, "scenario", os.Getenv(scenarioEnv), "scenario TOML file (defaults to $"+scenarioEnv+")")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "log every sizing iteration")

	var outputDir string
	sizeCmd := &cobra.Command{
		Use:   "size",
		Short: "Size the aircraft and select its design point",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := readScenario(scenario, debug)
			if err != nil {
				return err
			}
			if outputDir != "" {
				sc.Export.OutputDir = outputDir
			}
			res, err := avd.Run(sc.Config, sc.Inputs)
			if err != nil {
				return err
			}
			printResult(cmd, res)
			if sc.Export.IsUseless() {
				return nil
			}
			files, err := avd.Export(sc.Export, res)
			for _, f := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", f)
			}
			return err
		},
	}
	sizeCmd.Flags().StringVar(&outputDir, "output", "", "override the export directory")

	var (
		samples, workers int
		seed             int64
		σAR, σe, σClMax  float64
	)
	tradeCmd := &cobra.Command{
		Use:   "trade",
		Short: "Run a Monte Carlo trade study on aspect ratio, Oswald efficiency and maximum lift",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := readScenario(scenario, debug)
			if err != nil {
				return err
			}
			ts := avd.NewTradeStudy(samples, σAR, σe, σClMax, seed)
			ts.Workers = workers
			outcomes, err := avd.RunTrade(context.Background(), sc.Config, sc.Inputs, ts)
			if err != nil {
				return err
			}
			failures := map[string]int{}
			for _, o := range outcomes {
				if o.Err != nil {
					failures[o.Err.Error()]++
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), avd.Summarize(outcomes))
			for msg, count := range failures {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d x %s\n", count, msg)
			}
			return nil
		},
	}
	tradeCmd.Flags().IntVar(&samples, "samples", 100, "number of sessions")
	tradeCmd.Flags().IntVar(&workers, "workers", 0, "maximum concurrent sessions (0 for no limit)")
	tradeCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	tradeCmd.Flags().Float64Var(&σAR, "sigma-ar", 0.5, "standard deviation of the aspect ratio")
	tradeCmd.Flags().Float64Var(&σe, "sigma-e", 0.02, "standard deviation of the Oswald efficiency")
	tradeCmd.Flags().Float64Var(&σClMax, "sigma-clmax", 0.1, "standard deviation of the maximum lift coefficient")

	root.AddCommand(sizeCmd, tradeCmd)
	return root
}

func printResult(cmd *cobra.Command, res avd.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "session %s\n", res.ID)
	fmt.Fprintf(out, "profile     %s\n", res.Inputs.Profile)
	fmt.Fprintf(out, "W0          %10.1f kg after %d iterations\n", res.Sizing.W0, res.Sizing.Iterations())
	fmt.Fprintf(out, "  empty     %10.1f kg (%.3f)\n", res.Sizing.EmptyWeight(), res.Sizing.WeW0)
	fmt.Fprintf(out, "  fuel      %10.1f kg (%.3f)\n", res.Sizing.FuelWeight(), res.Sizing.WfW0)
	fmt.Fprintf(out, "  fixed     %10.1f kg\n", res.FixedWeight())
	for _, f := range res.Sizing.Breakdown {
		fmt.Fprintf(out, "  %-9s %10.4f\n", f.Kind, f.Fraction)
	}
	fmt.Fprintf(out, "minimum     %s\n", res.Design.Minimum)
	fmt.Fprintf(out, "landing     %s (%s)\n", res.Design.LandingBound, res.Design.Limiter)
	fmt.Fprintf(out, "design      %s (blend %.2f)\n", res.Design.Point, res.Design.Blend)
	fmt.Fprintf(out, "wing area   %10.2f m^2\n", res.WingArea())
	fmt.Fprintf(out, "thrust      %10.1f kN\n", res.Thrust()/1e3)
}
