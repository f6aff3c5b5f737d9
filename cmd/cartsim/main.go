// Command cartsim simulates a cascaded PID position control of a cart on a
// rail. It exercises the whole engine surface: parameter store round trip,
// feedback loops broken by delay blocks, plot recording and graph export.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	paramsPath string
	plotPath   string
	verbose    bool
)

func main() {
	root := &cobra.Command{
		Use:           "cartsim",
		Short:         "Discrete-time cart position control demo",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&paramsPath, "params", "p", "cart.toml",
		"parameter file, created on first run")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate the control loop and render the signal plots",
		Args:  cobra.NoArgs,
		RunE:  runSim,
	}
	runCmd.Flags().StringVarP(&plotPath, "plot", "o", "cart.png", "output plot file")

	graphCmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the dependency graph in Graphviz dot syntax",
		Args:  cobra.NoArgs,
		RunE:  runGraph,
	}
	root.AddCommand(runCmd, graphCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "cartsim:", err)
		os.Exit(1)
	}
}

func logger() *slog.Logger {
	lvl := slog.LevelInfo
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func runSim(cmd *cobra.Command, _ []string) error {
	log := logger()
	sys, signals, store, err := buildCart(log, true)
	if err != nil {
		return err
	}
	// Persist the effective parameters so the file can be tweaked next run.
	if err := store.Save(); err != nil {
		return err
	}

	steps, err := sys.Run()
	if err != nil {
		return err
	}
	log.Info("simulation finished", "steps", steps, "t", sys.Time().T)

	if err := signals.Save(plotPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ran %d steps, plots in %s, parameters in %s\n",
		steps, plotPath, store.Path())
	return nil
}

func runGraph(cmd *cobra.Command, _ []string) error {
	sys, _, _, err := buildCart(logger(), false)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), sys.Dot())
	return nil
}
