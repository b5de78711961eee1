package main

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"geometric-transformations/internal/imgio"
	"geometric-transformations/internal/metrics"
)

var compareCmd = &cobra.Command{
	Use:   "compare [reference] [processed]",
	Short: "Print MSE, PSNR and max absolute difference of two images",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	_, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	loader := imgio.NewImageLoader(logger)
	reference, err := loader.LoadImage(args[0])
	if err != nil {
		return err
	}
	processed, err := loader.LoadImage(args[1])
	if err != nil {
		return err
	}

	eval := metrics.NewEvaluator()
	results := make(map[string]float64)
	for _, name := range eval.Names() {
		v, err := eval.Calculate(name, reference, processed)
		if err != nil {
			return fmt.Errorf("comparing %s with %s: %w", args[0], args[1], err)
		}
		results[name] = v
	}

	fmt.Printf("Reference: %s (%s)\n", args[0], reference)
	fmt.Printf("Processed: %s (%s)\n", args[1], processed)
	printMetrics(results)
	return nil
}

func printMetrics(results map[string]float64) {
	names := lo.Keys(results)
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-12s %s\n", name, metrics.Format(name, results[name]))
	}
}
