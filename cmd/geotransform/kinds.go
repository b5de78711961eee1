package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"geometric-transformations/internal/algorithms"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List transformations and their parameters",
	Args:  cobra.NoArgs,
	RunE:  runKinds,
}

func init() {
	kindsCmd.Flags().Int("width", 640, "Image width used for point defaults")
	kindsCmd.Flags().Int("height", 480, "Image height used for point defaults")
	rootCmd.AddCommand(kindsCmd)
}

func runKinds(cmd *cobra.Command, args []string) error {
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")

	for _, name := range algorithms.Names() {
		a, _ := algorithms.Get(name)
		fmt.Printf("%s (%s)\n", a.Kind(), name)
		fmt.Printf("  %s\n", a.GetDescription())
		for _, p := range a.GetParameterInfo(width, height) {
			if p.Bounded() {
				fmt.Printf("    %-6s %v..%v, default %v\n", p.Name, p.Min, p.Max, p.Default)
			} else {
				fmt.Printf("    %-6s default %v\n", p.Name, p.Default)
			}
		}
	}
	return nil
}
