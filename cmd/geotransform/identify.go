package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"geometric-transformations/internal/imgio"
)

var identifyCmd = &cobra.Command{
	Use:   "identify [file]",
	Short: "Show image dimensions and channels",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdentify,
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	_, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	img, err := imgio.NewImageLoader(logger).Decode(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	fmt.Printf("File:       %s\n", path)
	fmt.Printf("Dimensions: %d x %d\n", img.Width, img.Height)
	fmt.Printf("Channels:   %d\n", img.Channels)
	fmt.Printf("File size:  %d bytes (%.1f MB)\n", len(data), float64(len(data))/(1024*1024))
	return nil
}
