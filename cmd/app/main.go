// Geometric Transformations - desktop application
package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"geometric-transformations/internal/config"
	"geometric-transformations/internal/gui"
)

const (
	AppName    = "Geometric Transformations"
	AppID      = "com.geometric-transformations.app"
	AppVersion = "1.0.0"
)

func main() {
	debugMode := flag.BoolP("debug", "d", false, "Enable debug mode with verbose logging")
	configPath := flag.StringP("config", "c", "", "Path to a TOML configuration file")
	backend := flag.String("backend", "", "Transformation backend: native or opencv")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *backend != "" {
		cfg.Backend = *backend
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	logger := cfg.NewLogger(*debugMode)
	logger.WithFields(logrus.Fields{
		"version":    AppVersion,
		"debug_mode": *debugMode,
		"backend":    cfg.Backend,
	}).Info("Starting " + AppName)

	myApp := app.NewWithID(AppID)
	myApp.SetIcon(theme.DocumentIcon())
	myApp.Settings().SetTheme(theme.DefaultTheme())

	mainApp := gui.NewApplication(myApp, cfg, logger, *debugMode)

	// An image path may be given as the only argument
	if flag.NArg() > 0 {
		if err := mainApp.LoadImageFromPath(flag.Arg(0)); err != nil {
			logger.WithError(err).Error("Failed to load image from command line")
		}
	}

	mainApp.ShowAndRun()

	logger.Info("Application shutting down gracefully")
}
