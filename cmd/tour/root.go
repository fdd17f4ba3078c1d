package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"virtual-museum/internal/catalog"
	"virtual-museum/internal/config"
	"virtual-museum/internal/env"
	"virtual-museum/internal/logger"
	"virtual-museum/internal/platform"
)

// options are the flags shared by every command. Flags win over the config file and TOUR_* variables.
type options struct {
	configPath  string
	catalogPath string
	touch       string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:           "tour",
		Short:         "Walk through the virtual museum",
		Long:          "tour opens a first-person walkthrough of the museum. Click artifacts for details and narration, pictures for their video. WASD moves, Q/E rise and sink, Esc frees the cursor, backtick opens the developer console.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prefs, cat, err := opts.load(cmd)
			if err != nil {
				return err
			}
			log := logger.New(prefs.LogPath)
			log.Logf("tour: starting, log at %s", log.Path())
			return platform.New(prefs, cat, log).Run()
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "preferences file")
	rootCmd.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "catalog YAML (default: embedded)")
	rootCmd.PersistentFlags().StringVar(&opts.touch, "touch", "", "touch controls: auto, on or off")

	rootCmd.AddCommand(newCatalogCmd(opts))
	return rootCmd
}

// load resolves preferences (.env, config file, TOUR_* variables, then flags) and the catalog.
func (o *options) load(cmd *cobra.Command) (config.Prefs, *catalog.Catalog, error) {
	if err := env.Load(env.DefaultPath); err != nil {
		return config.Prefs{}, nil, err
	}
	prefs, err := config.Load(o.configPath)
	if err != nil {
		return config.Prefs{}, nil, err
	}
	if cmd.Flags().Changed("catalog") {
		prefs.CatalogPath = o.catalogPath
	}
	if cmd.Flags().Changed("touch") {
		prefs.Touch = o.touch
		if err := prefs.Validate(); err != nil {
			return config.Prefs{}, nil, err
		}
	}
	cat, err := catalog.Load(prefs.CatalogPath)
	if err != nil {
		return config.Prefs{}, nil, fmt.Errorf("tour: %w", err)
	}
	return prefs, cat, nil
}
