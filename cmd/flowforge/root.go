package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lxyhes/flowforge/internal/cli"
	"github.com/lxyhes/flowforge/internal/logging"
	"github.com/lxyhes/flowforge/pkg/store"
)

var rootCmd = &cobra.Command{
	Use:   "flowforge",
	Short: "FlowForge is a workflow-graph builder for agent automation",
	Long: `FlowForge manages a library of workflow templates and turns workflow
graphs into agent and command artifacts.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to the config file (default: ./flowforge.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
}

// setup resolves config, logger and template service for a command.
func setup(cmd *cobra.Command) (*store.Service, cli.Config, *slog.Logger, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := cli.LoadConfig(cfgFile)
	if err != nil {
		return nil, cli.Config{}, nil, err
	}

	level := cfg.Log.Level
	if flagLevel, _ := cmd.Flags().GetString("log-level"); flagLevel != "" {
		level = flagLevel
	}
	logger := logging.New(logging.ParseLevel(level))

	svc, err := cli.NewService(cfg, logger)
	if err != nil {
		return nil, cli.Config{}, nil, err
	}
	return svc, cfg, logger, nil
}
