package main

import (
	"fmt"
	"os"

	"assetctl/internal/cli"
	"assetctl/internal/config"
	"assetctl/internal/logging"
)

func main() {
	cfg, err := config.Load(os.Getenv("ASSETCTL_CONFIG_DIR"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "assetctl: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logging)

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "assetctl: %v\n", err)
		os.Exit(1)
	}
}
