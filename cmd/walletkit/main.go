package main

import (
	"fmt"
	"os"
	"path/filepath"

	"walletkit/internal/cli"
	"walletkit/pkg/appcfg"
	"walletkit/pkg/logx"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "getwd: %v\n", err)
		os.Exit(2)
	}

	cfg, err := appcfg.Load(filepath.Join(cwd, "configs", "app.yaml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load app config: %v (using defaults)\n", err)
		cfg = appcfg.Default()
	}

	if err := logx.Init(logx.Config{
		Level:                cfg.LogLevel,
		ConsoleOnly:          true,
		HideSecretsInConsole: cfg.HideSecretsInConsole,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "log init: %v\n", err)
		os.Exit(1)
	}
	defer logx.Close()

	if err := cli.NewRootCmd(cfg).Execute(); err != nil {
		logx.S().Errorw("command failed", "err", err)
		logx.Close()
		os.Exit(1)
	}
}
