package main

import (
	"fmt"
	"os"
	"path/filepath"

	app "github.com/rocketscienceinc/connectfour-relay/internal"
	"github.com/rocketscienceinc/connectfour-relay/internal/config"
	"github.com/rocketscienceinc/connectfour-relay/internal/observability"
)

// main - is the entry point of the application. It initializes the configuration, logger, and runs the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := initConfig()

	logger, err := observability.NewLogger(conf.LogLevel, conf.LogFormat)
	if err != nil {
		panic(fmt.Errorf("failed to init logger: %w", err))
	}

	defer func() { _ = logger.Sync() }()

	if err = app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// initialize config.
func initConfig() *config.Config {
	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(filepath.Join(baseDir, "./config.yml"))
}
