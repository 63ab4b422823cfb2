package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"pip-follow/internal/app"
	"pip-follow/internal/ipc"
	"pip-follow/pkg/config"
	"pip-follow/pkg/global"
	"pip-follow/pkg/logger"
)

const version = "0.1.0"

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "path to config file")
	logLevel := flag.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "print version information")
	showStatus := flag.Bool("status", false, "query a running daemon for its tracking status")
	flag.Parse()

	if *showVersion {
		fmt.Printf("pip-follow %s\n", version)
		return
	}

	// Setup logging level
	level, err := logger.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// Initialize logger first for early logging
	log, err := logger.NewLogger(
		logger.WithConsole(),
		logger.WithLevel(level),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting pip-follow",
		"version", version,
		"pid", os.Getpid(),
		"os", runtime.GOOS,
		"arch", runtime.GOARCH,
		"log_level", level.String())

	// Load configuration
	log.Debug("Loading configuration", "provided_path", *configPath)

	cfg, err := config.FindConfig(*configPath, log)
	if err != nil {
		log.Error("Failed to load configuration", err,
			"provided_path", *configPath)
		os.Exit(1)
	}
	log.Info("Configuration loaded successfully",
		"title_pattern", cfg.GetTitlePattern(),
		"app_id_pattern", cfg.GetAppIDPattern())

	// Initialize globals
	log.Debug("Initializing global instances")
	global.InitGlobals(cfg, log)

	// Handle status query
	if *showStatus {
		resp, err := ipc.SendCommand("status")
		if err != nil {
			log.Fatal("Failed to query daemon status (is pip-follow running?)", err)
		}
		fmt.Println(resp.Message)
		return
	}

	// Create and start the application
	log.Debug("Creating pip-follow instance")
	app, err := app.NewPipFollow()
	if err != nil {
		log.Fatal("Failed to create pip-follow", err)
	}

	log.Info("Starting application")
	if err := app.Run(); err != nil {
		log.Fatal("Application error", err)
	}
}
