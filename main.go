package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"gitlab.com/tachyons/servedir/internal/config"
	"gitlab.com/tachyons/servedir/internal/errortracking"
	"gitlab.com/tachyons/servedir/internal/logging"
	"gitlab.com/tachyons/servedir/metrics"
)

// VERSION stores the information about the semantic version of application
var VERSION = "dev"

// REVISION stores the information about the git revision of application
var REVISION = "HEAD"

func appMain() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}

	printVersion(cfg.General.ShowVersion, VERSION)

	if err := logging.ConfigureLogging(cfg.Log.Format, cfg.Log.Verbose); err != nil {
		log.WithError(err).Fatal("Failed to initialize logging")
	}

	if err := errortracking.Initialize(cfg.Sentry.DSN, cfg.Sentry.Environment, fmt.Sprintf("%s-%s", VERSION, REVISION)); err != nil {
		log.WithError(err).Warn("Failed to initialize error tracking")
	}

	log.WithFields(log.Fields{
		"version":  VERSION,
		"revision": REVISION,
	}).Print("servedir daemon")

	config.LogConfig(cfg)

	if err := runApp(cfg); err != nil {
		errortracking.CaptureErrWithStackTrace(err)
		log.WithError(err).Fatal("could not run servedir daemon")
	}
}

func printVersion(showVersion bool, version string) {
	if showVersion {
		fmt.Fprintf(os.Stdout, "%s\n", version)
		os.Exit(0)
	}
}

func main() {
	log.SetOutput(os.Stderr)

	metrics.MustRegister()

	appMain()
}
