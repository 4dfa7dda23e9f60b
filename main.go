package main

import (
	"flag"
	"os"
	"runtime"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/iamlucasmagalhaes/correio/config"
	"github.com/iamlucasmagalhaes/correio/exchange"
	"github.com/iamlucasmagalhaes/correio/server"
	"github.com/iamlucasmagalhaes/correio/store"
)

// Functions

// initLogger initializes a JSON gokit-logger set
// to the according log level supplied via cli flag.
func initLogger(loglevel string) log.Logger {

	logger := log.NewJSONLogger(log.NewSyncWriter(os.Stdout))
	logger = log.With(logger,
		"ts", log.DefaultTimestampUTC,
		"caller", log.DefaultCaller,
	)

	switch strings.ToLower(loglevel) {
	case "info":
		logger = level.NewFilter(logger, level.AllowInfo())
	case "warn":
		logger = level.NewFilter(logger, level.AllowWarn())
	case "error":
		logger = level.NewFilter(logger, level.AllowError())
	default:
		logger = level.NewFilter(logger, level.AllowDebug())
	}

	return logger
}

// initStore builds the in-memory credential and mailbox store
// and, if configured, loads pre-provisioned accounts into it.
func initStore(conf *config.Config) (*store.Store, error) {

	st := store.NewStore()

	if conf.Seed.File != "" {
		if err := st.LoadSeed(conf.Seed.File, conf.Seed.Separator); err != nil {
			return nil, err
		}
	}

	return st, nil
}

func main() {

	// Set CPUs usable by correio to all available.
	runtime.GOMAXPROCS(runtime.NumCPU())

	// Parse command-line flag that defines a config path.
	configFlag := flag.String("config", "config.toml", "Provide path to configuration file in TOML syntax.")
	loglevelFlag := flag.String("loglevel", "debug", "This flag sets the default logging level.")
	flag.Parse()

	logger := initLogger(*loglevelFlag)

	// Read configuration from file and overlay
	// host-local environment values.
	conf, err := config.LoadConfig(*configFlag)
	if err != nil {
		level.Error(logger).Log(
			"msg", "failed to load the config",
			"err", err,
		)
		os.Exit(1)
	}
	config.LoadEnv().Apply(conf)

	st, err := initStore(conf)
	if err != nil {
		level.Error(logger).Log(
			"msg", "failed to initialize the store",
			"err", err,
		)
		os.Exit(1)
	}

	metrics := NewCorreioMetrics(conf.Server.PrometheusAddr)

	// Assemble the exchange service with logging and
	// metrics middleware around the core implementation.
	service := exchange.NewService(st)
	service = exchange.NewLoggingService(service, log.With(logger, "component", "exchange"))
	service = exchange.NewMetricsService(service,
		metrics.Exchange.Registrations,
		metrics.Exchange.Logins,
		metrics.Exchange.Logouts,
		metrics.Exchange.Delivered,
		metrics.Exchange.Drained,
	)

	srv, err := server.Init(log.With(logger, "component", "server"), conf.Server.ListenAddr, service)
	if err != nil {
		level.Error(logger).Log(
			"msg", "failed to initialize the exchange server",
			"err", err,
		)
		os.Exit(1)
	}
	defer srv.Close()

	go runPromHTTP(logger, conf.Server.PrometheusAddr)

	// Loop on incoming connections.
	if err := srv.Run(); err != nil {
		level.Error(logger).Log(
			"msg", "exchange server failed",
			"err", err,
		)
		os.Exit(1)
	}
}
