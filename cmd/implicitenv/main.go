package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/gcloud-datastore/implicitenv/internal/config"
	"github.com/gcloud-datastore/implicitenv/internal/dataset"
	"github.com/gcloud-datastore/implicitenv/internal/environ"
	"github.com/gcloud-datastore/implicitenv/internal/logging"
	"github.com/gcloud-datastore/implicitenv/internal/platform"
	"github.com/gcloud-datastore/implicitenv/internal/runtime"
	"github.com/gcloud-datastore/implicitenv/internal/server"
	"github.com/gcloud-datastore/implicitenv/internal/tools"
)

func main() {
	// Subcommand dispatch.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			printVersion()
			return
		case "detect":
			if err := runDetect(); err != nil {
				fmt.Fprintf(os.Stderr, "detect: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	// MCP server mode.
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Fprintf(os.Stdout, "implicitenv %s (%s, %s)\n", server.Version, server.Commit, server.Built)
}

// setup loads config, builds the logger and the platform client.
func setup() (config.Config, kitlog.Logger, runtime.Info, *platform.Detector, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, runtime.Info{}, nil, fmt.Errorf("config: %w", err)
	}

	logger, err := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, runtime.Info{}, nil, fmt.Errorf("logger: %w", err)
	}

	// App Engine binding is selected here, once.
	rtInfo := runtime.Detect()
	md := cfg.MetadataClient()
	md.Logger = logger
	client := platform.NewDetector(platform.NewAppIdentity(rtInfo.OnAppEngine, logger), md)

	return cfg, logger, rtInfo, client, nil
}

func runDetect() error {
	_, logger, _, client, err := setup()
	if err != nil {
		return err
	}

	result := tools.Detect(context.Background(), client, logger)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func run() error {
	cfg, logger, rtInfo, client, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Only the config file sets an explicit dataset; DATASTORE_DATASET is
	// picked up by dataset.Apply.
	env := environ.New()
	if cfg.DatasetID != "" {
		env.SetDatasetID(cfg.DatasetID)
	}

	// Detection failure is not fatal; the dataset can be set later via tools.
	info, err := dataset.Apply(ctx, env, client, logger)
	if err != nil {
		level.Warn(logger).Log("msg", "no implied dataset", "code", platform.ErrorCode(err), "err", err)
	} else {
		level.Info(logger).Log("msg", "implied dataset", "dataset", info.DatasetID, "source", info.Source)
	}

	if cfg.Connect && info != nil {
		conn, err := platform.Connect(ctx, info.DatasetID)
		if err != nil {
			level.Warn(logger).Log("msg", "datastore connection unavailable", "err", err)
		} else {
			env.SetConnection(conn)
		}
	}
	defer func() {
		if err := env.Close(); err != nil {
			level.Warn(logger).Log("msg", "close datastore connection", "err", err)
		}
	}()

	environ.SetDefault(env)

	srv := server.New(client, env, rtInfo, logger)
	level.Info(logger).Log("msg", "serving MCP on stdio", "version", server.Version, "app_engine", rtInfo.OnAppEngine)

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server: %w", err)
	}

	return nil
}
