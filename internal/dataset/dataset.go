// Package dataset resolves the implied Datastore dataset ID from the environment.
package dataset

import (
	"context"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/gcloud-datastore/implicitenv/internal/environ"
	"github.com/gcloud-datastore/implicitenv/internal/platform"
)

// EnvDataset names the dataset explicitly and wins over platform detection.
const EnvDataset = "DATASTORE_DATASET"

// Source tells where a dataset ID came from.
type Source string

const (
	SourceEnv           Source = "env"
	SourceAppEngine     Source = "app_engine"
	SourceComputeEngine Source = "compute_engine"
	SourceExplicit      Source = "explicit"
)

// Info holds the resolved dataset ID and its source.
type Info struct {
	DatasetID string
	Source    Source
}

// Resolve finds the implied dataset ID.
//
// Resolution order:
//  1. DATASTORE_DATASET env var
//  2. App Engine application ID
//  3. Compute Engine project ID (metadata server)
//
// The platform lookups never fail; only the absence of all three is an error.
func Resolve(ctx context.Context, client platform.Client, logger log.Logger) (*Info, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	if id := os.Getenv(EnvDataset); id != "" {
		level.Debug(logger).Log("msg", "dataset from env", "var", EnvDataset, "dataset", id)
		return &Info{DatasetID: id, Source: SourceEnv}, nil
	}

	if client != nil {
		if id, ok := client.AppEngineID(ctx); ok {
			level.Debug(logger).Log("msg", "dataset from App Engine", "dataset", id)
			return &Info{DatasetID: id, Source: SourceAppEngine}, nil
		}
		if id, ok := client.ComputeEngineID(ctx); ok {
			level.Debug(logger).Log("msg", "dataset from metadata server", "dataset", id)
			return &Info{DatasetID: id, Source: SourceComputeEngine}, nil
		}
	}

	return nil, platform.NewPlatformError(
		platform.ErrDatasetNotFound,
		"No dataset ID could be inferred from the environment",
		"Export DATASTORE_DATASET=<project-id> or run on App Engine / Compute Engine",
	)
}

// Apply resolves the dataset ID and stores it in env unless env already has one.
// The returned Info describes the value env holds afterwards.
func Apply(ctx context.Context, env *environ.Environment, client platform.Client, logger log.Logger) (*Info, error) {
	if id, ok := env.DatasetID(); ok {
		return &Info{DatasetID: id, Source: SourceExplicit}, nil
	}

	info, err := Resolve(ctx, client, logger)
	if err != nil {
		return nil, err
	}
	env.SetDatasetID(info.DatasetID)
	return info, nil
}
