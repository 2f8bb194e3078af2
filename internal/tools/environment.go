package tools

import (
	"context"
	"strings"

	"github.com/go-kit/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gcloud-datastore/implicitenv/internal/dataset"
	"github.com/gcloud-datastore/implicitenv/internal/environ"
	"github.com/gcloud-datastore/implicitenv/internal/platform"
)

// DetectInput is the input type for environment_detect (no parameters).
type DetectInput struct{}

// DetectResult is the output of environment_detect.
type DetectResult struct {
	AppEngineID     string `json:"appEngineId,omitempty"`
	ComputeEngineID string `json:"computeEngineId,omitempty"`
	DatasetID       string `json:"datasetId,omitempty"`
	Source          string `json:"source,omitempty"`
}

// ShowInput is the input type for environment_show (no parameters).
type ShowInput struct{}

// ShowResult is the output of environment_show.
type ShowResult struct {
	DatasetID     string `json:"datasetId,omitempty"`
	HasDataset    bool   `json:"hasDataset"`
	HasConnection bool   `json:"hasConnection"`
}

// SetDatasetInput is the input type for environment_set_dataset.
type SetDatasetInput struct {
	DatasetID string `json:"datasetId" jsonschema:"Dataset (project) ID to use as the implied dataset."`
}

// Detect runs both lookups once and resolves the dataset from that snapshot.
func Detect(ctx context.Context, client platform.Client, logger log.Logger) DetectResult {
	var snap snapshot
	snap.appEngineID, snap.hasAppEngine = client.AppEngineID(ctx)
	snap.computeEngineID, snap.hasComputeEngine = client.ComputeEngineID(ctx)

	result := DetectResult{AppEngineID: snap.appEngineID, ComputeEngineID: snap.computeEngineID}
	if info, err := dataset.Resolve(ctx, snap, logger); err == nil {
		result.DatasetID = info.DatasetID
		result.Source = string(info.Source)
	}
	return result
}

// snapshot replays lookup results captured by Detect.
type snapshot struct {
	appEngineID      string
	hasAppEngine     bool
	computeEngineID  string
	hasComputeEngine bool
}

func (s snapshot) AppEngineID(context.Context) (string, bool) {
	return s.appEngineID, s.hasAppEngine
}

func (s snapshot) ComputeEngineID(context.Context) (string, bool) {
	return s.computeEngineID, s.hasComputeEngine
}

// RegisterEnvironment registers the environment_* tools.
func RegisterEnvironment(srv *mcp.Server, client platform.Client, env *environ.Environment, logger log.Logger) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "environment_detect",
		Description: "Detect the implied Datastore dataset ID: DATASTORE_DATASET, then App Engine app ID, then Compute Engine metadata server project ID. Missing values are omitted.",
		Annotations: &mcp.ToolAnnotations{
			Title:          "Detect ambient identity",
			ReadOnlyHint:   true,
			IdempotentHint: true,
			OpenWorldHint:  boolPtr(true),
		},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ DetectInput) (*mcp.CallToolResult, any, error) {
		return jsonResult(Detect(ctx, client, logger)), nil, nil
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "environment_show",
		Description: "Show the implied dataset ID and whether a Datastore connection is configured.",
		Annotations: &mcp.ToolAnnotations{
			Title:          "Show implied environment",
			ReadOnlyHint:   true,
			IdempotentHint: true,
			OpenWorldHint:  boolPtr(false),
		},
	}, func(_ context.Context, _ *mcp.CallToolRequest, _ ShowInput) (*mcp.CallToolResult, any, error) {
		id, hasDataset := env.DatasetID()
		_, hasConn := env.Connection()
		return jsonResult(ShowResult{DatasetID: id, HasDataset: hasDataset, HasConnection: hasConn}), nil, nil
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "environment_set_dataset",
		Description: "Set the implied dataset ID explicitly. Replaces any detected value.",
		Annotations: &mcp.ToolAnnotations{
			Title:          "Set implied dataset",
			IdempotentHint: true,
			OpenWorldHint:  boolPtr(false),
		},
	}, func(_ context.Context, _ *mcp.CallToolRequest, input SetDatasetInput) (*mcp.CallToolResult, any, error) {
		id := strings.TrimSpace(input.DatasetID)
		if id == "" {
			return convertError(platform.NewPlatformError(
				platform.ErrInvalidParameter, "datasetId is required",
				"Pass the project ID, e.g. my-project-123")), nil, nil
		}
		env.SetDatasetID(id)
		_, hasConn := env.Connection()
		return jsonResult(ShowResult{DatasetID: id, HasDataset: true, HasConnection: hasConn}), nil, nil
	})
}
