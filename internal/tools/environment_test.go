// Tests for: environment.go — environment_* MCP tool handlers.
// NOT parallel where DATASTORE_DATASET is set via t.Setenv.

package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gcloud-datastore/implicitenv/internal/environ"
	"github.com/gcloud-datastore/implicitenv/internal/platform"
)

func newTestServer(client platform.Client, env *environ.Environment) *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "0.1"}, nil)
	RegisterEnvironment(srv, client, env, nil)
	return srv
}

type fakeConn struct{}

func (fakeConn) Close() error { return nil }

func TestDetect(t *testing.T) {
	tests := []struct {
		name       string
		envDataset string
		mock       *platform.Mock
		want       DetectResult
	}{
		{
			name: "nothing detected",
			mock: platform.NewMock(),
			want: DetectResult{},
		},
		{
			name: "compute engine only",
			mock: platform.NewMock().WithComputeEngineID("my-project-123"),
			want: DetectResult{ComputeEngineID: "my-project-123", DatasetID: "my-project-123", Source: "compute_engine"},
		},
		{
			name: "app engine preferred",
			mock: platform.NewMock().WithAppEngineID("gae").WithComputeEngineID("gce"),
			want: DetectResult{AppEngineID: "gae", ComputeEngineID: "gce", DatasetID: "gae", Source: "app_engine"},
		},
		{
			name:       "env var preferred",
			envDataset: "env-project",
			mock:       platform.NewMock().WithComputeEngineID("gce"),
			want:       DetectResult{ComputeEngineID: "gce", DatasetID: "env-project", Source: "env"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATASTORE_DATASET", tt.envDataset)

			got := Detect(context.Background(), tt.mock, nil)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Detect() mismatch (-want +got):\n%s", diff)
			}
			if n := tt.mock.Calls("ComputeEngineID"); n != 1 {
				t.Errorf("ComputeEngineID calls = %d, want exactly 1", n)
			}
		})
	}
}

func TestDetectTool(t *testing.T) {
	t.Setenv("DATASTORE_DATASET", "")

	srv := newTestServer(platform.NewMock().WithComputeEngineID("my-project-123"), environ.New())
	result := callTool(t, srv, "environment_detect", nil)

	if result.IsError {
		t.Fatalf("unexpected IsError: %s", getTextContent(t, result))
	}
	var got DetectResult
	if err := json.Unmarshal([]byte(getTextContent(t, result)), &got); err != nil {
		t.Fatalf("parse result: %v", err)
	}
	if got.DatasetID != "my-project-123" || got.Source != "compute_engine" {
		t.Errorf("result = %+v", got)
	}
}

func TestShowTool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(env *environ.Environment)
		want  ShowResult
	}{
		{
			name:  "fresh environment",
			setup: func(*environ.Environment) {},
			want:  ShowResult{},
		},
		{
			name: "dataset and connection",
			setup: func(env *environ.Environment) {
				env.SetDatasetID("p1")
				env.SetConnection(fakeConn{})
			},
			want: ShowResult{DatasetID: "p1", HasDataset: true, HasConnection: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := environ.New()
			tt.setup(env)

			result := callTool(t, newTestServer(platform.NewMock(), env), "environment_show", nil)
			var got ShowResult
			if err := json.Unmarshal([]byte(getTextContent(t, result)), &got); err != nil {
				t.Fatalf("parse result: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("show mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSetDatasetTool(t *testing.T) {
	t.Parallel()
	env := environ.New()
	env.SetDatasetID("old")
	srv := newTestServer(platform.NewMock(), env)

	result := callTool(t, srv, "environment_set_dataset", map[string]any{"datasetId": " new-project "})
	if result.IsError {
		t.Fatalf("unexpected IsError: %s", getTextContent(t, result))
	}
	if got, ok := env.DatasetID(); !ok || got != "new-project" {
		t.Errorf("DatasetID = (%q, %v), want (new-project, true)", got, ok)
	}
}

func TestSetDatasetTool_Blank(t *testing.T) {
	t.Parallel()
	env := environ.New()
	srv := newTestServer(platform.NewMock(), env)

	result := callTool(t, srv, "environment_set_dataset", map[string]any{"datasetId": "   "})
	if !result.IsError {
		t.Error("expected IsError for blank datasetId")
	}
	if _, ok := env.DatasetID(); ok {
		t.Error("dataset slot should stay absent")
	}
}

func TestSetDatasetTool_Missing(t *testing.T) {
	t.Parallel()
	srv := newTestServer(platform.NewMock(), environ.New())

	err := callToolMayError(t, srv, "environment_set_dataset", map[string]any{})
	if err == nil {
		t.Error("expected error for missing datasetId")
	}
}
