package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const datasetResourceURI = "implicitenv://dataset"

func (s *Server) registerResources() {
	s.server.AddResource(
		&mcp.Resource{
			URI:         datasetResourceURI,
			Name:        "implicitenv-dataset",
			Description: "Current implied Datastore dataset ID. Empty when no dataset is set.",
			MIMEType:    "text/plain",
		},
		func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
			if req.Params.URI != datasetResourceURI {
				return nil, mcp.ResourceNotFoundError(req.Params.URI)
			}
			id, _ := s.env.DatasetID()
			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{{
					URI:      datasetResourceURI,
					MIMEType: "text/plain",
					Text:     id,
				}},
			}, nil
		},
	)
}
