package platform

import "context"

// Client runs the two identity lookups.
// Mocked in tests, Detector is the real implementation.
type Client interface {
	// Hosted runtime (App Engine)
	AppEngineID(ctx context.Context) (string, bool)

	// Metadata server (Compute Engine)
	ComputeEngineID(ctx context.Context) (string, bool)
}

var _ Client = (*Detector)(nil)

// Detector combines an AppIdentity with a MetadataClient.
type Detector struct {
	identity AppIdentity
	metadata *MetadataClient
}

// NewDetector creates a Detector. A nil metadata client means the default one.
func NewDetector(identity AppIdentity, metadata *MetadataClient) *Detector {
	if identity == nil {
		identity = unavailableIdentity{}
	}
	if metadata == nil {
		metadata = NewMetadataClient()
	}
	return &Detector{identity: identity, metadata: metadata}
}

func (d *Detector) AppEngineID(ctx context.Context) (string, bool) {
	return AppEngineID(ctx, d.identity)
}

func (d *Detector) ComputeEngineID(ctx context.Context) (string, bool) {
	return d.metadata.ProjectID(ctx)
}
