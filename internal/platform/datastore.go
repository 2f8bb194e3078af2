package platform

import (
	"context"
	"fmt"

	"cloud.google.com/go/datastore"
	"google.golang.org/api/option"
)

const userAgent = "implicitenv"

// Connect opens a Datastore client for datasetID. DATASTORE_EMULATOR_HOST
// is honored by the SDK. The client dials lazily, so a nil error does not
// mean the backend is reachable.
func Connect(ctx context.Context, datasetID string, opts ...option.ClientOption) (*datastore.Client, error) {
	if datasetID == "" {
		return nil, NewPlatformError(
			ErrDatasetNotFound,
			"cannot connect without a dataset ID",
			"Set DATASTORE_DATASET or run on App Engine / Compute Engine",
		)
	}

	opts = append([]option.ClientOption{option.WithUserAgent(userAgent)}, opts...)
	client, err := datastore.NewClient(ctx, datasetID, opts...)
	if err != nil {
		return nil, NewPlatformError(
			ErrConnectFailed,
			fmt.Sprintf("open datastore client for %q: %v", datasetID, err),
			"Check application default credentials or DATASTORE_EMULATOR_HOST",
		)
	}
	return client, nil
}
