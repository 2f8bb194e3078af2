package platform

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	// DefaultMetadataURL is the project-id endpoint of the Compute Engine
	// metadata server. The link-local IP skips DNS; EC2 serves the same
	// address, so the flavor header is what selects Google's service.
	DefaultMetadataURL = "http://169.254.169.254/computeMetadata/v1/project/project-id"

	// DefaultMetadataTimeout bounds connect and response of one lookup.
	DefaultMetadataTimeout = 100 * time.Millisecond

	metadataFlavorHeader = "Metadata-Flavor"
	metadataFlavor       = "Google"
)

// MetadataClient asks the metadata server for the project ID.
type MetadataClient struct {
	URL        string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     log.Logger
}

// NewMetadataClient creates a MetadataClient with the default URL and timeout.
func NewMetadataClient() *MetadataClient {
	return &MetadataClient{
		URL:        DefaultMetadataURL,
		Timeout:    DefaultMetadataTimeout,
		HTTPClient: &http.Client{Timeout: DefaultMetadataTimeout},
		Logger:     log.NewNopLogger(),
	}
}

// ProjectID returns the Compute Engine project ID if the metadata service
// is available. Any failure is reported as absent; the cause is logged at
// debug level.
func (c *MetadataClient) ProjectID(ctx context.Context) (string, bool) {
	id, err := c.fetchProjectID(ctx)
	if err != nil {
		logger := c.Logger
		if logger == nil {
			logger = log.NewNopLogger()
		}
		level.Debug(logger).Log("msg", "metadata server lookup folded to absent", "code", ErrorCode(err), "err", err)
		return "", false
	}
	return id, true
}

func (c *MetadataClient) fetchProjectID(ctx context.Context) (string, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultMetadataTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := c.URL
	if url == "" {
		url = DefaultMetadataURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", NewPlatformError(ErrMetadataUnreachable, fmt.Sprintf("create request: %v", err), "")
	}
	req.Header.Set(metadataFlavorHeader, metadataFlavor)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		code, ok := MapNetworkError(err)
		if !ok {
			code = ErrMetadataUnreachable
		}
		return "", NewPlatformError(code, fmt.Sprintf("metadata request: %v", err), "")
	}
	if resp == nil {
		return "", NewPlatformError(ErrMetadataUnreachable, "metadata request returned no response", "")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", NewPlatformError(ErrMetadataStatus, fmt.Sprintf("metadata server returned %d", resp.StatusCode), "")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		code, ok := MapNetworkError(err)
		if !ok || code != ErrMetadataTimeout {
			code = ErrMetadataRead
		}
		return "", NewPlatformError(code, fmt.Sprintf("read metadata body: %v", err), "")
	}
	return string(body), nil
}

// ComputeEngineID queries the default metadata server with the default timeout.
func ComputeEngineID(ctx context.Context) (string, bool) {
	return NewMetadataClient().ProjectID(ctx)
}
