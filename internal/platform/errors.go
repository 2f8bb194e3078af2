package platform

import (
	"context"
	"errors"
	"net"
	"strings"
)

// Error codes for implicitenv.
const (
	ErrMetadataTimeout     = "METADATA_TIMEOUT"
	ErrMetadataUnreachable = "METADATA_UNREACHABLE"
	ErrMetadataStatus      = "METADATA_STATUS"
	ErrMetadataRead        = "METADATA_READ"
	ErrDatasetNotFound     = "DATASET_NOT_FOUND"
	ErrConnectFailed       = "CONNECT_FAILED"
	ErrConfigInvalid       = "CONFIG_INVALID"
	ErrInvalidParameter    = "INVALID_PARAMETER"
)

// PlatformError carries an implicitenv error code, message, and suggestion.
type PlatformError struct {
	Code       string
	Message    string
	Suggestion string
}

func (e *PlatformError) Error() string {
	return e.Message
}

// NewPlatformError creates a PlatformError with the given code, message, and suggestion.
func NewPlatformError(code, message, suggestion string) *PlatformError {
	return &PlatformError{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// MapNetworkError classifies a transport error from a metadata lookup.
// Timeouts map to ErrMetadataTimeout, everything else that looks like a
// network failure maps to ErrMetadataUnreachable.
func MapNetworkError(err error) (code string, isNetwork bool) {
	if err == nil {
		return "", false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrMetadataTimeout, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrMetadataTimeout, true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrMetadataUnreachable, true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ErrMetadataUnreachable, true
	}

	msg := err.Error()
	if strings.Contains(msg, "i/o timeout") ||
		strings.Contains(msg, "context deadline exceeded") ||
		strings.Contains(msg, "Client.Timeout exceeded") {
		return ErrMetadataTimeout, true
	}
	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "network is unreachable") ||
		strings.Contains(msg, "EOF") {
		return ErrMetadataUnreachable, true
	}

	return "", false
}

// ErrorCode returns the PlatformError code of err, or "" when err is not one.
func ErrorCode(err error) string {
	var pe *PlatformError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}
