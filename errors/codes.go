package errors

import "net/http"

// ErrorCode represents a machine-readable storage error code.
type ErrorCode string

// Not-found errors
const (
	// ErrCodeBucketNotFound indicates the target bucket does not exist.
	ErrCodeBucketNotFound ErrorCode = "BUCKET_NOT_FOUND"
	// ErrCodeFileNotFound indicates the target object key does not exist.
	ErrCodeFileNotFound ErrorCode = "FILE_NOT_FOUND"
)

// Caller-input errors
const (
	// ErrCodeMissingFile indicates a missing or rejected upload payload.
	ErrCodeMissingFile ErrorCode = "MISSING_FILE"
	// ErrCodeMissingRequiredParam indicates a required parameter was absent.
	ErrCodeMissingRequiredParam ErrorCode = "MISSING_REQUIRED_PARAM"
	// ErrCodeInvalidSignedURLType indicates a signed-URL type outside upload/download.
	ErrCodeInvalidSignedURLType ErrorCode = "INVALID_SIGNED_URL_TYPE"
	// ErrCodeEmptyKeysArray indicates a bulk delete with zero keys.
	ErrCodeEmptyKeysArray ErrorCode = "EMPTY_KEYS_ARRAY"
	// ErrCodeKeysLimitExceeded indicates a bulk delete above the key limit.
	ErrCodeKeysLimitExceeded ErrorCode = "KEYS_LIMIT_EXCEEDED"
	// ErrCodeProviderNotConfigured indicates a lookup of an unregistered provider.
	ErrCodeProviderNotConfigured ErrorCode = "PROVIDER_NOT_CONFIGURED"
)

// Provider/transport errors
const (
	// ErrCodeUploadFailed indicates the backend failed to store the object.
	ErrCodeUploadFailed ErrorCode = "UPLOAD_FAILED"
	// ErrCodeDeleteFailed indicates the backend failed to delete the object.
	ErrCodeDeleteFailed ErrorCode = "DELETE_FAILED"
	// ErrCodeSignedURLFailed indicates URL signing failed.
	ErrCodeSignedURLFailed ErrorCode = "SIGNED_URL_FAILED"
	// ErrCodeProviderError indicates an unrecognized backend error.
	ErrCodeProviderError ErrorCode = "PROVIDER_ERROR"
)

var statusByCode = map[ErrorCode]int{
	ErrCodeBucketNotFound:        http.StatusNotFound,
	ErrCodeFileNotFound:          http.StatusNotFound,
	ErrCodeMissingFile:           http.StatusBadRequest,
	ErrCodeMissingRequiredParam:  http.StatusBadRequest,
	ErrCodeInvalidSignedURLType:  http.StatusBadRequest,
	ErrCodeEmptyKeysArray:        http.StatusBadRequest,
	ErrCodeKeysLimitExceeded:     http.StatusBadRequest,
	ErrCodeProviderNotConfigured: http.StatusBadRequest,
	ErrCodeUploadFailed:          http.StatusInternalServerError,
	ErrCodeDeleteFailed:          http.StatusInternalServerError,
	ErrCodeSignedURLFailed:       http.StatusInternalServerError,
	ErrCodeProviderError:         http.StatusInternalServerError,
}

// StatusForCode returns the fixed HTTP status for a taxonomy code.
// Unrecognized codes map to 500.
func StatusForCode(code ErrorCode) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
