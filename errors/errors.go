package errors

import (
	"fmt"
	"strings"
)

// StorageError is the unified error type for all storage operations.
type StorageError struct {
	// Code is a machine-readable error code from the closed taxonomy.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// HTTPStatus is the fixed HTTP status for this error's code.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *StorageError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *StorageError) WithCause(cause error) *StorageError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *StorageError) WithDetails(details map[string]any) *StorageError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *StorageError) WithDetail(key string, value any) *StorageError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a StorageError with the status fixed by the code.
func New(code ErrorCode, message string) *StorageError {
	return &StorageError{
		Code:       code,
		Message:    message,
		HTTPStatus: StatusForCode(code),
	}
}

// --- Constructors, one per taxonomy code ---

// BucketNotFound creates a StorageError for a missing bucket.
func BucketNotFound(bucket string) *StorageError {
	return &StorageError{
		Code: ErrCodeBucketNotFound, Message: fmt.Sprintf("Bucket %q does not exist.", bucket),
		HTTPStatus: StatusForCode(ErrCodeBucketNotFound),
		Details:    map[string]any{"bucket": bucket},
	}
}

// FileNotFound creates a StorageError for a missing object key.
func FileNotFound(key string) *StorageError {
	return &StorageError{
		Code: ErrCodeFileNotFound, Message: fmt.Sprintf("File %q does not exist.", key),
		HTTPStatus: StatusForCode(ErrCodeFileNotFound),
		Details:    map[string]any{"key": key},
	}
}

// MissingFile creates a StorageError for an absent upload payload.
func MissingFile() *StorageError {
	return &StorageError{
		Code: ErrCodeMissingFile, Message: "No file was provided for upload.",
		HTTPStatus: StatusForCode(ErrCodeMissingFile),
	}
}

// FileTooLarge creates a StorageError for an upload above the size limit.
// The code is MISSING_FILE: upload rejections share one code.
func FileTooLarge(size, maxSize int64) *StorageError {
	return &StorageError{
		Code: ErrCodeMissingFile, Message: fmt.Sprintf("File size %d exceeds the maximum of %d bytes.", size, maxSize),
		HTTPStatus: StatusForCode(ErrCodeMissingFile),
		Details:    map[string]any{"size": size, "max_size": maxSize},
	}
}

// MimeTypeNotAllowed creates a StorageError for a MIME type outside the
// allow-list. The code is MISSING_FILE: upload rejections share one code.
func MimeTypeNotAllowed(mimeType string, allowed []string) *StorageError {
	return &StorageError{
		Code: ErrCodeMissingFile, Message: fmt.Sprintf("File type %q is not allowed. Allowed types: %s.", mimeType, strings.Join(allowed, ", ")),
		HTTPStatus: StatusForCode(ErrCodeMissingFile),
		Details:    map[string]any{"mime_type": mimeType, "allowed_types": allowed},
	}
}

// MissingRequiredParam creates a StorageError for an absent required parameter.
func MissingRequiredParam(param string) *StorageError {
	return &StorageError{
		Code: ErrCodeMissingRequiredParam, Message: fmt.Sprintf("Missing required parameter: %s.", param),
		HTTPStatus: StatusForCode(ErrCodeMissingRequiredParam),
		Details:    map[string]any{"param": param},
	}
}

// InvalidSignedURLType creates a StorageError for a signed-URL type outside
// "upload" and "download".
func InvalidSignedURLType(urlType string) *StorageError {
	return &StorageError{
		Code: ErrCodeInvalidSignedURLType, Message: fmt.Sprintf("Signed URL type must be \"upload\" or \"download\", got %q.", urlType),
		HTTPStatus: StatusForCode(ErrCodeInvalidSignedURLType),
		Details:    map[string]any{"type": urlType},
	}
}

// EmptyKeysArray creates a StorageError for a bulk delete with zero keys.
func EmptyKeysArray() *StorageError {
	return &StorageError{
		Code: ErrCodeEmptyKeysArray, Message: "At least one key is required for bulk delete.",
		HTTPStatus: StatusForCode(ErrCodeEmptyKeysArray),
	}
}

// KeysLimitExceeded creates a StorageError for a bulk delete above the key limit.
func KeysLimitExceeded(count, limit int) *StorageError {
	return &StorageError{
		Code: ErrCodeKeysLimitExceeded, Message: fmt.Sprintf("Bulk delete accepts at most %d keys, got %d.", limit, count),
		HTTPStatus: StatusForCode(ErrCodeKeysLimitExceeded),
		Details:    map[string]any{"count": count, "limit": limit},
	}
}

// ProviderNotConfigured creates a StorageError for a lookup of an
// unregistered provider name.
func ProviderNotConfigured(requested string, available []string) *StorageError {
	return &StorageError{
		Code: ErrCodeProviderNotConfigured, Message: fmt.Sprintf("Provider %q is not configured.", requested),
		HTTPStatus: StatusForCode(ErrCodeProviderNotConfigured),
		Details: map[string]any{
			"requested_provider":  requested,
			"available_providers": available,
		},
	}
}

// UploadFailed creates a StorageError for a backend upload failure.
func UploadFailed(cause error) *StorageError {
	return &StorageError{
		Code: ErrCodeUploadFailed, Message: "The storage provider failed to store the file.",
		HTTPStatus: StatusForCode(ErrCodeUploadFailed), Cause: cause,
	}
}

// DeleteFailed creates a StorageError for a backend delete failure.
func DeleteFailed(cause error) *StorageError {
	return &StorageError{
		Code: ErrCodeDeleteFailed, Message: "The storage provider failed to delete the file.",
		HTTPStatus: StatusForCode(ErrCodeDeleteFailed), Cause: cause,
	}
}

// SignedURLFailed creates a StorageError for a URL signing failure.
func SignedURLFailed(cause error) *StorageError {
	return &StorageError{
		Code: ErrCodeSignedURLFailed, Message: "The storage provider failed to generate a signed URL.",
		HTTPStatus: StatusForCode(ErrCodeSignedURLFailed), Cause: cause,
	}
}

// ProviderError creates a StorageError for an unrecognized backend error.
// The original message is preserved in details.
func ProviderError(cause error) *StorageError {
	e := &StorageError{
		Code: ErrCodeProviderError, Message: "The storage provider returned an unexpected error.",
		HTTPStatus: StatusForCode(ErrCodeProviderError), Cause: cause,
	}
	if cause != nil {
		e.Details = map[string]any{"original_error": cause.Error()}
	}
	return e
}

// Wrap returns err as a *StorageError. Errors already typed as StorageError
// pass through unchanged; anything else becomes PROVIDER_ERROR with the
// original message preserved in details.
func Wrap(err error) *StorageError {
	if err == nil {
		return nil
	}
	if se, ok := AsStorageError(err); ok {
		return se
	}
	return ProviderError(err)
}
