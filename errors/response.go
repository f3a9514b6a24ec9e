package errors

import (
	stderrors "errors"
)

// HTTPResponse is the wire shape HTTP adapters send for a failed operation.
type HTTPResponse struct {
	Status int          `json:"status"`
	Body   ResponseBody `json:"body"`
}

// ResponseBody wraps the error details in the response body.
type ResponseBody struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody contains the error details sent to clients.
type ErrorBody struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ToHTTPResponse converts a StorageError to its wire representation.
func (e *StorageError) ToHTTPResponse() HTTPResponse {
	return HTTPResponse{
		Status: e.HTTPStatus,
		Body: ResponseBody{
			Error: ErrorBody{
				Code:    e.Code,
				Message: e.Message,
				Details: e.Details,
			},
		},
	}
}

// MapToResponse converts any error to an HTTPResponse. Errors outside the
// taxonomy are wrapped as PROVIDER_ERROR first, so the mapping is total.
func MapToResponse(err error) HTTPResponse {
	return Wrap(err).ToHTTPResponse()
}

// IsStorageError checks if an error is a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return stderrors.As(err, &se)
}

// AsStorageError converts an error to a StorageError if possible.
func AsStorageError(err error) (*StorageError, bool) {
	var se *StorageError
	if stderrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// HasCode reports whether err is a StorageError carrying the given code.
func HasCode(err error, code ErrorCode) bool {
	se, ok := AsStorageError(err)
	return ok && se.Code == code
}
