package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestStatusForCode_AllCodes(t *testing.T) {
	cases := map[ErrorCode]int{
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
	for code, want := range cases {
		if got := StatusForCode(code); got != want {
			t.Errorf("StatusForCode(%s) = %d, want %d", code, got, want)
		}
	}
}

func TestStatusForCode_Unrecognized(t *testing.T) {
	if got := StatusForCode("NO_SUCH_CODE"); got != http.StatusInternalServerError {
		t.Errorf("expected 500 for unrecognized code, got %d", got)
	}
}

func TestBucketNotFound(t *testing.T) {
	err := BucketNotFound("uploads")
	if err.Code != ErrCodeBucketNotFound {
		t.Errorf("expected BUCKET_NOT_FOUND, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected 404, got %d", err.HTTPStatus)
	}
	if err.Details["bucket"] != "uploads" {
		t.Errorf("expected bucket=uploads, got %v", err.Details["bucket"])
	}
}

func TestFileTooLarge_SharesMissingFileCode(t *testing.T) {
	err := FileTooLarge(20<<20, 10<<20)
	if err.Code != ErrCodeMissingFile {
		t.Errorf("expected MISSING_FILE, got %s", err.Code)
	}
	if err.Details["max_size"] != int64(10<<20) {
		t.Errorf("expected max_size detail, got %v", err.Details["max_size"])
	}
}

func TestMimeTypeNotAllowed_SharesMissingFileCode(t *testing.T) {
	err := MimeTypeNotAllowed("application/png", []string{"image/*"})
	if err.Code != ErrCodeMissingFile {
		t.Errorf("expected MISSING_FILE, got %s", err.Code)
	}
	if !strings.Contains(err.Message, "application/png") {
		t.Errorf("expected rejected type in message, got %q", err.Message)
	}
}

func TestKeysLimitExceeded(t *testing.T) {
	err := KeysLimitExceeded(1001, 1000)
	if err.Code != ErrCodeKeysLimitExceeded {
		t.Errorf("expected KEYS_LIMIT_EXCEEDED, got %s", err.Code)
	}
	if err.Details["count"] != 1001 || err.Details["limit"] != 1000 {
		t.Errorf("expected count/limit details, got %v", err.Details)
	}
}

func TestProviderNotConfigured_Details(t *testing.T) {
	err := ProviderNotConfigured("r2", []string{"azure", "minio"})
	if err.Details["requested_provider"] != "r2" {
		t.Errorf("expected requested_provider=r2, got %v", err.Details["requested_provider"])
	}
	available, ok := err.Details["available_providers"].([]string)
	if !ok || len(available) != 2 || available[0] != "azure" || available[1] != "minio" {
		t.Errorf("expected available_providers [azure minio], got %v", err.Details["available_providers"])
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", err.HTTPStatus)
	}
}

func TestWrap_PassesStorageErrorThrough(t *testing.T) {
	orig := FileNotFound("a.png")
	if got := Wrap(orig); got != orig {
		t.Error("expected Wrap to pass StorageError through unchanged")
	}
}

func TestWrap_WrapsRawErrorAsProviderError(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := Wrap(cause)
	if err.Code != ErrCodeProviderError {
		t.Errorf("expected PROVIDER_ERROR, got %s", err.Code)
	}
	if err.Details["original_error"] != cause.Error() {
		t.Errorf("expected original message in details, got %v", err.Details["original_error"])
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected wrapped error to unwrap to cause")
	}
}

func TestWrap_UnwrapsNestedStorageError(t *testing.T) {
	inner := BucketNotFound("media")
	wrapped := fmt.Errorf("backend: %w", inner)
	se := Wrap(wrapped)
	if se.Code != ErrCodeBucketNotFound {
		t.Errorf("expected BUCKET_NOT_FOUND from nested error, got %s", se.Code)
	}
}

func TestWrap_Nil(t *testing.T) {
	if Wrap(nil) != nil {
		t.Error("expected nil for nil input")
	}
}

func TestToHTTPResponse(t *testing.T) {
	err := MissingRequiredParam("bucket")
	resp := err.ToHTTPResponse()
	if resp.Status != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.Status)
	}
	if resp.Body.Error.Code != ErrCodeMissingRequiredParam {
		t.Errorf("expected MISSING_REQUIRED_PARAM, got %s", resp.Body.Error.Code)
	}
	if resp.Body.Error.Details["param"] != "bucket" {
		t.Errorf("expected param detail, got %v", resp.Body.Error.Details)
	}
}

func TestMapToResponse_Total(t *testing.T) {
	codes := []*StorageError{
		BucketNotFound("b"), FileNotFound("k"), MissingFile(),
		MissingRequiredParam("p"), InvalidSignedURLType("x"), EmptyKeysArray(),
		KeysLimitExceeded(2, 1), ProviderNotConfigured("p", nil),
		UploadFailed(nil), DeleteFailed(nil), SignedURLFailed(nil), ProviderError(nil),
	}
	for _, se := range codes {
		resp := MapToResponse(se)
		if resp.Status != StatusForCode(se.Code) {
			t.Errorf("code %s: status %d, want %d", se.Code, resp.Status, StatusForCode(se.Code))
		}
	}

	// Raw errors become PROVIDER_ERROR.
	resp := MapToResponse(fmt.Errorf("boom"))
	if resp.Body.Error.Code != ErrCodeProviderError {
		t.Errorf("expected PROVIDER_ERROR for raw error, got %s", resp.Body.Error.Code)
	}
	if resp.Status != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", resp.Status)
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("wrap: %w", EmptyKeysArray())
	if !HasCode(err, ErrCodeEmptyKeysArray) {
		t.Error("expected HasCode to match through wrapping")
	}
	if HasCode(err, ErrCodeFileNotFound) {
		t.Error("expected HasCode mismatch for different code")
	}
}
