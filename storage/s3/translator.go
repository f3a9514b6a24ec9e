package s3

import (
	stderrors "errors"
	"strings"

	"github.com/aws/smithy-go"
)

// isBucketNotFound reports whether an SDK error means the bucket is missing.
func isBucketNotFound(err error) bool {
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchBucket" {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "nosuchbucket")
}

// isKeyNotFound reports whether an SDK error means the object is missing.
// HeadObject reports 404s with the generic "NotFound" code.
func isKeyNotFound(err error) bool {
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "nosuchkey") || strings.Contains(errStr, "status code: 404")
}
