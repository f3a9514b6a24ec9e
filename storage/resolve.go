package storage

import (
	"strings"

	"github.com/kbukum/storagekit/errors"
)

// DefaultBucketPlaceholder is the literal bucket value callers pass to mean
// "use the configured default bucket".
const DefaultBucketPlaceholder = "_"

// ResolveBucket applies the default-bucket substitution rule. An explicit
// bucket name always wins over the default; the placeholder substitutes the
// default and fails MISSING_REQUIRED_PARAM when no default is configured.
func ResolveBucket(requested, defaultBucket string) (string, error) {
	if requested == "" {
		return "", errors.MissingRequiredParam("bucket")
	}
	if requested != DefaultBucketPlaceholder {
		return requested, nil
	}
	if defaultBucket == "" {
		return "", errors.MissingRequiredParam("bucket").
			WithDetail("reason", "no default bucket configured")
	}
	return defaultBucket, nil
}

// BuildKey computes an object key from an optional folder and a file name.
// Leading and trailing slashes on the folder are trimmed.
func BuildKey(folder, fileName string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return fileName
	}
	return folder + "/" + fileName
}
