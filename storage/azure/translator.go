package azure

import (
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// isContainerNotFound reports whether an SDK error means the container is missing.
func isContainerNotFound(err error) bool {
	if bloberror.HasCode(err, bloberror.ContainerNotFound) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "containernotfound")
}

// isBlobNotFound reports whether an SDK error means the blob is missing.
func isBlobNotFound(err error) bool {
	if bloberror.HasCode(err, bloberror.BlobNotFound) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "blobnotfound")
}
