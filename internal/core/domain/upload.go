package domain

import (
	"path"
	"strings"
)

// UploadTypeProperty is the folder used by listing submissions.
const UploadTypeProperty = "property"

// ImageFile is one raw file received from a client.
type ImageFile struct {
	Filename string
	Data     []byte
}

// UploadFolder returns the storage folder for an upload type under root.
func UploadFolder(root, uploadType string) (string, error) {
	if !IsUploadType(uploadType) {
		return "", ErrUnknownUploadType
	}
	root = strings.Trim(root, "/")
	if root == "" {
		return uploadType, nil
	}
	return path.Join(root, uploadType), nil
}
