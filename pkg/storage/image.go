package storage

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// SniffLen is how many leading bytes DetectImageType needs
const SniffLen = 512

var allowedExtensions = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
}

// ImageExtension returns the lower-cased extension of filename without the dot,
// and whether it is one of jpg, jpeg, png or gif.
func ImageExtension(filename string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	_, ok := allowedExtensions[ext]
	return ext, ok
}

// DetectImageType sniffs head and returns the detected MIME type and whether it
// is an accepted image format.
func DetectImageType(head []byte) (string, bool) {
	mt := mimetype.Detect(head)
	for _, allowed := range []string{"image/jpeg", "image/png", "image/gif"} {
		if mt.Is(allowed) {
			return allowed, true
		}
	}
	return mt.String(), false
}
