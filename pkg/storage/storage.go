// Package storage uploads mentor photos to an external asset host and returns
// the public URL of the stored object.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// AssetHost stores an object under key and returns its public URL
type AssetHost interface {
	Name() string
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

// Provider names accepted by NewAssetHost
const (
	ProviderS3         = "s3"
	ProviderCloudinary = "cloudinary"
)

// NewAssetHost builds the asset host named by provider.
// An empty provider returns a nil host and no error.
func NewAssetHost(provider string, s3Cfg S3Config, cldCfg CloudinaryConfig) (AssetHost, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "":
		return nil, nil
	case ProviderS3:
		return NewS3Host(s3Cfg)
	case ProviderCloudinary:
		return NewCloudinaryHost(cldCfg, nil)
	default:
		return nil, fmt.Errorf("unknown asset host %q", provider)
	}
}
