package blob

import (
	"context"
	"fmt"

	appstock "github.com/jhoicas/stock-intake/internal/application/stock"
	"github.com/jhoicas/stock-intake/pkg/config"
)

// New construye el almacenamiento según BLOB_DRIVER.
func New(ctx context.Context, cfg config.BlobConfig) (appstock.BlobStore, error) {
	switch cfg.Driver {
	case config.BlobDriverS3:
		return NewS3Store(ctx, S3Config{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Prefix:    cfg.Prefix,
			PublicURL: cfg.PublicURL,
			PublicACL: cfg.PublicACL,
		})
	case config.BlobDriverLocal:
		return NewLocalStore(cfg.LocalDir, cfg.Prefix, cfg.PublicURL)
	default:
		return nil, fmt.Errorf("blob: driver desconocido %q", cfg.Driver)
	}
}
