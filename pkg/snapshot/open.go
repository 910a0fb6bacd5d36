package snapshot

import (
	"context"

	"github.com/elishacook/microfun/internal/config"
	"github.com/elishacook/microfun/internal/errors"
)

// Open returns the store selected by cfg.Snapshot.Driver, or nil when the
// driver is "none" or empty. ctx bounds loading the AWS configuration.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Snapshot.Driver {
	case "", config.DriverNone:
		return nil, nil
	case config.DriverBolt:
		store, err := OpenBolt(cfg.SnapshotPath())
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverS3:
		sc := cfg.Snapshot
		client, err := NewS3Client(ctx, sc)
		if err != nil {
			return nil, err
		}
		return NewS3Store(client, sc.Bucket, sc.Prefix), nil
	default:
		return nil, errors.New("E122").WithDetail("Unknown snapshot driver " + cfg.Snapshot.Driver + ".")
	}
}
