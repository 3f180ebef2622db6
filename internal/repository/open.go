package repository

import (
	"context"
	"fmt"
)

const (
	DriverMemory = "memory"
	DriverMongo  = "mongo"
)

type Options struct {
	Driver        string
	DSN           string
	MongoURI      string
	MongoDatabase string
	// AppName is reported to mongo; defaults to "storefront".
	AppName string
}

// Open connects the configured backend and prepares its schema.
func Open(ctx context.Context, opts Options) (BlobRepository, error) {
	switch opts.Driver {
	case DriverMemory:
		return NewMemoryRepository(), nil
	case DriverSQLite, DriverPostgres:
		repo, err := NewSQLRepository(opts.Driver, opts.DSN)
		if err != nil {
			return nil, err
		}
		if err := repo.RunMigrations(); err != nil {
			repo.Close()
			return nil, err
		}
		return repo, nil
	case DriverMongo:
		db, err := ConnectMongoDB(ctx, opts)
		if err != nil {
			return nil, err
		}
		return NewMongoRepository(db), nil
	default:
		return nil, fmt.Errorf("%q: %w", opts.Driver, ErrUnsupportedStore)
	}
}
