package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultMongoAppName = "storefront"

var ErrMissingDatabase = errors.New("mongo database name is required")

// mongoClientOptions builds the client settings for the state store. State
// writes are tiny and serialized, so the pool stays small.
func mongoClientOptions(opts Options) *options.ClientOptions {
	appName := opts.AppName
	if appName == "" {
		appName = defaultMongoAppName
	}
	return options.Client().
		ApplyURI(opts.MongoURI).
		SetAppName(appName).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(4)
}

// ConnectMongoDB opens the database holding the state blobs. The client is
// disconnected again when the server cannot be reached.
func ConnectMongoDB(ctx context.Context, opts Options) (*mongo.Database, error) {
	if opts.MongoDatabase == "" {
		return nil, ErrMissingDatabase
	}

	client, err := mongo.Connect(ctx, mongoClientOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo %s: %w", opts.MongoDatabase, err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("ping mongo %s: %w", opts.MongoDatabase, err)
	}

	return client.Database(opts.MongoDatabase), nil
}
