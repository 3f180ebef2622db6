package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectMongoDB_RequiresDatabase(t *testing.T) {
	_, err := ConnectMongoDB(context.Background(), Options{MongoURI: "mongodb://localhost:27017"})
	assert.ErrorIs(t, err, ErrMissingDatabase)

	_, err = Open(context.Background(), Options{Driver: DriverMongo, MongoURI: "mongodb://localhost:27017"})
	assert.ErrorIs(t, err, ErrMissingDatabase)
}

func TestMongoClientOptions(t *testing.T) {
	opts := mongoClientOptions(Options{MongoURI: "mongodb://localhost:27017", MongoDatabase: "db"})
	require.NotNil(t, opts.AppName)
	assert.Equal(t, defaultMongoAppName, *opts.AppName)
	require.NotNil(t, opts.MaxPoolSize)
	assert.Equal(t, uint64(4), *opts.MaxPoolSize)

	opts = mongoClientOptions(Options{MongoURI: "mongodb://localhost:27017", AppName: "shop-eu"})
	assert.Equal(t, "shop-eu", *opts.AppName)
}
