package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

func setupMongo(t *testing.T) BlobRepository {
	if testing.Short() {
		t.Skip("skipping mongo container test in short mode")
	}
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	repo, err := Open(ctx, Options{Driver: DriverMongo, MongoURI: uri, MongoDatabase: "testdb"})
	require.NoError(t, err)
	return repo
}

func TestMongoRepository_SaveLoadOverwrite(t *testing.T) {
	repo := setupMongo(t)
	defer repo.Close()
	ctx := context.Background()

	_, err := repo.Load(ctx, "storefront:products")
	assert.ErrorIs(t, err, ErrBlobNotFound)

	require.NoError(t, repo.Save(ctx, "storefront:products", []byte(`[{"id":1,"stock":3}]`)))
	require.NoError(t, repo.Save(ctx, "storefront:products", []byte(`[{"id":1,"stock":2}]`)))

	data, err := repo.Load(ctx, "storefront:products")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"stock":2}]`, string(data))
}
