package testutil

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/evergreen-ci/teapot"
	"github.com/evergreen-ci/teapot/db"
	"github.com/mongodb/grip"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	// MongoURLEnvVar names the database that integration tests run against.
	// Tests that need a database skip when it is unset.
	MongoURLEnvVar = "TEAPOT_TEST_MONGO_URL"
	TestDatabase   = "teapot_test"
)

// NewDBEnvironment returns an environment connected to the test database,
// using a fresh collection that is dropped when the test finishes. The test
// is skipped when no database is configured or it cannot be reached.
func NewDBEnvironment(t *testing.T) teapot.Environment {
	if skip, _ := strconv.ParseBool(os.Getenv("SKIP_INTEGRATION_TESTS")); skip {
		t.Skip("SKIP_INTEGRATION_TESTS is set, skipping integration test")
	}
	url := os.Getenv(MongoURLEnvVar)
	if url == "" {
		t.Skipf("%s is not set, skipping database test", MongoURLEnvVar)
	}

	settings := &teapot.Settings{
		Database: teapot.DBSettings{
			Url:                url,
			DB:                 TestDatabase,
			Collection:         "teapots_" + primitive.NewObjectID().Hex(),
			ConnectTimeoutSecs: 5,
		},
	}
	require.NoError(t, settings.ValidateAndDefault())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	env, err := teapot.NewEnvironment(ctx, settings)
	if err != nil {
		t.Skipf("test database is unreachable: %s", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		grip.Warning(db.Drop(ctx, TeapotCollection(env)))
		grip.Warning(env.Close(ctx))
	})

	return env
}

// TeapotCollection returns the collection configured for the environment.
func TeapotCollection(env teapot.Environment) *mongo.Collection {
	return env.DB().Collection(env.Settings().Database.Collection)
}
