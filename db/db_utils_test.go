package db

import (
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestByID(t *testing.T) {
	oid := primitive.NewObjectID()

	filter := ByID(oid.Hex())
	require.Len(t, filter, 1)
	assert.Equal(t, "_id", filter[0].Key)
	assert.Equal(t, oid, filter[0].Value)

	filter = ByID("not-an-object-id")
	require.Len(t, filter, 1)
	assert.Equal(t, "not-an-object-id", filter[0].Value)
}

func TestKeyString(t *testing.T) {
	oid := primitive.NewObjectID()

	assert.Equal(t, oid.Hex(), KeyString(oid))
	assert.Equal(t, "abc", KeyString("abc"))
	assert.Equal(t, "42", KeyString(42))
	assert.Empty(t, KeyString(nil))
}

func TestRenderRaw(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"name": "stout"})
	require.NoError(t, err)
	assert.Contains(t, RenderRaw(raw), `"name"`)
	assert.Contains(t, RenderRaw(raw), `"stout"`)

	assert.Contains(t, RenderRaw(bson.Raw{0x01, 0x02}), "invalid document")
}

func TestWriteStatusFromError(t *testing.T) {
	t.Run("WriteErrors", func(t *testing.T) {
		err := mongo.WriteException{
			WriteErrors: mongo.WriteErrors{
				{Index: 0, Code: 11000, Message: "E11000 duplicate key error"},
				{Index: 1, Code: 2, Message: "second"},
			},
		}
		status, ok := writeStatusFromError(pkgerrors.Wrap(err, "inserting"))
		require.True(t, ok)
		assert.Equal(t, 2, status.Errors)
		assert.Equal(t, "E11000 duplicate key error", status.FirstError)
		assert.False(t, status.Matched())
	})
	t.Run("WriteConcernError", func(t *testing.T) {
		err := mongo.WriteException{
			WriteConcernError: &mongo.WriteConcernError{Code: 64, Message: "waiting for replication timed out"},
		}
		status, ok := writeStatusFromError(err)
		require.True(t, ok)
		assert.Equal(t, 1, status.Errors)
		assert.Equal(t, "waiting for replication timed out", status.FirstError)
	})
	t.Run("EmptyException", func(t *testing.T) {
		status, ok := writeStatusFromError(mongo.WriteException{})
		require.True(t, ok)
		assert.Equal(t, 1, status.Errors)
	})
	t.Run("OtherError", func(t *testing.T) {
		_, ok := writeStatusFromError(errors.New("connection reset"))
		assert.False(t, ok)
	})
}

func TestIsDuplicateKey(t *testing.T) {
	assert.False(t, IsDuplicateKey(nil))
	assert.False(t, IsDuplicateKey(errors.New("connection reset")))
	assert.True(t, IsDuplicateKey(pkgerrors.Wrap(errors.New("E11000 duplicate key error collection"), "inserting")))
	assert.True(t, IsDuplicateKey(mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000"}},
	}))
}

func TestIsDocumentLimit(t *testing.T) {
	assert.False(t, IsDocumentLimit(nil))
	assert.False(t, IsDocumentLimit(errors.New("E11000 duplicate key")))
	assert.True(t, IsDocumentLimit(pkgerrors.Wrap(errors.New("an inserted document is too large"), "inserting")))
}

func TestTransformDocument(t *testing.T) {
	_, err := transformDocument(nil)
	assert.Error(t, err)

	_, err = transformDocument(make(chan int))
	assert.Error(t, err)

	raw, err := transformDocument(bson.M{"$set": bson.M{"capacity": 42}})
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
}
