package db

import (
	"context"
	"fmt"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const idKey = "_id"

// ByID returns a filter matching the document with the given id. Ids that
// parse as ObjectIDs match the generated key, anything else is matched as a
// literal string and so only finds documents stored with string ids.
func ByID(id string) bson.D {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.D{{Key: idKey, Value: oid}}
	}
	return bson.D{{Key: idKey, Value: id}}
}

// KeyString renders a database-generated key as the opaque string handed
// to clients.
func KeyString(key any) string {
	switch k := key.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return k.Hex()
	case string:
		return k
	default:
		return fmt.Sprint(k)
	}
}

// RenderRaw renders a raw payload for error messages, falling back to hex
// when the bytes are not a valid document.
func RenderRaw(raw bson.Raw) string {
	if err := raw.Validate(); err != nil {
		return fmt.Sprintf("invalid document %x", []byte(raw))
	}
	return raw.String()
}

// Insert inserts the item into the collection. Server-side write failures
// are reported through the WriteStatus; the returned error is reserved for
// failures to send the query or receive its response.
func Insert(ctx context.Context, coll *mongo.Collection, item any) (Result[WriteStatus], error) {
	ctx, span := startSpan(ctx, "Insert", coll)
	defer span.End()

	if _, err := transformDocument(item); err != nil {
		return Result[WriteStatus]{}, errors.Wrap(err, "sending query")
	}

	res, err := coll.InsertOne(ctx, item)
	if err != nil {
		if status, ok := writeStatusFromError(err); ok {
			grip.Warning(message.WrapError(err, message.Fields{
				"message":            "insert reported write errors",
				"collection":         coll.Name(),
				"duplicate_key":      IsDuplicateKey(err),
				"document_too_large": IsDocumentLimit(err),
			}))
			return ExpectedResult(status), nil
		}
		return Result[WriteStatus]{}, errors.Wrap(err, "receiving query")
	}
	if res == nil {
		return finish(span, EmptyResult[WriteStatus]()), nil
	}

	status := WriteStatus{Inserted: 1}
	if key := KeyString(res.InsertedID); key != "" {
		status.GeneratedKeys = []string{key}
	}

	return finish(span, ExpectedResult(status)), nil
}

// FindOneID looks up the document with the given id. A missing document
// is the Empty result rather than an error.
func FindOneID(ctx context.Context, coll *mongo.Collection, id string) (Result[bson.Raw], error) {
	ctx, span := startSpan(ctx, "FindOneID", coll, attribute.String(idAttribute, id))
	defer span.End()

	res := coll.FindOne(ctx, ByID(id))
	if err := res.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return finish(span, EmptyResult[bson.Raw]()), nil
		}
		return Result[bson.Raw]{}, errors.Wrap(err, "receiving query")
	}

	raw, err := res.Raw()
	if err != nil {
		return Result[bson.Raw]{}, errors.Wrap(err, "receiving query")
	}

	return finish(span, ExpectedResult(raw)), nil
}

// FindAll scans every document in the collection in natural order.
func FindAll(ctx context.Context, coll *mongo.Collection) ([]bson.Raw, error) {
	ctx, span := startSpan(ctx, "FindAll", coll)
	defer span.End()

	cur, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(err, "sending query")
	}

	docs := []bson.Raw{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "receiving query")
	}
	span.SetAttributes(attribute.Int("teapot.db.num_docs", len(docs)))

	return docs, nil
}

// UpdateID sets the given fields on the document with the given id. An
// empty set of fields is a no-op that only reports whether the document
// exists.
func UpdateID(ctx context.Context, coll *mongo.Collection, id string, set bson.M) (Result[WriteStatus], error) {
	ctx, span := startSpan(ctx, "UpdateID", coll, attribute.String(idAttribute, id))
	defer span.End()

	if len(set) == 0 {
		count, err := coll.CountDocuments(ctx, ByID(id), options.Count().SetLimit(1))
		if err != nil {
			return Result[WriteStatus]{}, errors.Wrap(err, "receiving query")
		}
		if count == 0 {
			return finish(span, ExpectedResult(WriteStatus{Skipped: 1})), nil
		}
		return finish(span, ExpectedResult(WriteStatus{Unchanged: 1})), nil
	}

	update := bson.M{"$set": set}
	if _, err := transformDocument(update); err != nil {
		return Result[WriteStatus]{}, errors.Wrap(err, "sending query")
	}

	res, err := coll.UpdateOne(ctx, ByID(id), update)
	if err != nil {
		if status, ok := writeStatusFromError(err); ok {
			return ExpectedResult(status), nil
		}
		return Result[WriteStatus]{}, errors.Wrap(err, "receiving query")
	}
	if res == nil {
		return finish(span, EmptyResult[WriteStatus]()), nil
	}

	var status WriteStatus
	switch {
	case res.MatchedCount == 0:
		status.Skipped = 1
	case res.ModifiedCount > 0:
		status.Replaced = int(res.ModifiedCount)
	default:
		status.Unchanged = int(res.MatchedCount)
	}

	return finish(span, ExpectedResult(status)), nil
}

// DeleteID removes the document with the given id.
func DeleteID(ctx context.Context, coll *mongo.Collection, id string) (Result[WriteStatus], error) {
	ctx, span := startSpan(ctx, "DeleteID", coll, attribute.String(idAttribute, id))
	defer span.End()

	res, err := coll.DeleteOne(ctx, ByID(id))
	if err != nil {
		if status, ok := writeStatusFromError(err); ok {
			return ExpectedResult(status), nil
		}
		return Result[WriteStatus]{}, errors.Wrap(err, "receiving query")
	}
	if res == nil {
		return finish(span, EmptyResult[WriteStatus]()), nil
	}

	if res.DeletedCount == 0 {
		return finish(span, ExpectedResult(WriteStatus{Skipped: 1})), nil
	}
	return finish(span, ExpectedResult(WriteStatus{Deleted: int(res.DeletedCount)})), nil
}

func startSpan(ctx context.Context, name string, coll *mongo.Collection, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String(collectionAttribute, coll.Name()))
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func finish[T any](span trace.Span, res Result[T]) Result[T] {
	span.SetAttributes(attribute.String(kindAttribute, res.Kind.String()))
	return res
}

func transformDocument(val any) (bson.Raw, error) {
	if val == nil {
		return nil, errors.WithStack(mongo.ErrNilDocument)
	}

	b, err := bson.Marshal(val)
	if err != nil {
		return nil, mongo.MarshalError{Value: val, Err: err}
	}

	return bson.Raw(b), nil
}

// =============================================
// ============ Test only functions ============
// =============================================

// Clear removes all documents from the collection.
func Clear(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.DeleteMany(ctx, bson.D{})
	return errors.Wrapf(err, "clearing collection '%s'", coll.Name())
}

// Drop drops the collection.
func Drop(ctx context.Context, coll *mongo.Collection) error {
	return errors.Wrapf(coll.Drop(ctx), "dropping collection '%s'", coll.Name())
}
