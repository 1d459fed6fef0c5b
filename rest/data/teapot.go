package data

import (
	"context"

	"github.com/evergreen-ci/teapot"
	"github.com/evergreen-ci/teapot/db"
	"github.com/evergreen-ci/teapot/model"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DBConnector is the Connector backed by the configured teapot collection.
type DBConnector struct {
	env teapot.Environment
}

// NewDBConnector returns a Connector sharing the environment's pooled
// database client.
func NewDBConnector(env teapot.Environment) *DBConnector {
	return &DBConnector{env: env}
}

func (dc *DBConnector) collection() *mongo.Collection {
	return dc.env.DB().Collection(dc.env.Settings().Database.Collection)
}

func (dc *DBConnector) CreateTeapot(ctx context.Context, t model.Teapot) (db.Result[db.WriteStatus], error) {
	ctx, span := tracer.Start(ctx, "CreateTeapot")
	defer span.End()

	return model.InsertTeapot(ctx, dc.collection(), t)
}

func (dc *DBConnector) FindTeapotById(ctx context.Context, id string) (db.Result[model.Teapot], error) {
	ctx, span := tracer.Start(ctx, "FindTeapotById", trace.WithAttributes(attribute.String("teapot.id", id)))
	defer span.End()

	return model.FindOneTeapotId(ctx, dc.collection(), id)
}

func (dc *DBConnector) FindAllTeapots(ctx context.Context) ([]db.Result[model.Teapot], error) {
	ctx, span := tracer.Start(ctx, "FindAllTeapots")
	defer span.End()

	return model.FindAllTeapots(ctx, dc.collection())
}

func (dc *DBConnector) UpdateTeapot(ctx context.Context, id string, patch model.TeapotPatch) (db.Result[db.WriteStatus], error) {
	ctx, span := tracer.Start(ctx, "UpdateTeapot", trace.WithAttributes(attribute.String("teapot.id", id)))
	defer span.End()

	return model.UpdateTeapot(ctx, dc.collection(), id, patch)
}

func (dc *DBConnector) DeleteTeapot(ctx context.Context, id string) (db.Result[db.WriteStatus], error) {
	ctx, span := tracer.Start(ctx, "DeleteTeapot", trace.WithAttributes(attribute.String("teapot.id", id)))
	defer span.End()

	return model.RemoveTeapot(ctx, dc.collection(), id)
}
