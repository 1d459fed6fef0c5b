package db

import (
	"fmt"

	"github.com/evergreen-ci/teapot"
	"go.opentelemetry.io/otel"
)

var packageName = fmt.Sprintf("%s%s", teapot.PackageName, "/db")

var tracer = otel.GetTracerProvider().Tracer(packageName)

const (
	collectionAttribute = "teapot.db.collection"
	idAttribute         = "teapot.db.id"
	kindAttribute       = "teapot.db.result_kind"
)
