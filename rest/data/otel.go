package data

import (
	"fmt"

	"github.com/evergreen-ci/teapot"
	"go.opentelemetry.io/otel"
)

var packageName = fmt.Sprintf("%s%s", teapot.PackageName, "/rest/data")

var tracer = otel.GetTracerProvider().Tracer(packageName)
