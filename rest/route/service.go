package route

import (
	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/teapot"
	"github.com/evergreen-ci/teapot/rest/data"
)

// AttachHandler registers each of the teapot routes on the app, backed by
// the given Connector. The collection routes answer with and without a
// trailing slash.
func AttachHandler(app *gimlet.APIApp, sc data.Connector) {
	for _, collection := range []string{teapot.RoutePrefix, teapot.RoutePrefix + "/"} {
		app.AddRoute(collection).Version(0).Post().RouteHandler(makeCreateTeapot(sc))
		app.AddRoute(collection).Version(0).Get().RouteHandler(makeGetAllTeapots(sc))
	}

	item := teapot.RoutePrefix + "/{" + teapotIDVar + "}"
	app.AddRoute(item).Version(0).Get().RouteHandler(makeGetTeapot(sc))
	app.AddRoute(item).Version(0).Put().RouteHandler(makeUpdateTeapot(sc))
	app.AddRoute(item).Version(0).Delete().RouteHandler(makeDeleteTeapot(sc))
}
