package service

import (
	"net/http"
	"time"

	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/teapot"
	"github.com/evergreen-ci/teapot/rest/data"
	"github.com/evergreen-ci/teapot/rest/route"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// GetServer produces an HTTP server instance for a handler.
func GetServer(addr string, n http.Handler) *http.Server {
	grip.Notice(message.Fields{
		"action":  "starting service",
		"service": addr,
		"build":   teapot.BuildRevision,
		"process": grip.Name(),
	})

	return &http.Server{
		Addr:              addr,
		Handler:           n,
		ReadTimeout:       time.Minute,
		ReadHeaderTimeout: 30 * time.Second,
		WriteTimeout:      time.Minute,
	}
}

// GetRouter builds the teapot REST application on top of the Connector
// and returns it as a traced handler.
func GetRouter(sc data.Connector) (http.Handler, error) {
	app := gimlet.NewApp()
	app.SetDefaultVersion(0)
	app.ResetMiddleware()
	app.AddMiddleware(gimlet.MakeRecoveryLogger())
	app.AddMiddleware(gimlet.NewAppLogger())

	route.AttachHandler(app, sc)

	h, err := app.Handler()
	if err != nil {
		return nil, errors.Wrap(err, "resolving teapot routes")
	}

	return otelhttp.NewHandler(h, teapot.PackageName), nil
}
