package operations

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/evergreen-ci/teapot"
	"github.com/evergreen-ci/teapot/rest/data"
	"github.com/evergreen-ci/teapot/service"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/mongodb/grip/message"
	"github.com/mongodb/grip/recovery"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 15 * time.Second
	closeTimeout    = 10 * time.Second
)

func startWebService() cli.Command {
	return cli.Command{
		Name:   "web",
		Usage:  "run the teapot REST API",
		Flags:  serviceConfigFlags(memoryFlag(), addrFlag()),
		Before: mergeBeforeFuncs(setupWeb, requireFileExistsIfSet(confFlagName)),
		Action: func(c *cli.Context) error {
			confPath, err := resolveConfPath(c)
			if err != nil {
				return errors.WithStack(err)
			}
			settings, err := teapot.NewSettings(confPath)
			if err != nil {
				return errors.Wrap(err, "loading settings")
			}
			if addr := c.String(addrFlagName); addr != "" {
				settings.Api.ListenAddr = addr
				if err = settings.Api.ValidateAndDefault(); err != nil {
					return errors.Wrap(err, "validating listen address")
				}
			}
			if !c.GlobalIsSet(levelFlagName) {
				grip.Warning(errors.Wrap(setLogLevel(settings.LogLevel), "applying configured log level"))
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer recovery.LogStackTraceAndExit("teapot web service")
			defer cancel()

			go listenForSignals(cancel)

			sc, closeStorage, err := getConnector(ctx, settings, c.Bool(memoryFlagName))
			if err != nil {
				return errors.Wrap(err, "configuring teapot storage")
			}
			defer func() {
				closeCtx, closeCancel := context.WithTimeout(context.Background(), closeTimeout)
				defer closeCancel()
				grip.Warning(message.WrapError(closeStorage(closeCtx), message.Fields{
					"message": "problem closing teapot storage",
				}))
			}()

			handler, err := service.GetRouter(sc)
			if err != nil {
				return errors.Wrap(err, "building router")
			}

			return errors.Wrap(runServer(ctx, service.GetServer(settings.Api.ListenAddr, handler)), "running web service")
		},
	}
}

func setupWeb(c *cli.Context) error {
	grip.SetName("teapot.web")
	return nil
}

// getConnector returns the storage for the service along with the function
// that releases it.
func getConnector(ctx context.Context, settings *teapot.Settings, memory bool) (data.Connector, func(context.Context) error, error) {
	if memory {
		grip.Notice(message.Fields{
			"message": "keeping teapots in memory; nothing will be persisted",
		})
		shutdown, err := teapot.InitTracer(ctx, settings.Tracer)
		if err != nil {
			return nil, nil, errors.Wrap(err, "configuring tracer")
		}
		return data.NewMemoryConnector(), shutdown, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, settings.Database.ConnectTimeout())
	defer cancel()

	env, err := teapot.NewEnvironment(connectCtx, settings)
	if err != nil {
		return nil, nil, errors.Wrap(err, "configuring application environment")
	}

	return data.NewDBConnector(env), env.Close, nil
}

// runServer serves until the context is canceled, then shuts the server
// down gracefully.
func runServer(ctx context.Context, srv *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer recovery.LogStackTraceAndContinue("teapot web server")
		grip.Info(message.Fields{
			"message": "listening",
			"addr":    srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrapf(err, "listening on '%s'", srv.Addr)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		grip.Info("shutting down web service")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Wrap(srv.Shutdown(shutdownCtx), "shutting down server")
	})

	return g.Wait()
}

// listenForSignals cancels the context when SIGTERM or SIGINT is received.
func listenForSignals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGTERM, os.Interrupt)
	sig := <-sigChan
	grip.Infof("received %s, terminating", sig)
	cancel()
}

func setLogLevel(l string) error {
	sender := grip.GetSender()
	info := sender.Level()
	info.Threshold = level.FromString(l)

	return sender.SetLevel(info)
}
