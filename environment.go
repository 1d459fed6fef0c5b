package teapot

import (
	"context"
	"sync"
	"time"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Environment provides application-level services (e.g. the database
// client and configuration). It is constructed once per process by
// NewEnvironment and passed through the application like a context; there
// is no global instance.
type Environment interface {
	// Returns the settings object. The settings object is not
	// necessarily safe for concurrent modification.
	Settings() *Settings

	// Client is the pooled database client shared by every request.
	Client() *mongo.Client
	DB() *mongo.Database

	// RegisterCloser adds a function object to an internal
	// tracker to be called by the Close method before process
	// termination. The ID is used in reporting, but must be
	// unique or a new closer could overwrite an existing closer.
	RegisterCloser(string, func(context.Context) error)
	// Close calls all registered closers in the environment.
	Close(context.Context) error
}

// NewEnvironment constructs an Environment instance, establishing a
// new connection to the database.
//
// When NewEnvironment returns without an error, you should assume
// that there was no issue establishing a connection to the database.
func NewEnvironment(ctx context.Context, settings *Settings) (Environment, error) {
	if settings == nil {
		return nil, errors.New("cannot create environment without settings")
	}

	e := &envState{
		settings: settings,
		closers:  map[string]func(context.Context) error{},
	}

	if err := e.initDB(ctx); err != nil {
		return nil, errors.Wrap(err, "configuring database")
	}
	if err := e.initTracer(ctx); err != nil {
		catcher := grip.NewBasicCatcher()
		catcher.Add(err)
		catcher.Add(e.Close(ctx))
		return nil, errors.Wrap(catcher.Resolve(), "configuring tracer")
	}

	return e, nil
}

type envState struct {
	settings *Settings
	client   *mongo.Client
	mu       sync.RWMutex
	closers  map[string]func(context.Context) error
}

func (e *envState) initDB(ctx context.Context) error {
	conf := e.settings.Database
	opts := options.Client().
		ApplyURI(conf.Url).
		SetConnectTimeout(conf.ConnectTimeout())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return errors.Wrap(err, "connecting to the database")
	}

	pingCtx, cancel := context.WithTimeout(ctx, conf.ConnectTimeout())
	defer cancel()
	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		grip.Warning(message.WrapError(client.Disconnect(ctx), message.Fields{
			"message": "could not disconnect from unreachable database",
			"url":     conf.Url,
		}))
		return errors.Wrapf(err, "pinging database at '%s'", conf.Url)
	}

	e.client = client
	e.RegisterCloser("database-client", func(ctx context.Context) error {
		return errors.Wrap(client.Disconnect(ctx), "disconnecting from the database")
	})

	grip.Info(message.Fields{
		"message":    "connected to database",
		"db":         conf.DB,
		"collection": conf.Collection,
	})

	return nil
}

func (e *envState) initTracer(ctx context.Context) error {
	if !e.settings.Tracer.Enabled {
		return nil
	}

	shutdown, err := InitTracer(ctx, e.settings.Tracer)
	if err != nil {
		return errors.WithStack(err)
	}
	e.RegisterCloser("tracer-provider", shutdown)

	return nil
}

func (e *envState) Settings() *Settings {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.settings
}

func (e *envState) Client() *mongo.Client {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.client
}

func (e *envState) DB() *mongo.Database {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.client.Database(e.settings.Database.DB)
}

func (e *envState) RegisterCloser(name string, closer func(context.Context) error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.closers[name]; ok {
		grip.Critical(message.Fields{
			"closer":  name,
			"message": "duplicate closer registered",
			"cause":   "programmer error",
		})
	}
	e.closers[name] = closer
}

func (e *envState) Close(ctx context.Context) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	deadline, _ := ctx.Deadline()
	catcher := grip.NewBasicCatcher()
	wg := &sync.WaitGroup{}
	for n, closer := range e.closers {
		if closer == nil {
			continue
		}

		wg.Add(1)
		go func(name string, close func(context.Context) error) {
			defer wg.Done()
			grip.Info(message.Fields{
				"message":      "calling closer",
				"closer":       name,
				"timeout_secs": time.Until(deadline).Seconds(),
				"deadline":     deadline,
			})
			catcher.Add(close(ctx))
		}(n, closer)
	}

	wg.Wait()
	return catcher.Resolve()
}
