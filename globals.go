package teapot

const (
	PackageName = "github.com/evergreen-ci/teapot"

	// DefaultServiceConfigurationFileName is the settings file the service
	// looks for when no path is given on the command line.
	DefaultServiceConfigurationFileName = "/etc/teapot.yml"

	DefaultDatabaseURL            = "mongodb://localhost:27017"
	DefaultDatabaseName           = "demo"
	DefaultTeapotCollection       = "teapots"
	DefaultDatabaseConnectTimeout = 10
	DefaultListenAddr             = "127.0.0.1:8000"
	DefaultLogLevel               = "info"

	// Environment variables that take precedence over the settings file.
	MongoURLEnvVar   = "TEAPOT_MONGO_URL"
	ListenAddrEnvVar = "TEAPOT_LISTEN_ADDR"

	// RoutePrefix is the base path of every teapot resource route.
	RoutePrefix = "/teapot"
)

// BuildRevision is set at link time with -ldflags.
var BuildRevision = ""
