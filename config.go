package teapot

import (
	"net"
	"os"

	"github.com/evergreen-ci/teapot/util"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/pkg/errors"
)

// Settings contains all configuration for the teapot service. Every field
// has a default, so the zero value is valid once ValidateAndDefault has run.
type Settings struct {
	Database DBSettings   `yaml:"database"`
	Api      APIConfig    `yaml:"api"`
	Tracer   TracerConfig `yaml:"tracer"`
	LogLevel string       `yaml:"log_level"`
}

// APIConfig holds the settings for the REST API server.
type APIConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

func (c *APIConfig) ValidateAndDefault() error {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if _, _, err := net.SplitHostPort(c.ListenAddr); err != nil {
		return errors.Wrapf(err, "invalid listen address '%s'", c.ListenAddr)
	}

	return nil
}

// NewSettings builds a Settings object from the YAML file at the given path.
// An empty path yields the defaults. Environment variable overrides are
// applied before validation.
func NewSettings(filename string) (*Settings, error) {
	settings := &Settings{}
	if filename != "" {
		if err := util.ReadFromYAMLFile(filename, settings); err != nil {
			return nil, errors.Wrapf(err, "reading settings from '%s'", filename)
		}
	}

	settings.applyEnvOverrides()

	if err := settings.ValidateAndDefault(); err != nil {
		return nil, errors.Wrap(err, "validating settings")
	}

	return settings, nil
}

func (s *Settings) applyEnvOverrides() {
	if url := os.Getenv(MongoURLEnvVar); url != "" {
		s.Database.Url = url
	}
	if addr := os.Getenv(ListenAddrEnvVar); addr != "" {
		s.Api.ListenAddr = addr
	}
}

// ValidateAndDefault fills in missing values and reports every invalid
// section at once.
func (s *Settings) ValidateAndDefault() error {
	catcher := grip.NewBasicCatcher()
	catcher.Wrap(s.Database.ValidateAndDefault(), "database")
	catcher.Wrap(s.Api.ValidateAndDefault(), "api")
	catcher.Wrap(s.Tracer.ValidateAndDefault(), "tracer")

	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}
	if !level.FromString(s.LogLevel).IsValid() {
		catcher.Errorf("invalid log level '%s'", s.LogLevel)
	}

	return catcher.Resolve()
}
