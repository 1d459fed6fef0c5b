package teapot

import (
	"time"

	"github.com/pkg/errors"
)

// DBSettings holds the connection information for the document database
// backing the service.
type DBSettings struct {
	Url                string `yaml:"url"`
	DB                 string `yaml:"db"`
	Collection         string `yaml:"collection"`
	ConnectTimeoutSecs int    `yaml:"connect_timeout_secs"`
}

func (s *DBSettings) ValidateAndDefault() error {
	if s.Url == "" {
		s.Url = DefaultDatabaseURL
	}
	if s.DB == "" {
		s.DB = DefaultDatabaseName
	}
	if s.Collection == "" {
		s.Collection = DefaultTeapotCollection
	}
	if s.ConnectTimeoutSecs == 0 {
		s.ConnectTimeoutSecs = DefaultDatabaseConnectTimeout
	}
	if s.ConnectTimeoutSecs < 0 {
		return errors.Errorf("database connect timeout must be positive, not %d", s.ConnectTimeoutSecs)
	}

	return nil
}

func (s *DBSettings) ConnectTimeout() time.Duration {
	return time.Duration(s.ConnectTimeoutSecs) * time.Second
}
