package operations

import (
	"strings"

	"github.com/evergreen-ci/teapot"
	"github.com/urfave/cli"
)

const (
	confFlagName   = "conf"
	memoryFlagName = "memory"
	addrFlagName   = "addr"
	levelFlagName  = "level"
)

func joinFlagNames(ids ...string) string { return strings.Join(ids, ", ") }

func serviceConfigFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags, cli.StringFlag{
		Name:  joinFlagNames(confFlagName, "config", "c"),
		Usage: "path to the service configuration file",
		Value: teapot.DefaultServiceConfigurationFileName,
	})
}

func memoryFlag() cli.Flag {
	return cli.BoolFlag{
		Name:  memoryFlagName,
		Usage: "keep teapots in process memory instead of the database",
	}
}

func addrFlag() cli.Flag {
	return cli.StringFlag{
		Name:   addrFlagName,
		Usage:  "host:port for the REST API to listen on, overriding the settings file",
		EnvVar: teapot.ListenAddrEnvVar,
	}
}
