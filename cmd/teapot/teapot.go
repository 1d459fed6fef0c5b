package main

import (
	"os"

	"github.com/evergreen-ci/teapot"
	"github.com/evergreen-ci/teapot/operations"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/mongodb/grip/send"
	"github.com/urfave/cli"
	_ "go.uber.org/automaxprocs"
)

func main() {
	// The command line interface is managed by the cli package. This,
	// plus the basic configuration in buildApp(), is all that's
	// necessary for bootstrapping the service.
	app := buildApp()
	grip.EmergencyFatal(app.Run(os.Args))
}

func buildApp() *cli.App {
	app := cli.NewApp()
	app.Name = "teapot"
	app.Usage = "REST API for a collection of teapots"
	app.Version = teapot.BuildRevision

	app.Commands = []cli.Command{
		operations.Version(),
		operations.Service(),
	}

	// These are global options. Use this to configure logging or
	// other options independent from specific sub commands.
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "level",
			Value: teapot.DefaultLogLevel,
			Usage: "Specify lowest visible log level as string: 'emergency|alert|critical|error|warning|notice|info|debug|trace'",
		},
	}

	app.Before = func(c *cli.Context) error {
		return loggingSetup(app.Name, c.String("level"))
	}

	return app
}

func loggingSetup(name, l string) error {
	if err := grip.SetSender(send.MakeErrorLogger()); err != nil {
		return err
	}
	grip.SetName(name)

	sender := grip.GetSender()
	info := sender.Level()
	info.Threshold = level.FromString(l)

	return sender.SetLevel(info)
}
