package operations

import (
	"fmt"

	"github.com/evergreen-ci/teapot"
	"github.com/urfave/cli"
)

func Version() cli.Command {
	return cli.Command{
		Name:  "version",
		Usage: "print the build revision",
		Action: func(c *cli.Context) error {
			revision := teapot.BuildRevision
			if revision == "" {
				revision = "development"
			}
			_, err := fmt.Fprintln(c.App.Writer, revision)
			return err
		},
	}
}
