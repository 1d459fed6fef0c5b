package operations

import (
	"github.com/evergreen-ci/utility"
	"github.com/mitchellh/go-homedir"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

func mergeBeforeFuncs(ops ...func(c *cli.Context) error) cli.BeforeFunc {
	return func(c *cli.Context) error {
		catcher := grip.NewBasicCatcher()

		for _, op := range ops {
			catcher.Add(op(c))
		}

		return catcher.Resolve()
	}
}

// requireFileExistsIfSet fails when a file flag was given explicitly on the
// command line and names a file that does not exist.
func requireFileExistsIfSet(name string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		if !c.IsSet(name) {
			return nil
		}
		path, err := homedir.Expand(c.String(name))
		if err != nil {
			return errors.Wrapf(err, "expanding path for flag '%s'", name)
		}
		if !utility.FileExists(path) {
			return errors.Errorf("file '%s' given for flag '%s' does not exist", path, name)
		}
		return nil
	}
}

// resolveConfPath returns the settings file to load, or the empty string
// to run with the defaults when the default file is absent.
func resolveConfPath(c *cli.Context) (string, error) {
	path, err := homedir.Expand(c.String(confFlagName))
	if err != nil {
		return "", errors.Wrap(err, "expanding settings file path")
	}
	if !c.IsSet(confFlagName) && !utility.FileExists(path) {
		return "", nil
	}
	return path, nil
}
