// Command bdoc converts between the bdoc text grammar and its binary
// encoding, and inspects encoded documents.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	logLevel string
}

func newRootCommand() *cobra.Command {
	opts := rootOptions{}

	cmd := &cobra.Command{
		Use:           "bdoc",
		Short:         "Encode, decode and inspect binary documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, err := logrus.ParseLevel(opts.logLevel)
			if err != nil {
				return errors.Wrapf(err, "invalid --log-level")
			}
			logrus.SetLevel(level)

			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.logLevel, "log-level", "l", "info", `Set the logging level ("debug"|"info"|"warn"|"error"|"fatal")`)

	cmd.AddCommand(
		newEncodeCommand(),
		newDecodeCommand(),
		newInspectCommand(),
	)

	return cmd
}

// readInput reads the named file, or stdin when name is "-" or empty.
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return data, errors.Wrap(err, "read stdin")
	}

	data, err := os.ReadFile(name)

	return data, errors.Wrapf(err, "read %s", name)
}

func inputArg(args []string) string {
	if len(args) == 0 {
		return "-"
	}

	return args[0]
}

func main() {
	logrus.SetOutput(os.Stderr)

	cmd := newRootCommand()
	cmd.SetOut(os.Stdout)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
