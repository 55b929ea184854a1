package main

import (
	"fmt"

	"github.com/docker/go-units"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arloliu/bdoc/document"
)

type decodeOptions struct {
	dump bool
}

func newDecodeCommand() *cobra.Command {
	opts := decodeOptions{}

	cmd := &cobra.Command{
		Use:   "decode [OPTIONS] [FILE]",
		Short: "Validate a binary document and print it in the text grammar",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, opts, inputArg(args))
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.dump, "dump", false, "Print the field layout with offsets and sizes instead")

	return cmd
}

func runDecode(cmd *cobra.Command, opts decodeOptions, input string) error {
	data, err := readInput(cmd, input)
	if err != nil {
		return err
	}

	doc, err := document.Load(data)
	if err != nil {
		return err
	}
	if extra := len(data) - doc.TotalSize(); extra > 0 {
		logrus.Warnf("ignoring %s of trailing data", units.HumanSize(float64(extra)))
	}

	out := cmd.OutOrStdout()
	if opts.dump {
		_, err = fmt.Fprint(out, doc.Dump())
	} else {
		_, err = fmt.Fprintln(out, doc.String())
	}

	return err
}
