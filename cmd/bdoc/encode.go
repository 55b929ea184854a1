package main

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/docker/go-units"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arloliu/bdoc/document"
	"github.com/arloliu/bdoc/parser"
)

type encodeOptions struct {
	output           string
	json             bool
	maxDepth         int
	rejectDup        bool
	noUnicodeEscapes bool
}

func newEncodeCommand() *cobra.Command {
	opts := encodeOptions{}

	cmd := &cobra.Command{
		Use:   "encode [OPTIONS] [FILE]",
		Short: "Encode text (or JSON with --json) into a binary document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd, opts, inputArg(args))
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "-", "Output file, - for stdout")
	flags.BoolVar(&opts.json, "json", false, "Read plain JSON instead of the text grammar")
	installParseFlags(flags, &opts)

	return cmd
}

// installParseFlags adds the text parser tuning flags to flags.
func installParseFlags(flags *pflag.FlagSet, opts *encodeOptions) {
	flags.IntVar(&opts.maxDepth, "max-depth", document.MaxNestingDepth, "Maximum nesting depth below the root")
	flags.BoolVar(&opts.rejectDup, "reject-duplicates", false, "Fail on repeated field names within an object")
	flags.BoolVar(&opts.noUnicodeEscapes, "no-unicode-escapes", false, `Keep \u escapes undecoded`)
}

func runEncode(cmd *cobra.Command, opts encodeOptions, input string) error {
	data, err := readInput(cmd, input)
	if err != nil {
		return err
	}

	start := time.Now()
	var doc document.Document
	if opts.json {
		doc, err = parser.FromJSON(data)
	} else {
		parseOpts := []parser.Option{
			parser.WithMaxDepth(opts.maxDepth),
			parser.WithUnicodeEscapes(!opts.noUnicodeEscapes),
		}
		if opts.rejectDup {
			parseOpts = append(parseOpts, parser.WithRejectDuplicateNames())
		}
		doc, err = parser.Parse(data, parseOpts...)
	}
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"input":   units.HumanSize(float64(len(data))),
		"encoded": units.HumanSize(float64(doc.TotalSize())),
		"fields":  doc.NumFields(),
		"elapsed": time.Since(start),
	}).Debug("encoded document")

	if opts.output == "" || opts.output == "-" {
		_, err = cmd.OutOrStdout().Write(doc.RawData())
		return errors.Wrap(err, "write stdout")
	}

	return errors.Wrapf(os.WriteFile(opts.output, doc.RawData(), 0o644), "write %s", opts.output) //nolint: gosec
}
