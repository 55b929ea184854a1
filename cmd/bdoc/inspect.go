package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/docker/go-units"
	"github.com/golang-module/carbon/v2"
	"github.com/spf13/cobra"

	"github.com/arloliu/bdoc/document"
	"github.com/arloliu/bdoc/format"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [FILE]",
		Short: "Show the top-level fields of a binary document as a table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, inputArg(args))
		},
	}
}

func runInspect(cmd *cobra.Command, input string) error {
	data, err := readInput(cmd, input)
	if err != nil {
		return err
	}

	doc, err := document.Load(data)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "size: %s (%d bytes)\n", units.BytesSize(float64(doc.TotalSize())), doc.TotalSize())
	fmt.Fprintf(out, "fields: %d\n", doc.NumFields())
	fmt.Fprintf(out, "fingerprint: %016x\n\n", doc.Fingerprint())

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "OFFSET\tTYPE\tNAME\tSIZE\tVALUE")
	for f := range doc.Fields() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			f.Offset(), f.Type(), f.Name(), units.BytesSize(float64(f.Size())), summarize(f))
	}

	return w.Flush()
}

// summarize renders a short description of a field value for the table.
func summarize(f document.Field) string {
	switch f.Type() {
	case format.TypeDatetime:
		return carbon.CreateFromTimestampMicro(f.Datetime().Micros(), "UTC").ToDateTimeMicroString()
	case format.TypeObject:
		return fmt.Sprintf("object with %d fields", f.Document().NumFields())
	case format.TypeArray:
		return fmt.Sprintf("array with %d elements", f.Array().Len())
	case format.TypeString:
		s := f.StringValue()
		if len(s) > 40 {
			return fmt.Sprintf("%q...", s[:40])
		}

		return fmt.Sprintf("%q", s)
	default:
		return f.ValueString()
	}
}
