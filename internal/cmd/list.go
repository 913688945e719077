package cmd

import (
	"fmt"
	"os"

	"github.com/ezerfernandes/mdtangle/internal/mdcode"
	"github.com/ezerfernandes/mdtangle/internal/output"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding"
)

func listCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "list [flags] filename",
		Aliases: []string{"ls"},
		Short:   "List the named blocks of a document",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, _, err := readDocument(args[0], opts)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			tbl := table.New("NAME", "LANG", "LINE", "FRAGMENTS", "LINES", "REFERENCES").
				WithWriter(cmd.OutOrStdout())

			for _, name := range index.Names() {
				frags, _ := index.Lookup(name)

				lines, refs := 0, 0
				for _, frag := range frags {
					lines += len(frag.Lines)
					refs += frag.References()
				}

				tbl.AddRow(name, frags[0].Lang, frags[0].StartLine, len(frags), lines, refs)
			}

			tbl.Print()

			return nil
		},

		DisableAutoGenTag: true,
	}

	return cmd
}

// readDocument reads and indexes a document in the configured encoding.
func readDocument(filename string, opts *options) (*mdcode.Index, encoding.Encoding, error) {
	enc, err := output.Encoding(opts.encoding)
	if err != nil {
		return nil, nil, err
	}

	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, err
	}

	src, err := output.Decode(raw, enc)
	if err != nil {
		return nil, nil, err
	}

	scan := mdcode.ScanFences
	if opts.commonmark {
		scan = mdcode.ScanCommonMark
	}

	index, err := mdcode.Parse(src, scan)
	if err != nil {
		return nil, nil, err
	}

	return index, enc, nil
}
