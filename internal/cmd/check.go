package cmd

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"

	"github.com/ezerfernandes/mdtangle/internal/output"
	"github.com/ezerfernandes/mdtangle/internal/region"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//go:embed help/check.md
var checkHelp string

func checkCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "check [flags] filename [pattern...]",
		Aliases: []string{"c"},
		Short:   "Verify that tangled files are up to date",
		Long:    checkHelp,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			t, err := newTangler(args[0], opts)
			if err != nil {
				return err
			}

			tgs, err := t.selectTargets(args[1:])
			if err != nil {
				return err
			}

			stale, err := t.check(output.Dir{Root: opts.dir}, output.NewMemory(), tgs)
			if err != nil {
				return err
			}

			if stale > 0 {
				return fmt.Errorf("%w: %d of %d", errStale, stale, len(tgs))
			}

			return nil
		},

		DisableAutoGenTag: true,
	}

	return cmd
}

// check tangles tgs into scratch and compares the result with the files of
// disk. It returns the number of missing or outdated files.
func (t *tangler) check(disk, scratch output.Sink, tgs []target) (int, error) {
	stale := 0

	silent := *t
	silent.log = zap.NewNop()

	for _, tg := range tgs {
		log := t.log.With(zap.String("block", tg.name), zap.String("output", tg.path))

		exists, err := disk.Exists(tg.path)
		if err != nil {
			return stale, err
		}

		if !exists {
			log.Warn("missing")

			stale++

			continue
		}

		got, err := disk.ReadFile(tg.path)
		if err != nil {
			return stale, err
		}

		if len(tg.region) != 0 {
			if err := seed(scratch, tg.path, got); err != nil {
				return stale, err
			}
		}

		if err := silent.write(scratch, tg, true); err != nil {
			return stale, fmt.Errorf("%s: %w", tg.name, err)
		}

		want, err := scratch.ReadFile(tg.path)
		if err != nil {
			return stale, err
		}

		same, err := t.same(tg, got, want)
		if err != nil {
			return stale, err
		}

		if !same {
			log.Warn("stale")

			stale++

			continue
		}

		log.Debug("up to date")
	}

	return stale, nil
}

func seed(sink output.Sink, name string, data []byte) error {
	exists, err := sink.Exists(name)
	if err != nil || exists {
		return err
	}

	file, err := sink.Create(name)
	if err != nil {
		return err
	}

	if _, err := file.Write(data); err != nil {
		_ = file.Discard()

		return err
	}

	return file.Commit()
}

// same compares two renderings of tg, ignoring the line of the generated
// header that records the command line.
func (t *tangler) same(tg target, got, want []byte) (bool, error) {
	var err error

	if got, err = output.Decode(got, t.enc); err != nil {
		return false, err
	}

	if want, err = output.Decode(want, t.enc); err != nil {
		return false, err
	}

	if len(tg.region) != 0 {
		if got, _, err = region.Read(got, tg.region); err != nil {
			return false, err
		}

		if want, _, err = region.Read(want, tg.region); err != nil {
			return false, err
		}

		return bytes.Equal(got, want), nil
	}

	marker := []byte(tg.lang.Comment("Command used: "))

	return bytes.Equal(dropLine(got, marker), dropLine(want, marker)), nil
}

func dropLine(data, prefix []byte) []byte {
	if len(prefix) == 0 {
		return data
	}

	var res []byte

	for _, line := range bytes.SplitAfter(data, []byte("\n")) {
		if !bytes.HasPrefix(line, prefix) {
			res = append(res, line...)
		}
	}

	return res
}

var errStale = errors.New("outdated or missing files")
