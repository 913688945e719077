package cmd

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"github.com/ezerfernandes/mdtangle/internal/mdcode"
	"github.com/ezerfernandes/mdtangle/internal/output"
	"github.com/ezerfernandes/mdtangle/internal/region"
	"github.com/ezerfernandes/mdtangle/internal/tangle"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
)

//go:embed help/tangle.md
var tangleHelp string

func tangleCmd(opts *options) *cobra.Command {
	var (
		overwrite bool
		stdout    bool
		script    string
	)

	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "tangle [flags] filename [pattern...]",
		Aliases: []string{"t"},
		Short:   "Write the root blocks of a document to their files",
		Long:    tangleHelp,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flag("overwrite").Changed {
				overwrite = opts.cfg.Overwrite
			}

			if !cmd.Flag("exec").Changed {
				script = opts.cfg.Exec
			}

			t, err := newTangler(args[0], opts)
			if err != nil {
				return err
			}

			tgs, err := t.selectTargets(args[1:])
			if err != nil {
				return err
			}

			if stdout {
				return t.print(cmd.OutOrStdout(), tgs)
			}

			return t.writeAll(output.Dir{Root: opts.dir}, tgs, overwrite, script, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},

		DisableAutoGenTag: true,
	}

	cmd.Flags().BoolVarP(&overwrite, "overwrite", "o", false, "overwrite existing output files")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "write the root blocks to standard output")
	cmd.Flags().StringVarP(&script, "exec", "x", "", "shell command run after each written file, {} is its path")

	return cmd
}

// tangler tangles the root blocks of one document.
type tangler struct {
	source string
	opts   *options
	index  *mdcode.Index
	engine *tangle.Engine
	enc    encoding.Encoding
	log    *zap.Logger
}

func newTangler(filename string, opts *options) (*tangler, error) {
	log := opts.log.With(zap.String("input", filename))

	log.Info("reading")

	index, enc, err := readDocument(filename, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	engine := tangle.New(index, tangle.Config{Source: filename, Command: opts.command, MaxDepth: opts.maxDepth})

	return &tangler{source: filename, opts: opts, index: index, engine: engine, enc: enc, log: log}, nil
}

func (t *tangler) selectTargets(patterns []string) ([]target, error) {
	if len(patterns) == 0 {
		patterns = t.opts.cfg.Roots
	}

	match, err := filter(patterns, t.opts.lang)
	if err != nil {
		return nil, err
	}

	rename, err := renames(t.opts.rename, t.opts.cfg.Rename)
	if err != nil {
		return nil, err
	}

	tgs := targets(t.index, match, rename)
	if len(tgs) == 0 {
		t.log.Warn("no root block matches", zap.Strings("patterns", patterns))
	}

	return tgs, nil
}

func (t *tangler) formatter(tg target) *tangle.Formatter {
	return &tangle.Formatter{Language: tg.lang, Source: t.source, NoDirectives: t.opts.noLine}
}

func (t *tangler) sequence(tg target) tangle.Sequence {
	if len(tg.region) != 0 {
		return t.engine.ExpandBody(tg.name)
	}

	return t.engine.Expand(tg.name)
}

func (t *tangler) print(w io.Writer, tgs []target) error {
	for _, tg := range tgs {
		t.log.Debug("printing", zap.String("block", tg.name))

		if err := t.formatter(tg).Format(w, t.sequence(tg)); err != nil {
			return fmt.Errorf("%s: %w", tg.name, err)
		}
	}

	return nil
}

// writeAll writes every target to sink, stopping at the first failure.
// Files written before the failure are kept.
func (t *tangler) writeAll(sink output.Sink, tgs []target, overwrite bool, script string, stdout, stderr io.Writer) error {
	for _, tg := range tgs {
		if err := t.write(sink, tg, overwrite); err != nil {
			return fmt.Errorf("%s: %w", tg.name, err)
		}

		if len(script) == 0 {
			continue
		}

		if err := runHook(script, tg.path, t.opts.dir, stdout, stderr); err != nil {
			return fmt.Errorf("%s: %w", tg.path, err)
		}
	}

	return nil
}

func (t *tangler) write(sink output.Sink, tg target, overwrite bool) error {
	log := t.log.With(zap.String("block", tg.name), zap.String("output", tg.path))

	if len(tg.region) != 0 {
		log.Info("writing region", zap.String("region", tg.region))

		return t.writeRegion(sink, tg)
	}

	exists, err := sink.Exists(tg.path)
	if err != nil {
		return err
	}

	switch {
	case exists && !overwrite:
		log.Error("output already exists, skipping")

		return errExists
	case exists:
		log.Warn("overwriting")
	default:
		log.Info("writing")
	}

	file, err := sink.Create(tg.path)
	if err != nil {
		return err
	}

	file = output.Encoded(file, t.enc)

	if err := t.formatter(tg).Format(file, t.sequence(tg)); err != nil {
		_ = file.Discard()

		return err
	}

	return file.Commit()
}

func (t *tangler) writeRegion(sink output.Sink, tg target) error {
	raw, err := sink.ReadFile(tg.path)
	if err != nil {
		return err
	}

	existing, err := output.Decode(raw, t.enc)
	if err != nil {
		return err
	}

	var body bytes.Buffer

	if err := t.formatter(tg).Format(&body, t.sequence(tg)); err != nil {
		return err
	}

	updated, found, err := region.Replace(existing, tg.region, body.Bytes())
	if err != nil {
		return err
	}

	if !found {
		return fmt.Errorf("%w: %q in %s", errMissingRegion, tg.region, tg.path)
	}

	file, err := sink.Create(tg.path)
	if err != nil {
		return err
	}

	file = output.Encoded(file, t.enc)

	if _, err := file.Write(updated); err != nil {
		_ = file.Discard()

		return err
	}

	return file.Commit()
}

var (
	errExists        = errors.New("output file already exists, use --overwrite")
	errMissingRegion = errors.New("region not found")
)
