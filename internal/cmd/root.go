// Package cmd implements the mdtangle command line.
package cmd

import (
	_ "embed"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ezerfernandes/mdtangle/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"mvdan.cc/sh/v3/syntax"
)

//go:embed help/root.md
var rootHelp string

const appName = "mdtangle"

type options struct {
	config     string
	dir        string
	encoding   string
	rename     []string
	lang       []string
	commonmark bool
	noLine     bool
	maxDepth   int
	quiet      bool
	verbose    bool

	command string
	cfg     *config.Config
	log     *zap.Logger
}

// Execute runs the command line given by args and exits with a non-zero
// status on failure.
func Execute(args []string, stdout, stderr io.Writer) {
	if err := run(args, stdout, stderr); err != nil {
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	opts := &options{command: commandLine(append([]string{appName}, args...))}

	root := rootCmd(opts)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	defer func() {
		if opts.log != nil {
			_ = opts.log.Sync()
		}
	}()

	return root.Execute()
}

func rootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{ //nolint:exhaustruct
		Use:           appName,
		Short:         "Tangle source files out of literate Markdown documents",
		Long:          rootHelp,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts.log = newLogger(cmd.ErrOrStderr(), opts.quiet, opts.verbose)

			cfg, err := config.Load(opts.config)
			if err != nil {
				return err
			}

			opts.cfg = cfg
			opts.merge(cmd)

			return nil
		},

		DisableAutoGenTag: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.config, "config", "", "configuration file (default "+config.DefaultFile+" if present)")
	flags.StringVar(&opts.encoding, "encoding", "utf-8", "encoding of the input and output files")
	flags.StringArrayVarP(&opts.rename, "rename", "r", nil, "write block OLD to file NEW (OLD:NEW)")
	flags.StringSliceVarP(&opts.lang, "lang", "l", nil, "only tangle root blocks whose language matches these globs")
	flags.BoolVar(&opts.commonmark, "commonmark", false, "scan the document with a CommonMark parser")
	flags.BoolVar(&opts.noLine, "no-line", false, "do not write location directives")
	flags.IntVar(&opts.maxDepth, "max-depth", 0, "maximum nesting of references (default 256)")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "only log warnings and errors")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug messages")
	dirFlag(root, opts)

	root.AddCommand(tangleCmd(opts), checkCmd(opts), listCmd(opts))

	return root
}

func dirFlag(cmd *cobra.Command, opts *options) {
	cmd.PersistentFlags().StringVarP(&opts.dir, "dir", "d", "", "output directory")
}

// merge fills the options that were not given on the command line from the
// configuration file.
func (opts *options) merge(cmd *cobra.Command) {
	cfg := opts.cfg

	if !cmd.Flag("dir").Changed {
		opts.dir = cfg.Dir
	}

	if !cmd.Flag("encoding").Changed && len(cfg.Encoding) != 0 {
		opts.encoding = cfg.Encoding
	}

	if !cmd.Flag("lang").Changed {
		opts.lang = cfg.Langs
	}

	if !cmd.Flag("commonmark").Changed {
		opts.commonmark = cfg.CommonMark
	}

	if !cmd.Flag("no-line").Changed {
		opts.noLine = !cfg.Directives()
	}

	if !cmd.Flag("max-depth").Changed {
		opts.maxDepth = cfg.MaxDepth
	}
}

func newLogger(w io.Writer, quiet, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel

	switch {
	case quiet:
		level = zapcore.WarnLevel
	case verbose:
		level = zapcore.DebugLevel
	}

	encoder := zap.NewDevelopmentEncoderConfig()
	encoder.TimeKey = ""
	encoder.CallerKey = ""

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoder), zapcore.AddSync(w), level)

	return zap.New(core)
}

// commandLine joins args into a line that a POSIX shell would split back
// into the same words.
func commandLine(args []string) string {
	words := make([]string, 0, len(args))

	for _, arg := range args {
		quoted, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			quoted = strconv.Quote(arg)
		}

		words = append(words, quoted)
	}

	return strings.Join(words, " ")
}
