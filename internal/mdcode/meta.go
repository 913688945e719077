package mdcode

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/pflag"
)

// Options holds the flags given on a fence info string after the language.
type Options struct {
	Prefix   []string
	Suffix   []string
	Prelude  []string
	Continue bool
}

// Meta holds key=value words of a fence info string.
type Meta map[string]string

// Get returns the metadata value for the given key.
// It returns an empty string if the key is missing or the Meta is nil.
func (m Meta) Get(name string) string {
	if m == nil {
		return ""
	}

	return m[name]
}

var reBrackets = regexp.MustCompile(`^\s*{(.*)}\s*$`)

func blockFlags(opts *Options) *pflag.FlagSet {
	flags := pflag.NewFlagSet("block", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)

	flags.StringArrayVar(&opts.Prefix, "prefix", nil, "text emitted before the block")
	flags.StringArrayVar(&opts.Suffix, "suffix", nil, "text emitted after the block")
	flags.StringArrayVar(&opts.Prelude, "prelude", nil, "text emitted before the generated header")
	flags.BoolVar(&opts.Continue, "continue", false, "append this fragment to the previous named block")

	return flags
}

func parseOptions(info string, line int) (Options, Meta, error) {
	var opts Options

	if subs := reBrackets.FindStringSubmatch(info); subs != nil {
		info = subs[1]
	}

	if len(strings.TrimSpace(info)) == 0 {
		return opts, nil, nil
	}

	flags := blockFlags(&opts)

	words, err := shlex.Split(info)
	if err != nil {
		return opts, nil, &Error{Kind: ErrBlockArgument, Line: line, Msg: err.Error(), Usage: flags.FlagUsages()}
	}

	if err := flags.Parse(words); err != nil {
		return opts, nil, &Error{Kind: ErrBlockArgument, Line: line, Msg: err.Error(), Usage: flags.FlagUsages()}
	}

	var meta Meta

	for _, word := range flags.Args() {
		idx := strings.IndexRune(word, '=')
		if idx <= 0 {
			return opts, nil, &Error{
				Kind:  ErrBlockArgument,
				Line:  line,
				Msg:   fmt.Sprintf("unexpected argument %q", word),
				Usage: flags.FlagUsages(),
			}
		}

		if meta == nil {
			meta = make(Meta)
		}

		meta[word[:idx]] = word[idx+1:]
	}

	return opts, meta, nil
}
