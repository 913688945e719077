package mdcode

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/pflag"
)

type argValue struct {
	args *[]Arg
	kind ArgKind
}

func (v *argValue) Set(s string) error {
	*v.args = append(*v.args, Arg{Kind: v.kind, Value: s})

	return nil
}

func (v *argValue) Type() string { return "string" }

func (v *argValue) String() string {
	var values []string

	for _, arg := range *v.args {
		if arg.Kind == v.kind {
			values = append(values, arg.Value)
		}
	}

	return strings.Join(values, ",")
}

func referenceFlags(ref *Reference) *pflag.FlagSet {
	flags := pflag.NewFlagSet("reference", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)

	flags.StringArrayVar(&ref.Prefix, "prefix", nil, "text emitted before the expansion")
	flags.StringArrayVar(&ref.Suffix, "suffix", nil, "text emitted after the expansion")
	flags.Var(&argValue{args: &ref.Args, kind: Literal}, "lit-arg", "literal text bound to the next positional argument")
	flags.Var(&argValue{args: &ref.Args, kind: BlockRef}, "ref-arg", "block bound to the next positional argument")

	return flags
}

func parseReferenceArgs(ref *Reference, args string, line int) error {
	flags := referenceFlags(ref)

	fail := func(msg string) error {
		return &Error{Kind: ErrReferenceArgument, Line: line, Msg: msg, Usage: flags.FlagUsages()}
	}

	words, err := shlex.Split(args)
	if err != nil {
		return fail(err.Error())
	}

	if err := flags.Parse(words); err != nil {
		return fail(err.Error())
	}

	if flags.NArg() != 0 {
		return fail(fmt.Sprintf("unexpected argument %q", flags.Arg(0)))
	}

	return nil
}

// ParseReference recognizes a reference line of the given language. It
// returns nil when text is a plain line.
func ParseReference(lang Language, text string, line int) (*Reference, error) {
	info, ok := languages[lang]
	if !ok {
		return nil, Errorf(ErrUnsupportedLanguage, line, "%s", lang)
	}

	m := info.refs.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}

	target := strings.TrimSpace(m[2])
	if len(target) == 0 {
		return nil, nil
	}

	ref := &Reference{Indent: m[1], Target: target}
	if lang.Inline() {
		ref.Trail = m[4]

		if info.refs.MatchString(ref.Trail) {
			return nil, Errorf(ErrReferenceArgument, line, "more than one reference on a line")
		}
	}

	if len(m[3]) != 0 {
		if err := parseReferenceArgs(ref, m[3], line); err != nil {
			return nil, err
		}
	}

	return ref, nil
}

// ParseReferences resolves the language of b and turns its reference lines
// into references.
func ParseReferences(b *Block) error {
	lang, err := LookupLanguage(b.Lang)
	if err != nil {
		return &Error{Kind: ErrUnsupportedLanguage, Line: b.StartLine, Msg: fmt.Sprintf("%q", b.Lang)}
	}

	b.Language = lang

	for i := range b.Lines {
		ref, err := ParseReference(lang, b.Lines[i].Text, b.Lines[i].Row)
		if err != nil {
			return err
		}

		b.Lines[i].Ref = ref
	}

	return nil
}
