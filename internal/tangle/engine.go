// Package tangle expands named code blocks into source text.
package tangle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ezerfernandes/mdtangle/internal/mdcode"
)

// DefaultMaxDepth bounds the nesting of expansions when Config.MaxDepth is
// not set.
const DefaultMaxDepth = 256

// Config holds the settings of an Engine.
type Config struct {
	// Source is the document path used in headers and location directives.
	Source string
	// Command is the command line quoted in the generated header.
	Command  string
	MaxDepth int
}

// Engine resolves references between the blocks of an index.
type Engine struct {
	index *mdcode.Index
	cfg   Config
}

// New returns an Engine expanding the blocks of index.
func New(index *mdcode.Index, cfg Config) *Engine {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}

	return &Engine{index: index, cfg: cfg}
}

// env binds positional argument names to blocks for the expansion of one
// reference. sig identifies the bindings in cycle detection.
type env struct {
	bindings map[string]mdcode.Blocks
	sig      string
}

type frame struct {
	block *mdcode.Block
	sig   string
}

// Expand returns the expansion of the named block as the root of an output
// file: preludes, the generated header, then every fragment.
func (e *Engine) Expand(name string) Sequence {
	return e.expand(name, true)
}

// ExpandBody returns the expansion of the named block without preludes and
// header.
func (e *Engine) ExpandBody(name string) Sequence {
	return e.expand(name, false)
}

func (e *Engine) expand(name string, root bool) Sequence {
	return func(yield func(Step) error) error {
		frags, ok := e.index.Lookup(name)
		if !ok {
			return mdcode.Errorf(mdcode.ErrUnknownReference, 0, "%q", name)
		}

		for i, frag := range frags {
			if i == 0 && root {
				if err := e.preamble(frag, yield); err != nil {
					return err
				}
			}

			if err := e.fragment(frag, nil, nil, nil, frag.StartLine)(yield); err != nil {
				return err
			}
		}

		return nil
	}
}

func (e *Engine) preamble(frag *mdcode.Block, yield func(Step) error) error {
	for _, prelude := range frag.Options.Prelude {
		if err := yield(text(prelude + "\n")); err != nil {
			return err
		}
	}

	header := Header(frag.Language, e.cfg.Source, e.cfg.Command)
	if len(header) == 0 {
		return nil
	}

	for _, line := range header {
		if err := yield(text(line + "\n")); err != nil {
			return err
		}
	}

	return yield(text("\n"))
}

func emitLines(yield func(Step) error, indents []string, lines []string) error {
	for _, line := range lines {
		if err := yield(indent(indents)); err != nil {
			return err
		}

		if err := yield(text(line + "\n")); err != nil {
			return err
		}
	}

	return nil
}

// fragment expands frag. row is the source line that asked for it and is
// reported by the recursion guards.
func (e *Engine) fragment(frag *mdcode.Block, args *env, indents []string, stack []frame, row int) Sequence {
	return func(yield func(Step) error) error {
		current := frame{block: frag}
		if args != nil {
			current.sig = args.sig
		}

		if len(stack) >= e.cfg.MaxDepth {
			return mdcode.Errorf(mdcode.ErrRecursionLimit, row, "depth %d", e.cfg.MaxDepth)
		}

		for _, f := range stack {
			if f == current {
				return mdcode.Errorf(mdcode.ErrCycle, row, "block %q is already being expanded", blockName(frag))
			}
		}

		stack = append(stack[:len(stack):len(stack)], current)

		if err := yield(location(frag.StartLine)); err != nil {
			return err
		}

		if err := emitLines(yield, indents, frag.Options.Prefix); err != nil {
			return err
		}

		for _, line := range frag.Lines {
			var err error

			if line.Ref == nil {
				err = emitLines(yield, indents, []string{line.Text})
			} else {
				err = e.reference(frag, line, args, indents, stack, yield)
			}

			if err != nil {
				return err
			}
		}

		return emitLines(yield, indents, frag.Options.Suffix)
	}
}

func (e *Engine) reference(frag *mdcode.Block, line mdcode.Line, args *env, indents []string, stack []frame, yield func(Step) error) error {
	ref := line.Ref

	targets, bound, err := e.resolve(ref.Target, args, line.Row)
	if err != nil {
		return err
	}

	for _, target := range targets {
		if target == frag {
			return mdcode.Errorf(mdcode.ErrSelfReference, line.Row, "%q", ref.Target)
		}

		if !bound && len(ref.Args) == 0 && target.Language != frag.Language {
			return mdcode.Errorf(mdcode.ErrLanguageMismatch, line.Row, "%s != %s", frag.Lang, target.Lang)
		}
	}

	inner, err := e.inject(targets[0], line, args)
	if err != nil {
		return err
	}

	indents = append(indents[:len(indents):len(indents)], ref.Indent)

	for i, target := range targets {
		if err := emitLines(yield, indents, ref.Prefix); err != nil {
			return err
		}

		step := Step{Kind: StepNested, Nested: e.fragment(target, inner, indents, stack, line.Row), Indents: indents}
		if i == len(targets)-1 {
			step.Trail = ref.Trail
		}

		if err := yield(step); err != nil {
			return err
		}

		if err := emitLines(yield, indents, ref.Suffix); err != nil {
			return err
		}

		if err := yield(location(line.Row)); err != nil {
			return err
		}
	}

	return nil
}

// resolve looks name up in the argument bindings, then in the index.
func (e *Engine) resolve(name string, args *env, row int) (mdcode.Blocks, bool, error) {
	if args != nil {
		if blocks, ok := args.bindings[name]; ok {
			return blocks, true, nil
		}
	}

	if blocks, ok := e.index.Lookup(name); ok {
		return blocks, false, nil
	}

	return nil, false, mdcode.Errorf(mdcode.ErrUnknownReference, row, "%q", name)
}

// inject binds the arguments of the reference on line to the names "0",
// "1", ... A literal becomes a one-line block in the language of target; a
// block argument is resolved against the caller's bindings first.
func (e *Engine) inject(target *mdcode.Block, line mdcode.Line, args *env) (*env, error) {
	if len(line.Ref.Args) == 0 {
		return nil, nil
	}

	inner := &env{bindings: make(map[string]mdcode.Blocks, len(line.Ref.Args))}
	sig := make([]string, 0, len(line.Ref.Args))

	for i, arg := range line.Ref.Args {
		name := strconv.Itoa(i)

		switch arg.Kind {
		case mdcode.Literal:
			inner.bindings[name] = mdcode.Blocks{{
				Lang:      target.Lang,
				Language:  target.Language,
				Lines:     []mdcode.Line{{Row: line.Row, Text: arg.Value}},
				StartLine: line.Row - 1,
				EndLine:   line.Row,
			}}
			sig = append(sig, name+"=lit:"+strconv.Quote(arg.Value))
		case mdcode.BlockRef:
			blocks, _, err := e.resolve(arg.Value, args, line.Row)
			if err != nil {
				return nil, err
			}

			inner.bindings[name] = blocks
			sig = append(sig, fmt.Sprintf("%s=ref:%p", name, blocks[0]))
		}
	}

	inner.sig = strings.Join(sig, ";")

	return inner, nil
}

func blockName(b *mdcode.Block) string {
	if len(b.Name) != 0 {
		return b.Name
	}

	return fmt.Sprintf("%s block at line %d", b.Lang, b.StartLine)
}
