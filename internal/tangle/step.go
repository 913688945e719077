package tangle

import "strings"

// StepKind identifies an emission step.
type StepKind int

const (
	StepText StepKind = iota
	StepIndent
	StepLocation
	StepNested
)

// Step is one unit of expanded output.
//
// A location step asks for a directive pointing at Line+1 of the source
// document. An indent step carries the indentation of the next text step.
// A nested step splices the expansion of another block; Trail is appended
// to its last line, and Indents are those of the expansion.
type Step struct {
	Kind    StepKind
	Text    string
	Indents []string
	Line    int
	Nested  Sequence
	Trail   string
}

// Sequence produces steps lazily, stopping at the first error returned by
// yield or met while expanding.
type Sequence func(yield func(Step) error) error

func text(s string) Step { return Step{Kind: StepText, Text: s} }

func indent(indents []string) Step { return Step{Kind: StepIndent, Indents: indents} }

func location(line int) Step { return Step{Kind: StepLocation, Line: line} }

// Flatten collects seq into a flat slice of non-nested steps. The trail of
// a nested step is joined to its last text step, before the line
// terminator, as Formatter writes it.
func Flatten(seq Sequence) ([]Step, error) {
	var steps []Step

	var collect func(Step) error

	collect = func(step Step) error {
		if step.Kind != StepNested {
			steps = append(steps, step)

			return nil
		}

		start := len(steps)

		if err := step.Nested(collect); err != nil {
			return err
		}

		if len(step.Trail) != 0 {
			steps = appendTrail(steps, start, step)
		}

		return nil
	}

	if err := seq(collect); err != nil {
		return nil, err
	}

	return steps, nil
}

func appendTrail(steps []Step, start int, nested Step) []Step {
	for i := len(steps) - 1; i >= start; i-- {
		last := steps[i].Text
		if steps[i].Kind != StepText || len(last) == 0 {
			continue
		}

		if strings.HasSuffix(last, "\n") {
			steps[i].Text = last[:len(last)-1] + nested.Trail + "\n"
		} else {
			steps[i].Text = last + nested.Trail
		}

		return steps
	}

	return append(steps, indent(nested.Indents), text(nested.Trail+"\n"))
}
