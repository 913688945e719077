package tangle

import (
	"bufio"
	"io"
	"strings"

	"github.com/ezerfernandes/mdtangle/internal/mdcode"
)

// Formatter renders steps as text.
type Formatter struct {
	Language mdcode.Language
	// Source is the document path written in location directives.
	Source string
	// NoDirectives drops location directives from the output.
	NoDirectives bool
}

// Format writes the steps of seq to w in a single pass.
func (f *Formatter) Format(w io.Writer, seq Sequence) error {
	buf := bufio.NewWriter(w)

	if err := f.format(buf, seq); err != nil {
		return err
	}

	return buf.Flush()
}

func (f *Formatter) format(w io.Writer, seq Sequence) error {
	return seq(func(step Step) error {
		var err error

		switch step.Kind {
		case StepText:
			_, err = io.WriteString(w, step.Text)
		case StepIndent:
			_, err = io.WriteString(w, strings.Join(step.Indents, ""))
		case StepLocation:
			err = f.location(w, step.Line)
		case StepNested:
			err = f.nested(w, step)
		}

		return err
	})
}

func (f *Formatter) location(w io.Writer, line int) error {
	if f.NoDirectives {
		return nil
	}

	directive := f.Language.Directive(f.Source, line+1)
	if len(directive) == 0 {
		return nil
	}

	_, err := io.WriteString(w, directive+"\n")

	return err
}

func (f *Formatter) nested(w io.Writer, step Step) error {
	if len(step.Trail) == 0 {
		return f.format(w, step.Nested)
	}

	tw := &trailWriter{w: w}
	if err := f.format(tw, step.Nested); err != nil {
		return err
	}

	return tw.finish(step.Indents, step.Trail)
}

// trailWriter holds back a final newline so that text can be appended to
// the last line written through it.
type trailWriter struct {
	w     io.Writer
	held  bool
	wrote bool
}

func (t *trailWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if t.held {
		if _, err := io.WriteString(t.w, "\n"); err != nil {
			return 0, err
		}

		t.held = false
	}

	t.wrote = true

	n := len(p)
	if p[n-1] == '\n' {
		p = p[:n-1]
		t.held = true
	}

	if _, err := t.w.Write(p); err != nil {
		return 0, err
	}

	return n, nil
}

// finish appends trail to the last line. When nothing was written the
// trail gets a line of its own, indented like the expansion would be.
func (t *trailWriter) finish(indents []string, trail string) error {
	if !t.wrote {
		_, err := io.WriteString(t.w, strings.Join(indents, "")+trail+"\n")

		return err
	}

	if _, err := io.WriteString(t.w, trail); err != nil {
		return err
	}

	if t.held {
		_, err := io.WriteString(t.w, "\n")

		return err
	}

	return nil
}
