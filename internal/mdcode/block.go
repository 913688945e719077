package mdcode

// Block is one fenced code fragment. Name is empty on continuation fragments.
type Block struct {
	Name      string
	Lang      string
	Language  Language
	Indent    string
	Options   Options
	Meta      Meta
	Lines     []Line
	StartLine int
	EndLine   int
}

type Blocks []*Block

// Line is a line of a block, stripped of the block indentation and of its
// line terminator. Ref is set when the line is a reference to another block.
type Line struct {
	Row  int
	Text string
	Ref  *Reference
}

// Reference is a line that is replaced by the expansion of Target.
type Reference struct {
	Indent string
	Target string
	Trail  string
	Args   []Arg
	Prefix []string
	Suffix []string
}

type ArgKind int

const (
	Literal ArgKind = iota
	BlockRef
)

func (k ArgKind) String() string {
	if k == BlockRef {
		return "ref"
	}

	return "lit"
}

// Arg is a positional template argument of a reference. Value holds the
// literal text or the name of the referenced block.
type Arg struct {
	Kind  ArgKind
	Value string
}

// References returns the number of reference lines in the block.
func (b *Block) References() int {
	n := 0

	for _, line := range b.Lines {
		if line.Ref != nil {
			n++
		}
	}

	return n
}
