package mdcode

// Index maps block names to their fragments in document order.
type Index struct {
	chains []Blocks
	byName map[string]int
}

// NewIndex chains blocks into named blocks. An unnamed block continues the
// last named one and must declare --continue and share its language and
// indentation. A name is bound by its first block; a later block with the
// same name starts a chain of its own that can not be looked up.
func NewIndex(blocks Blocks) (*Index, error) {
	idx := &Index{byName: make(map[string]int)}
	last := -1

	for _, block := range blocks {
		if len(block.Name) != 0 {
			last = len(idx.chains)
			idx.chains = append(idx.chains, Blocks{block})

			if _, has := idx.byName[block.Name]; !has {
				idx.byName[block.Name] = last
			}

			continue
		}

		if last < 0 {
			return nil, Errorf(ErrOrphanBlock, block.StartLine, "")
		}

		owner := idx.chains[last][0]

		if !block.Options.Continue {
			return nil, Errorf(ErrMissingContinue, block.StartLine, "block %q", owner.Name)
		}

		if !sameLanguage(block, owner) {
			return nil, Errorf(ErrLanguageMismatch, block.StartLine, "%s != %s", block.Lang, owner.Lang)
		}

		if block.Indent != owner.Indent {
			return nil, Errorf(ErrIndentMismatch, block.StartLine, "%q != %q", block.Indent, owner.Indent)
		}

		idx.chains[last] = append(idx.chains[last], block)
	}

	return idx, nil
}

func sameLanguage(a, b *Block) bool {
	if a.Language != NoLanguage || b.Language != NoLanguage {
		return a.Language == b.Language
	}

	return a.Lang == b.Lang
}

// Lookup returns the fragments of the named block.
func (idx *Index) Lookup(name string) (Blocks, bool) {
	i, ok := idx.byName[name]
	if !ok {
		return nil, false
	}

	return idx.chains[i], true
}

// Names returns the block names in order of first appearance.
func (idx *Index) Names() []string {
	names := make([]string, 0, len(idx.byName))

	for i, chain := range idx.chains {
		if idx.byName[chain[0].Name] == i {
			names = append(names, chain[0].Name)
		}
	}

	return names
}
