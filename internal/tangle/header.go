package tangle

import "github.com/ezerfernandes/mdtangle/internal/mdcode"

// Header returns the generated-file warning for lang, one comment per
// line. It is empty for languages without comments.
func Header(lang mdcode.Language, source, command string) []string {
	first := lang.Comment("Code generated from " + source + "; DO NOT EDIT.")
	if len(first) == 0 {
		return nil
	}

	return []string{first, lang.Comment("Command used: " + command)}
}
