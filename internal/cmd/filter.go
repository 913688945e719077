package cmd

import (
	"fmt"
	"strings"

	"github.com/ezerfernandes/mdtangle/internal/mdcode"
	"github.com/ezerfernandes/mdtangle/internal/region"
	"github.com/gobwas/glob"
)

type filterFunc func(name, lang string) bool

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}

		globs = append(globs, g)
	}

	return globs, nil
}

func matchAny(globs []glob.Glob, value string) bool {
	for _, g := range globs {
		if g.Match(value) {
			return true
		}
	}

	return false
}

// filter selects root blocks whose name matches one of names and whose
// language matches one of langs. An empty list matches everything.
func filter(names, langs []string) (filterFunc, error) {
	nameGlobs, err := compileGlobs(names)
	if err != nil {
		return nil, err
	}

	langGlobs, err := compileGlobs(langs)
	if err != nil {
		return nil, err
	}

	return func(name, lang string) bool {
		if len(nameGlobs) != 0 && !matchAny(nameGlobs, name) {
			return false
		}

		return len(langGlobs) == 0 || matchAny(langGlobs, lang)
	}, nil
}

// target is a root block and the file it is tangled into.
type target struct {
	name   string
	path   string
	region string
	lang   mdcode.Language
}

func renames(pairs []string, base map[string]string) (map[string]string, error) {
	res := make(map[string]string, len(base)+len(pairs))

	for k, v := range base {
		res[k] = v
	}

	for _, pair := range pairs {
		from, to, found := strings.Cut(pair, ":")
		if !found || len(from) == 0 || len(to) == 0 {
			return nil, fmt.Errorf("%w: %q", errInvalidRename, pair)
		}

		res[from] = to
	}

	return res, nil
}

// targets lists the root blocks of index selected by match, in document
// order.
func targets(index *mdcode.Index, match filterFunc, rename map[string]string) []target {
	var res []target

	for _, name := range index.Names() {
		frags, _ := index.Lookup(name)
		first := frags[0]

		if !match(name, first.Lang) {
			continue
		}

		dest := name
		if file := first.Meta.Get(metaFile); len(file) != 0 {
			dest = file
		}

		tg := target{name: name, path: dest, lang: first.Language}
		if path, section, ok := region.Split(dest); ok {
			tg.path, tg.region = path, section
		}

		if renamed, ok := rename[tg.path]; ok {
			tg.path = renamed
		}

		res = append(res, tg)
	}

	return res
}

const metaFile = "file"

var errInvalidRename = fmt.Errorf("invalid rename, expected OLD_NAME:NEW_NAME")
