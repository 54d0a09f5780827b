package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ErrNoSources is returned by DiscoverSources when nothing matches.
var ErrNoSources = errors.New("no form images found")

var numericSuffix = regexp.MustCompile(`(\d+)$`)

// DiscoverSources finds the scans in dir matching glob and orders them by
// the number at the end of their base name (formulario_2.png before
// formulario_10.png). That number, as written, becomes the form ID. Files
// without a numeric suffix are ignored.
func DiscoverSources(dir, glob string) ([]Source, error) {
	matches, err := filepath.Glob(filepath.Join(dir, glob))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", glob, err)
	}

	type numbered struct {
		src Source
		n   uint64
	}
	var found []numbered
	for _, path := range matches {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		m := numericSuffix.FindString(base)
		if m == "" {
			continue
		}
		n, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			continue
		}
		found = append(found, numbered{src: Source{ID: m, Path: path}, n: n})
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSources, filepath.Join(dir, glob))
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].n != found[j].n {
			return found[i].n < found[j].n
		}
		return found[i].src.Path < found[j].src.Path
	})

	sources := make([]Source, len(found))
	for i, f := range found {
		sources[i] = f.src
	}
	return sources, nil
}
