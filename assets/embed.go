// Package assets embeds the default word lists.
//
//   - categories/<name>.txt: secret candidates, one category per file.
//   - allowed.txt: extra valid guesses that are never secrets.
package assets

import (
	"bufio"
	"embed"
	"io"
	"io/fs"
	"path"
	"strings"
)

//go:embed categories/*.txt allowed.txt
var FS embed.FS

// ReadLines returns the non-empty, non-comment lines of r, upper-cased.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToUpper(s))
	}
	return out, sc.Err()
}

func readLines(fsys fs.FS, name string) ([]string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// CategoryLists reads every categories/*.txt file from fsys, keyed by the
// upper-cased file stem.
func CategoryLists(fsys fs.FS, dir string) (map[string][]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".txt" {
			continue
		}
		lines, err := readLines(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out[strings.ToUpper(strings.TrimSuffix(e.Name(), ".txt"))] = lines
	}
	return out, nil
}

// Categories returns the embedded category lists.
func Categories() (map[string][]string, error) {
	return CategoryLists(FS, "categories")
}

// AllowedList returns the embedded extra guesses.
func AllowedList() ([]string, error) {
	return readLines(FS, "allowed.txt")
}
