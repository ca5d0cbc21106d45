// Package fixtures ships the seeded-bug source files served to external
// review tools, together with the catalog of defects they are expected to
// report.
//
// Sources live under testdata/seeded so the Go toolchain never compiles them.
// Every defect is annotated in place with a "// BUG:" or "// ISSUE:" comment
// directly above the offending statement.
package fixtures

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

//go:embed testdata/seeded/*.go
var seeded embed.FS

const seededDir = "testdata/seeded"

// ErrUnknownFixture is returned for a name that is not in List().
var ErrUnknownFixture = errors.New("unknown fixture")

// Kind classifies a marker.
type Kind string

const (
	// KindBug marks a defect that crashes or corrupts at runtime.
	KindBug Kind = "BUG"
	// KindIssue marks a design or safety concern.
	KindIssue Kind = "ISSUE"
)

// Marker is one annotated defect.
type Marker struct {
	Fixture string `json:"fixture"`
	// Line holds the annotation comment, Target the statement it describes.
	Line   int    `json:"line"`
	Target int    `json:"target"`
	Kind   Kind   `json:"kind"`
	Note   string `json:"note"`
}

var markerRE = regexp.MustCompile(`^\s*//\s*(BUG|ISSUE):\s*(.*?)\s*$`)

// List returns the fixture names in lexical order.
func List() []string {
	entries, err := fs.ReadDir(seeded, seededDir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Source returns the text of a fixture.
func Source(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%q: %w", name, ErrUnknownFixture)
	}
	data, err := seeded.ReadFile(path.Join(seededDir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%q: %w", name, ErrUnknownFixture)
		}
		return "", fmt.Errorf("read fixture %q: %w", name, err)
	}
	return string(data), nil
}

// Markers returns the annotated defects of a fixture in line order.
func Markers(name string) ([]Marker, error) {
	src, err := Source(name)
	if err != nil {
		return nil, err
	}

	var (
		markers []Marker
		pending []int // indexes into markers still waiting for a target line
	)
	sc := bufio.NewScanner(strings.NewReader(src))
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := sc.Text()
		if m := markerRE.FindStringSubmatch(line); m != nil {
			markers = append(markers, Marker{
				Fixture: name,
				Line:    lineNo,
				Kind:    Kind(m[1]),
				Note:    m[2],
			})
			pending = append(pending, len(markers)-1)
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		for _, i := range pending {
			markers[i].Target = lineNo
		}
		pending = pending[:0]
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan fixture %q: %w", name, err)
	}
	return markers, nil
}

// AllMarkers returns the markers of every fixture.
func AllMarkers() ([]Marker, error) {
	var all []Marker
	for _, name := range List() {
		ms, err := Markers(name)
		if err != nil {
			return nil, err
		}
		all = append(all, ms...)
	}
	return all, nil
}

// Diff returns a unified diff between two fixtures. Identical fixtures
// produce an empty string.
func Diff(a, b string) (string, error) {
	srcA, err := Source(a)
	if err != nil {
		return "", err
	}
	srcB, err := Source(b)
	if err != nil {
		return "", err
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(srcA),
		B:        difflib.SplitLines(srcB),
		FromFile: a,
		ToFile:   b,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("diff %s %s: %w", a, b, err)
	}
	return text, nil
}

// Similarity returns the difflib match ratio of two fixtures, in [0, 1].
func Similarity(a, b string) (float64, error) {
	srcA, err := Source(a)
	if err != nil {
		return 0, err
	}
	srcB, err := Source(b)
	if err != nil {
		return 0, err
	}
	m := difflib.NewMatcher(difflib.SplitLines(srcA), difflib.SplitLines(srcB))
	return m.Ratio(), nil
}
