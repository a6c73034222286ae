// Package manifest builds the exported project's package.json. Dependency
// sets from the base template and the selected adapter are merged with the
// adapter taking precedence on name collisions; instead of overriding
// silently, every collision is reported so the caller can surface it, and
// collisions whose version ranges cannot overlap are flagged as disjoint.
package manifest

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DepSet maps npm package names to version-range strings.
type DepSet map[string]string

// Conflict records a name collision between the base template and adapter
// dependency declarations.
type Conflict struct {
	Name         string
	BaseRange    string
	AdapterRange string
	// Disjoint is true when the two ranges cannot be satisfied by any single
	// version, meaning the adapter's precedence changed the effective pin.
	Disjoint bool
}

func (c Conflict) String() string {
	sev := "overlapping"
	if c.Disjoint {
		sev = "disjoint"
	}
	return fmt.Sprintf("%s: base wants %q, adapter wants %q (%s; adapter wins)",
		c.Name, c.BaseRange, c.AdapterRange, sev)
}

// Merge combines base and adapter dependency sets. The adapter's range wins
// on collision; every collision with a differing range is reported, sorted by
// name so identical inputs always produce the same warning order.
func Merge(base, adapter DepSet) (DepSet, []Conflict) {
	out := make(DepSet, len(base)+len(adapter))
	for name, r := range base {
		out[name] = r
	}

	names := make([]string, 0, len(adapter))
	for name := range adapter {
		names = append(names, name)
	}
	sort.Strings(names)

	var conflicts []Conflict
	for _, name := range names {
		r := adapter[name]
		if prev, ok := out[name]; ok && prev != r {
			conflicts = append(conflicts, Conflict{
				Name:         name,
				BaseRange:    prev,
				AdapterRange: r,
				Disjoint:     !rangesOverlap(prev, r),
			})
		}
		out[name] = r
	}
	return out, conflicts
}

// versionRe extracts version literals from a range string.
var versionRe = regexp.MustCompile(`\d+(?:\.\d+)?(?:\.\d+)?(?:-[0-9A-Za-z.-]+)?`)

// rangesOverlap reports whether two npm-style ranges can plausibly be
// satisfied by one version. Each range's version literals are tested against
// the other range's constraint; overlap checking between arbitrary ranges is
// undecidable from literals alone, so an unparseable range is treated as
// overlapping (the conflict is still reported, just not as disjoint).
func rangesOverlap(a, b string) bool {
	ca, errA := semver.NewConstraint(a)
	cb, errB := semver.NewConstraint(b)
	if errA != nil || errB != nil {
		return true
	}
	for _, lit := range append(versionRe.FindAllString(a, -1), versionRe.FindAllString(b, -1)...) {
		v, err := semver.NewVersion(lit)
		if err != nil {
			continue
		}
		if ca.Check(v) && cb.Check(v) {
			return true
		}
	}
	return false
}

// packageJSON is the generated manifest layout. Maps serialize with sorted
// keys, so output is deterministic.
type packageJSON struct {
	Name            string            `json:"name"`
	Private         bool              `json:"private"`
	Version         string            `json:"version"`
	Type            string            `json:"type"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    DepSet            `json:"dependencies"`
	DevDependencies DepSet            `json:"devDependencies"`
}

// Render produces the package.json content for the exported project.
func Render(projectName string, deps, devDeps DepSet) ([]byte, error) {
	pkg := packageJSON{
		Name:    sanitizeName(projectName),
		Private: true,
		Version: "0.1.0",
		Type:    "module",
		Scripts: map[string]string{
			"dev":     "vite",
			"build":   "tsc -b && vite build",
			"preview": "vite preview",
		},
		Dependencies:    deps,
		DevDependencies: devDeps,
	}
	out, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal package.json: %w", err)
	}
	return append(out, '\n'), nil
}

// sanitizeName converts a project name into a valid npm package name.
func sanitizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '.' || r == '_' {
			return r
		}
		return '-'
	}, s)
	s = strings.Trim(s, "-._")
	if s == "" {
		s = "txforge-form"
	}
	return s
}
