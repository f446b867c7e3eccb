// Package check reports suspicious but legal constructs in a script:
// choices that lead nowhere, scenes no choice leads to, scene names that
// only differ by case or surrounding whitespace, and empty scenes.
//
// The script format allows all of these, so the checker never fails a
// document. Callers decide what to do with the report.
package check

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jwebster45206/script-editor/pkg/script"
	"golang.org/x/text/cases"
)

type Kind string

const (
	DanglingChoice   Kind = "dangling_choice"
	UnreachableScene Kind = "unreachable_scene"
	LookalikeNames   Kind = "lookalike_names"
	EmptyScene       Kind = "empty_scene"
)

// Issue is one finding. Index is the choice index for DanglingChoice and
// -1 otherwise.
type Issue struct {
	Kind   Kind   `json:"kind"`
	Scene  string `json:"scene"`
	Index  int    `json:"index"`
	Detail string `json:"detail"`
}

func (i Issue) String() string {
	if i.Index >= 0 {
		return fmt.Sprintf("%s: scene %q choice %d: %s", i.Kind, i.Scene, i.Index, i.Detail)
	}
	return fmt.Sprintf("%s: scene %q: %s", i.Kind, i.Scene, i.Detail)
}

type Report struct {
	Issues []Issue `json:"issues"`
}

func (r Report) Clean() bool {
	return len(r.Issues) == 0
}

// Count returns the number of issues of the given kind.
func (r Report) Count(kind Kind) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Kind == kind {
			n++
		}
	}
	return n
}

// Run checks doc. Issues are grouped by kind and ordered by scene order
// within each kind.
func Run(doc *script.Document) Report {
	names := doc.Names()
	var report Report

	referenced := make(map[string]bool)
	for _, name := range names {
		scene, _ := doc.Scene(name)
		for i, c := range scene.Choices {
			referenced[c.NextScene] = true
			if !doc.Has(c.NextScene) {
				report.add(DanglingChoice, name, i, fmt.Sprintf("next scene %q does not exist", c.NextScene))
			}
		}
	}

	// The first scene is the entry point and needs no incoming choice.
	for i, name := range names {
		if i > 0 && !referenced[name] {
			report.add(UnreachableScene, name, -1, "no choice leads here")
		}
	}

	for _, group := range lookalikes(names) {
		quoted := make([]string, len(group))
		for i, n := range group {
			quoted[i] = fmt.Sprintf("%q", n)
		}
		report.add(LookalikeNames, group[0], -1, "looks like "+strings.Join(quoted[1:], ", "))
	}

	for _, name := range names {
		scene, _ := doc.Scene(name)
		if len(scene.Dialogue) == 0 && len(scene.Choices) == 0 {
			report.add(EmptyScene, name, -1, "no dialogue and no choices")
		}
	}

	return report
}

func (r *Report) add(kind Kind, scene string, index int, detail string) {
	r.Issues = append(r.Issues, Issue{Kind: kind, Scene: scene, Index: index, Detail: detail})
}

// lookalikes groups names that are equal after trimming and case folding.
// Groups keep document order and are ordered by their first member.
func lookalikes(names []string) [][]string {
	fold := cases.Fold()
	groups := make(map[string][]string)
	first := make(map[string]int)
	for i, name := range names {
		key := normalize(fold, name)
		if _, ok := first[key]; !ok {
			first[key] = i
		}
		groups[key] = append(groups[key], name)
	}

	var out [][]string
	for _, g := range groups {
		if len(g) > 1 {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return first[normalize(fold, out[i][0])] < first[normalize(fold, out[j][0])]
	})
	return out
}

func normalize(fold cases.Caser, name string) string {
	return fold.String(strings.TrimSpace(name))
}
