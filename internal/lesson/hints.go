package lesson

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// FieldHint names a descriptor key that no field reads.
type FieldHint struct {
	Field      string // dotted path, e.g. steps[2].mediatype
	Suggestion string // closest known key, empty when nothing is close
}

const maxHintDistance = 3

var (
	descriptorKeys = []string{"id", "title", "intro", "tagline", "memberOnly", "preChecklist",
		"checklistInstructions", "steps", "reflectionPrompts", "reactions", "nextSteps"}
	stepKeys     = []string{"title", "duration", "description", "mediaFile", "mediaType", "tips"}
	reactionKeys = []string{"id", "emoji", "label"}
	nextStepKeys = []string{"title", "description", "link", "buttonText"}
)

func unknownFields(tree map[string]any) []FieldHint {
	hints := checkKeys("", tree, descriptorKeys)
	hints = append(hints, checkList("steps", tree["steps"], stepKeys)...)
	hints = append(hints, checkList("reactions", tree["reactions"], reactionKeys)...)
	hints = append(hints, checkList("nextSteps", tree["nextSteps"], nextStepKeys)...)
	return hints
}

func checkList(name string, v any, known []string) []FieldHint {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var hints []FieldHint
	for i, item := range items {
		if m, ok := item.(map[string]any); ok {
			hints = append(hints, checkKeys(fmt.Sprintf("%s[%d].", name, i), m, known)...)
		}
	}
	return hints
}

func checkKeys(prefix string, m map[string]any, known []string) []FieldHint {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var hints []FieldHint
	for _, k := range keys {
		if contains(known, k) {
			continue
		}
		hints = append(hints, FieldHint{Field: prefix + k, Suggestion: closest(k, known)})
	}
	return hints
}

func closest(key string, known []string) string {
	best, bestDist := "", maxHintDistance+1
	for _, k := range known {
		d := levenshtein.ComputeDistance(strings.ToLower(key), strings.ToLower(k))
		if d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
