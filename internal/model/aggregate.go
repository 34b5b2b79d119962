package model

import "slices"

// Aggregate merges per-file tag mappings into one.
//
// The first mapping is the baseline. Every later mapping is compared name
// by name against the running result: a name whose values match stays as
// is, any other name (different values, or present on only one side) is
// replaced by the conflict marker and closed. A closed name is never
// compared again, so a later file that happens to match an earlier value
// cannot undo the conflict.
//
// The final result does not depend on file order: a name keeps its value
// only if every mapping carries exactly that value.
//
// Example:
//
//	Aggregate([]TagMapping{
//	    {"ARTIST": {"A"}, "ALBUM": {"X"}},
//	    {"ARTIST": {"A"}, "ALBUM": {"X"}},
//	    {"ARTIST": {"B"}, "ALBUM": {"X"}},
//	})
//	// {"ARTIST": {"~"}, "ALBUM": {"X"}}
func Aggregate(mappings []TagMapping) TagMapping {
	if len(mappings) == 0 {
		return TagMapping{}
	}

	result := mappings[0].Clone()
	decided := make(map[string]struct{})

	for _, next := range mappings[1:] {
		for _, name := range openNames(result, next, decided) {
			current, inResult := result[name]
			incoming, inNext := next[name]
			if inResult && inNext && slices.Equal(current, incoming) {
				continue
			}
			result[name] = []string{Conflict}
			decided[name] = struct{}{}
		}
	}

	return result
}

// openNames returns the union of names in a and b that are not decided yet.
func openNames(a, b TagMapping, decided map[string]struct{}) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	var names []string
	for _, m := range []TagMapping{a, b} {
		for name := range m {
			if _, ok := decided[name]; ok {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}
