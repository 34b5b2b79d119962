package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, Aggregate([]TagMapping{}))
}

func TestAggregate_Single(t *testing.T) {
	in := TagMapping{"ARTIST": {"A"}, "GENRE": {"Rock", "Pop"}}
	got := Aggregate([]TagMapping{in})
	assert.Equal(t, in, got)

	got["ARTIST"][0] = "changed"
	assert.Equal(t, "A", in.First("ARTIST"), "input must not be modified")
}

func TestAggregate_Scenario(t *testing.T) {
	got := Aggregate([]TagMapping{
		{"ARTIST": {"A"}, "ALBUM": {"X"}},
		{"ARTIST": {"A"}, "ALBUM": {"X"}},
		{"ARTIST": {"B"}, "ALBUM": {"X"}},
	})

	assert.Equal(t, TagMapping{"ARTIST": {Conflict}, "ALBUM": {"X"}}, got)
}

func TestAggregate_IdenticalValuesKept(t *testing.T) {
	m := TagMapping{"ALBUM": {"X"}, "GENRE": {"Rock", "Pop"}}
	got := Aggregate([]TagMapping{m, m.Clone(), m.Clone(), m.Clone()})
	assert.Equal(t, m, got)
}

func TestAggregate_PartialPresenceIsConflict(t *testing.T) {
	tests := []struct {
		name string
		in   []TagMapping
	}{
		{"only in first", []TagMapping{{"LABEL": {"L"}}, {}}},
		{"only in later", []TagMapping{{}, {"LABEL": {"L"}}}},
		{"only in middle", []TagMapping{{}, {"LABEL": {"L"}}, {}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.in)
			assert.True(t, got.IsConflict("LABEL"))
		})
	}
}

func TestAggregate_ValueOrderMatters(t *testing.T) {
	got := Aggregate([]TagMapping{
		{"GENRE": {"Rock", "Pop"}},
		{"GENRE": {"Pop", "Rock"}},
	})
	assert.True(t, got.IsConflict("GENRE"))
}

func TestAggregate_ConflictIsTerminal(t *testing.T) {
	// The third file matches the first again; the tag must stay flagged.
	got := Aggregate([]TagMapping{
		{"ARTIST": {"A"}},
		{"ARTIST": {"B"}},
		{"ARTIST": {"A"}},
	})
	assert.True(t, got.IsConflict("ARTIST"))

	// A literal "~" in a later file must not look like agreement either.
	got = Aggregate([]TagMapping{
		{"ARTIST": {"A"}},
		{"ARTIST": {"B"}},
		{"ARTIST": {Conflict}},
	})
	assert.True(t, got.IsConflict("ARTIST"))
}

func TestAggregate_OrderIndependent(t *testing.T) {
	files := []TagMapping{
		{"ARTIST": {"A"}, "ALBUM": {"X"}, "YEAR": {"1999"}},
		{"ARTIST": {"A"}, "ALBUM": {"X"}},
		{"ARTIST": {"B"}, "ALBUM": {"X"}, "YEAR": {"1999"}},
		{"ARTIST": {"A"}, "ALBUM": {"X"}, "YEAR": {"1999"}},
	}
	want := TagMapping{"ARTIST": {Conflict}, "ALBUM": {"X"}, "YEAR": {Conflict}}

	for _, perm := range permutations(len(files)) {
		t.Run(fmt.Sprint(perm), func(t *testing.T) {
			ordered := make([]TagMapping, len(perm))
			for i, idx := range perm {
				ordered[i] = files[idx]
			}
			assert.Equal(t, want, Aggregate(ordered))
		})
	}
}

func permutations(n int) [][]int {
	if n == 1 {
		return [][]int{{0}}
	}
	var out [][]int
	for _, p := range permutations(n - 1) {
		for i := 0; i <= len(p); i++ {
			perm := make([]int, 0, n)
			perm = append(perm, p[:i]...)
			perm = append(perm, n-1)
			perm = append(perm, p[i:]...)
			out = append(out, perm)
		}
	}
	return out
}
