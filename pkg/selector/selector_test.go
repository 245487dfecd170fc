package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorDisplayText(t *testing.T) {
	assert.Equal(t, "", None().String())
	assert.Equal(t, "blubb", ObjectKey("blubb").String())
	assert.Equal(t, "42", ArrayIndex(42).String())
}

func TestSelectorEquality(t *testing.T) {
	assert.Equal(t, ObjectKey("a"), ObjectKey("a"))
	assert.NotEqual(t, ObjectKey("a"), ObjectKey("b"))
	assert.NotEqual(t, ObjectKey("1"), ArrayIndex(1))
	assert.Equal(t, None(), Selector{})

	// Selectors are valid map keys; expansion state in the UI relies on it.
	seen := map[Selector]bool{ArrayIndex(3): true}
	assert.True(t, seen[ArrayIndex(3)])
}

func TestSelectorAccessors(t *testing.T) {
	key, ok := ObjectKey("x").Key()
	require.True(t, ok)
	assert.Equal(t, "x", key)
	_, ok = ObjectKey("x").Index()
	assert.False(t, ok)

	idx, ok := ArrayIndex(7).Index()
	require.True(t, ok)
	assert.Equal(t, 7, idx)
	_, ok = ArrayIndex(7).Key()
	assert.False(t, ok)

	assert.True(t, None().IsNone())
	assert.False(t, ObjectKey("").IsNone())
}

func TestPathString(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{"root", Path{}, "$"},
		{"plain keys", Path{ObjectKey("users"), ArrayIndex(2), ObjectKey("name")}, "$.users[2].name"},
		{"quoted key", Path{ObjectKey("dotted.key")}, `$["dotted.key"]`},
		{"empty key", Path{ObjectKey("")}, `$[""]`},
		{"none renders nothing", Path{None()}, "$"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.path.String())
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Path
	}{
		{"", Path{}},
		{"$", Path{}},
		{"users.2.name", Path{ObjectKey("users"), ArrayIndex(2), ObjectKey("name")}},
		{"$.users[2].name", Path{ObjectKey("users"), ArrayIndex(2), ObjectKey("name")}},
		{`items["dotted.key"][0]`, Path{ObjectKey("dotted.key"), ArrayIndex(0)}},
		{"a[10]", Path{ObjectKey("a"), ArrayIndex(10)}},
	}
	for _, tc := range tests {
		got, err := Parse(tc.input)
		require.NoError(t, err, "Parse(%q)", tc.input)
		assert.True(t, got.Equal(tc.want), "Parse(%q) = %v, want %v", tc.input, got, tc.want)
	}
}

func TestParseRoundTrip(t *testing.T) {
	paths := []Path{
		{},
		{ObjectKey("a"), ObjectKey("b")},
		{ObjectKey("users"), ArrayIndex(0), ObjectKey("tags"), ArrayIndex(3)},
		{ObjectKey("with space")},
	}
	for _, p := range paths {
		got, err := Parse(p.String())
		require.NoError(t, err, "Parse(%q)", p.String())
		assert.True(t, got.Equal(p), "round trip of %q", p.String())
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"a[", "a[x]", "a[-1]", `a["unterminated]`} {
		_, err := Parse(input)
		assert.Error(t, err, "Parse(%q)", input)
	}
}

func TestPathChildDoesNotAliasParent(t *testing.T) {
	base := make(Path, 0, 4)
	base = append(base, ObjectKey("a"))
	left := base.Child(ObjectKey("left"))
	right := base.Child(ObjectKey("right"))
	assert.Equal(t, "$.a.left", left.String())
	assert.Equal(t, "$.a.right", right.String())
}
