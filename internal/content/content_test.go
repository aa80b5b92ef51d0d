package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jserr "jokeserver/internal/errors"
)

// TestItem_Render verifies the placeholder is replaced by the name
// everywhere it appears.
func TestItem_Render(t *testing.T) {
	tests := []struct {
		item Item
		name string
		want string
	}{
		{"JA <name-holder>: hi", "Ann", "JA Ann: hi"},
		{"no placeholder", "Ann", "no placeholder"},
		{"<name-holder> and <name-holder>", "Bo", "Bo and Bo"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.item.Render(tt.name))
	}
}

// TestNewSet_Empty verifies an empty set is ErrEmptyContent.
func TestNewSet_Empty(t *testing.T) {
	_, err := NewSet(Joke, nil)
	require.Error(t, err)
	assert.True(t, jserr.Is(err, jserr.ErrEmptyContent))
	assert.Contains(t, err.Error(), "joke")
}

// TestNewSet_CopiesInput verifies a Set is not affected by later
// changes to its input slice.
func TestNewSet_CopiesInput(t *testing.T) {
	items := []string{"a", "b"}
	s, err := NewSet(Proverb, items)
	require.NoError(t, err)

	items[0] = "mutated"
	assert.Equal(t, Item("a"), s.Item(0))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, Proverb, s.Category())
}

// TestDefault verifies the built-in library has four jokes and four
// proverbs.
func TestDefault(t *testing.T) {
	lib := Default()
	for _, c := range Categories {
		s, err := lib.Set(c)
		require.NoError(t, err)
		assert.Equal(t, 4, s.Len())
		for i := 0; i < s.Len(); i++ {
			assert.Contains(t, string(s.Item(i)), Placeholder)
		}
	}
	assert.True(t, strings.HasPrefix(string(lib.MustSet(Joke).Item(0)), "JA"))
	assert.True(t, strings.HasPrefix(string(lib.MustSet(Proverb).Item(3)), "PD"))
}

// TestLibrary_UnknownCategory verifies an out-of-range category is
// ErrUnknownCategory.
func TestLibrary_UnknownCategory(t *testing.T) {
	_, err := Default().Set(Category(7))
	require.Error(t, err)
	assert.True(t, jserr.Is(err, jserr.ErrUnknownCategory))
}

// TestLoad verifies content files override, fall back or fail per key.
func TestLoad(t *testing.T) {
	tests := []struct {
		name         string
		yaml         string
		wantJokes    int
		wantProverbs int
		wantErr      bool
	}{
		{"both", "jokes: [a, b]\nproverbs: [c]\n", 2, 1, false},
		{"jokes only", "jokes: [a]\n", 1, 4, false},
		{"empty document", "", 4, 4, false},
		{"explicit empty", "jokes: []\n", 0, 0, true},
		{"null list", "jokes:\n", 0, 0, true},
		{"not a list", "jokes: {a: b}\n", 0, 0, true},
		{"unknown key", "limericks: [x]\n", 0, 0, true},
		{"not yaml", "jokes: [unterminated\n", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib, err := Load(strings.NewReader(tt.yaml))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantJokes, lib.MustSet(Joke).Len())
			assert.Equal(t, tt.wantProverbs, lib.MustSet(Proverb).Len())
		})
	}
}

// TestLoad_ExplicitEmptyIsEmptyContent verifies an empty list is
// ErrEmptyContent.
func TestLoad_ExplicitEmptyIsEmptyContent(t *testing.T) {
	_, err := Load(strings.NewReader("proverbs: []\n"))
	require.Error(t, err)
	assert.True(t, jserr.Is(err, jserr.ErrEmptyContent))
}

// TestLoad_NullListIsEmptyContent verifies that a key left without
// items (every entry commented out) fails instead of falling back to
// the built-in content.
func TestLoad_NullListIsEmptyContent(t *testing.T) {
	for _, doc := range []string{
		"jokes:\n",
		"jokes: ~\n",
		"proverbs: null\n",
		"jokes:\n  # - \"J0\"\n  # - \"J1\"\nproverbs: [p]\n",
	} {
		_, err := Load(strings.NewReader(doc))
		require.Error(t, err, doc)
		assert.True(t, jserr.Is(err, jserr.ErrEmptyContent), "%q: %v", doc, err)
	}
}

// TestLoadFile verifies LoadFile reads from disk and reports missing
// files.
func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jokes:\n  - \"<name-holder> knocks\"\n"), 0o600))

	lib, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Ann knocks", lib.MustSet(Joke).Item(0).Render("Ann"))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
