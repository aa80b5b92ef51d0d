// Package content holds the two immutable content sets served by
// jokeserver: jokes and proverbs.
package content

import (
	"fmt"
	"strings"

	jserr "jokeserver/internal/errors"
)

// Placeholder is replaced with the session's display name before an
// item is sent to a client.
const Placeholder = "<name-holder>"

// Category identifies one of the two content sets.
type Category int

const (
	Joke Category = iota
	Proverb
)

// Categories lists every category in a stable order.
var Categories = []Category{Joke, Proverb} //nolint:gochecknoglobals

func (c Category) String() string {
	switch c {
	case Joke:
		return "joke"
	case Proverb:
		return "proverb"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Item is a single content template.
type Item string

// Render substitutes the display name for every placeholder.
func (it Item) Render(name string) string {
	return strings.ReplaceAll(string(it), Placeholder, name)
}

// Set is an ordered, fixed-size list of items for one category.
// It is never mutated after construction.
type Set struct {
	category Category
	items    []Item
}

// NewSet copies items into a Set.  An empty list is a configuration
// error: a category with nothing in it cannot be served.
func NewSet(c Category, items []string) (*Set, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%s: %w", c, jserr.ErrEmptyContent)
	}
	s := &Set{category: c, items: make([]Item, len(items))}
	for i, v := range items {
		s.items[i] = Item(v)
	}
	return s, nil
}

// Category returns the set's category.
func (s *Set) Category() Category { return s.category }

// Len returns the number of items.
func (s *Set) Len() int { return len(s.items) }

// Item returns the i-th item.  It panics if i is out of range, which
// would mean a cursor was built for a different set.
func (s *Set) Item(i int) Item { return s.items[i] }

// Library bundles the joke and proverb sets.
type Library struct {
	sets [2]*Set
}

// NewLibrary builds a Library from raw joke and proverb lists.
func NewLibrary(jokes, proverbs []string) (*Library, error) {
	js, err := NewSet(Joke, jokes)
	if err != nil {
		return nil, err
	}
	ps, err := NewSet(Proverb, proverbs)
	if err != nil {
		return nil, err
	}
	return &Library{sets: [2]*Set{js, ps}}, nil
}

// Set returns the set for category c.
func (l *Library) Set(c Category) (*Set, error) {
	if c < Joke || c > Proverb {
		return nil, fmt.Errorf("%s: %w", c, jserr.ErrUnknownCategory)
	}
	return l.sets[c], nil
}

// MustSet is Set for callers that only ever pass Joke or Proverb.
func (l *Library) MustSet(c Category) *Set {
	s, err := l.Set(c)
	if err != nil {
		panic(err)
	}
	return s
}
