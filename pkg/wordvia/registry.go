package wordvia

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Registry is the case-insensitive set of words that have already been
// scored in the current game. It grows monotonically; entries are never
// removed, even when a challenge later revokes the word's points.
type Registry struct {
	words map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{words: make(map[string]struct{})}
}

func (r *Registry) Add(word string) {
	r.words[strings.ToUpper(word)] = struct{}{}
}

func (r *Registry) Contains(word string) bool {
	_, ok := r.words[strings.ToUpper(word)]
	return ok
}

func (r *Registry) Len() int {
	return len(r.words)
}

// Words returns the registry contents as a sorted list, which is also the
// serialized form in game snapshots.
func (r *Registry) Words() []string {
	words := make([]string, 0, len(r.words))
	for w := range r.words {
		words = append(words, w)
	}
	slices.Sort(words)
	return words
}

// RestoreRegistry rebuilds a registry from its serialized word list.
func RestoreRegistry(words []string) *Registry {
	r := NewRegistry()
	for _, w := range words {
		r.Add(w)
	}
	return r
}
