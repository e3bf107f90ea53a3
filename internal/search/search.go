// Package search owns the friends list query and the pure filter derived
// from it.
package search

import (
	"fmt"
	"strings"

	"lingofriends/internal/friend"
)

// State holds the current search text. The zero value is an empty query.
type State struct {
	Query string
}

// SetQuery replaces the query verbatim; no trimming happens at storage time.
func (s *State) SetQuery(text string) {
	s.Query = text
}

// Clear resets the query to empty.
func (s *State) Clear() {
	s.Query = ""
}

// Active reports whether the query is non-empty. Whitespace counts: a blank
// query still shows the result summary even though it filters nothing.
func (s *State) Active() bool {
	return s.Query != ""
}

// Apply filters friends by the current query.
func (s *State) Apply(friends []friend.Friend) []friend.Friend {
	return Filter(friends, s.Query)
}

// Filter returns the friends whose name, location, native language or
// learning language contains query, case-insensitively. A blank query returns
// friends unchanged. Bio is never searched.
func Filter(friends []friend.Friend, query string) []friend.Friend {
	if strings.TrimSpace(query) == "" {
		return friends
	}
	q := strings.ToLower(query)
	out := make([]friend.Friend, 0, len(friends))
	for _, f := range friends {
		if Matches(f, q) {
			out = append(out, f)
		}
	}
	return out
}

// Matches reports whether any searchable field of f contains the already
// lower-cased query.
func Matches(f friend.Friend, lowerQuery string) bool {
	for _, field := range []*string{f.FullName, f.Location, f.NativeLanguage, f.LearningLanguage} {
		v, ok := friend.Value(field)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(v), lowerQuery) {
			return true
		}
	}
	return false
}

// Summary renders the result count line shown while a query is active.
func Summary(count int, query string) string {
	noun := "results"
	if count == 1 {
		noun = "result"
	}
	return fmt.Sprintf("Found %d %s for '%s'", count, noun, query)
}
