// Package friendlist derives which of the friends list's visual states is
// active from the data source output and the search query.
//
// The state is re-derived from scratch on every input change; there are no
// transitions to track.
package friendlist

import (
	"lingofriends/internal/friend"
	"lingofriends/internal/search"
)

// SkeletonCount is the fixed number of placeholder cards shown while loading.
const SkeletonCount = 6

// Kind identifies the active visual state.
type Kind int

const (
	KindLoading Kind = iota
	KindEmpty
	KindPopulated
)

func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "Loading"
	case KindEmpty:
		return "Empty"
	case KindPopulated:
		return "Populated"
	default:
		return "Unknown"
	}
}

// Reason explains an empty state.
type Reason string

const (
	ReasonNone      Reason = ""
	ReasonNoMatch   Reason = "no-match"
	ReasonNoFriends Reason = "no-friends"
	ReasonError     Reason = "error"
)

// Input is everything the state depends on.
type Input struct {
	Loading bool
	// Err is the last fetch error. It only produces the error state when
	// there are no friends to show.
	Err     error
	Friends []friend.Friend
	Query   string
}

// State is the derived view state.
type State struct {
	Kind   Kind
	Reason Reason
	// Items is the filtered list; set for KindPopulated only.
	Items []friend.Friend
	// Skeletons is the number of placeholder cards; set for KindLoading only.
	Skeletons int
	Query     string
	// Matches is the filtered count used by the summary line.
	Matches int
	Err     error
}

// Derive computes the state for in.
func Derive(in Input) State {
	st := State{Query: in.Query}
	if in.Loading {
		st.Kind = KindLoading
		st.Skeletons = SkeletonCount
		return st
	}
	if in.Err != nil && len(in.Friends) == 0 {
		st.Kind = KindEmpty
		st.Reason = ReasonError
		st.Err = in.Err
		return st
	}
	filtered := search.Filter(in.Friends, in.Query)
	st.Matches = len(filtered)
	if len(filtered) == 0 {
		st.Kind = KindEmpty
		if in.Query != "" {
			st.Reason = ReasonNoMatch
		} else {
			st.Reason = ReasonNoFriends
		}
		return st
	}
	st.Kind = KindPopulated
	st.Items = filtered
	return st
}

// String returns the state in Kind(reason) notation, e.g. "Empty(no-match)".
func (s State) String() string {
	if s.Kind == KindEmpty {
		return s.Kind.String() + "(" + string(s.Reason) + ")"
	}
	return s.Kind.String()
}

// ShowSummary reports whether the result count line is shown. It layers on
// top of every state whenever the query is non-empty.
func (s State) ShowSummary() bool {
	return s.Query != ""
}

// Summary is the result count line, or "" when no query is active.
func (s State) Summary() string {
	if !s.ShowSummary() {
		return ""
	}
	return search.Summary(s.Matches, s.Query)
}

// SummaryClearable reports whether the summary line carries its own clear
// affordance. The no-match state offers one in its message instead.
func (s State) SummaryClearable() bool {
	return s.ShowSummary() && s.Matches > 0
}

// CanClear reports whether the empty-state message offers to clear the query.
func (s State) CanClear() bool {
	return s.Kind == KindEmpty && s.Reason == ReasonNoMatch
}

// CanRetry reports whether the empty-state message offers to refetch.
func (s State) CanRetry() bool {
	return s.Kind == KindEmpty && s.Reason == ReasonError
}

// Headline is the empty-state title.
func (s State) Headline() string {
	switch s.Reason {
	case ReasonNoMatch:
		return "No friends match your search"
	case ReasonNoFriends:
		return "You don't have any friends yet"
	case ReasonError:
		return "Couldn't load your friends"
	}
	return ""
}

// Guidance is the line under the empty-state title.
func (s State) Guidance() string {
	switch s.Reason {
	case ReasonNoMatch:
		return "Try a different search term or clear your search"
	case ReasonNoFriends:
		return "Connect with other users to see them here"
	case ReasonError:
		if s.Err != nil {
			return s.Err.Error()
		}
		return "The friends service did not respond"
	}
	return ""
}
