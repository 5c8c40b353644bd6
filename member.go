package kitty

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Member is the canonical identifier of a participant: its display name,
// trimmed and case-folded. Two raw names that normalize identically denote
// the same Member.
type Member string

// Normalize canonicalizes a raw name. It returns false for empty or
// whitespace-only input, which denotes an absent member, and for names
// containing a comma, which separates names in lists.
func Normalize(raw string) (Member, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.Contains(s, ",") {
		return "", false
	}
	// a Caser is stateful, do not share it.
	return Member(cases.Fold().String(s)), true
}

// NormalizeList splits a comma-separated list of raw names and normalizes
// each of them. Empty entries are dropped and duplicates are removed,
// keeping the first occurrence.
func NormalizeList(raw string) []Member {
	var members []Member
	seen := make(map[Member]struct{})
	for _, name := range strings.Split(raw, ",") {
		m, ok := Normalize(name)
		if !ok {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		members = append(members, m)
	}
	return members
}

// memberSet is an insertion ordered set of members.
type memberSet struct {
	list  []Member
	index map[Member]struct{}
}

func newMemberSet(members ...Member) *memberSet {
	s := &memberSet{index: make(map[Member]struct{}, len(members))}
	for _, m := range members {
		s.add(m)
	}
	return s
}

// add appends m if it is new, and reports whether it was.
func (s *memberSet) add(m Member) bool {
	if _, ok := s.index[m]; ok {
		return false
	}
	s.index[m] = struct{}{}
	s.list = append(s.list, m)
	return true
}

func (s *memberSet) has(m Member) bool {
	_, ok := s.index[m]
	return ok
}

// members returns a copy of the current members, in insertion order.
func (s *memberSet) members() []Member {
	return append([]Member(nil), s.list...)
}

// Title returns the member name for display, with each word capitalized.
func (m Member) Title() string {
	return cases.Title(language.Und).String(string(m))
}
