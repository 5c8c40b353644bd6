package kitty

import (
	"slices"
	"strings"
)

// groupKeySeparator joins sorted member names into a GroupKey.
const groupKeySeparator = ","

// GroupKey is the canonical identifier of a Subgroup: its members sorted and
// joined. It is opaque, only the clusterer builds one.
type GroupKey struct {
	key string
}

func newGroupKey(members []Member) GroupKey {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = string(m)
	}
	slices.Sort(names)
	return GroupKey{key: strings.Join(names, groupKeySeparator)}
}

// String returns the canonical key.
func (k GroupKey) String() string { return k.key }

// IsZero reports whether k is the zero GroupKey.
func (k GroupKey) IsZero() bool { return k.key == "" }

// Members returns the members named by the key, sorted. It is meant for display.
func (k GroupKey) Members() []Member {
	if k.key == "" {
		return nil
	}
	parts := strings.Split(k.key, groupKeySeparator)
	members := make([]Member, len(parts))
	for i, p := range parts {
		members[i] = Member(p)
	}
	return members
}

// Title returns the members of the key for display, as a comma-separated list.
func (k GroupKey) Title() string {
	members := k.Members()
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Title()
	}
	return strings.Join(names, ", ")
}

// MarshalJSON renders the key as the list of its members.
func (k GroupKey) MarshalJSON() ([]byte, error) {
	var w jsonArrayWriter
	for _, m := range k.Members() {
		w.Append(m)
	}
	return w.MarshalJSON()
}

// Subgroup is a cell of the member partition, sharing a pooled balance.
type Subgroup struct {
	Key      GroupKey
	Members  []Member // members assigned to this subgroup, in member order.
	Explicit bool     // false for a generated singleton.
}

// Clustering is the partition of a member set into subgroups.
type Clustering struct {
	of        map[Member]GroupKey
	subgroups []Subgroup
}

// Of returns the key of the subgroup m belongs to. It returns the zero
// GroupKey for an unknown member.
func (c Clustering) Of(m Member) GroupKey { return c.of[m] }

// Subgroups returns the subgroups that received at least one member:
// explicit ones in registration order, then singletons in member order.
func (c Clustering) Subgroups() []Subgroup { return slices.Clone(c.subgroups) }

// Cluster partitions members into subgroups.
//
// Each group string is a comma-separated list of raw names. The first group
// registered under a key wins, and a member belongs to the first registered
// group that contains it. A member found in no group gets a singleton
// subgroup of its own.
func Cluster(members []Member, groups []string) Clustering {
	type registered struct {
		key     GroupKey
		members *memberSet
	}
	var explicit []registered
	keys := make(map[GroupKey]struct{})
	for _, raw := range groups {
		names := NormalizeList(raw)
		if len(names) == 0 {
			continue
		}
		key := newGroupKey(names)
		if _, dup := keys[key]; dup {
			continue
		}
		keys[key] = struct{}{}
		explicit = append(explicit, registered{key: key, members: newMemberSet(names...)})
	}

	c := Clustering{of: make(map[Member]GroupKey, len(members))}
	assigned := make([][]Member, len(explicit))
	var singletons []Subgroup
	for _, m := range members {
		if _, done := c.of[m]; done {
			continue
		}
		idx := slices.IndexFunc(explicit, func(r registered) bool { return r.members.has(m) })
		if idx < 0 {
			key := newGroupKey([]Member{m})
			c.of[m] = key
			singletons = append(singletons, Subgroup{Key: key, Members: []Member{m}})
			continue
		}
		c.of[m] = explicit[idx].key
		assigned[idx] = append(assigned[idx], m)
	}

	for i, r := range explicit {
		if len(assigned[i]) == 0 {
			continue
		}
		c.subgroups = append(c.subgroups, Subgroup{Key: r.key, Members: assigned[i], Explicit: true})
	}
	c.subgroups = append(c.subgroups, singletons...)
	return c
}
