package gostreams

// Groups maps keys to groups of values.
// Keys are kept in the order they were first seen, values within a group in the order they were added.
// Groups is not safe for concurrent use.
type Groups[K comparable, V any] struct {
	keys   []K
	groups map[K][]V
}

func newGroups[K comparable, V any]() *Groups[K, V] {
	return &Groups[K, V]{
		groups: map[K][]V{},
	}
}

func (g *Groups[K, V]) add(key K, value V) {
	group, ok := g.groups[key]
	if !ok {
		g.keys = append(g.keys, key)
	}

	g.groups[key] = append(group, value)
}

// merge appends all groups of other to g, and returns g.
func (g *Groups[K, V]) merge(other *Groups[K, V]) *Groups[K, V] {
	for _, key := range other.keys {
		for _, value := range other.groups[key] {
			g.add(key, value)
		}
	}

	return g
}

// Get returns the group of key, and true, or nil and false if there is no such group.
func (g *Groups[K, V]) Get(key K) ([]V, bool) {
	group, ok := g.groups[key]
	return group, ok
}

// Len returns the number of groups.
func (g *Groups[K, V]) Len() int {
	return len(g.keys)
}

// Keys returns the keys of all groups, in the order they were first seen.
func (g *Groups[K, V]) Keys() []K {
	keys := make([]K, len(g.keys))
	copy(keys, g.keys)

	return keys
}

// Each calls each for every group, in the order their keys were first seen.
// Iteration stops if each returns false.
func (g *Groups[K, V]) Each(each func(key K, group []V) bool) {
	for _, key := range g.keys {
		if !each(key, g.groups[key]) {
			return
		}
	}
}

// Map returns the groups as a map.
func (g *Groups[K, V]) Map() map[K][]V {
	groups := make(map[K][]V, len(g.groups))
	for key, group := range g.groups {
		groups[key] = group
	}

	return groups
}
