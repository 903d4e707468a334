package gostreams

import (
	"testing"

	"github.com/matryer/is"
)

func TestGroups(t *testing.T) {
	is := is.New(t)

	groups := newGroups[string, int]()
	groups.add("b", 1)
	groups.add("a", 2)
	groups.add("b", 3)

	is.Equal(groups.Len(), 2)
	is.Equal(groups.Keys(), []string{"b", "a"})

	group, ok := groups.Get("b")
	is.True(ok)
	is.Equal(group, []int{1, 3})

	keys := groups.Keys()
	keys[0] = "z"
	is.Equal(groups.Keys(), []string{"b", "a"}) // Keys must return a copy
}

func TestGroups_Merge(t *testing.T) {
	is := is.New(t)

	first := newGroups[string, int]()
	first.add("a", 1)
	first.add("b", 2)

	second := newGroups[string, int]()
	second.add("c", 3)
	second.add("a", 4)

	merged := first.merge(second)

	is.Equal(merged.Keys(), []string{"a", "b", "c"})
	is.Equal(merged.Map(), map[string][]int{
		"a": {1, 4},
		"b": {2},
		"c": {3},
	})
}

func TestGroups_Each(t *testing.T) {
	is := is.New(t)

	groups := newGroups[int, string]()
	groups.add(1, "one")
	groups.add(2, "two")
	groups.add(3, "three")

	seen := []int{}

	groups.Each(func(key int, _ []string) bool {
		seen = append(seen, key)
		return key < 2
	})

	is.Equal(seen, []int{1, 2})
}
