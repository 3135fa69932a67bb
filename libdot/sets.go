package libdot

import "github.com/2x3systems/dotpath/dotpath"

// EdgeKeySet allows adding canonical edge keys and returning if a key has already been added.
type EdgeKeySet interface {

	// TryAdd adds the given key if it is not already present.
	//
	// If key already is in this set, false is returned and this call has no effect.
	TryAdd(key dotpath.EdgeKey) bool

	// Len returns the number of keys added so far.
	Len() int
}

func NewEdgeKeySet(sizeHint int) EdgeKeySet {
	return &edgeKeySet{
		keys: make(map[dotpath.EdgeKey]struct{}, sizeHint),
	}
}

type edgeKeySet struct {
	keys map[dotpath.EdgeKey]struct{}
}

func (set *edgeKeySet) TryAdd(key dotpath.EdgeKey) bool {
	if _, exists := set.keys[key]; exists {
		return false
	}
	set.keys[key] = struct{}{}
	return true
}

func (set *edgeKeySet) Len() int {
	return len(set.keys)
}
