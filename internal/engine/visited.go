package engine

import "github.com/roach88/ntm/internal/machine"

// VisitedSet records configuration identities produced during one run.
//
// A configuration is kept only the first time it is produced. Later copies,
// whether from the same round or a later one, are pruned. Pruning never
// changes the verdict for true duplicates; it only bounds the work.
//
// VisitedSet is not safe for concurrent use. The engine creates one per Run.
type VisitedSet struct {
	seen map[machine.Key]struct{}
}

// NewVisitedSet creates an empty visited set.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{seen: make(map[machine.Key]struct{})}
}

// Visit marks c as produced. It returns true the first time c is seen and
// false for every duplicate.
func (v *VisitedSet) Visit(c machine.Configuration) bool {
	k := c.Key()
	if _, ok := v.seen[k]; ok {
		return false
	}
	v.seen[k] = struct{}{}
	return true
}

// Contains reports whether c has been produced before.
func (v *VisitedSet) Contains(c machine.Configuration) bool {
	_, ok := v.seen[c.Key()]
	return ok
}

// Len returns the number of distinct configurations recorded.
func (v *VisitedSet) Len() int {
	return len(v.seen)
}
