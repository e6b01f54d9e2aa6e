package docs

import "github.com/rhaitools/rhaidocs/internal/metadata"

// Group is a set of overloads sharing one normalized display name:
// accessors of the same field land in one group regardless of their get$
// or set$ registration prefix, as do both index accessor directions.
type Group struct {
	Name      string
	Overloads []metadata.Function
}

// GroupFunctions buckets one module level's functions by normalized name.
// Both group order and overload order follow discovery order.
func GroupFunctions(fns []metadata.Function) []Group {
	var groups []Group
	byName := make(map[string]int)

	for i := range fns {
		name := Synthesize(&fns[i]).GroupName()
		n, ok := byName[name]
		if !ok {
			n = len(groups)
			byName[name] = n
			groups = append(groups, Group{Name: name})
		}
		groups[n].Overloads = append(groups[n].Overloads, fns[i])
	}

	return groups
}
