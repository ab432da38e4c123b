package tree

// Sex classifies a person for layout policy decisions.
// It carries no semantic weight beyond selecting a growth direction
// (see DirectionPolicy); unknown is always a valid value.
type Sex uint8

const (
	// SexUnknown is used when the source records no sex for a person.
	SexUnknown Sex = iota
	// SexMale marks a person recorded as male.
	SexMale
	// SexFemale marks a person recorded as female.
	SexFemale
)

// String returns the lowercase name of the sex value.
func (s Sex) String() string {
	switch s {
	case SexMale:
		return "male"
	case SexFemale:
		return "female"
	default:
		return "unknown"
	}
}

// ChildFamily describes a family in which a person appears as a child.
// Either parent identifier may be empty when the source does not record it.
type ChildFamily struct {
	Father string
	Mother string
}

// SpouseFamily describes a family in which a person appears as a partner.
// Partner may be empty for single-parent families. Children preserves the
// order the source records them in.
type SpouseFamily struct {
	Partner       string
	Children      []string
	MarriageDate  string
	MarriagePlace string
}

// Index provides relationship lookups for tree traversal and layout.
// Implementations must be stable: repeated calls with the same identifier
// must return the same data in the same order, or traversal and layout
// lose their determinism guarantees.
//
// Unknown identifiers must yield zero values (false, nil, SexUnknown)
// rather than panicking; partial data is never an error.
type Index interface {
	// Contains reports whether the identifier names a known person.
	Contains(id string) bool
	// ChildFamilies returns the families in which the person is a child.
	ChildFamilies(id string) []ChildFamily
	// SpouseFamilies returns the families in which the person is a partner.
	SpouseFamilies(id string) []SpouseFamily
	// Sex returns the recorded sex of the person.
	Sex(id string) Sex
}

// Node records one person's place in a built tree structure.
// Relation lists preserve discovery order and never contain duplicates.
type Node struct {
	// ID is the person identifier the node was built for.
	ID string
	// Generation is the signed distance from the root: the root is 0,
	// parents are one less, children one more. It is fixed by whichever
	// traversal layer first reaches the person.
	Generation int
	// Spouses lists partner identifiers in discovery order. Positioning
	// only materializes the first entry, but all are recorded.
	Spouses []string
	// Children is the union of all spousal families' children.
	Children []string
	// Parents lists parent identifiers, father before mother when both
	// are recorded.
	Parents []string
}

// Structure is the result of one breadth-first traversal: the root
// identifier plus a node for every person reached from it.
type Structure struct {
	// Root is the identifier the traversal was seeded with.
	Root string
	// Nodes maps person identifiers to their tree nodes.
	Nodes map[string]*Node
}

// Len returns the number of persons in the structure.
func (s Structure) Len() int { return len(s.Nodes) }

// Node returns the node for the given identifier and true, or nil and
// false if the person was not reached by the traversal.
func (s Structure) Node(id string) (*Node, bool) {
	n, ok := s.Nodes[id]
	return n, ok
}

// Siblings returns the identifiers of all persons sharing at least one
// recorded parent with the given person, excluding the person itself.
// Each sibling appears exactly once even when discoverable through both
// parents. Order follows the parents' children lists.
func (s Structure) Siblings(id string) []string {
	n, ok := s.Nodes[id]
	if !ok {
		return nil
	}
	seen := map[string]bool{id: true}
	var out []string
	for _, p := range n.Parents {
		pn, ok := s.Nodes[p]
		if !ok {
			continue
		}
		for _, c := range pn.Children {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

// Build traverses the relationship graph breadth-first from rootID and
// returns a structure with one node per reached person.
//
// Traversal rules:
//   - parent edges are followed at generation-1, child edges at
//     generation+1, spouse edges at the same generation;
//   - a person's generation is fixed by the first visit; alternate paths
//     to an already-visited person are discarded without revisiting, so
//     cyclic or inconsistent pedigrees cannot loop and a generation
//     implied by a later path is not recorded;
//   - identifiers unknown to the index are skipped, so an absent root
//     yields an empty structure.
func Build(idx Index, rootID string) Structure {
	s := Structure{Root: rootID, Nodes: make(map[string]*Node)}

	type visit struct {
		id  string
		gen int
	}
	queue := []visit{{rootID, 0}}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		if _, done := s.Nodes[v.id]; done || !idx.Contains(v.id) {
			continue
		}

		n := &Node{ID: v.id, Generation: v.gen}
		s.Nodes[v.id] = n

		for _, fam := range idx.ChildFamilies(v.id) {
			if fam.Father != "" {
				n.Parents = append(n.Parents, fam.Father)
				if _, done := s.Nodes[fam.Father]; !done {
					queue = append(queue, visit{fam.Father, v.gen - 1})
				}
			}
			if fam.Mother != "" {
				n.Parents = append(n.Parents, fam.Mother)
				if _, done := s.Nodes[fam.Mother]; !done {
					queue = append(queue, visit{fam.Mother, v.gen - 1})
				}
			}
		}

		for _, fam := range idx.SpouseFamilies(v.id) {
			if fam.Partner != "" && !contains(n.Spouses, fam.Partner) {
				n.Spouses = append(n.Spouses, fam.Partner)
				if _, done := s.Nodes[fam.Partner]; !done {
					queue = append(queue, visit{fam.Partner, v.gen})
				}
			}
			for _, child := range fam.Children {
				if child == "" || contains(n.Children, child) {
					continue
				}
				n.Children = append(n.Children, child)
				if _, done := s.Nodes[child]; !done {
					queue = append(queue, visit{child, v.gen + 1})
				}
			}
		}
	}

	return s
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
