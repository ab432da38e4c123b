package tree

import "sort"

// Component is one laid-out disconnected sub-population: its structure and
// its (already offset) position map.
type Component struct {
	Structure Structure
	Positions map[string]Point
}

// LayoutForest lays out every person in ids that the main structure did not
// reach. Persons with no parent inside the leftover set become component
// roots; each component is built and laid out like the main tree and then
// shifted right of everything placed before it, separated by
// Options.TreeSpacing. The process repeats until no leftovers remain, so a
// lone person with no family data still becomes a one-node component.
//
// Component roots are processed in sorted id order to keep the tiling
// deterministic. Returns nil when nothing is disconnected.
func LayoutForest(idx Index, ids []string, main Structure, mainPos map[string]Point, opts Options) []Component {
	opts = opts.withDefaults()

	disconnected := make(map[string]bool)
	for _, id := range ids {
		if _, in := main.Nodes[id]; !in {
			disconnected[id] = true
		}
	}
	if len(disconnected) == 0 {
		return nil
	}
	opts.Logger.Info("laying out disconnected trees", "persons", len(disconnected))

	offset := 0
	if right, ok := MaxExtentX(mainPos, opts); ok {
		offset = right + opts.TreeSpacing
	}

	var comps []Component
	for len(disconnected) > 0 {
		roots := componentRoots(idx, disconnected)
		if len(roots) == 0 {
			// Cyclic leftover data: every person has a parent in the
			// set. Pick the lowest id so the loop still terminates.
			roots = []string{minID(disconnected)}
		}

		for _, root := range roots {
			if !disconnected[root] {
				// Swallowed by an earlier component this round.
				continue
			}

			s := Build(idx, root)
			pos := Layout(s, idx, opts)
			for id := range s.Nodes {
				delete(disconnected, id)
			}
			for id, p := range pos {
				pos[id] = Point{p.X + offset, p.Y}
			}
			comps = append(comps, Component{Structure: s, Positions: pos})

			if right, ok := MaxExtentX(pos, opts); ok {
				offset = right + opts.TreeSpacing
			}
		}
	}
	return comps
}

// componentRoots returns, sorted, the leftover persons with no recorded
// father or mother inside the leftover set: the topmost reachable persons
// of their components.
func componentRoots(idx Index, disconnected map[string]bool) []string {
	var roots []string
	for id := range disconnected {
		hasParent := false
		for _, fam := range idx.ChildFamilies(id) {
			if (fam.Father != "" && disconnected[fam.Father]) ||
				(fam.Mother != "" && disconnected[fam.Mother]) {
				hasParent = true
				break
			}
		}
		if !hasParent {
			roots = append(roots, id)
		}
	}
	sort.Strings(roots)
	return roots
}

func minID(set map[string]bool) string {
	min := ""
	for id := range set {
		if min == "" || id < min {
			min = id
		}
	}
	return min
}
