package tree

import (
	"sort"
	"testing"
)

func TestLayoutForestNothingDisconnected(t *testing.T) {
	idx := newFakeIndex()
	idx.addFamily("R", "S", "C")

	s := Build(idx, "R")
	pos := Layout(s, idx, Options{})

	comps := LayoutForest(idx, []string{"R", "S", "C"}, s, pos, Options{})
	if comps != nil {
		t.Errorf("LayoutForest = %v, want nil", comps)
	}
}

func TestLayoutForestIsolate(t *testing.T) {
	// X9 has no relations and is unreachable from R. It becomes a
	// one-node component right of the main tree.
	idx := newFakeIndex("X9")
	idx.addFamily("R", "S")

	s := Build(idx, "R")
	pos := Layout(s, idx, Options{})

	comps := LayoutForest(idx, []string{"R", "S", "X9"}, s, pos, Options{})
	if len(comps) != 1 {
		t.Fatalf("components = %d, want 1", len(comps))
	}

	p, ok := comps[0].Positions["X9"]
	if !ok {
		t.Fatal("X9 has no position")
	}
	mainRight, _ := MaxExtentX(pos, Options{})
	if p.X < mainRight+DefaultTreeSpacing {
		t.Errorf("X9 at x=%d, want >= %d", p.X, mainRight+DefaultTreeSpacing)
	}
}

func TestLayoutForestTilesComponents(t *testing.T) {
	// Two isolates become separate components tiled left to right in
	// sorted id order without horizontal overlap.
	idx := newFakeIndex("A", "B")
	idx.addFamily("R", "S")

	s := Build(idx, "R")
	pos := Layout(s, idx, Options{})

	comps := LayoutForest(idx, []string{"R", "S", "A", "B"}, s, pos, Options{})
	if len(comps) != 2 {
		t.Fatalf("components = %d, want 2", len(comps))
	}

	if comps[0].Structure.Root != "A" || comps[1].Structure.Root != "B" {
		t.Fatalf("roots = %s, %s, want A, B", comps[0].Structure.Root, comps[1].Structure.Root)
	}

	ax := comps[0].Positions["A"].X
	bx := comps[1].Positions["B"].X
	if bx < ax+DefaultNodeWidth+DefaultTreeSpacing {
		t.Errorf("B at x=%d overlaps A at x=%d", bx, ax)
	}
}

func TestLayoutForestFamilyComponent(t *testing.T) {
	// A disconnected couple with a child forms a single component; the
	// second partner must not seed a component of their own.
	idx := newFakeIndex()
	idx.addFamily("R", "S")
	idx.addFamily("D1", "D2", "DC")

	s := Build(idx, "R")
	pos := Layout(s, idx, Options{})

	comps := LayoutForest(idx, []string{"R", "S", "D1", "D2", "DC"}, s, pos, Options{})
	if len(comps) != 1 {
		t.Fatalf("components = %d, want 1", len(comps))
	}
	if got := comps[0].Structure.Len(); got != 3 {
		t.Errorf("component size = %d, want 3", got)
	}
	for _, id := range []string{"D1", "D2", "DC"} {
		if _, ok := comps[0].Positions[id]; !ok {
			t.Errorf("%s has no position", id)
		}
	}
}

func TestLayoutForestCyclicLeftovers(t *testing.T) {
	// A and B each record the other as parent, so neither qualifies as
	// a component root. The assembler must still terminate and place both.
	idx := newFakeIndex("A", "B")
	idx.asChild["A"] = []ChildFamily{{Father: "B"}}
	idx.asChild["B"] = []ChildFamily{{Father: "A"}}
	idx.addFamily("R", "S")

	s := Build(idx, "R")
	pos := Layout(s, idx, Options{})

	comps := LayoutForest(idx, []string{"R", "S", "A", "B"}, s, pos, Options{})

	placed := make(map[string]bool)
	for _, c := range comps {
		for id := range c.Positions {
			placed[id] = true
		}
	}
	for _, id := range []string{"A", "B"} {
		if !placed[id] {
			t.Errorf("%s has no position", id)
		}
	}
}

func TestLayoutForestCompleteness(t *testing.T) {
	idx := newFakeIndex("X", "Y")
	idx.addFamily("R", "S", "C")
	idx.addFamily("D1", "D2", "DC")

	all := []string{"R", "S", "C", "D1", "D2", "DC", "X", "Y"}
	s := Build(idx, "R")
	pos := Layout(s, idx, Options{})
	comps := LayoutForest(idx, all, s, pos, Options{})

	placed := make(map[string]bool)
	for id := range pos {
		placed[id] = true
	}
	for _, c := range comps {
		for id := range c.Positions {
			placed[id] = true
		}
	}

	var missing []string
	for _, id := range all {
		if !placed[id] {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	if len(missing) != 0 {
		t.Errorf("unplaced persons: %v", missing)
	}
}
