package tree

import (
	"reflect"
	"sort"
	"testing"
)

func TestLayoutLoneRoot(t *testing.T) {
	idx := newFakeIndex("R")
	s := Build(idx, "R")

	pos := Layout(s, idx, Options{})
	want := map[string]Point{"R": {0, 0}}
	if !reflect.DeepEqual(pos, want) {
		t.Errorf("Layout = %v, want %v", pos, want)
	}
}

func TestLayoutMissingRoot(t *testing.T) {
	idx := newFakeIndex("A")
	s := Build(idx, "nobody")

	pos := Layout(s, idx, Options{})
	if len(pos) != 0 {
		t.Errorf("Layout = %v, want empty map", pos)
	}
}

func TestLayoutRootWithSpouseAndChildren(t *testing.T) {
	// R married to S with children C1 (married to SP) and C2. Children
	// go one generation left, stacked and centered on the R/S midpoint.
	idx := newFakeIndex()
	idx.setSex("S", SexFemale)
	idx.addFamily("R", "S", "C1", "C2")
	idx.addFamily("C1", "SP")

	s := Build(idx, "R")
	pos := Layout(s, idx, Options{})

	slot := DefaultImageHeight
	couple := DefaultCoupleGap

	want := map[string]Point{
		"R":  {0, 0},
		"S":  {0, slot + couple},
		"C1": {-DefaultGenGap, -170},
		"SP": {-DefaultGenGap, -170 + slot + couple},
		"C2": {-DefaultGenGap, 190},
	}
	if !reflect.DeepEqual(pos, want) {
		t.Errorf("Layout = %v, want %v", pos, want)
	}

	// The gap between C1's family block and C2 is exactly the sibling gap.
	c1Bottom := pos["SP"].Y + slot
	if got := pos["C2"].Y - c1Bottom; got != DefaultSiblingGap {
		t.Errorf("sibling gap = %d, want %d", got, DefaultSiblingGap)
	}
}

func TestLayoutMaleRootParents(t *testing.T) {
	// A male root grows the ancestor branch upward: the mother sits
	// above the father, at negative y.
	idx := newFakeIndex()
	idx.setSex("R", SexMale)
	idx.addFamily("F", "M", "R")

	s := Build(idx, "R")
	pos := Layout(s, idx, Options{})

	if got, want := pos["F"], (Point{DefaultGenGap, 0}); got != want {
		t.Errorf("father = %v, want %v", got, want)
	}
	if got, want := pos["M"], (Point{DefaultGenGap, -(DefaultImageHeight + DefaultCoupleGap)}); got != want {
		t.Errorf("mother = %v, want %v", got, want)
	}
}

func TestLayoutFemaleRootParents(t *testing.T) {
	idx := newFakeIndex()
	idx.setSex("R", SexFemale)
	idx.addFamily("F", "M", "R")

	s := Build(idx, "R")
	pos := Layout(s, idx, Options{})

	if got, want := pos["M"], (Point{DefaultGenGap, DefaultImageHeight + DefaultCoupleGap}); got != want {
		t.Errorf("mother = %v, want %v", got, want)
	}
}

func TestLayoutDirectionPolicyOverride(t *testing.T) {
	// Inverting the policy flips the ancestor branch of a male root.
	idx := newFakeIndex()
	idx.setSex("R", SexMale)
	idx.addFamily("F", "M", "R")

	inverted := func(s Sex) Direction {
		if s == SexMale {
			return Down
		}
		return Up
	}

	s := Build(idx, "R")
	pos := Layout(s, idx, Options{Direction: inverted})

	if got, want := pos["M"], (Point{DefaultGenGap, DefaultImageHeight + DefaultCoupleGap}); got != want {
		t.Errorf("mother = %v, want %v", got, want)
	}
}

func TestLayoutRootAlwaysAtOrigin(t *testing.T) {
	idx := newFakeIndex()
	idx.addFamily("F", "M", "R", "U1", "U2")
	idx.addFamily("GF", "GM", "F")
	idx.addFamily("R", "S", "C")

	for _, root := range []string{"R", "F", "GM", "C"} {
		s := Build(idx, root)
		pos := Layout(s, idx, Options{})
		if got := pos[root]; got != (Point{0, 0}) {
			t.Errorf("root %s at %v, want origin", root, got)
		}
	}
}

func TestLayoutCompleteness(t *testing.T) {
	idx := newFakeIndex()
	idx.addFamily("GF", "GM", "F", "U1", "U2")
	idx.addFamily("F", "M", "R", "B")
	idx.addFamily("R", "S", "C1", "C2")
	idx.addFamily("U1", "UW")
	idx.addFamily("C1", "SP", "G")

	s := Build(idx, "R")
	pos := Layout(s, idx, Options{})

	if len(pos) != s.Len() {
		t.Fatalf("positioned %d of %d persons", len(pos), s.Len())
	}
	for id := range s.Nodes {
		if _, ok := pos[id]; !ok {
			t.Errorf("person %s has no position", id)
		}
	}
}

func TestLayoutDeterminism(t *testing.T) {
	idx := newFakeIndex()
	idx.addFamily("GF", "GM", "F", "U1")
	idx.addFamily("F", "M", "R", "B")
	idx.addFamily("R", "S", "C1", "C2")

	s := Build(idx, "R")
	first := Layout(s, idx, Options{})
	second := Layout(s, idx, Options{})

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated layout differs:\n%v\n%v", first, second)
	}
}

func TestLayoutAncestorBandNoOverlap(t *testing.T) {
	// Parents, aunts, and uncles share one claimed band per x and must
	// stack without vertical overlap, in both growth directions.
	for _, sex := range []Sex{SexMale, SexFemale} {
		idx := newFakeIndex()
		idx.setSex("R", sex)
		idx.addFamily("GF", "GM", "F", "U1", "U2", "U3")
		idx.addFamily("F", "M", "R")

		s := Build(idx, "R")
		pos := Layout(s, idx, Options{})

		byX := make(map[int][]int)
		for _, p := range pos {
			byX[p.X] = append(byX[p.X], p.Y)
		}
		for x, ys := range byX {
			sort.Ints(ys)
			for i := 1; i < len(ys); i++ {
				if ys[i]-ys[i-1] < DefaultImageHeight {
					t.Errorf("sex %v: overlap at x=%d: y=%d and y=%d", sex, x, ys[i-1], ys[i])
				}
			}
		}
	}
}

func TestLayoutSpouseSiblingClearsRoot(t *testing.T) {
	// S sits below R, so S's sibling chain growing upward must clear the
	// root's node as well as S's own.
	idx := newFakeIndex()
	idx.setSex("S", SexMale)
	idx.addFamily("R", "S")
	idx.addFamily("FP", "MP", "S", "SB")

	s := Build(idx, "R")
	pos := Layout(s, idx, Options{})

	want := Point{0, -(DefaultImageHeight + DefaultSiblingGap)}
	if got := pos["SB"]; got != want {
		t.Errorf("sibling-in-law = %v, want %v", got, want)
	}
	if bottom := pos["SB"].Y + DefaultImageHeight; bottom > pos["R"].Y {
		t.Errorf("sibling-in-law extends to y=%d, into the root at y=%d", bottom, pos["R"].Y)
	}
}

func TestLayoutAncestorCursorNeverRewinds(t *testing.T) {
	// Reaching an already-placed parent couple through a second child
	// must leave the band cursor where earlier placements advanced it.
	idx := newFakeIndex()
	idx.addFamily("F", "M", "A", "B")

	s := Build(idx, "A")
	v := &solver{s: s, idx: idx, opts: Options{}.withDefaults(), pos: make(map[string]Point)}
	v.pos["A"] = Point{0, 0}
	v.pos["B"] = Point{0, 400}
	v.pos["F"] = Point{DefaultGenGap, 0}
	v.pos["M"] = Point{DefaultGenGap, -170}

	key := band{DefaultGenGap, Up}
	cl := claims{key: -1000}
	v.layoutAncestors("B", Up, cl)

	if got := cl[key]; got != -1000 {
		t.Errorf("band cursor moved from -1000 to %d", got)
	}
	if got := v.pos["F"]; got != (Point{DefaultGenGap, 0}) {
		t.Errorf("father moved to %v", got)
	}
}

func TestLayoutFallbackColumn(t *testing.T) {
	// C's recorded parent X is unknown to R's relations, so the solver
	// recursion never reaches X. It must land in the fallback column
	// right of everything else instead of vanishing.
	idx := newFakeIndex("R", "C", "X")
	idx.asSpouse["R"] = []SpouseFamily{{Children: []string{"C"}}}
	idx.asChild["C"] = []ChildFamily{{Father: "X"}}

	s := Build(idx, "R")
	if _, ok := s.Node("X"); !ok {
		t.Fatal("X not reached by traversal")
	}

	pos := Layout(s, idx, Options{})
	if len(pos) != 3 {
		t.Fatalf("positioned %d persons, want 3", len(pos))
	}

	x, ok := pos["X"]
	if !ok {
		t.Fatal("X has no position")
	}
	for id, p := range pos {
		if id != "X" && p.X >= x.X {
			t.Errorf("fallback column not rightmost: %s at x=%d, X at x=%d", id, p.X, x.X)
		}
	}
}

func TestMaxExtentX(t *testing.T) {
	if _, ok := MaxExtentX(map[string]Point{}, Options{}); ok {
		t.Error("MaxExtentX on empty map reported ok")
	}

	pos := map[string]Point{"a": {0, 0}, "b": {800, -300}, "c": {-400, 170}}
	got, ok := MaxExtentX(pos, Options{})
	if !ok {
		t.Fatal("MaxExtentX reported not ok")
	}
	if want := 800 + DefaultNodeWidth; got != want {
		t.Errorf("MaxExtentX = %d, want %d", got, want)
	}
}
