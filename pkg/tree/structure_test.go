package tree

import (
	"reflect"
	"testing"
)

// fakeIndex is an in-memory Index for tests. addFamily registers a family
// symmetrically on both partners and every child, mirroring how a real
// record-reader resolves relations.
type fakeIndex struct {
	people   map[string]bool
	sexes    map[string]Sex
	asChild  map[string][]ChildFamily
	asSpouse map[string][]SpouseFamily
}

func newFakeIndex(people ...string) *fakeIndex {
	f := &fakeIndex{
		people:   make(map[string]bool),
		sexes:    make(map[string]Sex),
		asChild:  make(map[string][]ChildFamily),
		asSpouse: make(map[string][]SpouseFamily),
	}
	for _, id := range people {
		f.people[id] = true
	}
	return f
}

func (f *fakeIndex) setSex(id string, s Sex) {
	f.people[id] = true
	f.sexes[id] = s
}

func (f *fakeIndex) addFamily(father, mother string, children ...string) {
	for _, id := range append([]string{father, mother}, children...) {
		if id != "" {
			f.people[id] = true
		}
	}
	if father != "" {
		f.asSpouse[father] = append(f.asSpouse[father], SpouseFamily{Partner: mother, Children: children})
	}
	if mother != "" {
		f.asSpouse[mother] = append(f.asSpouse[mother], SpouseFamily{Partner: father, Children: children})
	}
	for _, c := range children {
		f.asChild[c] = append(f.asChild[c], ChildFamily{Father: father, Mother: mother})
	}
}

func (f *fakeIndex) Contains(id string) bool                 { return f.people[id] }
func (f *fakeIndex) ChildFamilies(id string) []ChildFamily   { return f.asChild[id] }
func (f *fakeIndex) SpouseFamilies(id string) []SpouseFamily { return f.asSpouse[id] }
func (f *fakeIndex) Sex(id string) Sex                       { return f.sexes[id] }

func TestBuildGenerations(t *testing.T) {
	idx := newFakeIndex()
	idx.addFamily("F", "M", "R", "U")
	idx.addFamily("R", "S", "C")

	s := Build(idx, "R")

	want := map[string]int{"R": 0, "F": -1, "M": -1, "U": 0, "S": 0, "C": 1}
	if s.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", s.Len(), len(want))
	}
	for id, gen := range want {
		n, ok := s.Node(id)
		if !ok {
			t.Fatalf("person %s missing from structure", id)
		}
		if n.Generation != gen {
			t.Errorf("generation of %s = %d, want %d", id, n.Generation, gen)
		}
	}

	// Parent/child generation offsets stay consistent across the
	// whole structure.
	for id, n := range s.Nodes {
		for _, c := range n.Children {
			cn, ok := s.Node(c)
			if !ok {
				continue
			}
			if cn.Generation != n.Generation+1 {
				t.Errorf("child %s of %s: generation %d, want %d", c, id, cn.Generation, n.Generation+1)
			}
		}
	}
}

func TestBuildRelationLists(t *testing.T) {
	idx := newFakeIndex()
	idx.addFamily("F", "M", "R")

	s := Build(idx, "R")

	r, _ := s.Node("R")
	if got := r.Parents; !reflect.DeepEqual(got, []string{"F", "M"}) {
		t.Errorf("parents = %v, want [F M]", got)
	}
	f, _ := s.Node("F")
	if got := f.Spouses; !reflect.DeepEqual(got, []string{"M"}) {
		t.Errorf("spouses of F = %v, want [M]", got)
	}
	if got := f.Children; !reflect.DeepEqual(got, []string{"R"}) {
		t.Errorf("children of F = %v, want [R]", got)
	}
}

func TestBuildAbsentRoot(t *testing.T) {
	idx := newFakeIndex("A")

	s := Build(idx, "nobody")
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for absent root", s.Len())
	}
}

func TestBuildNoFamilies(t *testing.T) {
	idx := newFakeIndex("R")

	s := Build(idx, "R")
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	n, _ := s.Node("R")
	if len(n.Parents) != 0 || len(n.Spouses) != 0 || len(n.Children) != 0 {
		t.Errorf("relation lists not empty: %+v", n)
	}
}

func TestBuildCyclicData(t *testing.T) {
	// A is recorded as B's parent and B as A's parent. The visited set
	// must stop the traversal.
	idx := newFakeIndex()
	idx.addFamily("A", "", "B")
	idx.addFamily("B", "", "A")

	s := Build(idx, "A")
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	a, _ := s.Node("A")
	if a.Generation != 0 {
		t.Errorf("generation of A = %d, want 0", a.Generation)
	}
}

func TestBuildSpouseDedup(t *testing.T) {
	// Two recorded families with the same partner (remarriage) must not
	// duplicate the spouse entry.
	idx := newFakeIndex()
	idx.addFamily("R", "S", "C1")
	idx.addFamily("R", "S", "C2")

	s := Build(idx, "R")
	r, _ := s.Node("R")
	if got := r.Spouses; !reflect.DeepEqual(got, []string{"S"}) {
		t.Errorf("spouses = %v, want [S]", got)
	}
	if got := r.Children; !reflect.DeepEqual(got, []string{"C1", "C2"}) {
		t.Errorf("children = %v, want [C1 C2]", got)
	}
}

func TestSiblings(t *testing.T) {
	idx := newFakeIndex()
	idx.addFamily("F", "M", "A", "B", "C")

	s := Build(idx, "A")

	// B and C are discoverable through both parents but must appear once.
	got := s.Siblings("A")
	if !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Errorf("Siblings(A) = %v, want [B C]", got)
	}
	if sibs := s.Siblings("nobody"); sibs != nil {
		t.Errorf("Siblings(nobody) = %v, want nil", sibs)
	}
}
