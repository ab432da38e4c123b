package tree

import (
	"io"
	"sort"

	"github.com/charmbracelet/log"
)

// Default layout constants. All are overridable through Options.
const (
	// DefaultNodeWidth is the width of every person node.
	DefaultNodeWidth = 250
	// DefaultNodeHeight is the height of a node without an image.
	DefaultNodeHeight = 60
	// DefaultImageHeight is the height of a node with an image, and the
	// vertical slot size the solver reserves per person.
	DefaultImageHeight = 150
	// DefaultGenGap is the horizontal pitch between generations.
	DefaultGenGap = 400
	// DefaultSiblingGap is the vertical gap between sibling family blocks.
	DefaultSiblingGap = 40
	// DefaultCoupleGap is the vertical gap between the two nodes of a couple.
	DefaultCoupleGap = 20
	// DefaultTreeSpacing is the horizontal gap between disconnected trees.
	DefaultTreeSpacing = 400
)

// Point is a 2D canvas coordinate. Y grows downward, matching the canvas
// file format.
type Point struct {
	X int
	Y int
}

// Direction selects which way a branch grows along the y-axis.
// The numeric values are the sign applied to vertical offsets.
type Direction int8

const (
	// Up grows toward negative y.
	Up Direction = -1
	// Down grows toward positive y.
	Down Direction = 1
)

// String returns "up" or "down".
func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// DirectionPolicy maps a person's recorded sex to the direction their
// ancestor and in-law branches grow in. The mapping is a fixed layout
// convention, not a semantic judgment; supply a custom policy to change it
// without touching the recursion.
type DirectionPolicy func(Sex) Direction

// DefaultDirectionPolicy grows male branches upward and all other branches
// downward.
func DefaultDirectionPolicy(s Sex) Direction {
	if s == SexMale {
		return Up
	}
	return Down
}

// Options configures the position solver. The zero value is usable: every
// zero field is replaced with its Default* constant, the direction policy
// with DefaultDirectionPolicy, and the logger with a discard logger.
type Options struct {
	NodeWidth   int
	NodeHeight  int
	ImageHeight int
	GenGap      int
	SiblingGap  int
	CoupleGap   int
	TreeSpacing int

	// Direction maps sex to branch growth direction.
	Direction DirectionPolicy

	// Logger receives solver diagnostics. Nil disables logging.
	Logger *log.Logger
}

// WithDefaults returns a copy with every zero field replaced by its
// default. Layout and LayoutForest apply it themselves; callers that read
// geometry fields directly (the canvas emitter does) use it to see the
// same values the solver used.
func (o Options) WithDefaults() Options {
	return o.withDefaults()
}

func (o Options) withDefaults() Options {
	if o.NodeWidth == 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	if o.NodeHeight == 0 {
		o.NodeHeight = DefaultNodeHeight
	}
	if o.ImageHeight == 0 {
		o.ImageHeight = DefaultImageHeight
	}
	if o.GenGap == 0 {
		o.GenGap = DefaultGenGap
	}
	if o.SiblingGap == 0 {
		o.SiblingGap = DefaultSiblingGap
	}
	if o.CoupleGap == 0 {
		o.CoupleGap = DefaultCoupleGap
	}
	if o.TreeSpacing == 0 {
		o.TreeSpacing = DefaultTreeSpacing
	}
	if o.Direction == nil {
		o.Direction = DefaultDirectionPolicy
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return o
}

// band identifies one claimed coordinate band: a vertical strip at a fixed
// x reserved in one growth direction.
type band struct {
	X   int
	Dir Direction
}

// claims tracks the next free y per band. It is created fresh at each
// top-level ancestor entry point and threaded by reference through the
// recursion that entry point spawns; it is never shared across entry
// points. In particular, a spouse discovered while walking descendants
// starts a fresh claims table for their in-law and ancestor chains, so
// deep trees can produce overlapping placements across entry points.
type claims map[band]int

// Layout assigns a position to every node in the structure.
//
// The root is placed at the origin; descendants extend toward negative x,
// ancestors toward positive x, and siblings, spouses, and in-laws stack
// vertically. Nodes the recursion cannot reach (possible when relationship
// accessors are asymmetric) are placed in a fallback column right of
// everything else, so every node in the structure receives exactly one
// position.
//
// If the structure has no generation-0 root node the result is an empty
// map, logged as an error; malformed relation data otherwise never fails,
// it just produces fewer placements.
func Layout(s Structure, idx Index, opts Options) map[string]Point {
	opts = opts.withDefaults()
	v := &solver{s: s, idx: idx, opts: opts, pos: make(map[string]Point, len(s.Nodes))}

	root, ok := s.Nodes[s.Root]
	if !ok || root.Generation != 0 {
		opts.Logger.Error("no generation-0 root in structure", "root", s.Root)
		return map[string]Point{}
	}

	v.pos[root.ID] = Point{0, 0}

	// The first spouse sits directly below the root regardless of sex;
	// only branch growth follows the direction policy.
	if sp := v.firstSpouse(root.ID); sp != "" && !v.placed(sp) {
		v.pos[sp] = Point{0, v.slot() + opts.CoupleGap}
		cl := claims{}
		d := v.dir(sp)
		v.layoutInLaws(sp, d, cl)
		v.layoutAncestors(sp, d, cl)
	}

	v.layoutDescendants(root.ID)
	v.layoutAncestors(root.ID, v.dir(root.ID), claims{})
	v.layoutLeftovers()

	return v.pos
}

// MaxExtentX returns the x coordinate of the rightmost node edge in the
// position map (position plus node width). The second result is false for
// an empty map.
func MaxExtentX(pos map[string]Point, opts Options) (int, bool) {
	opts = opts.withDefaults()
	first := true
	max := 0
	for _, p := range pos {
		if first || p.X > max {
			max = p.X
			first = false
		}
	}
	if first {
		return 0, false
	}
	return max + opts.NodeWidth, true
}

// solver carries the mutable state of one layout pass. The claims tables
// deliberately do not live here; they are threaded as parameters so the
// sharing boundary between recursion trees stays explicit.
type solver struct {
	s    Structure
	idx  Index
	opts Options
	pos  map[string]Point
}

func (v *solver) placed(id string) bool {
	_, ok := v.pos[id]
	return ok
}

// slot is the vertical space reserved per person. The solver always
// reserves the image height so a node growing an image later cannot
// collide; the emitter shrinks imageless nodes, not the layout.
func (v *solver) slot() int { return v.opts.ImageHeight }

// step is the vertical pitch between stacked persons in a band.
func (v *solver) step() int { return v.slot() + v.opts.SiblingGap }

func (v *solver) dir(id string) Direction {
	return v.opts.Direction(v.idx.Sex(id))
}

// firstSpouse returns the first recorded spouse of id that the structure
// knows about, or "".
func (v *solver) firstSpouse(id string) string {
	n, ok := v.s.Nodes[id]
	if !ok {
		return ""
	}
	for _, sp := range n.Spouses {
		if _, in := v.s.Nodes[sp]; in {
			return sp
		}
	}
	return ""
}

// coupleExtent returns the lowest and highest y occupied by id and any
// placed spouse of id in the same column.
func (v *solver) coupleExtent(id string) (lo, hi int) {
	p := v.pos[id]
	lo, hi = p.Y, p.Y
	n, ok := v.s.Nodes[id]
	if !ok {
		return lo, hi
	}
	for _, sp := range n.Spouses {
		q, placed := v.pos[sp]
		if !placed || q.X != p.X {
			continue
		}
		if q.Y < lo {
			lo = q.Y
		}
		if q.Y > hi {
			hi = q.Y
		}
	}
	return lo, hi
}

// familyHeight is the vertical space a child and their (first) spouse
// need. It is a shallow estimate: grandchildren are not measured.
func (v *solver) familyHeight(id string) int {
	h := v.slot()
	if v.firstSpouse(id) != "" {
		h += v.slot() + v.opts.CoupleGap
	}
	return h
}

// layoutDescendants places the children of an already-positioned parent
// one generation to the left, centered on the parent couple, then recurses
// into each child's spouse chains and descendants.
func (v *solver) layoutDescendants(parent string) {
	n, ok := v.s.Nodes[parent]
	if !ok {
		return
	}

	var kids []string
	for _, c := range n.Children {
		if _, in := v.s.Nodes[c]; in && !v.placed(c) {
			kids = append(kids, c)
		}
	}
	if len(kids) == 0 {
		return
	}

	heights := make([]int, len(kids))
	total := (len(kids) - 1) * v.opts.SiblingGap
	for i, c := range kids {
		heights[i] = v.familyHeight(c)
		total += heights[i]
	}

	mid := v.pos[parent].Y
	if sp := v.firstSpouse(parent); sp != "" && v.placed(sp) {
		mid = (v.pos[parent].Y + v.pos[sp].Y) / 2
	}

	x := v.pos[parent].X - v.opts.GenGap
	y := mid - total/2
	for i, c := range kids {
		v.pos[c] = Point{x, y}

		if sp := v.firstSpouse(c); sp != "" && !v.placed(sp) {
			v.pos[sp] = Point{x, y + v.slot() + v.opts.CoupleGap}
			// In-law chains reached from the descendant path start
			// their own claims table; see the claims type.
			cl := claims{}
			d := v.dir(sp)
			v.layoutInLaws(sp, d, cl)
			v.layoutAncestors(sp, d, cl)
		}

		v.layoutDescendants(c)
		y += heights[i] + v.opts.SiblingGap
	}
}

// layoutAncestors places the parents of an already-positioned person one
// generation to the right, growing in d, then stacks the person's aunts
// and uncles in the same band and recurses further back. The claims table
// resolves collisions when several descendants at the same generation
// independently reach ancestors in the same band.
func (v *solver) layoutAncestors(id string, d Direction, cl claims) {
	n, ok := v.s.Nodes[id]
	if !ok {
		return
	}

	var parents []string
	for _, p := range n.Parents {
		if _, in := v.s.Nodes[p]; in {
			parents = append(parents, p)
		}
	}
	if len(parents) == 0 {
		return
	}

	x := v.pos[id].X + v.opts.GenGap
	key := band{x, d}

	if len(parents) == 1 {
		p := parents[0]
		fresh := !v.placed(p)
		if fresh {
			y, claimed := cl[key]
			if !claimed {
				y = v.pos[id].Y
			}
			v.pos[p] = Point{x, y}
			cl[key] = y + int(d)*v.step()
		}
		if fresh {
			v.layoutAncestors(p, d, cl)
		}
		return
	}

	father, mother := parents[0], parents[1]
	freshF, freshM := !v.placed(father), !v.placed(mother)

	fy, claimed := cl[key]
	switch {
	case v.placed(father):
		fy = v.pos[father].Y
	case !claimed:
		fy = v.pos[id].Y
	}
	my := fy + int(d)*(v.slot()+v.opts.CoupleGap)

	if freshF {
		v.pos[father] = Point{x, fy}
	}
	if freshM {
		v.pos[mother] = Point{x, my}
	}
	// Re-entering a band whose couple was already placed must not pull
	// the cursor back over slots handed out since.
	if next := my + int(d)*v.step(); !claimed || int(d)*(next-cl[key]) > 0 {
		cl[key] = next
	}

	// Aunts and uncles: siblings of either parent, stacked one slot at a
	// time, each with their spouse adjacent and their descendants
	// (cousins) recursed.
	for _, au := range v.mergedSiblings(father, mother) {
		if v.placed(au) {
			continue
		}
		v.pos[au] = Point{x, cl[key]}
		cl[key] += int(d) * v.step()

		if sp := v.firstSpouse(au); sp != "" && !v.placed(sp) {
			v.pos[sp] = Point{x, cl[key]}
			cl[key] += int(d) * v.step()
			v.layoutInLaws(sp, d, cl)
			v.layoutAncestors(sp, d, cl)
		}
		v.layoutDescendants(au)
	}

	if freshF {
		v.layoutAncestors(father, d, cl)
	}
	if freshM {
		v.layoutAncestors(mother, d, cl)
	}
}

// layoutInLaws extends the band of a placed spouse: first any further
// partners of the spouse (the partner-of-the-partner case, one level of
// bidirectional extension), then the spouse's own siblings with their
// spouses and descendants.
func (v *solver) layoutInLaws(id string, d Direction, cl claims) {
	n, ok := v.s.Nodes[id]
	if !ok {
		return
	}

	// Seed past the whole couple, not just past id: the partner may sit
	// further in d, and the first in-law must clear both nodes.
	key := band{v.pos[id].X, d}
	if _, claimed := cl[key]; !claimed {
		lo, hi := v.coupleExtent(id)
		if d == Up {
			cl[key] = lo - v.step()
		} else {
			cl[key] = hi + v.step()
		}
	}

	for _, sp := range n.Spouses {
		if _, in := v.s.Nodes[sp]; !in || v.placed(sp) {
			continue
		}
		v.pos[sp] = Point{v.pos[id].X, cl[key]}
		cl[key] += int(d) * v.step()
		v.placeSiblingRow(sp, d, cl)
	}

	v.placeSiblingRow(id, d, cl)
}

// placeSiblingRow stacks the siblings of an already-placed person in the
// band, each with an adjacent spouse, and recurses into each sibling's
// descendants.
func (v *solver) placeSiblingRow(of string, d Direction, cl claims) {
	x := v.pos[of].X
	key := band{x, d}

	for _, sib := range v.s.Siblings(of) {
		if _, in := v.s.Nodes[sib]; !in || v.placed(sib) {
			continue
		}
		v.pos[sib] = Point{x, cl[key]}
		cl[key] += int(d) * v.step()

		if sp := v.firstSpouse(sib); sp != "" && !v.placed(sp) {
			v.pos[sp] = Point{x, cl[key]}
			cl[key] += int(d) * v.step()
		}
		v.layoutDescendants(sib)
	}
}

// mergedSiblings joins the sibling sets of two persons, deduplicated,
// preserving order.
func (v *solver) mergedSiblings(a, b string) []string {
	seen := map[string]bool{a: true, b: true}
	var out []string
	for _, id := range append(v.s.Siblings(a), v.s.Siblings(b)...) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// layoutLeftovers places any structure node the recursion never reached in
// a fallback column right of everything placed so far. Sorted by id so the
// pass stays deterministic.
func (v *solver) layoutLeftovers() {
	var left []string
	for id := range v.s.Nodes {
		if !v.placed(id) {
			left = append(left, id)
		}
	}
	if len(left) == 0 {
		return
	}
	sort.Strings(left)

	maxX := 0
	first := true
	for _, p := range v.pos {
		if first || p.X > maxX {
			maxX = p.X
			first = false
		}
	}

	v.opts.Logger.Warn("placing unreachable persons in fallback column", "count", len(left))

	x := maxX + v.opts.GenGap
	y := 0
	for _, id := range left {
		v.pos[id] = Point{x, y}
		y += v.step()
	}
}
