package canvas

import (
	"fmt"
	"sort"

	"github.com/gedvault/gedvault/pkg/tree"
)

// Source supplies the per-person content the emitter embeds in nodes:
// the note title used for the wiki-link and an optional portrait path.
type Source interface {
	NoteName(id string) string
	ImageFile(id string) string
}

// Emitter accumulates one canvas from one or more laid-out trees. Each
// person gets a single node even when added through multiple trees.
type Emitter struct {
	src  Source
	opts tree.Options

	canvas  Canvas
	nodeIDs map[string]string
	edges   map[string]bool
}

// NewEmitter returns an emitter rendering with the given source and
// layout geometry.
func NewEmitter(src Source, opts tree.Options) *Emitter {
	return &Emitter{
		src:     src,
		opts:    opts.WithDefaults(),
		nodeIDs: make(map[string]string),
		edges:   make(map[string]bool),
	}
}

// Add renders one tree's nodes and edges into the canvas. Only people
// present in pos produce nodes; edges are emitted only when both
// endpoints are placed.
func (e *Emitter) Add(s tree.Structure, pos map[string]tree.Point) {
	ids := make([]string, 0, len(pos))
	for id := range pos {
		if _, ok := s.Node(id); ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	for _, id := range ids {
		e.addPerson(id, pos[id])
	}
	for _, id := range ids {
		n, _ := s.Node(id)
		e.addEdges(n, pos)
	}
}

// Canvas returns the accumulated document.
func (e *Emitter) Canvas() *Canvas {
	return &e.canvas
}

// Emit renders a single tree into a fresh canvas.
func Emit(src Source, s tree.Structure, pos map[string]tree.Point, opts tree.Options) *Canvas {
	em := NewEmitter(src, opts)
	em.Add(s, pos)
	return em.Canvas()
}

func (e *Emitter) addPerson(id string, p tree.Point) {
	if _, ok := e.nodeIDs[id]; ok {
		return
	}

	text := fmt.Sprintf("[[%s]]", e.src.NoteName(id))
	height := e.opts.NodeHeight
	if img := e.src.ImageFile(id); img != "" {
		text = fmt.Sprintf("![Image](%s)\n%s", img, text)
		height = e.opts.ImageHeight
	}

	nid := newID()
	e.nodeIDs[id] = nid
	e.canvas.Nodes = append(e.canvas.Nodes, Node{
		ID:     nid,
		Type:   NodeTypeText,
		Text:   text,
		X:      p.X,
		Y:      p.Y,
		Width:  e.opts.NodeWidth,
		Height: height,
	})
}

func (e *Emitter) addEdges(n *tree.Node, pos map[string]tree.Point) {
	for _, child := range n.Children {
		if _, ok := pos[child]; !ok {
			continue
		}
		// One edge per child even when both parents are placed; the
		// first parent in iteration order owns it.
		e.addEdge(Edge{
			FromNode: e.nodeIDs[n.ID],
			FromSide: SideLeft,
			ToNode:   e.nodeIDs[child],
			ToSide:   SideRight,
			Label:    LabelChild,
		}, "child:"+child)
	}
	for _, spouse := range n.Spouses {
		if _, ok := pos[spouse]; !ok {
			continue
		}
		// One edge per couple, owned by the lexically smaller id.
		if n.ID > spouse {
			continue
		}
		e.addEdge(Edge{
			FromNode: e.nodeIDs[n.ID],
			FromSide: SideBottom,
			ToNode:   e.nodeIDs[spouse],
			ToSide:   SideTop,
			Label:    LabelSpouse,
			FromEnd:  EndArrow,
		}, "spouse:"+n.ID+":"+spouse)
	}
}

func (e *Emitter) addEdge(edge Edge, key string) {
	if e.edges[key] {
		return
	}
	e.edges[key] = true
	edge.ID = newID()
	e.canvas.Edges = append(e.canvas.Edges, edge)
}
