// Package canvas emits family tree diagrams in the JSON Canvas format
// understood by Obsidian and compatible whiteboard tools.
//
// A canvas is a flat list of positioned nodes plus a list of edges. The
// emitter turns solved layout positions into text nodes (one per person,
// embedding the portrait and a wiki-link to the person's note) and into
// child and spouse edges between them.
package canvas

import (
	"encoding/hex"
	"encoding/json"
	"os"

	"github.com/google/uuid"
)

// =============================================================================
// === Canvas file format ===
// =============================================================================

// Node and edge constants of the JSON Canvas format.
const (
	NodeTypeText = "text"

	SideTop    = "top"
	SideBottom = "bottom"
	SideLeft   = "left"
	SideRight  = "right"

	EndArrow = "arrow"

	LabelChild  = "Child"
	LabelSpouse = "Spouse"
)

// Node is one positioned card on the canvas.
type Node struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Text   string `json:"text"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Edge is one connection between two nodes. Label and FromEnd are
// omitted when empty so files stay minimal.
type Edge struct {
	ID       string `json:"id"`
	FromNode string `json:"fromNode"`
	FromSide string `json:"fromSide"`
	ToNode   string `json:"toNode"`
	ToSide   string `json:"toSide"`
	Label    string `json:"label,omitempty"`
	FromEnd  string `json:"fromEnd,omitempty"`
}

// Canvas is a complete JSON Canvas document.
type Canvas struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// MarshalIndent renders the canvas as tab-indented JSON. Nodes and edges
// always serialize as arrays, never null.
func (c *Canvas) MarshalIndent() ([]byte, error) {
	if c.Nodes == nil {
		c.Nodes = []Node{}
	}
	if c.Edges == nil {
		c.Edges = []Edge{}
	}
	return json.MarshalIndent(c, "", "\t")
}

// WriteFile writes the canvas to path.
func (c *Canvas) WriteFile(path string) error {
	data, err := c.MarshalIndent()
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// newID returns a fresh 16-character hex node identifier.
func newID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:8])
}
