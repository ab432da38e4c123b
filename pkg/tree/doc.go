// Package tree builds generation-aware family tree structures and assigns
// 2D positions to every person for rendering on a free-form canvas.
//
// The package has three stages, each usable on its own:
//
//  1. [Build] traverses the relationship graph breadth-first from a chosen
//     root and records, for every reachable person, their generation offset
//     and their spouse, child, and parent identifiers.
//  2. [Layout] assigns an (x, y) coordinate to every person in a structure.
//     The x-axis encodes generation flow: descendants extend toward
//     negative x, ancestors toward positive x. The y-axis stacks siblings,
//     spouses, and in-laws within a generation, with claimed coordinate
//     bands preventing overlap between independently recursed branches.
//  3. [LayoutForest] finds persons unreachable from the root, lays out each
//     disconnected component separately, and tiles the components to the
//     right of everything placed so far.
//
// Relationship data is consumed through the [Index] interface, so the
// package has no dependency on any particular genealogy source format.
//
// # Example
//
//	s := tree.Build(idx, "I1")
//	pos := tree.Layout(s, idx, tree.Options{})
//	comps := tree.LayoutForest(idx, idx.IDs(), s, pos, tree.Options{})
//
// All three stages are deterministic: the same index contents and options
// produce bit-identical structures and position maps.
package tree
