// Package recycle virtualizes a large ordered collection of uniform cells
// inside a finite scrollable viewport.
//
// Only enough cells to cover the viewport plus a buffer on both edges are
// kept bound. Cells that leave the covered window move to a free list keyed
// by visual type and are reused for indices that enter it. A [Layout]
// decides where each index is placed and how large the scrollable content
// is; an [Engine] drives the layout in response to host events.
//
// Everything in this package runs on the host's update loop. No method is
// safe for concurrent use.
package recycle
