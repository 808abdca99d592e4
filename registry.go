package ggcomp

import (
	"container/list"
	"iter"

	"github.com/gogpu/ggcomp/compositor"
)

// Shape is one draggable circle.
type Shape struct {
	id int
	// x and y locate the top-left of the shape box in logical units.
	x, y float32

	// visual is nil while the device is torn down.
	visual compositor.Visual
	elem   *list.Element
}

// ShapeInfo is a read-only view of a Shape.
type ShapeInfo struct {
	// ID is the 1-based creation index of the shape.
	ID int
	// X and Y are the logical position of the shape box.
	X, Y float32
	// HasVisual reports whether a compositor visual is attached.
	HasVisual bool
}

func (s *Shape) info() ShapeInfo {
	return ShapeInfo{ID: s.id, X: s.x, Y: s.y, HasVisual: s.visual != nil}
}

// registry orders shapes front to back: the first element is frontmost.
type registry struct {
	l      list.List
	nextID int
}

func (r *registry) Len() int {
	return r.l.Len()
}

// pushFront creates a shape at (x, y) and makes it frontmost.
func (r *registry) pushFront(x, y float32) *Shape {
	s := &Shape{x: x, y: y}
	r.insertFront(s)
	return s
}

// insertFront numbers s and makes it frontmost.
func (r *registry) insertFront(s *Shape) {
	r.nextID++
	s.id = r.nextID
	s.elem = r.l.PushFront(s)
}

// moveToFront makes s frontmost.
func (r *registry) moveToFront(s *Shape) {
	r.l.MoveToFront(s.elem)
}

// frontToBack iterates from the frontmost shape.
func (r *registry) frontToBack() iter.Seq[*Shape] {
	return func(yield func(*Shape) bool) {
		for e := r.l.Front(); e != nil; e = e.Next() {
			if !yield(e.Value.(*Shape)) {
				return
			}
		}
	}
}

// backToFront iterates from the backmost shape.
func (r *registry) backToFront() iter.Seq[*Shape] {
	return func(yield func(*Shape) bool) {
		for e := r.l.Back(); e != nil; e = e.Prev() {
			if !yield(e.Value.(*Shape)) {
				return
			}
		}
	}
}
