// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ggcomp implements an interactive composition canvas: draggable
// circles rendered through a retained visual tree, with DPI-aware
// coordinates and recovery from graphics-device loss.
//
// # Overview
//
// A Canvas is driven by a platform shell (see integration/giowindow and
// integration/headless) through a small set of handlers:
//
//	c, err := ggcomp.NewCanvas(host)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Release()
//
//	_ = c.OnCreate()
//	c.OnPaint()                       // builds device resources
//	c.OnPointerDown(ggcomp.PointerEvent{
//	    Position:  image.Pt(150, 150),
//	    Modifiers: ggcomp.ModCommand,  // creates a circle
//	})
//
// # Coordinates
//
// Shape positions are stored in logical units, where 96 DPI maps one unit
// to one pixel. Pointer events and visual offsets are physical pixels.
// ToPhysical and ToLogical convert between the two.
//
// # Devices
//
// Rendering goes through a compositor.Driver selected from the backend
// registry. The canvas owns the whole device chain and rebuilds it from
// the shape registry after any failure; positions, stacking order and
// selection survive the rebuild.
//
// # Logging
//
// By default ggcomp produces no log output. Call SetLogger to enable it;
// the logger is shared with the backend drivers and gg.
package ggcomp
