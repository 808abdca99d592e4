// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package compositor defines the capability set a composition canvas
// consumes from a rasterization device and a visual compositor.
//
// The canvas never talks to a graphics API directly. It receives a Driver,
// asks it for a HardwareDevice, and builds everything else from there:
//
//	Driver
//	  └─ HardwareDevice          (device-removed status lives here)
//	       └─ Device             (compositor device)
//	            ├─ Target        (bound to a Window)
//	            ├─ Visual        (retained tree nodes)
//	            └─ Surface       (off-screen drawable, DrawContext per pass)
//
// Ownership flows down the chain: a factory method returns an owned handle
// to its caller. Releasing the HardwareDevice invalidates every object
// created beneath it; drivers report StatusDeviceRemoved from calls on
// such objects rather than crashing.
//
// # Visual stacking
//
// Children of a visual are ordered back to front. AddVisual follows the
// DirectComposition convention:
//
//	AddVisual(c, false, nil)   c goes above all siblings
//	AddVisual(c, true,  nil)   c goes below all siblings
//	AddVisual(c, true,  ref)   c goes directly above ref
//	AddVisual(c, false, ref)   c goes directly below ref
//
// # Commit
//
// Visual-tree mutations are staged. Device.Commit publishes every staged
// change at once; no partially applied tree is ever presented.
//
// # Errors
//
// Every failing call returns an error carrying a Status. Use StatusOf to
// read it back, including through wrapping.
package compositor
