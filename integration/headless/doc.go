// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package headless provides an in-memory window for driving a
// ggcomp.Canvas without a display.
//
// Window implements ggcomp.Host. It records presented frames, pointer
// capture and repaint requests. Script and Play replay a YAML event
// script against a canvas, dispatching a paint whenever the canvas asks
// for one, the way a platform message loop would:
//
//	dpi: 96
//	events:
//	  - {event: create, x: 150, y: 150}
//	  - {event: up}
//	  - {event: dpi, dpi: 192}
//	  - {event: lose-device}
//	  - {event: paint}
package headless
