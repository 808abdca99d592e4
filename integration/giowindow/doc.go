// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package giowindow runs a ggcomp.Canvas in a Gio window.
//
// Gio owns the platform message loop, so the window must be driven from a
// goroutine while app.Main runs on the main goroutine:
//
//	w := giowindow.New("ggcomp", image.Pt(600, 400))
//	go func() {
//	    if err := w.Run(ggcomp.WithDriver("auto")); err != nil {
//	        log.Fatal(err)
//	    }
//	    os.Exit(0)
//	}()
//	app.Main()
//
// Every Gio frame is treated as a paint request: pointer input is
// dispatched first, then Canvas.OnPaint verifies or rebuilds the device
// and the last composed frame is drawn.
//
// Gio grabs the pointer for the duration of a press, so SetCapture and
// ReleaseCapture only record state. Gio cannot move windows; PlaceClient
// resizes in place.
package giowindow
