// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wgpu provides a compositor driver backed by a real GPU device.
//
// The driver opens a Vulkan adapter through the gogpu/wgpu HAL and keeps
// the logical device alive for as long as the canvas owns the hardware
// device. Visual composition itself runs on the CPU compositor of the
// backend package; the GPU device supplies the device-lifecycle
// semantics: a lost GPU device is reported through RemovedReason and
// every composition object created from it starts failing.
//
// # Registration
//
// Importing this package registers the "wgpu" driver with priority
// backend.PriorityGPU, so backend.Default selects it whenever a GPU
// adapter is present:
//
//	import _ "github.com/gogpu/ggcomp/backend/wgpu"
//
// Build with the nogpu tag to exclude the driver and its Vulkan
// dependency entirely.
//
// # Shared devices
//
// A host that already owns a GPU device (for example a gogpu window) can
// hand it to the driver with SetDeviceProvider. Hardware devices then
// reuse the shared device and never destroy it.
package wgpu
