package compositor

import (
	"errors"
	"fmt"
)

// Status is a platform status code returned by a failing device or
// compositor call. Values follow the HRESULT layout so that codes coming
// from a native driver can be carried unchanged.
type Status uint32

// Status codes reported by drivers.
const (
	StatusOK            Status = 0x00000000
	StatusFail          Status = 0x80004005
	StatusInvalidArg    Status = 0x80070057
	StatusOutOfMemory   Status = 0x8007000E
	StatusUnsupported   Status = 0x80004001
	StatusInvalidCall   Status = 0x887A0001
	StatusDeviceRemoved Status = 0x887A0005
	StatusDeviceHung    Status = 0x887A0006
	StatusDeviceReset   Status = 0x887A0007
)

var statusNames = map[Status]string{
	StatusOK:            "ok",
	StatusFail:          "unspecified failure",
	StatusInvalidArg:    "invalid argument",
	StatusOutOfMemory:   "out of memory",
	StatusUnsupported:   "not supported",
	StatusInvalidCall:   "invalid call",
	StatusDeviceRemoved: "device removed",
	StatusDeviceHung:    "device hung",
	StatusDeviceReset:   "device reset",
}

// String returns a short description followed by the hex code.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return fmt.Sprintf("%s (0x%08X)", name, uint32(s))
	}
	return fmt.Sprintf("0x%08X", uint32(s))
}

// Failed reports whether s is a failure code.
func (s Status) Failed() bool {
	return s != StatusOK
}

// DeviceLost reports whether s means the hardware device is gone and every
// object created from it must be rebuilt.
func (s Status) DeviceLost() bool {
	switch s {
	case StatusDeviceRemoved, StatusDeviceHung, StatusDeviceReset:
		return true
	}
	return false
}

// StatusError is the error form of a failing Status.
type StatusError struct {
	Status Status
	// Detail optionally names what failed inside the driver.
	Detail string
}

// Error implements error.
func (e *StatusError) Error() string {
	if e.Detail == "" {
		return "compositor: " + e.Status.String()
	}
	return fmt.Sprintf("compositor: %s: %s", e.Detail, e.Status)
}

// Errorf returns a *StatusError for s with a formatted detail.
func Errorf(s Status, format string, args ...any) error {
	return &StatusError{Status: s, Detail: fmt.Sprintf(format, args...)}
}

// StatusOf extracts the Status carried by err.
// It returns StatusOK for nil and StatusFail for errors that carry no
// status of their own.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return StatusFail
}
