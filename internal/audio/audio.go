// Package audio owns the microphone. At most one capture is active in
// the whole process; the Recorder enforces that and guarantees the
// device is released on every stop path.
package audio

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupported means no capture backend or device is available.
	ErrUnsupported = errors.New("audio capture unsupported on this system")

	// ErrPermissionDenied means the OS refused microphone access.
	ErrPermissionDenied = errors.New("microphone permission denied")

	// ErrAlreadyRecording means a capture is already in progress.
	ErrAlreadyRecording = errors.New("recording already in progress")

	// ErrNotRecording means Stop or Cancel was called with no active capture.
	ErrNotRecording = errors.New("no recording in progress")
)

// DataCallback receives raw little-endian s16 PCM from the device.
type DataCallback func(data []byte, frameCount uint32)

type CaptureConfig struct {
	SampleRate uint32
	Channels   uint32
}

type DeviceInfo struct {
	ID   string // opaque platform-specific identifier
	Name string
}

// Context enumerates capture devices and opens capture streams.
type Context interface {
	Devices() ([]DeviceInfo, error)
	NewCapture(device *DeviceInfo, config CaptureConfig) (CaptureDevice, error)
	Close()
}

// CaptureDevice is one open capture stream. SetCallback must be called
// before Start; ClearCallback before Close.
type CaptureDevice interface {
	Start() error
	Stop()
	Close()
	SetCallback(cb DataCallback)
	ClearCallback()
}

// classifyInitError folds backend errors into the package sentinels.
// Both backends surface OS permission failures as opaque strings, so
// this is a substring check.
func classifyInitError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "access denied") || strings.Contains(msg, "permission") {
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	return fmt.Errorf("%w: %v", ErrUnsupported, err)
}
