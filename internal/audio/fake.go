package audio

import (
	"encoding/binary"
	"sync"
)

const fakeChunkFrames = 1024

// FakeContext is a Context for tests. Every capture it opens replays
// the configured PCM once, synchronously, when started.
type FakeContext struct {
	pcm []int16

	InitErr    error
	DevicesErr error

	mu       sync.Mutex
	captures []*FakeCapture
	closed   bool
}

// NewFakeContext returns a context whose captures produce the given
// mono s16 samples.
func NewFakeContext(pcm []int16) *FakeContext {
	return &FakeContext{pcm: pcm}
}

func (f *FakeContext) Devices() ([]DeviceInfo, error) {
	if f.DevicesErr != nil {
		return nil, f.DevicesErr
	}
	return []DeviceInfo{{ID: "fake", Name: "fake input"}}, nil
}

func (f *FakeContext) NewCapture(_ *DeviceInfo, _ CaptureConfig) (CaptureDevice, error) {
	if f.InitErr != nil {
		return nil, f.InitErr
	}
	cap := &FakeCapture{pcm: f.pcm}
	f.mu.Lock()
	f.captures = append(f.captures, cap)
	f.mu.Unlock()
	return cap, nil
}

func (f *FakeContext) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

// Closed reports whether Close was called.
func (f *FakeContext) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// OpenCaptures counts captures that were opened but not yet closed.
func (f *FakeContext) OpenCaptures() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.captures {
		if !c.ReleasedDevice() {
			n++
		}
	}
	return n
}

// FakeCapture replays canned PCM through the callback on Start.
type FakeCapture struct {
	pcm []int16

	StartErr error

	mu       sync.Mutex
	cb       DataCallback
	started  bool
	stopped  bool
	released bool
}

func (c *FakeCapture) SetCallback(cb DataCallback) {
	c.mu.Lock()
	c.cb = cb
	c.mu.Unlock()
}

func (c *FakeCapture) ClearCallback() {
	c.mu.Lock()
	c.cb = nil
	c.mu.Unlock()
}

func (c *FakeCapture) Start() error {
	if c.StartErr != nil {
		return c.StartErr
	}
	c.mu.Lock()
	c.started = true
	cb := c.cb
	c.mu.Unlock()
	if cb == nil {
		return nil
	}

	for pos := 0; pos < len(c.pcm); pos += fakeChunkFrames {
		end := pos + fakeChunkFrames
		if end > len(c.pcm) {
			end = len(c.pcm)
		}
		chunk := c.pcm[pos:end]
		data := make([]byte, len(chunk)*2)
		for i, s := range chunk {
			binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
		}
		cb(data, uint32(len(chunk)))
	}
	return nil
}

func (c *FakeCapture) Stop() {
	c.mu.Lock()
	c.stopped = true
	c.mu.Unlock()
}

func (c *FakeCapture) Close() {
	c.mu.Lock()
	c.released = true
	c.mu.Unlock()
}

// ReleasedDevice reports whether Close was called on this capture.
func (c *FakeCapture) ReleasedDevice() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.released
}
