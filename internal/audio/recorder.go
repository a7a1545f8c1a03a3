package audio

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/kennt44/teachme/internal/encoder"
	"github.com/kennt44/teachme/internal/tutor"
)

// EncoderFactory builds a fresh encoder for each recording.
type EncoderFactory func() (encoder.Encoder, error)

// DefaultEncoderFactory produces FLAC clips.
func DefaultEncoderFactory() (encoder.Encoder, error) {
	return encoder.NewFlac()
}

// Recorder drives one capture at a time: Start opens the device and
// streams PCM into an encoder, Stop finalizes the clip. Whatever
// happens, a recorder that returns from Stop or Cancel has released
// the device.
type Recorder struct {
	ctx        Context
	device     *DeviceInfo
	newEncoder EncoderFactory
	log        zerolog.Logger

	mu        sync.Mutex
	capture   CaptureDevice
	enc       encoder.Encoder
	pending   []int16
	starting  bool
	startedAt time.Time
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithDevice selects a specific capture device instead of the default.
func WithDevice(device *DeviceInfo) RecorderOption {
	return func(r *Recorder) { r.device = device }
}

// WithEncoderFactory overrides the clip encoder.
func WithEncoderFactory(f EncoderFactory) RecorderOption {
	return func(r *Recorder) { r.newEncoder = f }
}

// WithRecorderLogger sets the logger.
func WithRecorderLogger(log zerolog.Logger) RecorderOption {
	return func(r *Recorder) { r.log = log }
}

func NewRecorder(ctx Context, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		ctx:        ctx,
		newEncoder: DefaultEncoderFactory,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recording reports whether a capture is in progress.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.capture != nil || r.starting
}

// Elapsed returns how long the current recording has been running, or
// zero when idle.
func (r *Recorder) Elapsed() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.capture == nil {
		return 0
	}
	return time.Since(r.startedAt)
}

// Start opens the device and begins streaming into a fresh encoder.
// Returns ErrAlreadyRecording if a capture is active.
func (r *Recorder) Start() error {
	r.mu.Lock()
	if r.capture != nil || r.starting {
		r.mu.Unlock()
		return ErrAlreadyRecording
	}
	if r.ctx == nil {
		r.mu.Unlock()
		return ErrUnsupported
	}
	r.starting = true
	r.mu.Unlock()

	enc, err := r.newEncoder()
	if err != nil {
		return r.abortStart(fmt.Errorf("creating encoder: %w", err))
	}

	capture, err := r.ctx.NewCapture(r.device, CaptureConfig{
		SampleRate: encoder.SampleRate,
		Channels:   encoder.Channels,
	})
	if err != nil {
		return r.abortStart(fmt.Errorf("opening capture device: %w", err))
	}

	r.mu.Lock()
	r.enc = enc
	r.pending = r.pending[:0]
	r.mu.Unlock()

	// The device may deliver data the moment it starts, so the encoder
	// has to be wired up first and the mutex must not be held here.
	capture.SetCallback(r.onData)
	if err := capture.Start(); err != nil {
		capture.ClearCallback()
		capture.Close()
		r.mu.Lock()
		r.enc = nil
		r.mu.Unlock()
		return r.abortStart(fmt.Errorf("starting capture: %w", err))
	}

	r.mu.Lock()
	r.capture = capture
	r.starting = false
	r.startedAt = time.Now()
	r.mu.Unlock()
	r.log.Debug().Msg("recording started")
	return nil
}

func (r *Recorder) abortStart(err error) error {
	r.mu.Lock()
	r.starting = false
	r.mu.Unlock()
	return err
}

// Stop ends the capture, releases the device and returns the encoded
// clip. Returns ErrNotRecording when idle.
func (r *Recorder) Stop() (tutor.AudioClip, error) {
	enc, err := r.release()
	if err != nil {
		return tutor.AudioClip{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.pending) > 0 {
		if err := enc.EncodeBlock(r.pending); err != nil {
			return tutor.AudioClip{}, fmt.Errorf("encoding final block: %w", err)
		}
		r.pending = r.pending[:0]
	}
	if err := enc.Close(); err != nil {
		return tutor.AudioClip{}, fmt.Errorf("finalizing clip: %w", err)
	}

	r.log.Debug().Uint64("frames", enc.TotalFrames()).Msg("recording stopped")
	return tutor.AudioClip{
		Data:        enc.Bytes(),
		ContentType: enc.ContentType(),
	}, nil
}

// Cancel ends the capture and discards everything recorded so far.
func (r *Recorder) Cancel() error {
	if _, err := r.release(); err != nil {
		return err
	}
	r.mu.Lock()
	r.pending = r.pending[:0]
	r.mu.Unlock()
	r.log.Debug().Msg("recording cancelled")
	return nil
}

// release detaches and tears down the capture device. Teardown happens
// outside the mutex: the device thread may be blocked in onData waiting
// for it, and Stop on some backends joins that thread.
func (r *Recorder) release() (encoder.Encoder, error) {
	r.mu.Lock()
	if r.capture == nil {
		r.mu.Unlock()
		return nil, ErrNotRecording
	}
	capture, enc := r.capture, r.enc
	r.capture, r.enc = nil, nil
	r.mu.Unlock()

	capture.ClearCallback()
	capture.Stop()
	capture.Close()
	return enc, nil
}

// onData runs on the device thread. The mutex guards against a Stop
// racing the last buffer.
func (r *Recorder) onData(data []byte, frameCount uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.enc == nil {
		return
	}
	for i := 0; i+1 < len(data); i += 2 {
		r.pending = append(r.pending, int16(binary.LittleEndian.Uint16(data[i:])))
	}
	for len(r.pending) >= encoder.BlockSize {
		block := r.pending[:encoder.BlockSize]
		if err := r.enc.EncodeBlock(block); err != nil {
			r.log.Error().Err(err).Msg("encode block failed")
		}
		r.pending = r.pending[encoder.BlockSize:]
	}
}
