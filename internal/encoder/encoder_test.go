package encoder

import (
	"encoding/binary"
	"math"
	"testing"
)

func sineBlock(n int, freq float64) []int16 {
	block := make([]int16, n)
	for i := range block {
		block[i] = int16(12000 * math.Sin(2*math.Pi*freq*float64(i)/SampleRate))
	}
	return block
}

func TestWavEncoder(t *testing.T) {
	enc := NewWav()

	samples := sineBlock(BlockSize, 440)
	if err := enc.EncodeBlock(samples); err != nil {
		t.Fatalf("EncodeBlock: %v", err)
	}
	partial := sineBlock(BlockSize/3, 440)
	if err := enc.EncodeBlock(partial); err != nil {
		t.Fatalf("EncodeBlock partial: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	want := uint64(len(samples) + len(partial))
	if enc.TotalFrames() != want {
		t.Errorf("TotalFrames = %d, want %d", enc.TotalFrames(), want)
	}

	out := enc.Bytes()
	if len(out) != 44+int(want)*2 {
		t.Fatalf("output size = %d, want %d", len(out), 44+int(want)*2)
	}
	if string(out[:4]) != "RIFF" || string(out[8:12]) != "WAVE" {
		t.Fatal("output is not a RIFF/WAVE stream")
	}
	if got := binary.LittleEndian.Uint32(out[24:28]); got != SampleRate {
		t.Errorf("header sample rate = %d, want %d", got, SampleRate)
	}
	if got := binary.LittleEndian.Uint32(out[40:44]); got != uint32(want*2) {
		t.Errorf("data chunk length = %d, want %d", got, want*2)
	}
	if got := int16(binary.LittleEndian.Uint16(out[44:46])); got != samples[0] {
		t.Errorf("first sample = %d, want %d", got, samples[0])
	}
}

func TestWavEncoderEmpty(t *testing.T) {
	enc := NewWav()
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	out := enc.Bytes()
	if len(out) != 44 {
		t.Errorf("empty clip size = %d, want header only (44)", len(out))
	}
}

func TestWavEncoderContentType(t *testing.T) {
	if got := NewWav().ContentType(); got != "audio/wav" {
		t.Errorf("ContentType = %q", got)
	}
}

func TestFlacEncoder(t *testing.T) {
	enc, err := NewFlac()
	if err != nil {
		t.Fatalf("NewFlac: %v", err)
	}

	var totalFed uint64
	for i := 0; i < 3; i++ {
		block := sineBlock(BlockSize, 440)
		if err := enc.EncodeBlock(block); err != nil {
			t.Fatalf("EncodeBlock %d: %v", i, err)
		}
		totalFed += uint64(len(block))
	}
	tail := sineBlock(BlockSize/4, 440)
	if err := enc.EncodeBlock(tail); err != nil {
		t.Fatalf("EncodeBlock tail: %v", err)
	}
	totalFed += uint64(len(tail))

	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if enc.TotalFrames() != totalFed {
		t.Errorf("TotalFrames = %d, want %d", enc.TotalFrames(), totalFed)
	}

	out := enc.Bytes()
	if len(out) < 4 || string(out[:4]) != "fLaC" {
		t.Fatal("output does not start with FLAC magic")
	}
	if got := enc.ContentType(); got != "audio/flac" {
		t.Errorf("ContentType = %q", got)
	}
}

func TestFlacEncoderEmpty(t *testing.T) {
	enc, err := NewFlac()
	if err != nil {
		t.Fatalf("NewFlac: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close on empty encoder: %v", err)
	}
	if enc.TotalFrames() != 0 {
		t.Errorf("TotalFrames = %d, want 0", enc.TotalFrames())
	}
	if len(enc.Bytes()) == 0 {
		t.Error("expected at least the FLAC stream header")
	}
}
