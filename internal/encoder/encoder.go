// Package encoder turns captured PCM into an upload-ready audio clip.
// The backend's speech recognizer accepts WAV and FLAC; both encoders
// work on the capture format below.
package encoder

const (
	SampleRate    = 16000
	Channels      = 1
	BitsPerSample = 16
	BlockSize     = 4096
)

// Encoder consumes blocks of mono s16 samples and produces a complete
// encoded clip after Close.
type Encoder interface {
	EncodeBlock(block []int16) error

	// Close finalizes the stream. Bytes is only valid afterwards.
	Close() error

	Bytes() []byte
	TotalFrames() uint64

	// ContentType is the MIME type of the encoded clip.
	ContentType() string
}
