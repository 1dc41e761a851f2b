package capture

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/klauspost/compress/zstd"

	"raymode7/internal/engine"
)

// Frame is one recorded frame together with the camera that produced it.
type Frame struct {
	Index  uint64        `json:"index"`
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Camera engine.Camera `json:"camera"`
	Pix    []byte        `json:"pix"`
}

// FrameBuffer rebuilds a frame buffer from the recorded pixels.
func (f Frame) FrameBuffer() *engine.FrameBuffer {
	return &engine.FrameBuffer{Width: f.Width, Height: f.Height, Pix: f.Pix}
}

// Recorder appends frames as zstd-compressed JSON lines.
type Recorder struct {
	mu     sync.Mutex
	closer io.Closer
	enc    *zstd.Encoder
	w      *bufio.Writer
	count  uint64
}

// NewRecorder writes a recording to w. Close flushes the compressor but does
// not close w.
func NewRecorder(w io.Writer) (*Recorder, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}
	return &Recorder{enc: enc, w: bufio.NewWriterSize(enc, 128*1024)}, nil
}

// CreateRecorder writes a recording to a new file.
func CreateRecorder(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("capture: create %s: %w", path, err)
	}
	r, err := NewRecorder(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// Record appends one frame. The pixels are copied by the encoder before
// Record returns, so the frame buffer may be reused.
func (r *Recorder) Record(fb *engine.FrameBuffer, cam engine.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.enc == nil {
		return fmt.Errorf("capture: recorder closed")
	}

	b, err := json.Marshal(Frame{Index: r.count, Width: fb.Width, Height: fb.Height, Camera: cam, Pix: fb.Pix})
	if err != nil {
		return err
	}
	if _, err := r.w.Write(b); err != nil {
		return err
	}
	if err := r.w.WriteByte('\n'); err != nil {
		return err
	}
	r.count++
	return nil
}

// Count returns the number of frames recorded so far.
func (r *Recorder) Count() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Close flushes and finishes the recording.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.enc == nil {
		return nil
	}
	err := r.w.Flush()
	if cerr := r.enc.Close(); err == nil {
		err = cerr
	}
	r.enc = nil
	r.w = nil
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
		r.closer = nil
	}
	return err
}

// ReadRecording decodes every frame of a recording.
func ReadRecording(src io.Reader) ([]Frame, error) {
	dec, err := zstd.NewReader(src)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)

	var frames []Frame
	for sc.Scan() {
		var f Frame
		if err := json.Unmarshal(sc.Bytes(), &f); err != nil {
			return nil, fmt.Errorf("capture: frame %d: %w", len(frames), err)
		}
		if len(f.Pix) != f.Width*f.Height*4 {
			return nil, fmt.Errorf("capture: frame %d: %d bytes for %dx%d", len(frames), len(f.Pix), f.Width, f.Height)
		}
		frames = append(frames, f)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return frames, nil
}

// OpenRecording reads a recording file.
func OpenRecording(path string) ([]Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRecording(f)
}
