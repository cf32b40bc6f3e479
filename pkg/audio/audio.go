// Package audio provides mono float32 sample sources for lecture capture.
package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrDeviceUnavailable means no input could be acquired: missing device,
// denied permission or an already closed source.
var ErrDeviceUnavailable = errors.New("audio input device unavailable")

// Source yields buffers of samples in [-1, 1] in capture order.
type Source interface {
	// Open acquires the input. Failures wrap ErrDeviceUnavailable.
	Open(ctx context.Context) error

	// Stream sends buffers to out until ctx is done or the input ends.
	// It never reorders buffers and returns nil on cancellation.
	Stream(ctx context.Context, out chan<- []float32) error

	// Close releases the input. It is safe to call more than once.
	Close() error
}

// DecodeFloat32LE reads little-endian IEEE 754 samples, the format browsers
// send from an AudioWorklet.
func DecodeFloat32LE(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("audio frame length %d is not a multiple of 4", len(b))
	}
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out, nil
}
