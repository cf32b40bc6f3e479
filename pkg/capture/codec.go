package capture

import (
	"encoding/base64"
	"encoding/binary"

	"ai-lecture-notes-be/pkg/transcription"
)

// EncodePCM16 converts float samples to 16-bit signed little-endian PCM.
// Samples outside [-1, 1] are clamped.
func EncodePCM16(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(toInt16(s)))
	}
	return out
}

func toInt16(s float32) int16 {
	v := float64(s) * 32768
	switch {
	case v >= 32767:
		return 32767
	case v <= -32768:
		return -32768
	default:
		return int16(v)
	}
}

// EncodeFrame produces the wire frame for one capture buffer.
func EncodeFrame(samples []float32, mimeType string) transcription.Frame {
	if mimeType == "" {
		mimeType = transcription.PCMMimeType
	}
	return transcription.Frame{
		Data:     base64.StdEncoding.EncodeToString(EncodePCM16(samples)),
		MIMEType: mimeType,
	}
}
