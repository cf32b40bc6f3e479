package capture

import (
	"encoding/base64"
	"encoding/binary"
	"testing"

	"ai-lecture-notes-be/pkg/transcription"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePCM16(t *testing.T) {
	tests := []struct {
		name   string
		sample float32
		want   int16
	}{
		{name: "silence", sample: 0, want: 0},
		{name: "half", sample: 0.5, want: 16384},
		{name: "negative half", sample: -0.5, want: -16384},
		{name: "full scale positive clamps", sample: 1, want: 32767},
		{name: "full scale negative", sample: -1, want: -32768},
		{name: "overdriven clamps", sample: 1.7, want: 32767},
		{name: "underdriven clamps", sample: -3, want: -32768},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := EncodePCM16([]float32{tt.sample})
			require.Len(t, out, 2)
			assert.Equal(t, tt.want, int16(binary.LittleEndian.Uint16(out)))
		})
	}
}

func TestEncodeFrame(t *testing.T) {
	frame := EncodeFrame([]float32{0, 0.5}, "")

	assert.Equal(t, transcription.PCMMimeType, frame.MIMEType)
	raw, err := base64.StdEncoding.DecodeString(frame.Data)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x40}, raw)
}
