// Package transcription streams encoded audio to a speech backend and
// returns text fragments as they are recognized.
package transcription

import (
	"context"
	"encoding/base64"
	"fmt"
)

const PCMMimeType = "audio/pcm;rate=16000"

// PCMMimeTypeFor labels 16-bit PCM at sampleRate.
func PCMMimeTypeFor(sampleRate int) string {
	if sampleRate <= 0 || sampleRate == 16000 {
		return PCMMimeType
	}
	return fmt.Sprintf("audio/pcm;rate=%d", sampleRate)
}

// Frame is one encoded audio buffer: base64 of 16-bit signed little-endian PCM.
type Frame struct {
	Data     string `json:"data"`
	MIMEType string `json:"mimeType"`
}

// PCM decodes the frame payload back to raw bytes.
func (f Frame) PCM() ([]byte, error) {
	return base64.StdEncoding.DecodeString(f.Data)
}

type Fragment struct {
	Text string
}

type Transcriber interface {
	Open(ctx context.Context) (Stream, error)
}

// Stream is one bidirectional recognition session. Send is called from a
// single goroutine. Fragments is closed when the session ends, after which
// Err reports why (nil for a normal Close).
type Stream interface {
	Send(ctx context.Context, frame Frame) error
	Fragments() <-chan Fragment
	Err() error
	Close() error
}

// TransportError means the recognition session failed or closed unexpectedly.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transcription %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
