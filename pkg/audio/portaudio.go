package audio

import (
	"context"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

type DeviceConfig struct {
	SampleRate      float64
	FramesPerBuffer int
}

// DeviceSource reads the default microphone through PortAudio.
type DeviceSource struct {
	config DeviceConfig
	buffer []float32

	mu          sync.Mutex
	stream      *portaudio.Stream
	initialized bool
}

var _ Source = (*DeviceSource)(nil)

func NewDeviceSource(config DeviceConfig) *DeviceSource {
	if config.SampleRate == 0 {
		config.SampleRate = 16000
	}
	if config.FramesPerBuffer == 0 {
		config.FramesPerBuffer = 4096
	}
	return &DeviceSource{
		config: config,
		buffer: make([]float32, config.FramesPerBuffer),
	}
}

func (d *DeviceSource) Open(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	d.initialized = true

	// mono input, no output
	stream, err := portaudio.OpenDefaultStream(1, 0, d.config.SampleRate, d.config.FramesPerBuffer, d.buffer)
	if err != nil {
		portaudio.Terminate()
		d.initialized = false
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	d.stream = stream
	return nil
}

func (d *DeviceSource) Stream(ctx context.Context, out chan<- []float32) error {
	d.mu.Lock()
	stream := d.stream
	d.mu.Unlock()
	if stream == nil {
		return fmt.Errorf("%w: stream not opened", ErrDeviceUnavailable)
	}

	if err := stream.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	defer stream.Stop()

	for {
		if ctx.Err() != nil {
			return nil
		}
		if err := stream.Read(); err != nil {
			// Input overflow drops one buffer; the stream stays usable.
			if err == portaudio.InputOverflowed {
				continue
			}
			return fmt.Errorf("read audio: %w", err)
		}

		samples := make([]float32, len(d.buffer))
		copy(samples, d.buffer)

		select {
		case out <- samples:
		case <-ctx.Done():
			return nil
		}
	}
}

func (d *DeviceSource) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var err error
	if d.stream != nil {
		err = d.stream.Close()
		d.stream = nil
	}
	if d.initialized {
		portaudio.Terminate()
		d.initialized = false
	}
	return err
}
