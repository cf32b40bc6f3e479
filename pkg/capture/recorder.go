// Package capture runs a live lecture capture: audio in, encoded frames out
// to a transcriber, text fragments into a transcript buffer, and notes
// synthesized from that buffer when the capture stops.
package capture

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"ai-lecture-notes-be/internal/pkg/logger"
	"ai-lecture-notes-be/pkg/audio"
	"ai-lecture-notes-be/pkg/session"
	"ai-lecture-notes-be/pkg/synthesis"
	"ai-lecture-notes-be/pkg/transcription"
)

const module = "CAPTURE"

type Synthesizer interface {
	Synthesize(ctx context.Context, st *session.State, transcript string) (*synthesis.Result, error)
}

// Listener observes a recorder. Calls come from recorder goroutines.
type Listener interface {
	OnFragment(sessionID, text string)
	OnStateChange(sessionID string, state session.CaptureState)
	OnNotes(sessionID string, result *synthesis.Result)
	OnError(sessionID string, err error)
}

type NopListener struct{}

func (NopListener) OnFragment(string, string)                  {}
func (NopListener) OnStateChange(string, session.CaptureState) {}
func (NopListener) OnNotes(string, *synthesis.Result)          {}
func (NopListener) OnError(string, error)                      {}

type Config struct {
	QueueSize int
	MIMEType  string
}

// Recorder drives the idle -> listening -> processing -> idle cycle for one session.
type Recorder struct {
	state       *session.State
	transcriber transcription.Transcriber
	synthesizer Synthesizer
	listener    Listener
	config      Config
	logger      logger.ILogger

	buffer TranscriptBuffer

	mu  sync.Mutex
	run *run
}

type run struct {
	source audio.Source
	stream transcription.Stream
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once

	// closed once source.Stream has returned
	sourceDone chan struct{}
}

func NewRecorder(st *session.State, transcriber transcription.Transcriber, synthesizer Synthesizer, listener Listener, config Config, logger logger.ILogger) *Recorder {
	if listener == nil {
		listener = NopListener{}
	}
	if config.QueueSize <= 0 {
		config.QueueSize = 256
	}
	return &Recorder{
		state:       st,
		transcriber: transcriber,
		synthesizer: synthesizer,
		listener:    listener,
		config:      config,
		logger:      logger,
	}
}

// Start acquires source and opens a transcription stream. The capture keeps
// running after ctx is cancelled; only Stop or a transport failure ends it.
func (r *Recorder) Start(ctx context.Context, source audio.Source) error {
	rn, runCtx, err := r.open(ctx, source)
	if err != nil {
		return err
	}

	samples := make(chan []float32, r.config.QueueSize)
	queue := NewFrameQueue(r.config.QueueSize)

	rn.wg.Add(4)
	go func() {
		defer rn.wg.Done()
		defer close(rn.sourceDone)
		defer close(samples)
		if err := source.Stream(runCtx, samples); err != nil {
			r.interrupted(rn, err)
		}
	}()
	go func() {
		defer rn.wg.Done()
		defer queue.Close()
		for s := range samples {
			if err := queue.Enqueue(runCtx, EncodeFrame(s, r.config.MIMEType)); err != nil {
				return
			}
		}
	}()
	go func() {
		defer rn.wg.Done()
		if err := queue.Run(runCtx, rn.stream.Send); err != nil {
			r.interrupted(rn, err)
		}
	}()
	go func() {
		defer rn.wg.Done()
		for fragment := range rn.stream.Fragments() {
			r.buffer.Append(fragment.Text)
			r.listener.OnFragment(r.state.Id, fragment.Text)
		}
		if err := rn.stream.Err(); err != nil {
			r.interrupted(rn, err)
		}
	}()

	r.logger.Info(module, "Capture started", map[string]interface{}{"session_id": r.state.Id})
	r.listener.OnStateChange(r.state.Id, session.CaptureListening)
	return nil
}

// open moves to listening and acquires both ends of the capture. r.mu is
// held throughout, so a concurrent Stop waits for the run to exist.
func (r *Recorder) open(ctx context.Context, source audio.Source) (*run, context.Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.state.TransitionCapture(session.CaptureIdle, session.CaptureListening); err != nil {
		return nil, nil, err
	}

	if err := source.Open(ctx); err != nil {
		r.state.ResetCapture()
		if !errors.Is(err, audio.ErrDeviceUnavailable) {
			err = fmt.Errorf("%w: %v", audio.ErrDeviceUnavailable, err)
		}
		r.logger.Warn(module, "Audio input unavailable", map[string]interface{}{
			"session_id": r.state.Id,
			"error":      err.Error(),
		})
		return nil, nil, err
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stream, err := r.transcriber.Open(runCtx)
	if err != nil {
		cancel()
		_ = source.Close()
		r.state.ResetCapture()
		var tErr *transcription.TransportError
		if !errors.As(err, &tErr) {
			err = &transcription.TransportError{Op: "connect", Err: err}
		}
		r.logger.Error(module, "Failed to open transcription stream", map[string]interface{}{
			"session_id": r.state.Id,
			"error":      err.Error(),
		})
		return nil, nil, err
	}

	r.buffer.Reset()
	r.run = &run{source: source, stream: stream, cancel: cancel, sourceDone: make(chan struct{})}
	return r.run, runCtx, nil
}

// Stop ends the capture and synthesizes notes from the transcript.
// It is a no-op while idle and fails with session.ErrCaptureBusy while processing.
func (r *Recorder) Stop(ctx context.Context) (*synthesis.Result, error) {
	r.mu.Lock()
	rn := r.run
	r.mu.Unlock()

	if rn == nil {
		if r.state.CaptureState() == session.CaptureProcessing {
			return nil, session.ErrCaptureBusy
		}
		return nil, nil
	}
	return r.finish(ctx, rn)
}

// Abort ends the capture without synthesizing notes. The transcript is discarded.
func (r *Recorder) Abort() {
	r.mu.Lock()
	rn := r.run
	r.run = nil
	r.mu.Unlock()
	if rn == nil {
		return
	}

	r.teardown(rn)
	r.buffer.Reset()
	r.state.ResetCapture()
	r.logger.Info(module, "Capture aborted", map[string]interface{}{"session_id": r.state.Id})
	r.listener.OnStateChange(r.state.Id, session.CaptureIdle)
}

// Transcript is the text captured so far.
func (r *Recorder) Transcript() string {
	return r.buffer.Text()
}

func (r *Recorder) finish(ctx context.Context, rn *run) (*synthesis.Result, error) {
	r.mu.Lock()
	if r.run != rn {
		r.mu.Unlock()
		return nil, nil
	}
	if err := r.state.TransitionCapture(session.CaptureListening, session.CaptureProcessing); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	r.run = nil
	r.mu.Unlock()

	r.teardown(rn)
	transcript := r.buffer.Text()

	r.logger.Info(module, "Capture stopped", map[string]interface{}{
		"session_id":       r.state.Id,
		"fragments":        r.buffer.Len(),
		"transcript_chars": len(transcript),
	})
	r.listener.OnStateChange(r.state.Id, session.CaptureProcessing)

	res, err := r.synthesizer.Synthesize(ctx, r.state, transcript)

	r.state.ResetCapture()
	r.listener.OnStateChange(r.state.Id, session.CaptureIdle)

	if err != nil {
		r.listener.OnError(r.state.Id, err)
		return nil, err
	}
	r.listener.OnNotes(r.state.Id, res)
	return res, nil
}

// teardown cancels the run and releases the source only after its Stream
// has returned. No frame is sent after it returns.
func (r *Recorder) teardown(rn *run) {
	rn.cancel()
	<-rn.sourceDone
	if err := rn.source.Close(); err != nil {
		r.logger.Warn(module, "Failed to release audio input", map[string]interface{}{"error": err.Error()})
	}
	if err := rn.stream.Close(); err != nil {
		r.logger.Debug(module, "Transcription stream close", map[string]interface{}{"error": err.Error()})
	}
	rn.wg.Wait()
}

// interrupted ends a capture whose device or transport failed. The text
// captured so far is kept and still synthesized.
func (r *Recorder) interrupted(rn *run, err error) {
	r.mu.Lock()
	current := r.run == rn
	r.mu.Unlock()
	if !current {
		return
	}

	rn.once.Do(func() {
		r.logger.Error(module, "Capture interrupted", map[string]interface{}{
			"session_id": r.state.Id,
			"error":      err.Error(),
		})
		r.listener.OnError(r.state.Id, err)

		// finish waits on rn.wg, which includes the calling goroutine
		go func() {
			_, _ = r.finish(context.Background(), rn)
		}()
	})
}
