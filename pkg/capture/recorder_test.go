package capture

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ai-lecture-notes-be/internal/entity"
	"ai-lecture-notes-be/internal/pkg/logger"
	"ai-lecture-notes-be/pkg/audio"
	"ai-lecture-notes-be/pkg/session"
	"ai-lecture-notes-be/pkg/synthesis"
	"ai-lecture-notes-be/pkg/transcription"
	"ai-lecture-notes-be/pkg/transcription/transcriptiontest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSynthesizer struct {
	mu          sync.Mutex
	transcripts []string
	err         error
	called      chan struct{}
}

func newFakeSynthesizer() *fakeSynthesizer {
	return &fakeSynthesizer{called: make(chan struct{}, 4)}
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, st *session.State, transcript string) (*synthesis.Result, error) {
	f.mu.Lock()
	f.transcripts = append(f.transcripts, transcript)
	err := f.err
	f.mu.Unlock()
	defer func() { f.called <- struct{}{} }()

	if err != nil {
		return nil, err
	}
	doc := &entity.NoteDocument{Metadata: entity.NoteMetadata{LectureTitle: "Captured"}}
	st.ReplaceNotes(doc, transcript)
	return &synthesis.Result{Notes: doc, Transcript: transcript, Mode: synthesis.ModeLecture}, nil
}

type recordingListener struct {
	NopListener
	fragments chan string
	errs      chan error
}

func newRecordingListener() *recordingListener {
	return &recordingListener{fragments: make(chan string, 16), errs: make(chan error, 4)}
}

func (l *recordingListener) OnFragment(_ string, text string) { l.fragments <- text }
func (l *recordingListener) OnError(_ string, err error)      { l.errs <- err }

type failingSource struct{}

func (failingSource) Open(context.Context) error                     { return errors.New("permission denied") }
func (failingSource) Stream(context.Context, chan<- []float32) error { return nil }
func (failingSource) Close() error                                   { return nil }

// deviceSource mimics a blocking device read that only notices
// cancellation after the current buffer completes.
type deviceSource struct {
	mu                   sync.Mutex
	streaming            bool
	closedWhileStreaming bool
	closed               bool
	opening              chan struct{}
	openGate             chan struct{}
}

func (d *deviceSource) Open(context.Context) error {
	if d.opening != nil {
		close(d.opening)
		<-d.openGate
	}
	return nil
}

func (d *deviceSource) Stream(ctx context.Context, out chan<- []float32) error {
	d.mu.Lock()
	d.streaming = true
	d.mu.Unlock()

	<-ctx.Done()
	time.Sleep(20 * time.Millisecond)

	d.mu.Lock()
	d.streaming = false
	d.mu.Unlock()
	return nil
}

func (d *deviceSource) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closedWhileStreaming = d.streaming
	d.closed = true
	return nil
}

func waitFor[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out")
	}
	var zero T
	return zero
}

func newTestRecorder(st *session.State, tr transcription.Transcriber, syn Synthesizer, l Listener) *Recorder {
	return NewRecorder(st, tr, syn, l, Config{QueueSize: 8}, logger.NewNopLogger())
}

func TestRecorderDeviceUnavailable(t *testing.T) {
	st := session.New("s1")
	rec := newTestRecorder(st, &transcriptiontest.FakeTranscriber{}, newFakeSynthesizer(), nil)

	err := rec.Start(context.Background(), failingSource{})

	assert.ErrorIs(t, err, audio.ErrDeviceUnavailable)
	assert.Equal(t, session.CaptureIdle, st.CaptureState())
}

func TestRecorderTranscriberOpenFailure(t *testing.T) {
	st := session.New("s1")
	tr := &transcriptiontest.FakeTranscriber{OpenErr: errors.New("dial failed")}
	rec := newTestRecorder(st, tr, newFakeSynthesizer(), nil)

	err := rec.Start(context.Background(), audio.NewStreamSource(1))

	var tErr *transcription.TransportError
	assert.ErrorAs(t, err, &tErr)
	assert.Equal(t, session.CaptureIdle, st.CaptureState())
}

func TestRecorderStopWhileIdleIsNoop(t *testing.T) {
	syn := newFakeSynthesizer()
	rec := newTestRecorder(session.New("s1"), &transcriptiontest.FakeTranscriber{}, syn, nil)

	res, err := rec.Stop(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, res)
	assert.Empty(t, syn.transcripts)
}

func TestRecorderCaptureAndStop(t *testing.T) {
	st := session.New("s1")
	tr := &transcriptiontest.FakeTranscriber{}
	syn := newFakeSynthesizer()
	listener := newRecordingListener()
	rec := newTestRecorder(st, tr, syn, listener)
	src := audio.NewStreamSource(8)

	require.NoError(t, rec.Start(context.Background(), src))
	assert.Equal(t, session.CaptureListening, st.CaptureState())
	assert.ErrorIs(t, rec.Start(context.Background(), audio.NewStreamSource(1)), session.ErrCaptureBusy)

	stream := tr.Last()
	for i := 0; i < 3; i++ {
		require.NoError(t, src.Push(context.Background(), []float32{float32(i) / 10}))
	}
	for i := 0; i < 3; i++ {
		waitFor(t, stream.Sent())
	}
	frames := stream.Frames()
	require.Len(t, frames, 3)
	for i, f := range frames {
		assert.Equal(t, EncodeFrame([]float32{float32(i) / 10}, "").Data, f.Data)
	}

	stream.Emit("today we cover")
	stream.Emit("the second law")
	waitFor(t, listener.fragments)
	waitFor(t, listener.fragments)

	res, err := rec.Stop(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "today we cover the second law", res.Transcript)
	assert.Equal(t, []string{"today we cover the second law"}, syn.transcripts)
	assert.Equal(t, session.CaptureIdle, st.CaptureState())
	assert.True(t, stream.Closed())
	assert.ErrorIs(t, src.Push(context.Background(), []float32{1}), audio.ErrSourceClosed)
	assert.True(t, st.HasNotes())
}

func TestRecorderSynthesisFailureReturnsToIdle(t *testing.T) {
	st := session.New("s1")
	syn := newFakeSynthesizer()
	syn.err = &synthesis.RequestError{Cause: errors.New("bad json")}
	listener := newRecordingListener()
	rec := newTestRecorder(st, &transcriptiontest.FakeTranscriber{}, syn, listener)

	require.NoError(t, rec.Start(context.Background(), audio.NewStreamSource(1)))
	_, err := rec.Stop(context.Background())

	var reqErr *synthesis.RequestError
	assert.ErrorAs(t, err, &reqErr)
	assert.Equal(t, session.CaptureIdle, st.CaptureState())
	assert.ErrorAs(t, waitFor(t, listener.errs), &reqErr)
	assert.False(t, st.HasNotes())
}

func TestRecorderTransportFailureKeepsTranscript(t *testing.T) {
	st := session.New("s1")
	tr := &transcriptiontest.FakeTranscriber{}
	syn := newFakeSynthesizer()
	listener := newRecordingListener()
	rec := newTestRecorder(st, tr, syn, listener)

	require.NoError(t, rec.Start(context.Background(), audio.NewStreamSource(1)))
	stream := tr.Last()
	stream.Emit("partial lecture")
	waitFor(t, listener.fragments)

	stream.Fail(&transcription.TransportError{Op: "receive", Err: errors.New("socket closed")})

	var tErr *transcription.TransportError
	assert.ErrorAs(t, waitFor(t, listener.errs), &tErr)
	waitFor(t, syn.called)

	syn.mu.Lock()
	assert.Equal(t, []string{"partial lecture"}, syn.transcripts)
	syn.mu.Unlock()

	require.Eventually(t, func() bool {
		return st.CaptureState() == session.CaptureIdle
	}, time.Second, 5*time.Millisecond)
}

func TestRecorderAbortSkipsSynthesis(t *testing.T) {
	st := session.New("s1")
	tr := &transcriptiontest.FakeTranscriber{}
	syn := newFakeSynthesizer()
	listener := newRecordingListener()
	rec := newTestRecorder(st, tr, syn, listener)
	src := audio.NewStreamSource(1)

	require.NoError(t, rec.Start(context.Background(), src))
	tr.Last().Emit("never used")
	waitFor(t, listener.fragments)

	rec.Abort()

	assert.Equal(t, session.CaptureIdle, st.CaptureState())
	assert.Empty(t, rec.Transcript())
	assert.True(t, tr.Last().Closed())
	assert.ErrorIs(t, src.Push(context.Background(), []float32{1}), audio.ErrSourceClosed)

	syn.mu.Lock()
	assert.Empty(t, syn.transcripts)
	syn.mu.Unlock()

	res, err := rec.Stop(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, res)
}

func TestRecorderReleasesSourceAfterStreamReturns(t *testing.T) {
	st := session.New("s1")
	src := &deviceSource{}
	rec := newTestRecorder(st, &transcriptiontest.FakeTranscriber{}, newFakeSynthesizer(), nil)

	require.NoError(t, rec.Start(context.Background(), src))
	require.Eventually(t, func() bool {
		src.mu.Lock()
		defer src.mu.Unlock()
		return src.streaming
	}, time.Second, time.Millisecond)

	_, err := rec.Stop(context.Background())
	require.NoError(t, err)

	src.mu.Lock()
	defer src.mu.Unlock()
	assert.True(t, src.closed)
	assert.False(t, src.closedWhileStreaming)
}

func TestRecorderStopDuringStartWaitsForRun(t *testing.T) {
	st := session.New("s1")
	syn := newFakeSynthesizer()
	src := &deviceSource{opening: make(chan struct{}), openGate: make(chan struct{})}
	tr := &transcriptiontest.FakeTranscriber{}
	rec := newTestRecorder(st, tr, syn, nil)

	started := make(chan error, 1)
	go func() { started <- rec.Start(context.Background(), src) }()
	<-src.opening

	stopped := make(chan error, 1)
	go func() {
		_, err := rec.Stop(context.Background())
		stopped <- err
	}()

	select {
	case <-stopped:
		t.Fatal("stop returned before the capture was running")
	case <-time.After(20 * time.Millisecond):
	}

	close(src.openGate)
	require.NoError(t, waitFor(t, started))
	require.NoError(t, waitFor(t, stopped))

	assert.Equal(t, session.CaptureIdle, st.CaptureState())
	assert.True(t, tr.Last().Closed())
	waitFor(t, syn.called)
}
