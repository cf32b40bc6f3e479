// Command capture records a lecture from the default microphone, turns it
// into notes and then answers questions about it in the terminal.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"ai-lecture-notes-be/internal/bootstrap"
	"ai-lecture-notes-be/internal/config"
	"ai-lecture-notes-be/internal/pkg/logger"
	"ai-lecture-notes-be/pkg/audio"
	"ai-lecture-notes-be/pkg/capture"
	"ai-lecture-notes-be/pkg/extract"
	"ai-lecture-notes-be/pkg/render"
	"ai-lecture-notes-be/pkg/session"
	"ai-lecture-notes-be/pkg/synthesis"
	"ai-lecture-notes-be/pkg/transcription"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

type resourceFlags []string

func (r *resourceFlags) String() string { return strings.Join(*r, ",") }

func (r *resourceFlags) Set(v string) error {
	*r = append(*r, v)
	return nil
}

// terminalListener prints recorder events as they happen.
type terminalListener struct {
	capture.NopListener
	fragment *color.Color
}

func (l terminalListener) OnFragment(_ string, text string) {
	l.fragment.Print(text + " ")
}

func (l terminalListener) OnStateChange(_ string, state session.CaptureState) {
	color.Cyan("\n[%s]", state)
}

func (l terminalListener) OnError(_ string, err error) {
	color.Red("\n%v", err)
}

func main() {
	var resources resourceFlags
	flag.Var(&resources, "resource", "reference file to add to the library (repeatable)")
	exportPath := flag.String("export", "", "write the notes as PDF to this path")
	flag.Parse()

	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sysLogger := logger.NewIsolatedLogger(cfg.App.LogFilePath)
	captureLogger := logger.NewIsolatedLogger(cfg.App.CaptureLogFilePath)
	defer sysLogger.Sync()
	defer captureLogger.Sync()

	if err := extract.ConfigureLicense(cfg.App.UnidocLicenseKey); err != nil {
		color.Yellow("PDF support unavailable: %v", err)
	}

	engines, err := bootstrap.NewEngines(ctx, cfg, sysLogger, captureLogger)
	if err != nil {
		color.Red("Failed to initialize AI providers: %v", err)
		os.Exit(1)
	}

	st := session.New(uuid.NewString())
	for _, path := range resources {
		if err := addResource(st, path); err != nil {
			color.Red("Skipping %s: %v", path, err)
			continue
		}
		color.Green("Added resource %s", path)
	}

	listener := terminalListener{fragment: color.New(color.Faint)}
	recorder := capture.NewRecorder(st, engines.Transcriber, engines.Synthesis, listener, capture.Config{
		QueueSize: cfg.Capture.QueueSize,
		MIMEType:  transcription.PCMMimeTypeFor(cfg.Capture.SampleRate),
	}, captureLogger)

	source := audio.NewDeviceSource(audio.DeviceConfig{
		SampleRate:      float64(cfg.Capture.SampleRate),
		FramesPerBuffer: cfg.Capture.FramesPerBuffer,
	})

	color.Yellow("Recording. Press Enter to stop.")
	if err := recorder.Start(ctx, source); err != nil {
		color.Red("Could not start capture: %v", err)
		os.Exit(1)
	}

	input := bufio.NewScanner(os.Stdin)
	interrupted := false
	select {
	case <-waitForLine(input):
	case <-ctx.Done():
		interrupted = true
	}

	res, err := recorder.Stop(context.Background())
	if err != nil {
		var reqErr *synthesis.RequestError
		if errors.As(err, &reqErr) {
			color.Red("%s", reqErr.UserMessage())
		} else {
			color.Red("Note generation failed: %v", err)
		}
		os.Exit(1)
	}
	if res == nil {
		// interrupted and already finalized in the background
		doc, transcript := st.Notes()
		if doc == nil {
			color.Red("No notes were produced.")
			os.Exit(1)
		}
		res = &synthesis.Result{Notes: doc, Transcript: transcript}
	}

	fmt.Println()
	fmt.Println(render.Markdown(res.Notes))

	if *exportPath != "" {
		if err := exportPDF(*exportPath, res); err != nil {
			color.Red("Export failed: %v", err)
		} else {
			color.Green("Saved %s", *exportPath)
		}
	}

	// the scanner is still owned by waitForLine
	if interrupted {
		return
	}
	askLoop(ctx, input, engines, st)
}

func addResource(st *session.State, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	extracted, err := extract.File(path, f)
	if err != nil {
		return err
	}
	r, err := session.NewResource(extracted.Type, extracted.Title, extracted.Content)
	if err != nil {
		return err
	}
	st.AddResource(r)
	return nil
}

func exportPDF(path string, res *synthesis.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.PDF(f, res.Notes); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func askLoop(ctx context.Context, input *bufio.Scanner, engines *bootstrap.Engines, st *session.State) {
	color.Yellow("Ask about the lecture (empty line or Ctrl+D to quit).")
	for {
		color.New(color.FgCyan, color.Bold).Print("> ")
		if !input.Scan() {
			return
		}
		question := strings.TrimSpace(input.Text())
		if question == "" {
			return
		}

		answer, err := engines.QA.Ask(ctx, st, question)
		if err != nil {
			color.Red("%v", err)
			continue
		}
		if answer.Err != nil {
			color.Red("%s", answer.Reply.Content)
			continue
		}
		fmt.Println(answer.Reply.Content)
	}
}

func waitForLine(input *bufio.Scanner) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		input.Scan()
		close(done)
	}()
	return done
}
