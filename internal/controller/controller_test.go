package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ai-lecture-notes-be/internal/pkg/logger"
	"ai-lecture-notes-be/internal/pkg/serverutils"
	"ai-lecture-notes-be/internal/repository/memory"
	"ai-lecture-notes-be/internal/service"
	"ai-lecture-notes-be/pkg/budget"
	"ai-lecture-notes-be/pkg/events"
	"ai-lecture-notes-be/pkg/llm/llmtest"
	"ai-lecture-notes-be/pkg/qa"
	"ai-lecture-notes-be/pkg/synthesis"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notesJSON = `{"metadata":{"lecture_title":"Thermodynamics","topics_covered":["entropy"]},"notes":{"sections":[{"title":"Entropy","content":"Disorder grows."}]},"summary":{"key_takeaways":["Entropy never decreases"]}}`

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(provider *llmtest.FakeProvider) *fiber.App {
	log := logger.NewNopLogger()
	repo := memory.NewSessionRepository(time.Hour)
	synth := synthesis.NewEngine(provider, budget.SynthesisLimits(), time.Minute, log)
	answerer := qa.NewEngine(provider, budget.QALimits(), time.Minute, log)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(log))
	api := app.Group("/api")

	NewSessionController(service.NewSessionService(repo)).RegisterRoutes(api)
	NewResourceController(service.NewResourceService(repo, log)).RegisterRoutes(api)
	NewPreferenceController(service.NewPreferenceService(repo)).RegisterRoutes(api)
	NewNoteController(service.NewNoteService(repo, synth, nil, events.NopPublisher{}, log)).RegisterRoutes(api)
	NewChatController(service.NewChatService(repo, answerer, events.NopPublisher{}, log)).RegisterRoutes(api)
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body io.Reader, contentType string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, envelope) {
	t.Helper()
	return do(t, app, method, path, strings.NewReader(body), fiber.MIMEApplicationJSON)
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, env := doJSON(t, app, http.MethodPost, "/api/session/v1", "")
	require.Equal(t, fiber.StatusCreated, status)

	var data struct {
		Id string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Id)
	return data.Id
}

func TestErrorStatusMapping(t *testing.T) {
	app := newTestApp(&llmtest.FakeProvider{Response: notesJSON})
	id := createSession(t, app)
	base := "/api/session/v1/" + id

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{name: "unknown session", method: http.MethodGet, path: "/api/session/v1/missing", status: fiber.StatusNotFound},
		{name: "notes before synthesis", method: http.MethodGet, path: base + "/notes", status: fiber.StatusConflict},
		{name: "export before synthesis", method: http.MethodGet, path: base + "/notes/export", status: fiber.StatusConflict},
		{name: "question before synthesis", method: http.MethodPost, path: base + "/chat", body: `{"question":"why?"}`, status: fiber.StatusConflict},
		{name: "blank question", method: http.MethodPost, path: base + "/chat", body: `{"question":""}`, status: fiber.StatusBadRequest},
		{name: "resource without content", method: http.MethodPost, path: base + "/resources", body: `{"title":"Ch1"}`, status: fiber.StatusBadRequest},
		{name: "resource with unknown type", method: http.MethodPost, path: base + "/resources", body: `{"title":"Ch1","content":"x","type":"audio"}`, status: fiber.StatusBadRequest},
		{name: "unknown priority", method: http.MethodPost, path: base + "/preferences/priorities/toggle", body: `{"priority":"jokes"}`, status: fiber.StatusBadRequest},
		{name: "synthesis with empty library", method: http.MethodPost, path: base + "/notes/synthesize", status: fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := doJSON(t, app, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.status, status)
			assert.False(t, env.Success)
			assert.Equal(t, tt.status, env.Code)
		})
	}
}

func TestLectureFlow(t *testing.T) {
	provider := &llmtest.FakeProvider{Response: notesJSON}
	app := newTestApp(provider)
	id := createSession(t, app)
	base := "/api/session/v1/" + id

	status, _ := doJSON(t, app, http.MethodPost, base+"/resources", `{"title":"Ch1","content":"Entropy is a state function.","type":"pdf"}`)
	require.Equal(t, fiber.StatusCreated, status)

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	part, err := writer.CreateFormFile("file", "slides.md")
	require.NoError(t, err)
	_, err = part.Write([]byte("# Slide 1\nHeat engines"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	status, env := do(t, app, http.MethodPost, base+"/resources/upload", &form, writer.FormDataContentType())
	require.Equal(t, fiber.StatusCreated, status, env.Message)

	status, env = doJSON(t, app, http.MethodGet, base+"/resources", "")
	require.Equal(t, fiber.StatusOK, status)
	var resources []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &resources))
	assert.Len(t, resources, 2)

	status, env = doJSON(t, app, http.MethodPost, base+"/notes/synthesize", "")
	require.Equal(t, fiber.StatusOK, status, env.Message)
	var notes struct {
		Mode string `json:"mode"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &notes))
	assert.Equal(t, "resources_only", notes.Mode)
	assert.Contains(t, provider.LastPrompt(), "Heat engines")

	status, env = doJSON(t, app, http.MethodGet, base+"/notes?format=markdown", "")
	require.Equal(t, fiber.StatusOK, status)
	var md struct {
		Markdown string `json:"markdown"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &md))
	assert.Contains(t, md.Markdown, "# Thermodynamics")

	provider.Response = "It always grows [Notes: Entropy]."
	status, env = doJSON(t, app, http.MethodPost, base+"/chat", `{"question":"Does entropy shrink?"}`)
	require.Equal(t, fiber.StatusOK, status)
	var answer struct {
		Failed    bool                     `json:"failed"`
		Citations []map[string]interface{} `json:"citations"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &answer))
	assert.False(t, answer.Failed)
	assert.Len(t, answer.Citations, 1)

	status, _ = doJSON(t, app, http.MethodDelete, base, "")
	require.Equal(t, fiber.StatusOK, status)
	status, _ = doJSON(t, app, http.MethodGet, base, "")
	assert.Equal(t, fiber.StatusNotFound, status)
}
