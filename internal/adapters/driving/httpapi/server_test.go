package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackink-studio/inkwell/internal/core/domain"
	"github.com/blackink-studio/inkwell/internal/core/ports/driving"
)

type fakeChat struct {
	result  *driving.ChatResult
	err     error
	deltas  []string
	lastReq driving.ChatRequest
}

func (f *fakeChat) Respond(ctx context.Context, req driving.ChatRequest, onDelta func(string)) (*driving.ChatResult, error) {
	f.lastReq = req
	for _, d := range f.deltas {
		if onDelta != nil {
			onDelta(d)
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeIngestor struct {
	report *domain.IngestReport
	err    error
	calls  int
}

func (f *fakeIngestor) Ingest(ctx context.Context) (*domain.IngestReport, error) {
	f.calls++
	return f.report, f.err
}

func (f *fakeIngestor) IngestDocuments(ctx context.Context, docs []domain.Document) (*domain.IngestReport, error) {
	return f.report, f.err
}

func doRequest(t *testing.T, s *Server, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func parseEvents(t *testing.T, body string) []chatEvent {
	t.Helper()
	var events []chatEvent
	for _, line := range strings.Split(body, "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev chatEvent
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev))
		events = append(events, ev)
	}
	return events
}

func TestHealthz(t *testing.T) {
	s := NewServer(Config{}, nil, nil)

	rec := doRequest(t, s, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestChatStreamsDeltasAndFinalEvent(t *testing.T) {
	chat := &fakeChat{
		deltas: []string{"Hola", ", bienvenido"},
		result: &driving.ChatResult{
			Role:  domain.RoleBooking,
			Reply: "Hola, bienvenido",
			Sources: []domain.RetrievalResult{
				{ID: "chunk-1", Source: "policy_doc", Score: 0.9},
			},
		},
	}
	s := NewServer(Config{}, chat, nil)

	body := `{"userId":"client-1","messages":[{"role":"user","content":"quiero una cita"}]}`
	rec := doRequest(t, s, http.MethodPost, "/api/chat", body, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "client-1", chat.lastReq.ClientID)
	require.Len(t, chat.lastReq.Messages, 1)

	events := parseEvents(t, rec.Body.String())
	require.Len(t, events, 3)
	assert.Equal(t, "Hola", events[0].Delta)
	assert.Equal(t, ", bienvenido", events[1].Delta)
	assert.True(t, events[2].Done)
	assert.Equal(t, domain.RoleBooking, events[2].Role)
	require.Len(t, events[2].Sources, 1)
	assert.Equal(t, "policy_doc", events[2].Sources[0].Source)
}

func TestChatRejectsEmptyMessages(t *testing.T) {
	s := NewServer(Config{}, &fakeChat{}, nil)

	rec := doRequest(t, s, http.MethodPost, "/api/chat", `{"messages":[]}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatRejectsMalformedBody(t *testing.T) {
	s := NewServer(Config{}, &fakeChat{}, nil)

	rec := doRequest(t, s, http.MethodPost, "/api/chat", `{not json`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatWithoutServiceAnswers503(t *testing.T) {
	s := NewServer(Config{}, nil, nil)

	body := `{"messages":[{"role":"user","content":"hola"}]}`
	rec := doRequest(t, s, http.MethodPost, "/api/chat", body, nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestChatFailureMidStreamEmitsErrorEvent(t *testing.T) {
	chat := &fakeChat{
		deltas: []string{"partial"},
		err:    errors.New("model unreachable"),
	}
	s := NewServer(Config{}, chat, nil)

	body := `{"messages":[{"role":"user","content":"hola"}]}`
	rec := doRequest(t, s, http.MethodPost, "/api/chat", body, nil)

	events := parseEvents(t, rec.Body.String())
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.True(t, last.Done)
	assert.Empty(t, last.Role)
	assert.NotEmpty(t, last.Error, "a failed turn must be distinguishable from an empty reply")
	assert.NotContains(t, last.Error, "model unreachable")
}

func TestChatFailureBeforeAnyDeltaAnswers500(t *testing.T) {
	chat := &fakeChat{err: errors.New("model unreachable")}
	s := NewServer(Config{}, chat, nil)

	body := `{"messages":[{"role":"user","content":"hola"}]}`
	rec := doRequest(t, s, http.MethodPost, "/api/chat", body, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEqual(t, "text/event-stream", rec.Header().Get("Content-Type"))

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "chat turn failed", resp.Error)
}

func TestIngestWithoutSecretIsOpen(t *testing.T) {
	ing := &fakeIngestor{report: &domain.IngestReport{Documents: 4, Chunks: 4, Stored: 4}}
	s := NewServer(Config{}, nil, ing)

	rec := doRequest(t, s, http.MethodPost, "/api/ingest", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, ing.calls)

	var resp ingestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Stats)
	assert.Equal(t, 4, resp.Stats.Documents)
}

func TestIngestRequiresSecretWhenConfigured(t *testing.T) {
	ing := &fakeIngestor{report: &domain.IngestReport{}}
	s := NewServer(Config{IngestSecret: "s3cret"}, nil, ing)

	rec := doRequest(t, s, http.MethodPost, "/api/ingest", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, ing.calls)

	rec = doRequest(t, s, http.MethodPost, "/api/ingest", "", map[string]string{
		"Authorization": "Bearer wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/api/ingest", "", map[string]string{
		"Authorization": "Bearer s3cret",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, ing.calls)
}

func TestIngestFailureReturnsStageReport(t *testing.T) {
	ing := &fakeIngestor{
		report: &domain.IngestReport{Documents: 2, FailedStage: domain.StageEmbed},
		err:    errors.New("embedding provider down"),
	}
	s := NewServer(Config{}, nil, ing)

	rec := doRequest(t, s, http.MethodPost, "/api/ingest", "", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp ingestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, domain.StageEmbed, resp.Stats.FailedStage)
	assert.Contains(t, resp.Error, "embedding provider down")
}

func TestIngestWithoutServiceAnswers503(t *testing.T) {
	s := NewServer(Config{}, nil, nil)

	rec := doRequest(t, s, http.MethodPost, "/api/ingest", "", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
