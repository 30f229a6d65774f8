package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/talentpath/assist/internal/answer"
	"github.com/talentpath/assist/internal/confidence"
	"github.com/talentpath/assist/internal/db"
	"github.com/talentpath/assist/internal/interactions"
	"github.com/talentpath/assist/internal/knowledge"
	"github.com/talentpath/assist/internal/llm"
	"github.com/talentpath/assist/internal/retrieval"
)

func testKB() *knowledge.Store {
	return knowledge.NewStore([]knowledge.Article{
		{
			ID:      "kb-001",
			Title:   "How to Upload Your Resume",
			Summary: "Uploading a resume to your TalentPath profile.",
			Answer:  "Open your **profile**, go to Documents, and upload the file.",
			CanonicalQuestions: []string{
				"How do I upload my resume?",
			},
			Tags:        []string{"resume", "profile"},
			Category:    "onboarding",
			LastUpdated: time.Now().AddDate(0, 0, -3),
			Visibility:  knowledge.VisibilityPublic,
		},
		{
			ID:         "kb-internal",
			Title:      "Internal Escalation Runbook",
			Answer:     "Internal only.",
			Category:   "support",
			Visibility: knowledge.VisibilityInternal,
		},
	})
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	kb := testKB()
	retriever := retrieval.NewEngine(kb, retrieval.DefaultConfig())
	scorer := confidence.NewScorer(confidence.DefaultConfig())
	engine := answer.NewEngine(retriever, scorer, llm.NewCannedProvider(), "canned", answer.DefaultConfig())

	return New(Config{Port: 0, AllowAll: true}, engine, kb, interactions.NewStore(database))
}

func postChat(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestChatHappyPath(t *testing.T) {
	srv := newTestServer(t)

	w := postChat(t, srv, `{
		"message": "How do I upload my resume?",
		"context": {"session_id": "sess-1", "user_id": "u-1"},
		"session_id": "sess-1"
	}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var ans answer.StructuredAnswer
	if err := json.Unmarshal(w.Body.Bytes(), &ans); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ans.AnswerText == "" {
		t.Error("AnswerText is empty")
	}
	if len(ans.Provenance) == 0 {
		t.Fatal("Provenance is empty")
	}
	if ans.Provenance[0].ArticleID != "kb-001" {
		t.Errorf("Provenance[0].ArticleID = %s, want kb-001", ans.Provenance[0].ArticleID)
	}
	if ans.UIActions.TalkToHuman {
		t.Error("TalkToHuman = true, want false")
	}

	// The turn must be logged with redacted text only.
	entries, err := srv.log.Query(context.Background(), interactions.QueryFilter{SessionID: "sess-1"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("logged %d entries, want 1", len(entries))
	}
	if entries[0].ConfidenceScore != ans.ConfidenceScore {
		t.Errorf("logged score %d != answer score %d", entries[0].ConfidenceScore, ans.ConfidenceScore)
	}
}

func TestChatLogsRedactedQuestion(t *testing.T) {
	srv := newTestServer(t)

	w := postChat(t, srv, `{
		"message": "My resume upload fails, mail me at jane@example.com",
		"context": {"session_id": "sess-2"},
		"session_id": "sess-2"
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	entries, err := srv.log.Query(context.Background(), interactions.QueryFilter{SessionID: "sess-2"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("logged %d entries, want 1", len(entries))
	}
	if strings.Contains(entries[0].Question, "jane@example.com") {
		t.Errorf("logged question contains raw PII: %q", entries[0].Question)
	}
}

func TestChatValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing message", `{"context": {"session_id": "s"}, "session_id": "s"}`},
		{"message too short", `{"message": "hi", "context": {"session_id": "s"}, "session_id": "s"}`},
		{"message too long", `{"message": "` + strings.Repeat("x", 1001) + `", "context": {"session_id": "s"}, "session_id": "s"}`},
		{"missing context", `{"message": "How do I upload my resume?", "session_id": "s"}`},
		{"missing session_id", `{"message": "How do I upload my resume?", "context": {"session_id": "s"}}`},
		{"invalid json", `{not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postChat(t, srv, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}

			var resp struct {
				Errors []fieldError `json:"errors"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if len(resp.Errors) == 0 {
				t.Error("no field errors returned")
			}
		})
	}
}

func TestChatUnknownTopicEscalates(t *testing.T) {
	srv := newTestServer(t)

	w := postChat(t, srv, `{
		"message": "How do I become a unicorn astronaut CEO?",
		"context": {"session_id": "s"},
		"session_id": "s"
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var ans answer.StructuredAnswer
	if err := json.Unmarshal(w.Body.Bytes(), &ans); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(ans.Provenance) != 0 {
		t.Errorf("Provenance has %d entries, want 0", len(ans.Provenance))
	}
	if ans.ConfidenceScore >= 50 {
		t.Errorf("ConfidenceScore = %d, want < 50", ans.ConfidenceScore)
	}
	if !ans.UIActions.TalkToHuman {
		t.Error("TalkToHuman = false, want true")
	}
}

func TestListArticles(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/articles", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var list []articleSummary
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("listed %d articles, want 1", len(list))
	}
	if list[0].ID != "kb-001" {
		t.Errorf("list[0].ID = %s, want kb-001 (internal articles are hidden)", list[0].ID)
	}
}

func TestGetArticleRendersHTML(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/articles/kb-001", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp articleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !strings.Contains(resp.AnswerHTML, "<strong>profile</strong>") {
		t.Errorf("AnswerHTML = %q, want rendered markdown", resp.AnswerHTML)
	}
}

func TestGetArticleNotFound(t *testing.T) {
	srv := newTestServer(t)

	for _, id := range []string{"missing", "kb-internal"} {
		req := httptest.NewRequest("GET", "/api/articles/"+id, nil)
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("GET %s: expected 404, got %d", id, w.Code)
		}
	}
}

func TestWebSocketChat(t *testing.T) {
	srv := newTestServer(t)

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/chat"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	defer conn.Close()

	req := wsRequest{Type: "message", Content: "How do I upload my resume?"}
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("write: %v", err)
	}

	var resp wsResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != "answer" {
		t.Fatalf("Type = %q, want answer: %+v", resp.Type, resp)
	}
	if resp.SessionID == "" {
		t.Error("SessionID was not generated")
	}
	if resp.Answer == nil || len(resp.Answer.Provenance) == 0 {
		t.Error("answer missing provenance")
	}
}

func TestWebSocketRejectsBadFrames(t *testing.T) {
	srv := newTestServer(t)

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/chat"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(wsRequest{Type: "message", Content: "hi"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var resp wsResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != "error" {
		t.Errorf("Type = %q, want error", resp.Type)
	}
}
