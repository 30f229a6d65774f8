package interactions

import (
	"context"
	"testing"
	"time"

	"github.com/talentpath/assist/internal/confidence"
	"github.com/talentpath/assist/internal/db"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestLogAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	entry := Entry{
		ID:              "turn-1",
		SessionID:       "sess-1",
		UserID:          "user-1",
		Question:        "how do I upload my resume",
		AnswerLength:    120,
		ConfidenceScore: 85,
		ConfidenceLabel: confidence.LabelHigh,
		PassageCount:    3,
		Model:           "gpt-4o-mini",
		LatencyMS:       420,
	}
	if err := store.Log(ctx, entry); err != nil {
		t.Fatalf("Log: %v", err)
	}

	got, err := store.GetByID(ctx, "turn-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.SessionID != "sess-1" {
		t.Errorf("SessionID = %q", got.SessionID)
	}
	if got.ConfidenceScore != 85 {
		t.Errorf("ConfidenceScore = %d", got.ConfidenceScore)
	}
	if got.ConfidenceLabel != confidence.LabelHigh {
		t.Errorf("ConfidenceLabel = %q", got.ConfidenceLabel)
	}
	if got.Escalated {
		t.Error("Escalated = true, want false")
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
}

func TestLogGeneratesID(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	entry := Entry{
		SessionID:       "sess-1",
		Question:        "q",
		ConfidenceScore: 20,
		ConfidenceLabel: confidence.LabelLow,
		Escalated:       true,
	}
	if err := store.Log(ctx, entry); err != nil {
		t.Fatalf("Log: %v", err)
	}

	entries, err := store.Query(ctx, QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].ID == "" {
		t.Error("ID was not generated")
	}
	if !entries[0].Escalated {
		t.Error("Escalated = false, want true")
	}
}

func TestQueryFilters(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	seed := []Entry{
		{SessionID: "a", Question: "q1", ConfidenceScore: 90, ConfidenceLabel: confidence.LabelHigh},
		{SessionID: "a", Question: "q2", ConfidenceScore: 30, ConfidenceLabel: confidence.LabelLow, Escalated: true},
		{SessionID: "b", Question: "q3", ConfidenceScore: 60, ConfidenceLabel: confidence.LabelMedium},
	}
	for _, e := range seed {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	bySession, err := store.Query(ctx, QueryFilter{SessionID: "a"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(bySession) != 2 {
		t.Errorf("session filter returned %d entries, want 2", len(bySession))
	}

	escalated, err := store.Query(ctx, QueryFilter{EscalatedOnly: true})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(escalated) != 1 || escalated[0].Question != "q2" {
		t.Errorf("escalated filter = %v, want [q2]", escalated)
	}

	limited, err := store.Query(ctx, QueryFilter{Limit: 2})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit filter returned %d entries, want 2", len(limited))
	}

	future := time.Now().Add(time.Hour).UTC()
	none, err := store.Query(ctx, QueryFilter{Since: &future})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("since-future filter returned %d entries, want 0", len(none))
	}
}

func TestGetStats(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	seed := []Entry{
		{SessionID: "a", Question: "q1", ConfidenceScore: 80, ConfidenceLabel: confidence.LabelHigh},
		{SessionID: "a", Question: "q2", ConfidenceScore: 20, ConfidenceLabel: confidence.LabelLow, Escalated: true},
	}
	for _, e := range seed {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	stats, err := store.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Total != 2 {
		t.Errorf("Total = %d, want 2", stats.Total)
	}
	if stats.MeanConfidence != 50 {
		t.Errorf("MeanConfidence = %v, want 50", stats.MeanConfidence)
	}
	if stats.EscalationRate != 0.5 {
		t.Errorf("EscalationRate = %v, want 0.5", stats.EscalationRate)
	}
	if stats.ByLabel[confidence.LabelHigh] != 1 || stats.ByLabel[confidence.LabelLow] != 1 {
		t.Errorf("ByLabel = %v", stats.ByLabel)
	}
}

func TestGetStatsEmpty(t *testing.T) {
	store := setupTestStore(t)

	stats, err := store.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Total != 0 || stats.MeanConfidence != 0 || stats.EscalationRate != 0 {
		t.Errorf("stats = %+v, want zeros", stats)
	}
}
