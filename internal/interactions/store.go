package interactions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talentpath/assist/internal/confidence"
	"github.com/talentpath/assist/internal/db"
)

// Store provides persistence for interaction entries.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Log inserts a new interaction entry. If entry.ID is empty a UUID is
// generated.
func (s *Store) Log(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	escalated := 0
	if entry.Escalated {
		escalated = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO interactions (
			id, session_id, user_id, question, answer_length,
			confidence_score, confidence_label, escalated,
			passage_count, model, latency_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.SessionID,
		entry.UserID,
		entry.Question,
		entry.AnswerLength,
		entry.ConfidenceScore,
		string(entry.ConfidenceLabel),
		escalated,
		entry.PassageCount,
		entry.Model,
		entry.LatencyMS,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting interaction: %w", err)
	}
	return nil
}

// GetByID retrieves a single interaction entry.
func (s *Store) GetByID(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, user_id, question, answer_length,
			   confidence_score, confidence_label, escalated,
			   passage_count, model, latency_ms, created_at
		FROM interactions WHERE id = ?`, id)

	var e Entry
	var escalated int
	var label string
	err := row.Scan(
		&e.ID, &e.SessionID, &e.UserID, &e.Question, &e.AnswerLength,
		&e.ConfidenceScore, &label, &escalated,
		&e.PassageCount, &e.Model, &e.LatencyMS, &e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning interaction: %w", err)
	}
	e.ConfidenceLabel = confidence.Label(label)
	e.Escalated = escalated != 0
	return &e, nil
}

// Query returns interaction entries matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Entry, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.SessionID != "" {
		clauses = append(clauses, "session_id = ?")
		args = append(args, filter.SessionID)
	}
	if filter.EscalatedOnly {
		clauses = append(clauses, "escalated = 1")
	}
	if filter.Since != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, filter.Since.UTC())
	}
	if filter.Until != nil {
		clauses = append(clauses, "created_at <= ?")
		args = append(args, filter.Until.UTC())
	}

	query := `
		SELECT id, session_id, user_id, question, answer_length,
			   confidence_score, confidence_label, escalated,
			   passage_count, model, latency_ms, created_at
		FROM interactions`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += " LIMIT ?"
	args = append(args, limit)

	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying interactions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var escalated int
		var label string
		if err := rows.Scan(
			&e.ID, &e.SessionID, &e.UserID, &e.Question, &e.AnswerLength,
			&e.ConfidenceScore, &label, &escalated,
			&e.PassageCount, &e.Model, &e.LatencyMS, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning interaction: %w", err)
		}
		e.ConfidenceLabel = confidence.Label(label)
		e.Escalated = escalated != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetStats aggregates counts, mean confidence, and escalation rate.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByLabel: map[confidence.Label]int{}}

	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			   COALESCE(AVG(confidence_score), 0),
			   COALESCE(AVG(escalated), 0)
		FROM interactions`)
	if err := row.Scan(&stats.Total, &stats.MeanConfidence, &stats.EscalationRate); err != nil {
		return nil, fmt.Errorf("scanning stats: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT confidence_label, COUNT(*) FROM interactions GROUP BY confidence_label`)
	if err != nil {
		return nil, fmt.Errorf("querying label counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var label string
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return nil, fmt.Errorf("scanning label count: %w", err)
		}
		stats.ByLabel[confidence.Label(label)] = count
	}
	return stats, rows.Err()
}
