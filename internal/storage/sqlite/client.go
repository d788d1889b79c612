package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/cs-copilot/backend/internal/storage/models"
	"github.com/cs-copilot/backend/pkg/logger"
)

type Client struct {
	db *sql.DB
}

func NewClient(dbPath string) (*Client, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	_, err = db.Exec("PRAGMA journal_mode = WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	logger.Info("SQLite client initialized", zap.String("path", dbPath))

	return &Client{db: db}, nil
}

// NewClientWithDB wraps an existing handle; used by tests.
func NewClientWithDB(db *sql.DB) *Client {
	return &Client{db: db}
}

func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS conversation_traces (
		id TEXT PRIMARY KEY,
		customer_tier TEXT,
		sentiment TEXT NOT NULL,
		urgency TEXT NOT NULL,
		intents TEXT,
		escalation_needed INTEGER NOT NULL DEFAULT 0,
		resolution_estimate TEXT,
		quality_overall REAL,
		processing_ms INTEGER,
		time_saved_minutes REAL,
		cost_savings_dollars REAL,
		response_length INTEGER,
		email_excerpt TEXT,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_traces_created ON conversation_traces(created_at);
	CREATE INDEX IF NOT EXISTS idx_traces_escalation ON conversation_traces(escalation_needed);
	CREATE INDEX IF NOT EXISTS idx_traces_sentiment ON conversation_traces(sentiment);

	CREATE TABLE IF NOT EXISTS feedback (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		trace_id TEXT NOT NULL,
		helpful INTEGER NOT NULL,
		issue_category TEXT,
		comment TEXT,
		created_at INTEGER NOT NULL,
		FOREIGN KEY (trace_id) REFERENCES conversation_traces(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_feedback_trace ON feedback(trace_id);
	`

	_, err := c.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("SQLite schema initialized")
	return nil
}

func (c *Client) InsertTraceRecord(record *models.TraceRecord) error {
	intentsJSON, _ := json.Marshal(record.Intents)

	escalation := 0
	if record.EscalationNeeded {
		escalation = 1
	}

	query := `
		INSERT INTO conversation_traces (id, customer_tier, sentiment, urgency, intents,
			escalation_needed, resolution_estimate, quality_overall, processing_ms,
			time_saved_minutes, cost_savings_dollars, response_length, email_excerpt, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := c.db.Exec(
		query,
		record.ID,
		record.CustomerTier,
		record.Sentiment,
		record.Urgency,
		string(intentsJSON),
		escalation,
		record.ResolutionEstimate,
		record.QualityOverall,
		record.ProcessingMS,
		record.TimeSavedMinutes,
		record.CostSavingsDollars,
		record.ResponseLength,
		record.EmailExcerpt,
		record.CreatedAt.Unix(),
	)

	if err != nil {
		return fmt.Errorf("failed to insert trace record: %w", err)
	}

	logger.Debug("Trace record inserted",
		zap.String("trace_id", record.ID),
		zap.String("sentiment", record.Sentiment),
	)

	return nil
}

func (c *Client) GetRecentTraces(limit int) ([]models.TraceRecord, error) {
	query := `
		SELECT id, customer_tier, sentiment, urgency, intents, escalation_needed,
			resolution_estimate, quality_overall, processing_ms, time_saved_minutes,
			cost_savings_dollars, response_length, email_excerpt, created_at
		FROM conversation_traces
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := c.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent traces: %w", err)
	}
	defer rows.Close()

	var records []models.TraceRecord
	for rows.Next() {
		var r models.TraceRecord
		var intentsJSON string
		var escalation int
		var createdAt int64

		err := rows.Scan(
			&r.ID,
			&r.CustomerTier,
			&r.Sentiment,
			&r.Urgency,
			&intentsJSON,
			&escalation,
			&r.ResolutionEstimate,
			&r.QualityOverall,
			&r.ProcessingMS,
			&r.TimeSavedMinutes,
			&r.CostSavingsDollars,
			&r.ResponseLength,
			&r.EmailExcerpt,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		json.Unmarshal([]byte(intentsJSON), &r.Intents)
		r.EscalationNeeded = escalation == 1
		r.CreatedAt = time.Unix(createdAt, 0)
		records = append(records, r)
	}

	return records, rows.Err()
}

func (c *Client) StoreFeedback(feedback *models.Feedback) error {
	helpful := 0
	if feedback.Helpful {
		helpful = 1
	}

	query := `INSERT INTO feedback (trace_id, helpful, issue_category, comment, created_at) VALUES (?, ?, ?, ?, ?)`

	_, err := c.db.Exec(
		query,
		feedback.TraceID,
		helpful,
		feedback.IssueCategory,
		feedback.Comment,
		time.Now().Unix(),
	)

	if err != nil {
		return fmt.Errorf("failed to store feedback: %w", err)
	}

	logger.Info("Feedback stored",
		zap.String("trace_id", feedback.TraceID),
		zap.Bool("helpful", feedback.Helpful),
	)

	return nil
}
