package sqlite

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/cs-copilot/backend/internal/storage/models"
)

func newMockClient(t *testing.T) (*Client, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewClientWithDB(db), mock
}

func sampleRecord() *models.TraceRecord {
	return &models.TraceRecord{
		ID:                 "trace-1",
		CustomerTier:       "Premium",
		Sentiment:          "Angry",
		Urgency:            "Critical",
		Intents:            []string{"Billing Dispute"},
		EscalationNeeded:   true,
		ResolutionEstimate: "< 2 hours (escalated)",
		QualityOverall:     8.5,
		ProcessingMS:       2150,
		TimeSavedMinutes:   14.96,
		CostSavingsDollars: 12.42,
		ResponseLength:     312,
		EmailExcerpt:       "I was charged twice...",
		CreatedAt:          time.Unix(1700000000, 0),
	}
}

func TestInsertTraceRecord(t *testing.T) {
	client, mock := newMockClient(t)
	record := sampleRecord()

	mock.ExpectExec("INSERT INTO conversation_traces").
		WithArgs(
			record.ID,
			record.CustomerTier,
			record.Sentiment,
			record.Urgency,
			`["Billing Dispute"]`,
			1,
			record.ResolutionEstimate,
			record.QualityOverall,
			record.ProcessingMS,
			record.TimeSavedMinutes,
			record.CostSavingsDollars,
			record.ResponseLength,
			record.EmailExcerpt,
			record.CreatedAt.Unix(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := client.InsertTraceRecord(record); err != nil {
		t.Fatalf("InsertTraceRecord() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetRecentTraces(t *testing.T) {
	client, mock := newMockClient(t)

	columns := []string{
		"id", "customer_tier", "sentiment", "urgency", "intents", "escalation_needed",
		"resolution_estimate", "quality_overall", "processing_ms", "time_saved_minutes",
		"cost_savings_dollars", "response_length", "email_excerpt", "created_at",
	}

	rows := sqlmock.NewRows(columns).
		AddRow("trace-2", "Standard", "Neutral", "Low", `["General Inquiry"]`, 0,
			"< 2 hours", 7.0, 1800, 14.97, 12.43, 250, "Quick question...", int64(1700000100)).
		AddRow("trace-1", "Premium", "Angry", "Critical", `["Billing Dispute"]`, 1,
			"< 2 hours (escalated)", 8.5, 2150, 14.96, 12.42, 312, "I was charged twice...", int64(1700000000))

	mock.ExpectQuery("SELECT (.+) FROM conversation_traces").
		WithArgs(2).
		WillReturnRows(rows)

	records, err := client.GetRecentTraces(2)
	if err != nil {
		t.Fatalf("GetRecentTraces() error = %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].ID != "trace-2" || records[1].ID != "trace-1" {
		t.Errorf("records out of order: %q, %q", records[0].ID, records[1].ID)
	}
	if !records[1].EscalationNeeded {
		t.Error("escalation flag should round-trip from integer column")
	}
	if len(records[1].Intents) != 1 || records[1].Intents[0] != "Billing Dispute" {
		t.Errorf("Intents = %v, want decoded JSON list", records[1].Intents)
	}
	if records[1].CreatedAt.Unix() != 1700000000 {
		t.Errorf("CreatedAt = %v, want unix 1700000000", records[1].CreatedAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestStoreFeedback(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectExec("INSERT INTO feedback").
		WithArgs("trace-1", 1, "tone", "Too formal for this customer", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := client.StoreFeedback(&models.Feedback{
		TraceID:       "trace-1",
		Helpful:       true,
		IssueCategory: "tone",
		Comment:       "Too formal for this customer",
	})
	if err != nil {
		t.Fatalf("StoreFeedback() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
