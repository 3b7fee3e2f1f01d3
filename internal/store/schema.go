package store

import (
	"context"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// eventColumns are the columns every event table starts with: a row id, a
// global sequence number and a unix-millisecond timestamp.
func eventColumns(fields ...*schema.Column) []*schema.Column {
	return append([]*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
	}, fields...)
}

// eventTable declares an event table with the shared sequence and
// timestamp indexes.
func eventTable(name string, fields ...*schema.Column) *schema.Table {
	cols := eventColumns(fields...)
	return &schema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: []*schema.Column{cols[0]},
		Indexes: []*schema.Index{
			{Name: name + "_sequence", Columns: []*schema.Column{cols[1]}},
			{Name: name + "_timestamp", Columns: []*schema.Column{cols[2]}},
		},
	}
}

var (
	localStorageColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString},
		{Name: "value", Type: field.TypeString},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	// LocalStorageTable holds the persisted session and preferences.
	LocalStorageTable = &schema.Table{
		Name:       "local_storage",
		Columns:    localStorageColumns,
		PrimaryKey: []*schema.Column{localStorageColumns[0]},
	}

	// SubmissionEventsTable records every stage submission attempt.
	SubmissionEventsTable = eventTable("submission_events",
		&schema.Column{Name: "attempt_id", Type: field.TypeString},
		&schema.Column{Name: "user_id", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "stage", Type: field.TypeInt},
		&schema.Column{Name: "response_count", Type: field.TypeInt},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_kind", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "winning_occupation", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
	)

	// LLMEventsTable records every LLM call for cost tracking.
	LLMEventsTable = eventTable("llm_events",
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
	)

	globalSequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	// GlobalSequenceTable holds the single row backing the event sequence.
	GlobalSequenceTable = &schema.Table{
		Name:       "global_sequence",
		Columns:    globalSequenceColumns,
		PrimaryKey: []*schema.Column{globalSequenceColumns[0]},
	}

	insightColumns = []*schema.Column{
		{Name: "fingerprint", Type: field.TypeString},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "content", Type: field.TypeString},
		{Name: "created_at", Type: field.TypeInt64},
	}
	// InsightsTable caches generated career insights by report fingerprint.
	InsightsTable = &schema.Table{
		Name:       "insights",
		Columns:    insightColumns,
		PrimaryKey: []*schema.Column{insightColumns[0]},
	}

	// Tables is every table the store owns, in creation order.
	Tables = []*schema.Table{
		LocalStorageTable,
		GlobalSequenceTable,
		SubmissionEventsTable,
		LLMEventsTable,
		InsightsTable,
	}
)

// migrate creates missing tables, columns and indexes. Existing columns
// and indexes are never dropped.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, Tables...)
}
