package store

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	huntersTable        = "hunters"
	questsTable         = "quests"
	progressEventsTable = "progress_events"
	llmEventsTable      = "llm_request_events"
)

var (
	// HuntersColumns holds the columns for the "hunters" table.
	HuntersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "name", Type: field.TypeString, Unique: true},
		{Name: "role", Type: field.TypeString, Default: "hunter"},
		{Name: "total_xp", Type: field.TypeInt, Default: 0},
		{Name: "current_rank", Type: field.TypeString},
		{Name: "streak_days", Type: field.TypeInt, Default: 0},
		{Name: "last_streak_date", Type: field.TypeString, Default: ""},
		{Name: "rank_assigned_at", Type: field.TypeTime},
		{Name: "quests_completed", Type: field.TypeInt, Default: 0},
		{Name: "quests_completed_on", Type: field.TypeString, Default: ""},
		{Name: "assessment_score", Type: field.TypeInt, Nullable: true},
		{Name: "stats", Type: field.TypeJSON, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// HuntersTable holds the schema information for the "hunters" table.
	HuntersTable = &schema.Table{
		Name:       huntersTable,
		Columns:    HuntersColumns,
		PrimaryKey: []*schema.Column{HuntersColumns[0]},
	}

	// QuestsColumns holds the columns for the "quests" table.
	QuestsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "hunter_id", Type: field.TypeString},
		{Name: "quest_date", Type: field.TypeString},
		{Name: "position", Type: field.TypeInt},
		{Name: "rank", Type: field.TypeString},
		{Name: "category", Type: field.TypeString},
		{Name: "title", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Default: ""},
		{Name: "xp_reward", Type: field.TypeInt},
		{Name: "difficulty", Type: field.TypeString},
		{Name: "completed", Type: field.TypeBool, Default: false},
		{Name: "completed_at", Type: field.TypeTime, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
	}
	// QuestsTable holds the schema information for the "quests" table.
	QuestsTable = &schema.Table{
		Name:       questsTable,
		Columns:    QuestsColumns,
		PrimaryKey: []*schema.Column{QuestsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "quests_hunters_quests",
				Columns:    []*schema.Column{QuestsColumns[1]},
				RefColumns: []*schema.Column{HuntersColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				// One quest per category per hunter per day. Concurrent batch
				// inserts for the same day collide here.
				Name:    "quest_hunter_id_quest_date_category",
				Unique:  true,
				Columns: []*schema.Column{QuestsColumns[1], QuestsColumns[2], QuestsColumns[5]},
			},
		},
	}

	// ProgressEventsColumns holds the columns for the "progress_events" table.
	ProgressEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "hunter_id", Type: field.TypeString},
		{Name: "kind", Type: field.TypeString},
		{Name: "xp_delta", Type: field.TypeInt, Default: 0},
		{Name: "rank_from", Type: field.TypeString, Default: ""},
		{Name: "rank_to", Type: field.TypeString, Default: ""},
		{Name: "quest_id", Type: field.TypeString, Default: ""},
		{Name: "detail", Type: field.TypeString, Default: ""},
		{Name: "timestamp", Type: field.TypeTime},
	}
	// ProgressEventsTable holds the schema information for the "progress_events" table.
	ProgressEventsTable = &schema.Table{
		Name:       progressEventsTable,
		Columns:    ProgressEventsColumns,
		PrimaryKey: []*schema.Column{ProgressEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "progressevent_hunter_id_timestamp",
				Columns: []*schema.Column{ProgressEventsColumns[1], ProgressEventsColumns[8]},
			},
		},
	}

	// LLMRequestEventsColumns holds the columns for the "llm_request_events" table.
	LLMRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool, Default: false},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// LLMRequestEventsTable holds the schema information for the "llm_request_events" table.
	LLMRequestEventsTable = &schema.Table{
		Name:       llmEventsTable,
		Columns:    LLMRequestEventsColumns,
		PrimaryKey: []*schema.Column{LLMRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "llmrequestevent_purpose",
				Columns: []*schema.Column{LLMRequestEventsColumns[4]},
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		HuntersTable,
		QuestsTable,
		ProgressEventsTable,
		LLMRequestEventsTable,
	}
)

func init() {
	QuestsTable.ForeignKeys[0].RefTable = HuntersTable
}

// migrate creates or upgrades every table in Tables.
func migrate(ctx context.Context, db *sql.DB) error {
	m, err := schema.NewMigrate(entsql.OpenDB(dialect.SQLite, db))
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// builder returns a SQL builder for the SQLite dialect.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}
