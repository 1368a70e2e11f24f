package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
var ErrDuplicate = errors.New("already exists")

var hunterColumns = []string{
	"id", "name", "role", "total_xp", "current_rank", "streak_days",
	"last_streak_date", "rank_assigned_at", "quests_completed",
	"quests_completed_on", "assessment_score", "stats", "created_at", "updated_at",
}

type hunterRepo struct {
	q querier
}

func (r *hunterRepo) Create(ctx context.Context, h *Hunter) error {
	now := time.Now().UTC()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = now
	}
	h.UpdatedAt = h.CreatedAt

	stats, err := encodeStats(h.Stats)
	if err != nil {
		return err
	}

	query, args := builder().Insert(huntersTable).
		Columns(hunterColumns...).
		Values(
			h.ID, h.Name, h.Role, h.TotalXP, h.CurrentRank, h.StreakDays,
			h.LastStreakDate, h.RankAssignedAt.UTC(), h.QuestsCompleted,
			h.QuestsCompletedOn, nullableInt(h.AssessmentScore), stats,
			h.CreatedAt.UTC(), h.UpdatedAt.UTC(),
		).
		Query()
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("hunter %q: %w", h.Name, ErrDuplicate)
		}
		return fmt.Errorf("insert hunter: %w", err)
	}
	return nil
}

func (r *hunterRepo) Get(ctx context.Context, id string) (*Hunter, error) {
	return r.getBy(ctx, "id", id)
}

func (r *hunterRepo) GetByName(ctx context.Context, name string) (*Hunter, error) {
	return r.getBy(ctx, "name", name)
}

func (r *hunterRepo) getBy(ctx context.Context, column, value string) (*Hunter, error) {
	b := builder()
	query, args := b.Select(hunterColumns...).
		From(b.Table(huntersTable)).
		Where(entsql.EQ(column, value)).
		Limit(1).
		Query()

	h, err := scanHunter(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("hunter %s=%q: %w", column, value, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get hunter: %w", err)
	}
	return h, nil
}

func (r *hunterRepo) List(ctx context.Context, limit int) ([]Hunter, error) {
	b := builder()
	sel := b.Select(hunterColumns...).
		From(b.Table(huntersTable)).
		OrderBy(entsql.Desc("total_xp"), "name")
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list hunters: %w", err)
	}
	defer rows.Close()

	var out []Hunter
	for rows.Next() {
		h, err := scanHunter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan hunter: %w", err)
		}
		out = append(out, *h)
	}
	return out, rows.Err()
}

func (r *hunterRepo) Update(ctx context.Context, h *Hunter) error {
	h.UpdatedAt = time.Now().UTC()
	stats, err := encodeStats(h.Stats)
	if err != nil {
		return err
	}

	query, args := builder().Update(huntersTable).
		Set("name", h.Name).
		Set("role", h.Role).
		Set("total_xp", h.TotalXP).
		Set("current_rank", h.CurrentRank).
		Set("streak_days", h.StreakDays).
		Set("last_streak_date", h.LastStreakDate).
		Set("rank_assigned_at", h.RankAssignedAt.UTC()).
		Set("quests_completed", h.QuestsCompleted).
		Set("quests_completed_on", h.QuestsCompletedOn).
		Set("assessment_score", nullableInt(h.AssessmentScore)).
		Set("stats", stats).
		Set("updated_at", h.UpdatedAt).
		Where(entsql.EQ("id", h.ID)).
		Query()

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update hunter: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("hunter %q: %w", h.ID, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHunter(row rowScanner) (*Hunter, error) {
	var (
		h     Hunter
		score sql.NullInt64
		stats sql.NullString
	)
	err := row.Scan(
		&h.ID, &h.Name, &h.Role, &h.TotalXP, &h.CurrentRank, &h.StreakDays,
		&h.LastStreakDate, &h.RankAssignedAt, &h.QuestsCompleted,
		&h.QuestsCompletedOn, &score, &stats, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if score.Valid {
		v := int(score.Int64)
		h.AssessmentScore = &v
	}
	if stats.Valid && stats.String != "" {
		if err := json.Unmarshal([]byte(stats.String), &h.Stats); err != nil {
			return nil, fmt.Errorf("decode stats: %w", err)
		}
	}
	return &h, nil
}

func encodeStats(stats map[string]int) (any, error) {
	if stats == nil {
		return nil, nil
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return nil, fmt.Errorf("encode stats: %w", err)
	}
	return string(data), nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
