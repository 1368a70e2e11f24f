package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var questColumns = []string{
	"id", "hunter_id", "quest_date", "position", "rank", "category", "title",
	"description", "xp_reward", "difficulty", "completed", "completed_at", "created_at",
}

type questRepo struct {
	q querier
}

func (r *questRepo) ForDay(ctx context.Context, hunterID, date string) ([]QuestRecord, error) {
	b := builder()
	query, args := b.Select(questColumns...).
		From(b.Table(questsTable)).
		Where(entsql.And(
			entsql.EQ("hunter_id", hunterID),
			entsql.EQ("quest_date", date),
		)).
		OrderBy("position").
		Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quests: %w", err)
	}
	defer rows.Close()

	var out []QuestRecord
	for rows.Next() {
		q, err := scanQuest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quest: %w", err)
		}
		out = append(out, *q)
	}
	return out, rows.Err()
}

func (r *questRepo) InsertBatch(ctx context.Context, quests []QuestRecord) (bool, error) {
	if len(quests) == 0 {
		return false, nil
	}

	now := time.Now().UTC()
	ins := builder().Insert(questsTable).Columns(questColumns...)
	for _, q := range quests {
		created := q.CreatedAt
		if created.IsZero() {
			created = now
		}
		ins = ins.Values(
			q.ID, q.HunterID, q.QuestDate, q.Position, q.Rank, q.Category, q.Title,
			q.Description, q.XPReward, q.Difficulty, q.Completed, nullableTime(q.CompletedAt), created.UTC(),
		)
	}
	ins = ins.OnConflict(
		entsql.ConflictColumns("hunter_id", "quest_date", "category"),
		entsql.DoNothing(),
	)
	query, args := ins.Query()

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("insert quest batch: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *questRepo) Get(ctx context.Context, id string) (*QuestRecord, error) {
	b := builder()
	query, args := b.Select(questColumns...).
		From(b.Table(questsTable)).
		Where(entsql.EQ("id", id)).
		Limit(1).
		Query()

	q, err := scanQuest(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("quest %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get quest: %w", err)
	}
	return q, nil
}

func (r *questRepo) MarkCompleted(ctx context.Context, id string, at time.Time) (bool, error) {
	query, args := builder().Update(questsTable).
		Set("completed", true).
		Set("completed_at", at.UTC()).
		Where(entsql.And(
			entsql.EQ("id", id),
			entsql.EQ("completed", false),
		)).
		Query()

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("complete quest: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 1, nil
}

func (r *questRepo) DeleteDay(ctx context.Context, hunterID, date string) error {
	query, args := builder().Delete(questsTable).
		Where(entsql.And(
			entsql.EQ("hunter_id", hunterID),
			entsql.EQ("quest_date", date),
		)).
		Query()
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete quests: %w", err)
	}
	return nil
}

func (r *questRepo) CompletedByCategory(ctx context.Context, hunterID string) (map[string]int, error) {
	b := builder()
	query, args := b.Select("category", entsql.As(entsql.Count("*"), "n")).
		From(b.Table(questsTable)).
		Where(entsql.And(
			entsql.EQ("hunter_id", hunterID),
			entsql.EQ("completed", true),
		)).
		GroupBy("category").
		Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count completed quests: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			category string
			n        int
		)
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[category] = n
	}
	return counts, rows.Err()
}

func scanQuest(row rowScanner) (*QuestRecord, error) {
	var (
		q           QuestRecord
		completedAt sql.NullTime
	)
	err := row.Scan(
		&q.ID, &q.HunterID, &q.QuestDate, &q.Position, &q.Rank, &q.Category, &q.Title,
		&q.Description, &q.XPReward, &q.Difficulty, &q.Completed, &completedAt, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		t := completedAt.Time
		q.CompletedAt = &t
	}
	return &q, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
