package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var progressColumns = []string{
	"id", "hunter_id", "kind", "xp_delta", "rank_from", "rank_to", "quest_id", "detail", "timestamp",
}

var llmColumns = []string{
	"id", "timestamp", "provider", "model", "purpose", "input_tokens", "output_tokens",
	"latency_ms", "success", "error_message", "request_body", "response_body",
}

// eventRepo implements EventRepo. Event ids come from each table's
// autoincrement key, so ordering by id is insertion order.
type eventRepo struct {
	q querier
}

func (r *eventRepo) AppendProgress(ctx context.Context, data ProgressEventData) error {
	ts := data.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	query, args := builder().Insert(progressEventsTable).
		Columns(progressColumns[1:]...).
		Values(data.HunterID, data.Kind, data.XPDelta, data.RankFrom, data.RankTo, data.QuestID, data.Detail, ts.UTC()).
		Query()
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save progress event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryProgress(ctx context.Context, hunterID string, opts QueryOpts) ([]ProgressEventRecord, error) {
	b := builder()
	sel := b.Select(progressColumns...).
		From(b.Table(progressEventsTable)).
		Where(applyOpts(entsql.EQ("hunter_id", hunterID), opts)).
		OrderBy(entsql.Desc("id"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query progress events: %w", err)
	}
	defer rows.Close()

	var out []ProgressEventRecord
	for rows.Next() {
		var e ProgressEventRecord
		if err := rows.Scan(&e.ID, &e.HunterID, &e.Kind, &e.XPDelta, &e.RankFrom, &e.RankTo, &e.QuestID, &e.Detail, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan progress event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	query, args := builder().Insert(llmEventsTable).
		Columns(llmColumns[1:]...).
		Values(
			time.Now().UTC(), data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
			data.LatencyMs, data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
		).
		Query()
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error) {
	b := builder()
	sel := b.Select(llmColumns...).
		From(b.Table(llmEventsTable)).
		OrderBy(entsql.Desc("id"))
	if p := applyOpts(nil, opts); p != nil {
		sel = sel.Where(p)
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestEventRecord
	for rows.Next() {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error) {
	b := builder()
	query, args := b.Select(llmColumns...).
		From(b.Table(llmEventsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	e, err := scanLLMEvent(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get LLM event: %w", err)
	}
	return e, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	b := builder()
	query, args := b.Select(
		"purpose",
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
		entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
		entsql.As(entsql.Avg("latency_ms"), "avg_latency"),
	).
		From(b.Table(llmEventsTable)).
		GroupBy("purpose").
		OrderBy("purpose").
		Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	defer rows.Close()

	var out []PurposeUsage
	for rows.Next() {
		var (
			u   PurposeUsage
			avg float64
		)
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &avg); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		u.AvgLatencyMs = int64(avg)
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	b := builder()
	query, args := b.Select(
		"model",
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
		entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
	).
		From(b.Table(llmEventsTable)).
		GroupBy("model").
		OrderBy("model").
		Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// applyOpts adds the id and time window filters from opts to base. Either
// may be nil.
func applyOpts(base *entsql.Predicate, opts QueryOpts) *entsql.Predicate {
	var preds []*entsql.Predicate
	if base != nil {
		preds = append(preds, base)
	}
	if opts.After > 0 {
		preds = append(preds, entsql.GT("id", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("id", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UTC()))
	}
	switch len(preds) {
	case 0:
		return nil
	case 1:
		return preds[0]
	default:
		return entsql.And(preds...)
	}
}

func scanLLMEvent(row rowScanner) (*LLMRequestEventRecord, error) {
	var e LLMRequestEventRecord
	err := row.Scan(
		&e.ID, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose, &e.InputTokens, &e.OutputTokens,
		&e.LatencyMs, &e.Success, &e.ErrorMessage, &e.RequestBody, &e.ResponseBody,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
