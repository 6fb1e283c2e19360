package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO llm_events (
		sequence, timestamp, provider, model, purpose, input_tokens, output_tokens,
		latency_ms, success, error_message, request_body, response_body
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, formatTime(r.now()), data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success,
		data.ErrorMessage, data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

const llmEventColumns = `id, sequence, timestamp, provider, model, purpose,
	input_tokens, output_tokens, latency_ms, success, error_message,
	request_body, response_body`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(row rowScanner) (LLMEvent, error) {
	var e LLMEvent
	var ts string
	err := row.Scan(&e.ID, &e.Sequence, &ts, &e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success, &e.ErrorMessage,
		&e.RequestBody, &e.ResponseBody)
	e.Timestamp = parseTime(ts)
	return e, err
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	tail, args := whereClause(nil, nil, opts)
	rows, err := r.db.QueryContext(ctx, `SELECT `+llmEventColumns+` FROM llm_events`+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMEvent
	for rows.Next() {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate LLM events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+llmEventColumns+` FROM llm_events WHERE id = ?`, id)
	e, err := scanLLMEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get LLM event: %w", err)
	}
	return &e, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	return r.llmUsage(ctx, "purpose")
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMUsage, error) {
	return r.llmUsage(ctx, "model")
}

// llmUsage groups by column, which is always one of the two literals above.
func (r *eventRepo) llmUsage(ctx context.Context, column string) ([]LLMUsage, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+column+`, COUNT(*),
		COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0),
		CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER)
	FROM llm_events GROUP BY `+column+` ORDER BY COUNT(*) DESC, `+column)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage by %s: %w", column, err)
	}
	defer rows.Close()

	var out []LLMUsage
	for rows.Next() {
		var u LLMUsage
		var key string
		if err := rows.Scan(&key, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		if column == "purpose" {
			u.Purpose = key
		} else {
			u.Model = key
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
