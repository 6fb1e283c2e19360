package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendAttempt(ctx context.Context, data AttemptEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO attempt_events (
		sequence, timestamp, attempt_id, user_id, challenge_id, challenge_type,
		topic, level, score, passed, xp_earned, effective_level, trend
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, formatTime(r.now()), data.AttemptID, data.UserID, data.ChallengeID,
		data.ChallengeType, data.Topic, data.Level, data.Score, data.Passed,
		data.XPEarned, data.EffectiveLevel, data.Trend,
	)
	if err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAttempts(ctx context.Context, userID string, opts QueryOpts) ([]AttemptEvent, error) {
	tail, args := whereClause([]string{"user_id = ?"}, []any{userID}, opts)
	rows, err := r.db.QueryContext(ctx, `SELECT
		id, sequence, timestamp, attempt_id, user_id, challenge_id, challenge_type,
		topic, level, score, passed, xp_earned, effective_level, trend
	FROM attempt_events`+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempt events: %w", err)
	}
	defer rows.Close()

	var out []AttemptEvent
	for rows.Next() {
		var e AttemptEvent
		var ts string
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.AttemptID, &e.UserID,
			&e.ChallengeID, &e.ChallengeType, &e.Topic, &e.Level, &e.Score,
			&e.Passed, &e.XPEarned, &e.EffectiveLevel, &e.Trend); err != nil {
			return nil, fmt.Errorf("scan attempt event: %w", err)
		}
		e.Timestamp = parseTime(ts)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempt events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) TotalXP(ctx context.Context, userID string) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(xp_earned), 0) FROM attempt_events WHERE user_id = ?`, userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum xp: %w", err)
	}
	return total, nil
}
