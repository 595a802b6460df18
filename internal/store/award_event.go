package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendAward(ctx context.Context, data AwardEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(awardEventsTable.Name).
		Columns("sequence", "timestamp", "event_id", "amount", "reason", "points_after").
		Values(seqNum, time.Now().UTC(), data.EventID, data.Amount, data.Reason, data.PointsAfter).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save award event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAwards(ctx context.Context, opts QueryOpts) ([]AwardEventRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("sequence", "timestamp", "event_id", "amount", "reason", "points_after").
		From(entsql.Table(awardEventsTable.Name)).
		OrderBy(entsql.Desc("sequence"))
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query award events: %w", err)
	}
	defer rows.Close()

	var records []AwardEventRecord
	for rows.Next() {
		var rec AwardEventRecord
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &rec.EventID, &rec.Amount, &rec.Reason, &rec.PointsAfter); err != nil {
			return nil, fmt.Errorf("scan award event: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate award events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) PointsByReason(ctx context.Context) ([]ReasonTotal, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			"reason",
			entsql.As(entsql.Count("*"), "awards"),
			entsql.As(entsql.Sum("amount"), "points"),
		).
		From(entsql.Table(awardEventsTable.Name)).
		GroupBy("reason").
		OrderBy(entsql.Desc("points")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query points by reason: %w", err)
	}
	defer rows.Close()

	var totals []ReasonTotal
	for rows.Next() {
		var t ReasonTotal
		if err := rows.Scan(&t.Reason, &t.Count, &t.Points); err != nil {
			return nil, fmt.Errorf("scan reason total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reason totals: %w", err)
	}
	return totals, nil
}

func (r *eventRepo) ClearAwards(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(awardEventsTable.Name).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear award events: %w", err)
	}
	return nil
}
