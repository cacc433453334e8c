package store

import (
	"context"
	"fmt"

	"github.com/selvastics/inrep-sub013/ent"
	"github.com/selvastics/inrep-sub013/ent/responseevent"
	"github.com/selvastics/inrep-sub013/ent/sessionevent"
)

// eventRepo implements EventRepo using the ent client.
type eventRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.SessionEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetAction(data.Action).
		SetMode(data.Mode).
		SetItemsAdministered(data.ItemsAdministered).
		SetFinalTheta(data.FinalTheta).
		SetFinalSe(data.FinalSE).
		SetStopReason(data.StopReason).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendResponseEvent(ctx context.Context, data ResponseEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.ResponseEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetItemID(data.ItemID).
		SetPosition(data.Position).
		SetValue(data.Value).
		SetThetaAfter(data.ThetaAfter).
		SetSeAfter(data.SEAfter).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save response event: %w", err)
	}
	return nil
}

func (r *eventRepo) ExposureCounts(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		ItemID string `json:"item_id"`
		Count  int    `json:"count"`
	}
	err := r.client.ResponseEvent.Query().
		GroupBy(responseevent.FieldItemID).
		Aggregate(ent.Count()).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("query exposure counts: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.ItemID] = row.Count
	}
	return counts, nil
}

func (r *eventRepo) SessionSummaries(ctx context.Context, limit int) ([]SessionSummary, error) {
	q := r.client.SessionEvent.Query().
		Where(sessionevent.Action("start")).
		Order(ent.Desc(sessionevent.FieldTimestamp))
	if limit > 0 {
		q = q.Limit(limit)
	}
	starts, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query session starts: %w", err)
	}

	summaries := make([]SessionSummary, 0, len(starts))
	for _, start := range starts {
		summary := SessionSummary{
			SessionID: start.SessionID,
			StartedAt: start.Timestamp,
			Mode:      start.Mode,
		}

		stop, err := r.client.SessionEvent.Query().
			Where(
				sessionevent.SessionID(start.SessionID),
				sessionevent.Action("stop"),
			).
			Order(ent.Desc(sessionevent.FieldTimestamp)).
			First(ctx)
		if err != nil {
			if !ent.IsNotFound(err) {
				return nil, fmt.Errorf("query session stop: %w", err)
			}
		} else {
			summary.ItemsAdministered = stop.ItemsAdministered
			summary.FinalTheta = stop.FinalTheta
			summary.FinalSE = stop.FinalSe
			summary.StopReason = stop.StopReason
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
