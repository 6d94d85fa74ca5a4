package gormrepo

import (
	"context"

	"daynight/internal/adapter/repo/gorm/model"
	"daynight/internal/app/ports"
	"daynight/internal/domain/cycle"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PhaseEventRepo struct {
	db *gorm.DB
}

func NewPhaseEventRepo(db *gorm.DB) PhaseEventRepo {
	return PhaseEventRepo{db: db}
}

func (r PhaseEventRepo) Append(ctx context.Context, e ports.PhaseEvent) error {
	row := model.PhaseEvent{
		RunID:      e.RunID,
		FromPhase:  string(e.From),
		ToPhase:    string(e.To),
		Hour:       e.Hour,
		Day:        e.Day,
		OccurredAt: e.OccurredAt,
	}
	return getDBFromCtx(ctx, r.db).WithContext(ctx).Create(&row).Error
}

func (r PhaseEventRepo) List(ctx context.Context, filter ports.PhaseEventFilter) ([]ports.PhaseEvent, error) {
	rows := []model.PhaseEvent{}
	query := getDBFromCtx(ctx, r.db).WithContext(ctx).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "occurred_at"}, Desc: true},
				{Column: clause.Column{Name: "id"}, Desc: true},
			},
		})
	if !filter.From.IsZero() {
		query = query.Where("occurred_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("occurred_at <= ?", filter.To)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}

	out := make([]ports.PhaseEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.PhaseEvent{
			RunID:      row.RunID,
			From:       cycle.Phase(row.FromPhase),
			To:         cycle.Phase(row.ToPhase),
			Hour:       row.Hour,
			Day:        row.Day,
			OccurredAt: row.OccurredAt,
		})
	}
	return out, nil
}
