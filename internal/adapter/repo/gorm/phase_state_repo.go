package gormrepo

import (
	"context"
	"errors"
	"time"

	"daynight/internal/adapter/repo/gorm/model"
	"daynight/internal/app/ports"
	"daynight/internal/domain/cycle"

	"gorm.io/gorm"
)

const globalStateKey = "global"

type PhaseStateRepo struct {
	db *gorm.DB
}

func NewPhaseStateRepo(db *gorm.DB) PhaseStateRepo {
	return PhaseStateRepo{db: db}
}

func (r PhaseStateRepo) Get(ctx context.Context) (ports.PhaseState, bool, error) {
	var row model.PhaseState
	err := getDBFromCtx(ctx, r.db).WithContext(ctx).
		Where(&model.PhaseState{StateKey: globalStateKey}).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.PhaseState{}, false, nil
		}
		return ports.PhaseState{}, false, err
	}
	return ports.PhaseState{
		Phase:      cycle.Phase(row.Phase),
		Hour:       row.Hour,
		Day:        row.Day,
		SwitchedAt: row.SwitchedAt,
	}, true, nil
}

func (r PhaseStateRepo) Save(ctx context.Context, state ports.PhaseState) error {
	return getDBFromCtx(ctx, r.db).WithContext(ctx).
		Where(&model.PhaseState{StateKey: globalStateKey}).
		Assign(model.PhaseState{
			Phase:      string(state.Phase),
			Hour:       state.Hour,
			Day:        state.Day,
			SwitchedAt: state.SwitchedAt,
			UpdatedAt:  time.Now(),
		}).
		FirstOrCreate(&model.PhaseState{}).Error
}
