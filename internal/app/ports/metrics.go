package ports

import "daynight/internal/domain/cycle"

type TickMetrics interface {
	RecordTick()
	RecordPhaseSwitch(to cycle.Phase)
	RecordLightmapSkip(phase cycle.Phase)
	RecordPersistFailure()
	RecordControl(kind string)
}
