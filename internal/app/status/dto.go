package status

import (
	"time"

	"daynight/internal/app/ports"
	"daynight/internal/domain/cycle"
)

type Request struct{}

type Response struct {
	Frame      cycle.Frame         `json:"frame"`
	SkyboxHex  string              `json:"skybox_hex"`
	Lightmaps  *ports.LightmapInfo `json:"lightmaps,omitempty"`
	LastSwitch *Switch             `json:"last_switch,omitempty"`
}

type Switch struct {
	Phase      cycle.Phase `json:"phase"`
	Hour       float64     `json:"hour"`
	Day        int64       `json:"day"`
	SwitchedAt time.Time   `json:"switched_at"`
}
