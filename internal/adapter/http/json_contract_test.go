package httpadapter

import (
	"encoding/json"
	"testing"
	"time"

	"daynight/internal/app/control"
	"daynight/internal/app/history"
	"daynight/internal/app/ports"
	"daynight/internal/app/status"
	"daynight/internal/domain/cycle"
)

func TestResponseJSONUsesSnakeCase(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	frame := cycle.Frame{
		Seq:        4,
		Hour:       18,
		Clock:      "18:00",
		Multiplier: 60,
		Reading:    cycle.Reading{Phase: cycle.PhaseEvening, Segment: cycle.SegmentEvening, T: 0.5},
		Targets:    cycle.Targets{Intensity: 0.75, Blend: 0.5},
		Visual:     cycle.VisualState{Intensity: 0.8, Blend: 0.45},
	}

	cases := []struct {
		name    string
		payload any
		want    []string
		notWant []string
	}{
		{
			name: "status",
			payload: status.Response{
				Frame:      frame,
				SkyboxHex:  "#ff9b83",
				Lightmaps:  &ports.LightmapInfo{Phase: cycle.PhaseEvening, Count: 1},
				LastSwitch: &status.Switch{Phase: cycle.PhaseEvening, SwitchedAt: now},
			},
			want:    []string{"frame", "skybox_hex", "lightmaps", "last_switch"},
			notWant: []string{"Frame", "SkyboxHex", "LastSwitch"},
		},
		{
			name:    "control",
			payload: control.Response{Kind: control.KindHour, Value: 6, DisplayValue: "6.00", Accepted: true},
			want:    []string{"kind", "value", "display_value", "accepted"},
			notWant: []string{"DisplayValue"},
		},
		{
			name:    "history",
			payload: history.Response{Events: []history.Event{{RunID: "r", From: cycle.PhaseDay, To: cycle.PhaseEvening, OccurredAt: now}}},
			want:    []string{"events", "counts"},
			notWant: []string{"Events"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(tc.payload)
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			var got map[string]any
			if err := json.Unmarshal(b, &got); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			for _, key := range tc.want {
				if _, ok := got[key]; !ok {
					t.Fatalf("expected key %q in %s", key, string(b))
				}
			}
			for _, key := range tc.notWant {
				if _, ok := got[key]; ok {
					t.Fatalf("unexpected key %q in %s", key, string(b))
				}
			}
			if tc.name == "status" {
				frameMap := asMap(got["frame"])
				for _, key := range []string{"clock", "reading", "targets", "visual"} {
					if _, ok := frameMap[key]; !ok {
						t.Fatalf("expected nested key frame.%s in %s", key, string(b))
					}
				}
				visual := asMap(frameMap["visual"])
				if _, ok := visual["sun_intensity"]; !ok {
					t.Fatalf("expected nested key frame.visual.sun_intensity in %s", string(b))
				}
			}
		})
	}
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}
