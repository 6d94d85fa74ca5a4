package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"daynight/internal/domain/cycle"
)

const sampleYAML = `
server:
  http_addr: ":9090"
  tick_hz: 60
  tui: true
log:
  level: DEBUG
cycle:
  start_hour: 17.5
  multiplier: 120
  boundaries:
    night: 20
  colors:
    day: "#000000"
  rates:
    color: 1
  keyframes:
    day:
      intensity: {from: 1.5, to: 1.5}
  lightmaps:
    day:
      colors: [day_0, day_1]
      directions: [day_dir_0]
    night:
      colors: [night_0]
`

func TestParse_OverridesDefaults(t *testing.T) {
	s, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if s.HTTPAddr != ":9090" || s.WSAddr != ":8081" {
		t.Fatalf("unexpected addrs: http=%q ws=%q", s.HTTPAddr, s.WSAddr)
	}
	if s.TickHz != 60 || !s.TUI || s.LogLevel != "debug" {
		t.Fatalf("unexpected server settings: %+v", s)
	}
	c := s.Cycle
	if c.StartHour != 17.5 || c.Multiplier != 120 {
		t.Fatalf("unexpected clock settings: start=%v mult=%v", c.StartHour, c.Multiplier)
	}
	if c.Boundaries.Night != 20 || c.Boundaries.Evening != 17 {
		t.Fatalf("unexpected boundaries: %+v", c.Boundaries)
	}
	if c.Rates.Color != 1 || c.Rates.Intensity != 2 {
		t.Fatalf("unexpected rates: %+v", c.Rates)
	}
	if got := c.Targets[cycle.SegmentSunrise].Color.To; got != (cycle.Color{}) {
		t.Fatalf("expected palette override in sunrise keyframe, got %v", got)
	}
	if got := c.Targets[cycle.SegmentDay].Intensity; got != (cycle.Span{From: 1.5, To: 1.5}) {
		t.Fatalf("expected day intensity override, got %+v", got)
	}
	if len(c.Lightmaps[cycle.PhaseDay].Colors) != 2 || len(c.Lightmaps[cycle.PhaseNight].Colors) != 1 {
		t.Fatalf("unexpected lightmaps: %+v", c.Lightmaps)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
}

func TestParse_RejectsUnknownNamesAndBadColors(t *testing.T) {
	cases := map[string]string{
		"segment": "cycle:\n  keyframes:\n    noon:\n      blend: {from: 0, to: 1}\n",
		"phase":   "cycle:\n  lightmaps:\n    dusk:\n      colors: [x]\n",
		"color":   "cycle:\n  colors:\n    night: \"#zzzzzz\"\n",
		"yaml":    "cycle: [",
	}
	for name, raw := range cases {
		if _, err := Parse([]byte(raw)); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}
}

func TestValidate_RejectsBadBoundaries(t *testing.T) {
	s, err := Parse([]byte("cycle:\n  boundaries:\n    day: 5\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	err = s.Validate()
	if !errors.Is(err, ErrInvalidConfig) || !errors.Is(err, cycle.ErrInvalidBoundaries) {
		t.Fatalf("expected invalid boundaries, got %v", err)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daynight.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DAYNIGHT_CONFIG", path)
	t.Setenv("DAYNIGHT_HTTP_ADDR", ":7070")
	t.Setenv("DAYNIGHT_TICK_HZ", "not-a-number")
	t.Setenv("DAYNIGHT_START_HOUR", "6.25")
	t.Setenv("DAYNIGHT_TUI", "false")
	t.Setenv("DAYNIGHT_DB_DSN", "postgres://localhost/daynight")

	s, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if s.HTTPAddr != ":7070" {
		t.Fatalf("http addr=%q want :7070", s.HTTPAddr)
	}
	if s.TickHz != 60 {
		t.Fatalf("tick hz=%d want file value 60 on malformed env", s.TickHz)
	}
	if s.Cycle.StartHour != 6.25 || s.TUI {
		t.Fatalf("unexpected env overrides: start=%v tui=%v", s.Cycle.StartHour, s.TUI)
	}
	if s.DSN != "postgres://localhost/daynight" {
		t.Fatalf("dsn=%q", s.DSN)
	}
}

func TestLoad_RejectsMalformedStartHour(t *testing.T) {
	t.Setenv("DAYNIGHT_CONFIG", "")
	t.Setenv("DAYNIGHT_START_HOUR", "noon")
	if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("DAYNIGHT_CONFIG", "")
	s, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	want := Defaults()
	if s.HTTPAddr != want.HTTPAddr || s.Cycle.StartHour != cycle.DefaultStartHour || s.Cycle.Multiplier != 1 {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}

func TestLoadFile_ShippedExample(t *testing.T) {
	s, err := LoadFile("../../config/daynight.yaml")
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	def := cycle.DefaultConfig()
	if s.Cycle.Boundaries != def.Boundaries || s.Cycle.Palette != def.Palette || s.Cycle.Rates != def.Rates {
		t.Fatalf("shipped example drifted from defaults: %+v", s.Cycle)
	}
	for _, p := range cycle.Phases {
		if s.Cycle.Lightmaps[p].Empty() {
			t.Fatalf("expected lightmaps for %s", p)
		}
	}
}
