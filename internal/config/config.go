// Package config builds the service settings from an optional YAML file and
// DAYNIGHT_* environment overrides. Environment wins over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"daynight/internal/domain/cycle"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

const envPrefix = "DAYNIGHT_"

type Settings struct {
	HTTPAddr      string
	WSAddr        string
	TickHz        int
	QueueSize     int
	Resume        bool
	TUI           bool
	DSN           string
	MigrationsDir string
	LogLevel      string
	LogPath       string
	Cycle         cycle.Config
}

func Defaults() Settings {
	return Settings{
		HTTPAddr:  ":8080",
		WSAddr:    ":8081",
		TickHz:    30,
		QueueSize: 64,
		LogLevel:  "info",
		Cycle:     cycle.DefaultConfig(),
	}
}

// File mirrors the YAML layout. Pointer fields distinguish "unset" from zero.
type File struct {
	Server   ServerFile   `yaml:"server"`
	Database DatabaseFile `yaml:"database"`
	Log      LogFile      `yaml:"log"`
	Cycle    CycleFile    `yaml:"cycle"`
}

type ServerFile struct {
	HTTPAddr  string `yaml:"http_addr"`
	WSAddr    string `yaml:"ws_addr"`
	TickHz    int    `yaml:"tick_hz"`
	QueueSize int    `yaml:"queue_size"`
	Resume    *bool  `yaml:"resume"`
	TUI       *bool  `yaml:"tui"`
}

type DatabaseFile struct {
	DSN           string `yaml:"dsn"`
	MigrationsDir string `yaml:"migrations_dir"`
}

type LogFile struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type CycleFile struct {
	StartHour        *float64                     `yaml:"start_hour"`
	Multiplier       *float64                     `yaml:"multiplier"`
	InitialIntensity *float64                     `yaml:"initial_intensity"`
	Boundaries       BoundariesFile               `yaml:"boundaries"`
	Colors           PaletteFile                  `yaml:"colors"`
	Rates            RatesFile                    `yaml:"rates"`
	Keyframes        map[string]KeyframeFile      `yaml:"keyframes"`
	Lightmaps        map[string]cycle.LightmapSet `yaml:"lightmaps"`
	Material         MaterialFile                 `yaml:"material"`
}

type BoundariesFile struct {
	Sunrise *float64 `yaml:"sunrise"`
	Day     *float64 `yaml:"day"`
	Evening *float64 `yaml:"evening"`
	Night   *float64 `yaml:"night"`
}

type PaletteFile struct {
	Dawn    string `yaml:"dawn"`
	Day     string `yaml:"day"`
	Evening string `yaml:"evening"`
	Night   string `yaml:"night"`
}

type RatesFile struct {
	Intensity *float64 `yaml:"intensity"`
	Blend     *float64 `yaml:"blend"`
	Color     *float64 `yaml:"color"`
}

type KeyframeFile struct {
	Intensity *cycle.Span `yaml:"intensity"`
	Blend     *cycle.Span `yaml:"blend"`
	Color     *HexSpan    `yaml:"color"`
}

type HexSpan struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type MaterialFile struct {
	BlendParam string `yaml:"blend_param"`
	ColorParam string `yaml:"color_param"`
}

// Load reads DAYNIGHT_CONFIG when set, then applies environment overrides.
func Load() (Settings, error) {
	s := Defaults()
	if path := strings.TrimSpace(os.Getenv(envPrefix + "CONFIG")); path != "" {
		var err error
		s, err = LoadFile(path)
		if err != nil {
			return Settings{}, err
		}
	}
	if err := applyEnv(&s); err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func LoadFile(path string) (Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (Settings, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Settings{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	s := Defaults()
	if err := f.apply(&s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) Validate() error {
	if s.TickHz <= 0 {
		return fmt.Errorf("%w: tick_hz must be > 0", ErrInvalidConfig)
	}
	if s.QueueSize <= 0 {
		return fmt.Errorf("%w: queue_size must be > 0", ErrInvalidConfig)
	}
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, s.LogLevel)
	}
	if err := s.Cycle.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (f File) apply(s *Settings) error {
	setString(&s.HTTPAddr, f.Server.HTTPAddr)
	setString(&s.WSAddr, f.Server.WSAddr)
	if f.Server.TickHz != 0 {
		s.TickHz = f.Server.TickHz
	}
	if f.Server.QueueSize != 0 {
		s.QueueSize = f.Server.QueueSize
	}
	setBool(&s.Resume, f.Server.Resume)
	setBool(&s.TUI, f.Server.TUI)
	setString(&s.DSN, f.Database.DSN)
	setString(&s.MigrationsDir, f.Database.MigrationsDir)
	setString(&s.LogLevel, strings.ToLower(f.Log.Level))
	setString(&s.LogPath, f.Log.Path)
	return f.Cycle.apply(&s.Cycle)
}

func (f CycleFile) apply(c *cycle.Config) error {
	setFloat(&c.StartHour, f.StartHour)
	setFloat(&c.Multiplier, f.Multiplier)
	setFloat(&c.InitialIntensity, f.InitialIntensity)

	setFloat(&c.Boundaries.Sunrise, f.Boundaries.Sunrise)
	setFloat(&c.Boundaries.Day, f.Boundaries.Day)
	setFloat(&c.Boundaries.Evening, f.Boundaries.Evening)
	setFloat(&c.Boundaries.Night, f.Boundaries.Night)

	setFloat(&c.Rates.Intensity, f.Rates.Intensity)
	setFloat(&c.Rates.Blend, f.Rates.Blend)
	setFloat(&c.Rates.Color, f.Rates.Color)

	setString(&c.BlendParam, f.Material.BlendParam)
	setString(&c.ColorParam, f.Material.ColorParam)

	for _, pc := range []struct {
		dst *cycle.Color
		hex string
	}{
		{&c.Palette.Dawn, f.Colors.Dawn},
		{&c.Palette.Day, f.Colors.Day},
		{&c.Palette.Evening, f.Colors.Evening},
		{&c.Palette.Night, f.Colors.Night},
	} {
		if pc.hex == "" {
			continue
		}
		col, err := cycle.ParseColor(pc.hex)
		if err != nil {
			return fmt.Errorf("%w: colors: %w", ErrInvalidConfig, err)
		}
		*pc.dst = col
	}
	c.Targets = cycle.DefaultTargetTable(c.Palette)

	for name, kf := range f.Keyframes {
		seg := cycle.Segment(name)
		cur, ok := c.Targets[seg]
		if !ok {
			return fmt.Errorf("%w: unknown keyframe segment %q", ErrInvalidConfig, name)
		}
		if kf.Intensity != nil {
			cur.Intensity = *kf.Intensity
		}
		if kf.Blend != nil {
			cur.Blend = *kf.Blend
		}
		if kf.Color != nil {
			from, err := cycle.ParseColor(kf.Color.From)
			if err != nil {
				return fmt.Errorf("%w: keyframes.%s.color.from: %w", ErrInvalidConfig, name, err)
			}
			to, err := cycle.ParseColor(kf.Color.To)
			if err != nil {
				return fmt.Errorf("%w: keyframes.%s.color.to: %w", ErrInvalidConfig, name, err)
			}
			cur.Color = cycle.ColorSpan{From: from, To: to}
		}
		c.Targets[seg] = cur
	}

	if len(f.Lightmaps) > 0 {
		sets := cycle.LightmapSets{}
		for name, set := range f.Lightmaps {
			p := cycle.Phase(name)
			if !knownPhase(p) {
				return fmt.Errorf("%w: unknown lightmap phase %q", ErrInvalidConfig, name)
			}
			sets[p] = set
		}
		c.Lightmaps = sets
	}
	return nil
}

func applyEnv(s *Settings) error {
	s.HTTPAddr = stringEnv("HTTP_ADDR", s.HTTPAddr)
	s.WSAddr = stringEnv("WS_ADDR", s.WSAddr)
	s.TickHz = intEnv("TICK_HZ", s.TickHz)
	s.QueueSize = intEnv("QUEUE_SIZE", s.QueueSize)
	s.Resume = boolEnv("RESUME", s.Resume)
	s.TUI = boolEnv("TUI", s.TUI)
	s.DSN = stringEnv("DB_DSN", s.DSN)
	s.MigrationsDir = stringEnv("MIGRATIONS_DIR", s.MigrationsDir)
	s.LogLevel = strings.ToLower(stringEnv("LOG_LEVEL", s.LogLevel))
	s.LogPath = stringEnv("LOG_PATH", s.LogPath)

	var err error
	if s.Cycle.StartHour, err = floatEnv("START_HOUR", s.Cycle.StartHour); err != nil {
		return err
	}
	if s.Cycle.Multiplier, err = floatEnv("MULTIPLIER", s.Cycle.Multiplier); err != nil {
		return err
	}
	return nil
}

func knownPhase(p cycle.Phase) bool {
	for _, known := range cycle.Phases {
		if p == known {
			return true
		}
	}
	return false
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func stringEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(envPrefix + key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(envPrefix + key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func boolEnv(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(envPrefix + key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// floatEnv fails on malformed input rather than falling back.
func floatEnv(key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(envPrefix + key))
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s%s=%q", ErrInvalidConfig, envPrefix, key, v)
	}
	return f, nil
}
