package cycle

import "errors"

var ErrNoLightmaps = errors.New("no lightmaps configured for phase")

// LightmapSet is a pair of parallel texture sequences. Direction textures are
// optional and matched to color textures by index.
type LightmapSet struct {
	Colors     []string `json:"colors" yaml:"colors"`
	Directions []string `json:"directions" yaml:"directions"`
}

type LightmapEntry struct {
	Color     string `json:"color"`
	Direction string `json:"direction,omitempty"`
}

func (s LightmapSet) Empty() bool { return len(s.Colors) == 0 }

func (s LightmapSet) Entries() []LightmapEntry {
	out := make([]LightmapEntry, 0, len(s.Colors))
	for i, c := range s.Colors {
		e := LightmapEntry{Color: c}
		if i < len(s.Directions) {
			e.Direction = s.Directions[i]
		}
		out = append(out, e)
	}
	return out
}

type LightmapSets map[Phase]LightmapSet

// For returns the entries of a phase's set, or ErrNoLightmaps when the phase
// has none.
func (ls LightmapSets) For(p Phase) ([]LightmapEntry, error) {
	set, ok := ls[p]
	if !ok || set.Empty() {
		return nil, ErrNoLightmaps
	}
	return set.Entries(), nil
}
