package cycle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLightmapEntriesAlignDirectionsByIndex(t *testing.T) {
	s := LightmapSet{
		Colors:     []string{"day_0", "day_1", "day_2"},
		Directions: []string{"day_dir_0"},
	}
	require.Equal(t, []LightmapEntry{
		{Color: "day_0", Direction: "day_dir_0"},
		{Color: "day_1"},
		{Color: "day_2"},
	}, s.Entries())
}

func TestLightmapSetsForMissingPhase(t *testing.T) {
	sets := LightmapSets{
		PhaseDay:   {Colors: []string{"d"}},
		PhaseNight: {Directions: []string{"orphan_dir"}},
	}

	got, err := sets.For(PhaseDay)
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = sets.For(PhaseNight)
	require.ErrorIs(t, err, ErrNoLightmaps)
	_, err = sets.For(PhaseEvening)
	require.ErrorIs(t, err, ErrNoLightmaps)
}

func TestColorParseAndLerp(t *testing.T) {
	c, err := ParseColor("#83CFFF")
	require.NoError(t, err)
	require.Equal(t, "#83cfff", c.Hex())

	_, err = ParseColor("not-a-color")
	require.ErrorIs(t, err, ErrInvalidValue)

	black := Color{}
	white := Color{R: 1, G: 1, B: 1}
	require.Equal(t, Color{R: 0.5, G: 0.5, B: 0.5}, black.Lerp(white, 0.5))
	require.Equal(t, white, black.Lerp(white, 3))
}
