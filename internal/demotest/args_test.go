package demotest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgs(t *testing.T) {
	tests := []struct {
		name  string
		style ArgStyle
		mode  Mode
		disc  string
		want  []string
	}{
		{
			name:  "long without disc",
			style: ArgStyleLong,
			mode:  ModeCheck,
			want:  []string{"--headless", "--play-recording", "r/MAP01.LMP", "--check-result", "r/MAP01.json"},
		},
		{
			name:  "long with disc",
			style: ArgStyleLong,
			mode:  ModeCheck,
			disc:  "discs/Doom (PAL).cue",
			want: []string{
				"--disc-image", "discs/Doom (PAL).cue",
				"--headless", "--play-recording", "r/MAP01.LMP", "--check-result", "r/MAP01.json",
			},
		},
		{
			name:  "long save",
			style: ArgStyleLong,
			mode:  ModeSave,
			want:  []string{"--headless", "--play-recording", "r/MAP01.LMP", "--save-result", "r/MAP01.json"},
		},
		{
			name:  "psydoom with disc",
			style: ArgStylePsyDoom,
			mode:  ModeCheck,
			disc:  "fd.cue",
			want:  []string{"-cue", "fd.cue", "-headless", "-playdemo", "r/MAP01.LMP", "-checkresult", "r/MAP01.json"},
		},
		{
			name:  "psydoom save",
			style: ArgStylePsyDoom,
			mode:  ModeSave,
			want:  []string{"-headless", "-playdemo", "r/MAP01.LMP", "-saveresult", "r/MAP01.json"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Args(tt.style, tt.mode, tt.disc, "r/MAP01.LMP", "r/MAP01.json"))
		})
	}
}

func TestParseArgStyle(t *testing.T) {
	style, err := ParseArgStyle("psydoom")
	require.NoError(t, err)
	assert.Equal(t, ArgStylePsyDoom, style)

	_, err = ParseArgStyle("short")
	require.ErrorIs(t, err, ErrUnknownArgStyle)
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "check", ModeCheck.String())
	assert.Equal(t, "save", ModeSave.String())
}
