package demotest

import (
	"errors"
	"fmt"
)

// ArgStyle selects how flags passed to the target executable are spelled.
type ArgStyle string

const (
	// ArgStyleLong spells flags as --disc-image, --headless and so on.
	ArgStyleLong ArgStyle = "long"
	// ArgStylePsyDoom uses the single-dash switches understood by the game itself.
	ArgStylePsyDoom ArgStyle = "psydoom"
)

// ErrUnknownArgStyle is returned for an unrecognised argument style name.
var ErrUnknownArgStyle = errors.New("unknown argument style")

// Mode chooses whether the game verifies or (re)writes the expected result.
type Mode int

const (
	// ModeCheck compares the demo outcome against the expected-result file.
	ModeCheck Mode = iota
	// ModeSave writes the demo outcome to the expected-result file.
	ModeSave
)

func (m Mode) String() string {
	if m == ModeSave {
		return "save"
	}
	return "check"
}

type flagNames struct {
	disc     string
	headless string
	play     string
	check    string
	save     string
}

var styles = map[ArgStyle]flagNames{
	ArgStyleLong: {
		disc:     "--disc-image",
		headless: "--headless",
		play:     "--play-recording",
		check:    "--check-result",
		save:     "--save-result",
	},
	ArgStylePsyDoom: {
		disc:     "-cue",
		headless: "-headless",
		play:     "-playdemo",
		check:    "-checkresult",
		save:     "-saveresult",
	},
}

// ParseArgStyle validates an argument style name.
func ParseArgStyle(name string) (ArgStyle, error) {
	style := ArgStyle(name)
	if _, ok := styles[style]; !ok {
		return "", fmt.Errorf("%w: %q (want %q or %q)", ErrUnknownArgStyle, name, ArgStyleLong, ArgStylePsyDoom)
	}

	return style, nil
}

// Args builds the argument list for one case:
//
//	[<disc> <discImage>] <headless> <play> <recording> <check|save> <expected>
//
// The disc flag is omitted when discImage is empty.
func Args(style ArgStyle, mode Mode, discImage, recording, expected string) []string {
	names, ok := styles[style]
	if !ok {
		names = styles[ArgStyleLong]
	}

	args := make([]string, 0, 7)
	if discImage != "" {
		args = append(args, names.disc, discImage)
	}

	resultFlag := names.check
	if mode == ModeSave {
		resultFlag = names.save
	}

	return append(args, names.headless, names.play, recording, resultFlag, expected)
}
