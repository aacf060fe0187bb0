package testset

import (
	"fmt"
	"path"
)

const (
	recordingExt = ".LMP"
	resultExt    = ".json"
)

// builtin is constructed once at package init and never modified.
var builtin = mustCatalog(
	TestSet{
		Name:  "doom_ntsc",
		Cases: mapCases("doom_ntsc", 59, "DEMO1", "DEMO2"),
	},
	TestSet{
		Name:      "doom_pal",
		DiscImage: "discs/Doom (PAL).cue",
		Cases:     mapCases("doom_pal", 59, "DEMO1", "DEMO2"),
	},
	TestSet{
		Name:      "finaldoom_ntsc",
		DiscImage: "discs/Final Doom (NTSC).cue",
		Cases:     mapCases("finaldoom_ntsc", 30, "DEMO1", "DEMO2"),
	},
	TestSet{
		Name:      "finaldoom_pal",
		DiscImage: "discs/Final Doom (PAL).cue",
		Cases:     mapCases("finaldoom_pal", 30, "DEMO1", "DEMO2"),
	},
)

// Builtin returns the catalog of test sets shipped with the tool.
func Builtin() *Catalog {
	return builtin
}

// mapCases returns one case per map MAP01..MAPnn followed by the named
// original demos, all stored under dir.
func mapCases(dir string, maps int, demos ...string) []TestCase {
	cases := make([]TestCase, 0, maps+len(demos))

	for i := 1; i <= maps; i++ {
		cases = append(cases, namedCase(dir, fmt.Sprintf("MAP%02d", i)))
	}

	for _, demo := range demos {
		cases = append(cases, namedCase(dir, demo))
	}

	return cases
}

func namedCase(dir, name string) TestCase {
	return TestCase{
		Recording: path.Join(dir, name+recordingExt),
		Expected:  path.Join(dir, name+resultExt),
	}
}

func mustCatalog(sets ...TestSet) *Catalog {
	c, err := NewCatalog(sets...)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in test sets: %v", err))
	}

	return c
}
