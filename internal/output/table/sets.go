package table

import (
	"fmt"

	"github.com/psydoom/psydoom-tools/internal/testset"
)

// FormatTestSets renders catalog sets as a table.
func FormatTestSets(renderer Renderer, sets []testset.TestSet) string {
	var (
		headers = []string{"Name", "Cases", "Disc Image"}
		rows    = make([][]string, 0, len(sets))
	)

	for _, s := range sets {
		disc := s.DiscImage
		if disc == "" {
			disc = "(default)"
		}

		rows = append(rows, []string{s.Name, fmt.Sprintf("%d", len(s.Cases)), disc})
	}

	return renderer.RenderToString(headers, rows)
}
