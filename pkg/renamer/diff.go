package renamer

import (
	"fmt"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Diff renders a unified diff of the changes a rewrite would make.
// Returns the empty string when nothing changed.
func Diff(res *Result) string {
	if !res.Changed {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(res.Path), res.Before, res.After)
	return fmt.Sprint(gotextdiff.ToUnified(res.Path, res.Path+" (rewritten)", res.Before, edits))
}
