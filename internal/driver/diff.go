package driver

import (
	"github.com/aymanbagabas/go-udiff"
)

// Diff renders the unified diff for one changed file. Unchanged and failed
// results yield "".
func Diff(res FileResult) string {
	if res.Status != StatusChanged {
		return ""
	}
	return udiff.Unified("a/"+res.Path, "b/"+res.Path, string(res.Original), string(res.Output))
}
