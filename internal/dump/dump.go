// Package dump adapts go-spew the way utils.Dump/SDump do in the teacher
// repo, for pretty-printing search state while debugging the core.
package dump

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
)

var cfg *spew.ConfigState

func init() {
	cfg = spew.NewDefaultConfig()
	cfg.DisableCapacities = true
}

// SDump renders a into a multi-line debug string, e.g. a bit-rate table or
// a committed BoneBitRate slice.
func SDump(a ...interface{}) string {
	return cfg.Sdump(a...)
}

// Dump writes the spew rendering of a to stdout.
func Dump(a ...interface{}) {
	fmt.Println(cfg.Sdump(a...))
}
