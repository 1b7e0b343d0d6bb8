package normalize

import (
	"strings"

	"golang.org/x/text/cases"
)

// Name returns the lookup key for a player name: surrounding and repeated
// whitespace removed, case folded.
func Name(name string) string {
	return cases.Fold().String(strings.Join(strings.Fields(name), " "))
}
