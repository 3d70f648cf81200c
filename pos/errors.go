package pos

import (
	"fmt"
	"strings"
)

// DivisionByZeroError is returned when a tag with no marginal frequency is
// used as a smoothing denominator. Only tags never seen in training (such as
// an injected unknown-word tag) can trigger it.
type DivisionByZeroError struct {
	Tag string
}

func (err DivisionByZeroError) Error() string {
	return fmt.Sprintf("tag %q has zero frequency", err.Tag)
}

// PathReconstructionError is returned in anchor mode when the final word has
// no candidate carrying the anchor tag.
type PathReconstructionError struct {
	Anchor     string
	Word       string
	Position   int
	Candidates []string
}

func (err PathReconstructionError) Error() string {
	return fmt.Sprintf(
		"can't anchor path on %q: word %q at position %d has tags [%s]",
		err.Anchor, err.Word, err.Position, strings.Join(err.Candidates, " "),
	)
}
