// Package machine implements loading, scheduling and the cycle-to-die rule
// that together run a match: the toroidal arena plus every process
// executing inside it.
package machine

import (
	"fmt"

	"github.com/corewar-vm/corewar/internal/core"
)

// Champion is a named, commented compiled program ready to be loaded into
// a match. ID is the signed 32-bit value a live instruction must name to
// keep this champion's liveness alive.
type Champion struct {
	ID      int32
	Name    string
	Comment string
	Program []byte
}

// ErrProgramTooLarge is returned when a champion's program exceeds
// core.ProgMax bytes.
type ErrProgramTooLarge struct {
	ID   int32
	Size int
}

func (e ErrProgramTooLarge) Error() string {
	return fmt.Sprintf("champion %d: program size %d exceeds max %d", e.ID, e.Size, core.ProgMax)
}
