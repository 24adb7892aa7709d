package search

import (
	"fmt"
	"strings"
)

// Mode selects which retrieval signals a query uses.
type Mode string

const (
	ModeKeyword  Mode = "keyword"
	ModeSemantic Mode = "semantic"
	ModeHybrid   Mode = "hybrid"
)

// Modes lists the valid modes in display order.
var Modes = []Mode{ModeKeyword, ModeSemantic, ModeHybrid}

// ParseMode validates a mode name. The empty string selects ModeHybrid.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case "":
		return ModeHybrid, nil
	case ModeKeyword, ModeSemantic, ModeHybrid:
		return m, nil
	default:
		return "", &ValidationError{
			Field:   "mode",
			Message: fmt.Sprintf("invalid mode %q, must be one of: %s", s, modeList()),
			Err:     ErrInvalidMode,
		}
	}
}

func (m Mode) usesKeyword() bool {
	return m == ModeKeyword || m == ModeHybrid
}

func (m Mode) usesSemantic() bool {
	return m == ModeSemantic || m == ModeHybrid
}

func modeList() string {
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
