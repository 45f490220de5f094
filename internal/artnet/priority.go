package artnet

import (
	"fmt"
	"strings"
)

// Priority is the lowest diagnostics priority a node should report back.
type Priority uint8

const (
	DpLow      Priority = 0x10 // Low priority message
	DpMed      Priority = 0x40 // Medium priority message
	DpHigh     Priority = 0x80 // High priority message
	DpCritical Priority = 0xe0 // Critical priority message
	DpVolatile Priority = 0xf0 // Volatile message, displayed on a single line
)

// Priorities lists every priority code in ascending order
var Priorities = []Priority{DpLow, DpMed, DpHigh, DpCritical, DpVolatile}

// Valid reports whether p is one of the defined priority codes
func (p Priority) Valid() bool {
	switch p {
	case DpLow, DpMed, DpHigh, DpCritical, DpVolatile:
		return true
	default:
		return false
	}
}

// String returns the short name used on the command line
func (p Priority) String() string {
	switch p {
	case DpLow:
		return "low"
	case DpMed:
		return "med"
	case DpHigh:
		return "high"
	case DpCritical:
		return "critical"
	case DpVolatile:
		return "volatile"
	default:
		return fmt.Sprintf("Priority(0x%02x)", uint8(p))
	}
}

// ParsePriority accepts the short names ("low", "med", "medium", "high",
// "critical", "volatile") or the Dp-prefixed constant names.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "dplow":
		return DpLow, nil
	case "med", "medium", "dpmed":
		return DpMed, nil
	case "high", "dphigh":
		return DpHigh, nil
	case "critical", "dpcritical":
		return DpCritical, nil
	case "volatile", "dpvolatile":
		return DpVolatile, nil
	default:
		return 0, fmt.Errorf("unknown priority %q (valid: low, med, high, critical, volatile)", s)
	}
}
