package magic

import "strings"

// Verdict classifies the agreement between the type a file declares
// through its name and the type detected from its header bytes.
type Verdict int

const (
	// Confirmed means a signature matched and names the declared type.
	Confirmed Verdict = iota
	// Mismatch means a signature matched but names a different type.
	Mismatch
	// Unknown means no signature matched: the declared type is neither
	// confirmed nor contradicted.
	Unknown
)

func (v Verdict) String() string {
	switch v {
	case Confirmed:
		return "confirmed"
	case Mismatch:
		return "mismatch"
	case Unknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Classify combines a lookup outcome with the type declared by the
// file name. Label comparison is case-insensitive, so "png" confirms
// a detected "PNG". Classify has no side effects and cannot fail.
func Classify(declared string, m Match, ok bool) Verdict {
	if !ok {
		return Unknown
	}
	if strings.EqualFold(declared, m.Type) {
		return Confirmed
	}
	return Mismatch
}
