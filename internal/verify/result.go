package verify

// Status is the per-file outcome of a verification run.
type Status int

const (
	// StatusConfirmed means the header signature agrees with the extension.
	StatusConfirmed Status = iota
	// StatusMismatch means the header names a different type than the extension.
	StatusMismatch
	// StatusUnknown means no known signature matched the header.
	StatusUnknown
	// StatusError means the file could not be verified at all.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusConfirmed:
		return "confirmed"
	case StatusMismatch:
		return "mismatch"
	case StatusUnknown:
		return "unknown"
	case StatusError:
		return "error"
	default:
		return "invalid"
	}
}

// FileResult is the verification outcome for a single file.
type FileResult struct {
	Path        string
	Declared    string // type implied by the file extension, upper-cased
	Detected    string // type named by the matching signature, if any
	HeaderBytes int    // leading bytes actually read
	Status      Status
	Err         error // set only for StatusError
}

// Summary aggregates the results of a verification session.
type Summary struct {
	Results    []FileResult
	Confirmed  int
	Mismatched int
	Unknown    int
	Errors     int
}

func summarize(results []FileResult) *Summary {
	s := &Summary{Results: results}
	for _, r := range results {
		switch r.Status {
		case StatusConfirmed:
			s.Confirmed++
		case StatusMismatch:
			s.Mismatched++
		case StatusUnknown:
			s.Unknown++
		case StatusError:
			s.Errors++
		}
	}
	return s
}
