package dedupe

// MergeInputError reports a structurally invalid merge request. It is fatal to
// that merge only; batch runs collect it and continue.
type MergeInputError struct {
	Reason string
}

func (e *MergeInputError) Error() string {
	if e.Reason == "" {
		return "invalid merge input"
	}
	return "invalid merge input: " + e.Reason
}
