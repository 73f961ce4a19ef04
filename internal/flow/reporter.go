package flow

// Reporter receives progress from a Flow so a front end can render it.
// Candidates for FieldSecret are always passed masked.
type Reporter interface {
	// Checking is called before a candidate is validated or, for the
	// secret, authenticated.
	Checking(field Field, candidate string)
	// Checked is called with the outcome of the matching Checking call.
	Checked(field Field, accepted bool)
	// Rejected is called after a rejected candidate. remaining is -1 when
	// the budget is unbounded.
	Rejected(field Field, err error, remaining int)
}

// NopReporter discards all progress.
type NopReporter struct{}

func (NopReporter) Checking(Field, string)     {}
func (NopReporter) Checked(Field, bool)        {}
func (NopReporter) Rejected(Field, error, int) {}
