package flow

// RetryBudget counts the attempts allowed for one field.
type RetryBudget struct {
	limit int
	used  int
}

// NewRetryBudget returns a budget of limit attempts. A limit of zero or less
// is unbounded, matching the "retries: 0" configuration value.
func NewRetryBudget(limit int) *RetryBudget {
	if limit < 0 {
		limit = 0
	}
	return &RetryBudget{limit: limit}
}

// Take consumes one attempt. It returns false once the budget is spent.
func (b *RetryBudget) Take() bool {
	if !b.Unbounded() && b.used >= b.limit {
		return false
	}
	b.used++
	return true
}

// Used returns the number of attempts taken so far.
func (b *RetryBudget) Used() int { return b.used }

// Remaining returns the attempts left, or -1 for an unbounded budget.
func (b *RetryBudget) Remaining() int {
	if b.Unbounded() {
		return -1
	}
	return b.limit - b.used
}

// Unbounded reports whether the budget never runs out.
func (b *RetryBudget) Unbounded() bool { return b.limit == 0 }
