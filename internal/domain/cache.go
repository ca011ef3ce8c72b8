package domain

// StatsInvalidator drops any cached dashboard aggregate for a company.
// Services call it after every write that changes those aggregates.
type StatsInvalidator interface {
	Invalidate(companyID string)
}

type NopInvalidator struct{}

func (NopInvalidator) Invalidate(string) {}
