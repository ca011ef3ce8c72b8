package events

import "time"

const (
	PayrollExecutedTopic     = "bossboard.payroll.executed.v1"
	PayrollExecutedEventType = "payroll.executed"
)

// PayrollExecutedEvent is published once per committed payroll run.
type PayrollExecutedEvent struct {
	EventType   string    `json:"event_type"`
	CompanyID   string    `json:"company_id"`
	Trigger     string    `json:"trigger"`
	PeriodStart string    `json:"period_start"`
	PeriodEnd   string    `json:"period_end"`
	Transfers   int       `json:"transfers"`
	Failed      int       `json:"failed"`
	TotalAmount string    `json:"total_amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}
