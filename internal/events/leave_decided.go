package events

import "time"

const LeaveDecidedTopic = "hr.leave.decision.v1"

// LeaveDecidedEvent is emitted whenever a leave request leaves the
// pending state (approved/rejected) or an approval is cancelled.
type LeaveDecidedEvent struct {
	EventType     string    `json:"event_type"`
	LeaveID       string    `json:"leave_id"`
	TenantID      string    `json:"tenant_id"`
	EmployeeID    string    `json:"employee_id"`
	LeaveTypeID   string    `json:"leave_type_id"`
	Status        string    `json:"status"`
	DaysRequested string    `json:"days_requested"`
	OccurredAt    time.Time `json:"occurred_at"`
}
