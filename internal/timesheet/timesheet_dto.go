package timesheet

type CreateTimesheetRequest struct {
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
}

type ReviewTimesheetRequest struct {
	Notes string `json:"notes"`
}

type TimesheetResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	PeriodStart   string `json:"period_start"`
	PeriodEnd     string `json:"period_end"`
	TotalHours    string `json:"total_hours"`
	OvertimeHours string `json:"overtime_hours"`
	Status        string `json:"status"`
	SubmittedAt   string `json:"submitted_at,omitempty"`
	ReviewerID    string `json:"reviewer_id,omitempty"`
	ReviewedAt    string `json:"reviewed_at,omitempty"`
	ReviewNotes   string `json:"review_notes,omitempty"`
}
