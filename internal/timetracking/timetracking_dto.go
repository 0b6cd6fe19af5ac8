package timetracking

type CreateTimeEntryTypeRequest struct {
	Code          string `json:"code" binding:"required,max=50"`
	Name          string `json:"name" binding:"required,max=150"`
	PayMultiplier string `json:"pay_multiplier"`
}

type TimeEntryTypeResponse struct {
	ID            string `json:"id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	PayMultiplier string `json:"pay_multiplier"`
	IsActive      bool   `json:"is_active"`
}

type CreateTimeEntryRequest struct {
	TimeEntryTypeID string `json:"time_entry_type_id" binding:"required,uuid"`
	Date            string `json:"date" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	EndTime         string `json:"end_time" binding:"required"`
	BreakMinutes    int    `json:"break_minutes" binding:"omitempty,min=0"`
	Description     string `json:"description"`
}

type UpdateTimeEntryRequest struct {
	Date         string `json:"date" binding:"required"`
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
	BreakMinutes int    `json:"break_minutes" binding:"omitempty,min=0"`
	Description  string `json:"description"`
}

type TimeEntryResponse struct {
	ID              string `json:"id"`
	EmployeeID      string `json:"employee_id"`
	TimeEntryTypeID string `json:"time_entry_type_id"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	BreakMinutes    int    `json:"break_minutes"`
	DurationHours   string `json:"duration_hours"`
	Description     string `json:"description,omitempty"`
	Status          string `json:"status"`
	ApproverID      string `json:"approver_id,omitempty"`
	ApprovedAt      string `json:"approved_at,omitempty"`
}
