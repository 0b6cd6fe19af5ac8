package contract

type CreateContractTypeRequest struct {
	Code        string `json:"code" binding:"required,max=50"`
	Name        string `json:"name" binding:"required,max=150"`
	Description string `json:"description"`
}

type UpdateContractTypeRequest struct {
	Name        string `json:"name" binding:"required,max=150"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

type ContractTypeResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
}

type CreateContractRequest struct {
	EmployeeID     string `json:"employee_id" binding:"required,uuid"`
	ContractTypeID string `json:"contract_type_id" binding:"required,uuid"`
	StartDate      string `json:"start_date" binding:"required"`
	EndDate        string `json:"end_date"`
	Salary         string `json:"salary" binding:"required"`
	Currency       string `json:"currency" binding:"omitempty,len=3"`
	SalaryPeriod   string `json:"salary_period" binding:"omitempty,oneof=monthly yearly hourly"`
	HoursPerWeek   string `json:"hours_per_week"`

	ProbationEndDate string `json:"probation_end_date"`
	NoticePeriodDays int    `json:"notice_period_days" binding:"omitempty,min=0"`
}

type UpdateContractRequest struct {
	EndDate      string `json:"end_date"`
	Status       string `json:"status" binding:"omitempty,oneof=draft active expired terminated"`
	Salary       string `json:"salary"`
	Currency     string `json:"currency" binding:"omitempty,len=3"`
	SalaryPeriod string `json:"salary_period" binding:"omitempty,oneof=monthly yearly hourly"`
	HoursPerWeek string `json:"hours_per_week"`

	ProbationEndDate string `json:"probation_end_date"`
	NoticePeriodDays int    `json:"notice_period_days" binding:"omitempty,min=0"`
}

type ContractResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	ContractTypeID string `json:"contract_type_id"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date,omitempty"`
	Status         string `json:"status"`
	Salary         string `json:"salary"`
	Currency       string `json:"currency"`
	SalaryPeriod   string `json:"salary_period"`
	HoursPerWeek   string `json:"hours_per_week"`

	ProbationEndDate string `json:"probation_end_date,omitempty"`
	NoticePeriodDays int    `json:"notice_period_days"`
}
