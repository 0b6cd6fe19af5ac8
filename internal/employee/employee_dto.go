package employee

type CreateEmployeeRequest struct {
	EmployeeCode string `json:"employee_code"`
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	UserID       string `json:"user_id" binding:"omitempty,uuid"`
	DepartmentID string `json:"department_id" binding:"omitempty,uuid"`
	PositionID   string `json:"position_id" binding:"omitempty,uuid"`
	ManagerID    string `json:"manager_id" binding:"omitempty,uuid"`
	HireDate     string `json:"hire_date" binding:"required"`

	DateOfBirth           string `json:"date_of_birth"`
	Address               string `json:"address"`
	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`
}

type UpdateEmployeeRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	DepartmentID string `json:"department_id" binding:"omitempty,uuid"`
	PositionID   string `json:"position_id" binding:"omitempty,uuid"`
	ManagerID    string `json:"manager_id" binding:"omitempty,uuid"`
	Status       string `json:"status" binding:"omitempty,oneof=active on_leave terminated suspended"`

	TerminationDate       string `json:"termination_date"`
	DateOfBirth           string `json:"date_of_birth"`
	Address               string `json:"address"`
	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`
}

type EmployeeResponse struct {
	ID           string `json:"id"`
	TenantID     string `json:"tenant_id"`
	EmployeeCode string `json:"employee_code"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	UserID       string `json:"user_id,omitempty"`
	DepartmentID string `json:"department_id,omitempty"`
	PositionID   string `json:"position_id,omitempty"`
	ManagerID    string `json:"manager_id,omitempty"`
	HireDate     string `json:"hire_date"`
	Status       string `json:"status"`

	TerminationDate string `json:"termination_date,omitempty"`
	DateOfBirth     string `json:"date_of_birth,omitempty"`
	Address         string `json:"address,omitempty"`
}
