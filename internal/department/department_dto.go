package department

type CreateDepartmentRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Code        string  `json:"code" binding:"required,max=50"`
	Description string  `json:"description"`
	ParentID    *string `json:"parent_id" binding:"omitempty,uuid"`
	ManagerID   *string `json:"manager_id" binding:"omitempty,uuid"`
	Country     string  `json:"country" binding:"omitempty,len=2"`
}

type UpdateDepartmentRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description string  `json:"description"`
	ParentID    *string `json:"parent_id" binding:"omitempty,uuid"`
	ManagerID   *string `json:"manager_id" binding:"omitempty,uuid"`
	Country     string  `json:"country" binding:"omitempty,len=2"`
	IsActive    *bool   `json:"is_active"`
}

type DepartmentResponse struct {
	ID          string  `json:"id"`
	TenantID    string  `json:"tenant_id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description string  `json:"description,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"`
	ManagerID   *string `json:"manager_id,omitempty"`
	Country     string  `json:"country,omitempty"`
	IsActive    bool    `json:"is_active"`
}
