package position

type CreatePositionRequest struct {
	Title        string  `json:"title" binding:"required,max=255"`
	Code         string  `json:"code" binding:"max=50"`
	Description  string  `json:"description"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	Level        int     `json:"level" binding:"omitempty,min=1,max=10"`
}

type UpdatePositionRequest struct {
	Title        string  `json:"title" binding:"required,max=255"`
	Code         string  `json:"code" binding:"max=50"`
	Description  string  `json:"description"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	Level        int     `json:"level" binding:"omitempty,min=1,max=10"`
	IsActive     *bool   `json:"is_active"`
}

type PositionResponse struct {
	ID           string  `json:"id"`
	TenantID     string  `json:"tenant_id"`
	Title        string  `json:"title"`
	Code         string  `json:"code,omitempty"`
	Description  string  `json:"description,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	Level        int     `json:"level"`
	IsActive     bool    `json:"is_active"`
}
