package department

type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required,max=150"`
}

type UpdateDepartmentRequest struct {
	Name string `json:"name" binding:"required,max=150"`
}

type DepartmentResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
