package domain

// EnforceRequest asks whether a role may perform action on resource within a company.
type EnforceRequest struct {
	Role      string `json:"role"`
	CompanyID string `json:"company_id"`
	Resource  string `json:"resource" binding:"required"`
	Action    string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type PermissionResponse struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

const (
	RoleOwner      = "owner"
	RoleAccountant = "accountant"
	RoleViewer     = "viewer"
)
