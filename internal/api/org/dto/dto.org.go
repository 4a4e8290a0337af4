// Package dto - input cho các entity cấu hình tổ chức.
package dto

// OrgTagCreateInput dữ liệu tạo tag mới.
type OrgTagCreateInput struct {
	Name        string `json:"name" validate:"required,max=100,no_xss"`
	Color       string `json:"color,omitempty" validate:"omitempty,max=32"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// OrgRoleCreateInput dữ liệu tạo role mới.
type OrgRoleCreateInput struct {
	Name        string `json:"name" validate:"required,max=100,no_xss"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// OrgEmployeeCreateInput dữ liệu tạo employee mới.
type OrgEmployeeCreateInput struct {
	Name     string `json:"name" validate:"required,max=200,no_xss"`
	Email    string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,max=32"`
	PhotoURL string `json:"photoUrl,omitempty" validate:"omitempty,url,max=500"`
	RoleId   string `json:"roleId,omitempty"`
}

// OrgPolicyCreateInput dữ liệu tạo policy mới.
type OrgPolicyCreateInput struct {
	Name     string `json:"name" validate:"required,max=200,no_xss"`
	Body     string `json:"body,omitempty"`
	Category string `json:"category,omitempty" validate:"omitempty,max=100"`
}
