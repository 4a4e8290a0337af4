// Package dto - input cho entity email.
package dto

// EmailTemplateCreateInput dữ liệu tạo template mới.
type EmailTemplateCreateInput struct {
	Name     string `json:"name" validate:"required,max=200,no_xss"`
	Subject  string `json:"subject,omitempty" validate:"omitempty,max=500"`
	Body     string `json:"body,omitempty"`
	Category string `json:"category,omitempty" validate:"omitempty,max=100"`
}

// EmailVariableCreateInput dữ liệu tạo biến nội suy mới.
type EmailVariableCreateInput struct {
	Name        string `json:"name" validate:"required,max=100,no_xss"`
	Value       string `json:"value,omitempty" validate:"omitempty,max=1000"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
}
