// Package dto - DTO cho contact nhúng trong vendor.
package dto

// CrmContactCreateInput dữ liệu thêm contact vào vendor.
type CrmContactCreateInput struct {
	Name  string `json:"name" validate:"required,max=200,no_xss"`
	Title string `json:"title,omitempty" validate:"omitempty,max=200"`
}

// CrmContactUpdateInput dữ liệu sửa thông tin contact.
// Field rỗng bị bỏ qua (không phải xóa) — xóa field đi qua patch của account.
type CrmContactUpdateInput struct {
	Name  string `json:"name,omitempty" validate:"omitempty,max=200,no_xss"`
	Title string `json:"title,omitempty" validate:"omitempty,max=200"`
}

// CrmContactDoNotContactInput bật/tắt cờ không liên hệ.
type CrmContactDoNotContactInput struct {
	DoNotContact bool `json:"doNotContact"`
}
