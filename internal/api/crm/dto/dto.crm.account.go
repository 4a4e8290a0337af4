// Package dto - DTO cho domain CRM (account).
package dto

// CrmAccountCreateInput dữ liệu tạo bản ghi CRM mới.
// Name bắt buộc và không được toàn khoảng trắng — service trim trước khi validate.
type CrmAccountCreateInput struct {
	Kind         string   `json:"kind" validate:"required,oneof=customer vendor"`
	Name         string   `json:"name" validate:"required,max=200,no_xss"`
	Email        string   `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Phone        string   `json:"phone,omitempty" validate:"omitempty,max=32"`
	Company      string   `json:"company,omitempty" validate:"omitempty,max=200,no_xss"`
	Source       string   `json:"source,omitempty" validate:"omitempty,max=100"`
	SourceDetail string   `json:"sourceDetail,omitempty" validate:"omitempty,max=200"`
	Tags         []string `json:"tags,omitempty"`
	OwnerId      string   `json:"ownerId,omitempty"`
}

// CrmNoteCreateInput dữ liệu thêm ghi chú vào account hoặc contact.
// Title không nhận từ client — suy ra từ dòng đầu của Body.
type CrmNoteCreateInput struct {
	Body              string `json:"body" validate:"required"`
	CreatedByName     string `json:"createdByName,omitempty" validate:"omitempty,max=200"`
	CreatedByEmail    string `json:"createdByEmail,omitempty" validate:"omitempty,email"`
	CreatedByPhotoURL string `json:"createdByPhotoUrl,omitempty" validate:"omitempty,max=500"`
}

// CrmNoteUpdateInput dữ liệu sửa ghi chú — chỉ body đổi được, title suy ra lại.
type CrmNoteUpdateInput struct {
	Body string `json:"body" validate:"required"`
}
