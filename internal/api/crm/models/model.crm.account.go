// Package models - CrmAccount thuộc domain CRM (crm_accounts).
// Một collection chứa cả khách hàng (customer) lẫn nhà cung cấp (vendor),
// phân biệt bằng field kind. Trạng thái vòng đời suy ra từ archivedAt/deletedAt.
package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ops_console/internal/api/lifecycle"
)

// Các loại bản ghi CRM
const (
	AccountKindCustomer = "customer"
	AccountKindVendor   = "vendor"
)

// CrmNote là ghi chú nhúng trong account hoặc contact.
// Title luôn được suy ra từ dòng đầu tiên không rỗng của Body.
type CrmNote struct {
	Id        string `json:"id" bson:"id"`
	Title     string `json:"title,omitempty" bson:"title,omitempty"`
	Body      string `json:"body" bson:"body"`
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`

	// Snapshot người tạo tại thời điểm ghi — không phải reference,
	// đổi tên người dùng sau này không đổi ghi chú cũ
	CreatedByName     string `json:"createdByName,omitempty" bson:"createdByName,omitempty"`
	CreatedByEmail    string `json:"createdByEmail,omitempty" bson:"createdByEmail,omitempty"`
	CreatedByPhotoURL string `json:"createdByPhotoUrl,omitempty" bson:"createdByPhotoUrl,omitempty"`
}

// CrmEmail là địa chỉ email nhúng
type CrmEmail struct {
	Id        string `json:"id" bson:"id"`
	Address   string `json:"address" bson:"address"`
	Label     string `json:"label,omitempty" bson:"label,omitempty"`
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`
}

// CrmPhone là số điện thoại nhúng
type CrmPhone struct {
	Id        string `json:"id" bson:"id"`
	Number    string `json:"number" bson:"number"`
	Label     string `json:"label,omitempty" bson:"label,omitempty"`
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`
}

// CrmAddress là địa chỉ nhúng
type CrmAddress struct {
	Id        string `json:"id" bson:"id"`
	Street    string `json:"street,omitempty" bson:"street,omitempty"`
	City      string `json:"city,omitempty" bson:"city,omitempty"`
	Region    string `json:"region,omitempty" bson:"region,omitempty"`
	Postal    string `json:"postal,omitempty" bson:"postal,omitempty"`
	Country   string `json:"country,omitempty" bson:"country,omitempty"`
	Label     string `json:"label,omitempty" bson:"label,omitempty"`
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`
}

// CrmContact là người liên hệ nhúng trong vendor.
// Vòng đời contact dùng isArchived (bool) + deletedAt (key-presence):
// restore phải xóa hẳn key deletedAt khỏi document, không set null —
// bson omitempty với giá trị 0 đảm bảo điều đó.
type CrmContact struct {
	Id           string `json:"id" bson:"id"`
	Name         string `json:"name" bson:"name"`
	Title        string `json:"title,omitempty" bson:"title,omitempty"`
	DoNotContact bool   `json:"doNotContact" bson:"doNotContact"`
	IsArchived   bool   `json:"isArchived" bson:"isArchived"`
	DeletedAt    int64  `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`

	Emails    []CrmEmail   `json:"emails,omitempty" bson:"emails,omitempty"`
	Phones    []CrmPhone   `json:"phones,omitempty" bson:"phones,omitempty"`
	Addresses []CrmAddress `json:"addresses,omitempty" bson:"addresses,omitempty"`
	Notes     []CrmNote    `json:"notes,omitempty" bson:"notes,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
}

// CrmAccount là bản ghi CRM (crm_accounts): customer hoặc vendor.
type CrmAccount struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	// Identity
	Kind string `json:"kind" bson:"kind" index:"single:1"`
	Name string `json:"name" bson:"name" index:"compound:crm_account_kind_name"`

	// Scalars — khóa gom nhóm trùng: email cho customer, name cho vendor
	Email        string `json:"email,omitempty" bson:"email,omitempty" index:"compound:crm_account_kind_email"`
	Phone        string `json:"phone,omitempty" bson:"phone,omitempty"`
	Company      string `json:"company,omitempty" bson:"company,omitempty"`
	Source       string `json:"source,omitempty" bson:"source,omitempty"`
	SourceDetail string `json:"sourceDetail,omitempty" bson:"sourceDetail,omitempty"`

	// Tags tham chiếu theo tên — khi merge lấy union
	Tags []string `json:"tags,omitempty" bson:"tags,omitempty"`

	// Người phụ trách
	OwnerId primitive.ObjectID `json:"ownerId,omitempty" bson:"ownerId,omitempty"`

	// Markers vòng đời (0 = key vắng mặt nhờ omitempty)
	ArchivedAt int64 `json:"archivedAt,omitempty" bson:"archivedAt,omitempty"`
	DeletedAt  int64 `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`

	// Child collections — mỗi phần tử có id riêng, union theo id khi merge
	Notes     []CrmNote    `json:"notes,omitempty" bson:"notes,omitempty"`
	Emails    []CrmEmail   `json:"emails,omitempty" bson:"emails,omitempty"`
	Phones    []CrmPhone   `json:"phones,omitempty" bson:"phones,omitempty"`
	Addresses []CrmAddress `json:"addresses,omitempty" bson:"addresses,omitempty"`

	// Contacts chỉ có ở vendor
	Contacts []CrmContact `json:"contacts,omitempty" bson:"contacts,omitempty"`

	// Metadata
	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:-1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// LifecycleMarkers trả về markers vòng đời của account
func (a CrmAccount) LifecycleMarkers() lifecycle.Markers {
	return lifecycle.Markers{ArchivedAt: a.ArchivedAt, DeletedAt: a.DeletedAt}
}

// NoteTitleFromBody suy ra title của ghi chú: dòng đầu tiên không rỗng của body,
// đã trim khoảng trắng. Body toàn dòng rỗng thì title rỗng.
func NoteTitleFromBody(body string) string {
	for _, line := range strings.Split(body, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
