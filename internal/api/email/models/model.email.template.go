// Package models - entity email (email_*): template và biến nội suy.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ops_console/internal/api/lifecycle"
)

// EmailTemplate là mẫu email gửi cho khách hàng/nhà cung cấp.
// Body có thể chứa biến nội suy dạng {{key}} tham chiếu EmailVariable.
type EmailTemplate struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name" index:"single:1"`
	Subject  string             `json:"subject,omitempty" bson:"subject,omitempty"`
	Body     string             `json:"body,omitempty" bson:"body,omitempty"`
	Category string             `json:"category,omitempty" bson:"category,omitempty"`

	ArchivedAt int64 `json:"archivedAt,omitempty" bson:"archivedAt,omitempty"`
	DeletedAt  int64 `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:-1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// LifecycleMarkers trả về markers vòng đời của template
func (t EmailTemplate) LifecycleMarkers() lifecycle.Markers {
	return lifecycle.Markers{ArchivedAt: t.ArchivedAt, DeletedAt: t.DeletedAt}
}
