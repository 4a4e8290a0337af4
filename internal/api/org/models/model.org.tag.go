// Package models - các entity cấu hình nội bộ của tổ chức (org_*).
// Tất cả dùng chung vòng đời archivedAt/deletedAt của base service.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ops_console/internal/api/lifecycle"
)

// OrgTag là nhãn gắn lên bản ghi CRM, tham chiếu theo tên.
type OrgTag struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" index:"single:1"`
	Color       string             `json:"color,omitempty" bson:"color,omitempty"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`

	ArchivedAt int64 `json:"archivedAt,omitempty" bson:"archivedAt,omitempty"`
	DeletedAt  int64 `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:-1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// LifecycleMarkers trả về markers vòng đời của tag
func (t OrgTag) LifecycleMarkers() lifecycle.Markers {
	return lifecycle.Markers{ArchivedAt: t.ArchivedAt, DeletedAt: t.DeletedAt}
}
