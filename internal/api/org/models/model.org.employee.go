package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ops_console/internal/api/lifecycle"
)

// OrgEmployee là nhân viên nội bộ — người phụ trách bản ghi CRM và
// nguồn attribution khi ghi chú.
type OrgEmployee struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name" index:"single:1"`
	Email    string             `json:"email,omitempty" bson:"email,omitempty"`
	Phone    string             `json:"phone,omitempty" bson:"phone,omitempty"`
	PhotoURL string             `json:"photoUrl,omitempty" bson:"photoUrl,omitempty"`
	RoleId   primitive.ObjectID `json:"roleId,omitempty" bson:"roleId,omitempty"`

	ArchivedAt int64 `json:"archivedAt,omitempty" bson:"archivedAt,omitempty"`
	DeletedAt  int64 `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:-1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// LifecycleMarkers trả về markers vòng đời của employee
func (e OrgEmployee) LifecycleMarkers() lifecycle.Markers {
	return lifecycle.Markers{ArchivedAt: e.ArchivedAt, DeletedAt: e.DeletedAt}
}
