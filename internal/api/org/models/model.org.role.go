package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ops_console/internal/api/lifecycle"
)

// OrgRole là chức danh/vai trò trong tổ chức.
type OrgRole struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" index:"single:1"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`

	ArchivedAt int64 `json:"archivedAt,omitempty" bson:"archivedAt,omitempty"`
	DeletedAt  int64 `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:-1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// LifecycleMarkers trả về markers vòng đời của role
func (r OrgRole) LifecycleMarkers() lifecycle.Markers {
	return lifecycle.Markers{ArchivedAt: r.ArchivedAt, DeletedAt: r.DeletedAt}
}
