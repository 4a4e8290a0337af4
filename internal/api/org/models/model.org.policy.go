package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ops_console/internal/api/lifecycle"
)

// OrgPolicy là văn bản chính sách nội bộ (quy trình, điều khoản).
type OrgPolicy struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name" index:"single:1"`
	Body     string             `json:"body,omitempty" bson:"body,omitempty"`
	Category string             `json:"category,omitempty" bson:"category,omitempty"`

	ArchivedAt int64 `json:"archivedAt,omitempty" bson:"archivedAt,omitempty"`
	DeletedAt  int64 `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:-1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// LifecycleMarkers trả về markers vòng đời của policy
func (p OrgPolicy) LifecycleMarkers() lifecycle.Markers {
	return lifecycle.Markers{ArchivedAt: p.ArchivedAt, DeletedAt: p.DeletedAt}
}
