package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ops_console/internal/api/lifecycle"
)

// EmailVariable là biến nội suy dùng trong body của EmailTemplate.
// Name là khóa tham chiếu ({{name}}), Value là giá trị thay thế.
type EmailVariable struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" index:"single:1"`
	Value       string             `json:"value,omitempty" bson:"value,omitempty"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`

	ArchivedAt int64 `json:"archivedAt,omitempty" bson:"archivedAt,omitempty"`
	DeletedAt  int64 `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:-1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// LifecycleMarkers trả về markers vòng đời của variable
func (v EmailVariable) LifecycleMarkers() lifecycle.Markers {
	return lifecycle.Markers{ArchivedAt: v.ArchivedAt, DeletedAt: v.DeletedAt}
}
