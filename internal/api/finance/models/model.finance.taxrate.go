// Package models - entity tài chính (finance_*).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ops_console/internal/api/lifecycle"
)

// TaxRate là mức thuế suất áp cho hóa đơn theo vùng.
type TaxRate struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" index:"single:1"`
	Rate        float64            `json:"rate" bson:"rate"`
	Region      string             `json:"region,omitempty" bson:"region,omitempty"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`

	ArchivedAt int64 `json:"archivedAt,omitempty" bson:"archivedAt,omitempty"`
	DeletedAt  int64 `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:-1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// LifecycleMarkers trả về markers vòng đời của tax rate
func (t TaxRate) LifecycleMarkers() lifecycle.Markers {
	return lifecycle.Markers{ArchivedAt: t.ArchivedAt, DeletedAt: t.DeletedAt}
}
