package basesvc

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tri-state patch: payload là map key -> giá trị.
//   - Key vắng mặt           -> field giữ nguyên
//   - Giá trị nil hoặc ""    -> field bị xóa khỏi document ($unset)
//   - Giá trị khác           -> field được ghi đè ($set)
//
// _id và createdAt không bao giờ patch được.

// protectedPatchFields là các field bị bỏ qua trong mọi patch
var protectedPatchFields = map[string]bool{
	"_id":       true,
	"createdAt": true,
	"updatedAt": true,
}

// BuildPatchUpdate dịch payload patch tri-state thành UpdateData $set/$unset.
// Pure function — tách riêng để test không cần database.
func BuildPatchUpdate(patch map[string]interface{}) *UpdateData {
	update := &UpdateData{
		Set:   make(map[string]interface{}),
		Unset: make(map[string]interface{}),
	}

	for key, value := range patch {
		if protectedPatchFields[key] {
			continue
		}
		if value == nil {
			update.Unset[key] = ""
			continue
		}
		if strValue, ok := value.(string); ok && strValue == "" {
			update.Unset[key] = ""
			continue
		}
		update.Set[key] = value
	}

	return update
}

// ApplyPatch áp một patch tri-state lên document theo id.
func (s *BaseServiceMongoImpl[T]) ApplyPatch(ctx context.Context, id primitive.ObjectID, patch map[string]interface{}) (T, error) {
	return s.UpdateById(ctx, id, BuildPatchUpdate(patch))
}
