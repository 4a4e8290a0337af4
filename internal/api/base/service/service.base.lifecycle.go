package basesvc

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ops_console/internal/api/events"
	"ops_console/internal/api/lifecycle"
	"ops_console/internal/common"
)

// Các thao tác vòng đời của base service. Trạng thái nằm trong hai marker
// archivedAt/deletedAt (UnixMilli, bson omitempty — 0 nghĩa là key vắng mặt).
// Logic chuyển trạng thái là pure function trong package lifecycle; ở đây chỉ
// đọc markers hiện tại, áp transition, rồi ghi khác biệt bằng $set/$unset.

// lifecycleMarkersDoc dùng để decode riêng hai marker từ document
type lifecycleMarkersDoc struct {
	ArchivedAt int64 `bson:"archivedAt,omitempty"`
	DeletedAt  int64 `bson:"deletedAt,omitempty"`
}

// readMarkers đọc markers vòng đời của một document
func (s *BaseServiceMongoImpl[T]) readMarkers(ctx context.Context, id primitive.ObjectID) (lifecycle.Markers, error) {
	var doc lifecycleMarkersDoc
	opts := options.FindOne().SetProjection(bson.M{"archivedAt": 1, "deletedAt": 1})
	err := s.collection.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return lifecycle.Markers{}, common.ErrNotFound
		}
		return lifecycle.Markers{}, common.ConvertMongoError(err)
	}
	return lifecycle.Markers{ArchivedAt: doc.ArchivedAt, DeletedAt: doc.DeletedAt}, nil
}

// writeMarkers ghi markers mới: marker 0 thành $unset (key biến mất khỏi document),
// marker khác 0 thành $set. Luôn đi qua UpdateById để bump updatedAt và phát event.
func (s *BaseServiceMongoImpl[T]) writeMarkers(ctx context.Context, id primitive.ObjectID, old, updated lifecycle.Markers) (T, error) {
	update := &UpdateData{
		Set:   make(map[string]interface{}),
		Unset: make(map[string]interface{}),
	}

	if updated.ArchivedAt != old.ArchivedAt {
		if updated.ArchivedAt == 0 {
			update.Unset["archivedAt"] = ""
		} else {
			update.Set["archivedAt"] = updated.ArchivedAt
		}
	}
	if updated.DeletedAt != old.DeletedAt {
		if updated.DeletedAt == 0 {
			update.Unset["deletedAt"] = ""
		} else {
			update.Set["deletedAt"] = updated.DeletedAt
		}
	}

	return s.UpdateById(ctx, id, update)
}

// Archive lưu trữ bản ghi (đặt archivedAt). Idempotent — bản ghi đã archived
// giữ nguyên mốc cũ, thao tác vẫn thành công.
func (s *BaseServiceMongoImpl[T]) Archive(ctx context.Context, id primitive.ObjectID) (T, error) {
	var zero T
	markers, err := s.readMarkers(ctx, id)
	if err != nil {
		return zero, err
	}
	return s.writeMarkers(ctx, id, markers, lifecycle.Archive(markers, time.Now().UnixMilli()))
}

// Unarchive bỏ lưu trữ bản ghi (xóa archivedAt). Idempotent.
func (s *BaseServiceMongoImpl[T]) Unarchive(ctx context.Context, id primitive.ObjectID) (T, error) {
	var zero T
	markers, err := s.readMarkers(ctx, id)
	if err != nil {
		return zero, err
	}
	return s.writeMarkers(ctx, id, markers, lifecycle.Unarchive(markers))
}

// Remove chuyển bản ghi vào thùng rác (đặt deletedAt, giữ archivedAt). Idempotent.
func (s *BaseServiceMongoImpl[T]) Remove(ctx context.Context, id primitive.ObjectID) (T, error) {
	var zero T
	markers, err := s.readMarkers(ctx, id)
	if err != nil {
		return zero, err
	}
	return s.writeMarkers(ctx, id, markers, lifecycle.Remove(markers, time.Now().UnixMilli()))
}

// Restore khôi phục bản ghi từ thùng rác: xóa cả deletedAt lẫn archivedAt,
// đưa về Active vô điều kiện. Idempotent.
func (s *BaseServiceMongoImpl[T]) Restore(ctx context.Context, id primitive.ObjectID) (T, error) {
	var zero T
	markers, err := s.readMarkers(ctx, id)
	if err != nil {
		return zero, err
	}
	return s.writeMarkers(ctx, id, markers, lifecycle.Restore(markers))
}

// LifecycleFilter trả về filter MongoDB cho một trạng thái vòng đời,
// dựa trên sự hiện diện của marker keys.
func LifecycleFilter(state lifecycle.State) bson.M {
	switch state {
	case lifecycle.StateArchived:
		return bson.M{
			"archivedAt": bson.M{"$exists": true},
			"deletedAt":  bson.M{"$exists": false},
		}
	case lifecycle.StateRemoved:
		return bson.M{"deletedAt": bson.M{"$exists": true}}
	default:
		return bson.M{
			"archivedAt": bson.M{"$exists": false},
			"deletedAt":  bson.M{"$exists": false},
		}
	}
}

// FindByLifecycle tìm các bản ghi theo trạng thái vòng đời, kèm điều kiện lọc bổ sung.
func (s *BaseServiceMongoImpl[T]) FindByLifecycle(ctx context.Context, state lifecycle.State, extra bson.M, opts *options.FindOptions) ([]T, error) {
	filter := LifecycleFilter(state)
	for k, v := range extra {
		filter[k] = v
	}
	return s.Find(ctx, filter, opts)
}

// Watch đăng ký nhận thông báo mỗi khi collection của service này thay đổi.
// Trả về hàm unsubscribe; gọi hàm đó để ngừng nhận.
func (s *BaseServiceMongoImpl[T]) Watch(handler events.DataChangeHandler) func() {
	return events.Subscribe(s.collection.Name(), handler)
}
