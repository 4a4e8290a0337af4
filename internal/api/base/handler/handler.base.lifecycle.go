package basehdl

// Handler generic cho mọi entity có vòng đời archivedAt/deletedAt.
// Mỗi domain chỉ cần khai báo model + CreateInput + hàm transform,
// phần còn lại (list theo trạng thái, CRUD, các transition) dùng chung.

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	"ops_console/internal/api/lifecycle"
	"ops_console/internal/common"
	"ops_console/internal/logger"
)

// LifecycleService là phần của base service mà handler vòng đời cần dùng.
type LifecycleService[T any] interface {
	FindByLifecycle(ctx context.Context, state lifecycle.State, extra bson.M, opts *mongoopts.FindOptions) ([]T, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (T, error)
	InsertOne(ctx context.Context, doc T) (T, error)
	ApplyPatch(ctx context.Context, id primitive.ObjectID, patch map[string]interface{}) (T, error)
	Archive(ctx context.Context, id primitive.ObjectID) (T, error)
	Unarchive(ctx context.Context, id primitive.ObjectID) (T, error)
	Remove(ctx context.Context, id primitive.ObjectID) (T, error)
	Restore(ctx context.Context, id primitive.ObjectID) (T, error)
	DeleteById(ctx context.Context, id primitive.ObjectID) error
}

// LifecycleHandler xử lý các route chuẩn của một entity có vòng đời.
type LifecycleHandler[T any, CreateInput any] struct {
	Service      LifecycleService[T]
	ResourceType string // tên tài nguyên ghi vào audit log

	// Transform validate CreateInput và dựng model. Chạy TRƯỚC mọi thao tác
	// ghi — input hỏng không để lại gì trong store.
	Transform func(input *CreateInput) (T, error)
}

// NewLifecycleHandler tạo handler vòng đời cho một entity.
func NewLifecycleHandler[T any, CreateInput any](service LifecycleService[T], resourceType string,
	transform func(input *CreateInput) (T, error)) *LifecycleHandler[T, CreateInput] {
	return &LifecycleHandler[T, CreateInput]{
		Service:      service,
		ResourceType: resourceType,
		Transform:    transform,
	}
}

// ParseLifecycleState đọc query param state, mặc định active.
func ParseLifecycleState(c fiber.Ctx) (lifecycle.State, error) {
	raw := c.Query("state", string(lifecycle.StateActive))
	switch lifecycle.State(raw) {
	case lifecycle.StateActive, lifecycle.StateArchived, lifecycle.StateRemoved:
		return lifecycle.State(raw), nil
	default:
		return "", common.NewError(
			common.ErrCodeValidationInput,
			"state chỉ nhận active, archived hoặc removed",
			common.StatusBadRequest,
			nil,
		)
	}
}

// List trả về các bản ghi theo trạng thái vòng đời (query ?state=, mặc định active),
// mới nhất trước.
func (h *LifecycleHandler[T, CreateInput]) List(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		state, err := ParseLifecycleState(c)
		if err != nil {
			return HandleResponse(c, nil, err)
		}
		opts := mongoopts.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		data, err := h.Service.FindByLifecycle(c.Context(), state, nil, opts)
		if err != nil {
			return HandleResponse(c, nil, err)
		}
		if data == nil {
			data = []T{}
		}
		return HandleResponse(c, data, nil)
	})
}

// GetById trả về một bản ghi theo id, bất kể trạng thái vòng đời.
func (h *LifecycleHandler[T, CreateInput]) GetById(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		id, err := ParseObjectIDParam(c, "id")
		if err != nil {
			return HandleResponse(c, nil, err)
		}
		data, err := h.Service.FindOneById(c.Context(), id)
		return HandleResponse(c, data, err)
	})
}

// Create tạo bản ghi mới từ CreateInput.
func (h *LifecycleHandler[T, CreateInput]) Create(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		var input CreateInput
		if err := ParseRequestBody(c, &input); err != nil {
			return HandleResponse(c, nil, err)
		}
		model, err := h.Transform(&input)
		if err != nil {
			return HandleResponse(c, nil, err)
		}
		data, err := h.Service.InsertOne(c.Context(), model)
		if err == nil {
			logger.LogCRUD("create", h.ResourceType, "", c, nil)
		}
		return HandleCreated(c, data, err)
	})
}

// Patch áp patch tri-state lên bản ghi: key vắng mặt giữ nguyên,
// nil hoặc chuỗi rỗng xóa field, giá trị khác ghi đè.
// Name không xóa được — payload xóa name bị từ chối.
func (h *LifecycleHandler[T, CreateInput]) Patch(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		id, err := ParseObjectIDParam(c, "id")
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		var patch map[string]interface{}
		if err := ParseRequestBody(c, &patch); err != nil {
			return HandleResponse(c, nil, err)
		}

		if raw, ok := patch["name"]; ok {
			name, _ := raw.(string)
			if raw == nil || strings.TrimSpace(name) == "" {
				return HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationInput,
					"Tên bản ghi không được để trống",
					common.StatusBadRequest,
					nil,
				))
			}
			patch["name"] = strings.TrimSpace(name)
		}

		data, err := h.Service.ApplyPatch(c.Context(), id, patch)
		if err == nil {
			logger.LogCRUD("patch", h.ResourceType, id.Hex(), c, nil)
		}
		return HandleResponse(c, data, err)
	})
}

// transition chạy một thao tác chuyển trạng thái vòng đời và ghi audit log.
func (h *LifecycleHandler[T, CreateInput]) transition(c fiber.Ctx, name string,
	op func(ctx context.Context, id primitive.ObjectID) (T, error)) error {
	return SafeHandler(c, func() error {
		id, err := ParseObjectIDParam(c, "id")
		if err != nil {
			return HandleResponse(c, nil, err)
		}
		data, err := op(c.Context(), id)
		if err == nil {
			logger.LogLifecycle(name, h.ResourceType, id.Hex(), c)
		}
		return HandleResponse(c, data, err)
	})
}

// Archive lưu trữ bản ghi. Idempotent.
func (h *LifecycleHandler[T, CreateInput]) Archive(c fiber.Ctx) error {
	return h.transition(c, "archive", h.Service.Archive)
}

// Unarchive bỏ lưu trữ bản ghi. Idempotent.
func (h *LifecycleHandler[T, CreateInput]) Unarchive(c fiber.Ctx) error {
	return h.transition(c, "unarchive", h.Service.Unarchive)
}

// Remove chuyển bản ghi vào thùng rác. Idempotent.
func (h *LifecycleHandler[T, CreateInput]) Remove(c fiber.Ctx) error {
	return h.transition(c, "remove", h.Service.Remove)
}

// Restore khôi phục bản ghi về Active — xóa cả hai marker, không bao giờ
// quay về trạng thái lưu trữ. Idempotent.
func (h *LifecycleHandler[T, CreateInput]) Restore(c fiber.Ctx) error {
	return h.transition(c, "restore", h.Service.Restore)
}

// Delete xóa cứng bản ghi — bỏ qua trạng thái vòng đời, không khôi phục được.
func (h *LifecycleHandler[T, CreateInput]) Delete(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		id, err := ParseObjectIDParam(c, "id")
		if err != nil {
			return HandleResponse(c, nil, err)
		}
		err = h.Service.DeleteById(c.Context(), id)
		if err == nil {
			logger.LogLifecycle("delete", h.ResourceType, id.Hex(), c)
		}
		return HandleResponse(c, nil, err)
	})
}
