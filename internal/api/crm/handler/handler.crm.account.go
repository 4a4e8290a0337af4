// Package crmhdl chứa HTTP handler cho domain CRM.
package crmhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	basehdl "ops_console/internal/api/base/handler"
	crmdto "ops_console/internal/api/crm/dto"
	crmmodels "ops_console/internal/api/crm/models"
	crmsvc "ops_console/internal/api/crm/service"
	"ops_console/internal/logger"
)

// CrmAccountHandler xử lý các request liên quan đến bản ghi CRM.
// Các route vòng đời dùng chung LifecycleHandler; list và patch override
// để thêm filter theo kind và guard cho name/kind.
type CrmAccountHandler struct {
	*basehdl.LifecycleHandler[crmmodels.CrmAccount, crmdto.CrmAccountCreateInput]
	service *crmsvc.CrmAccountService
}

// NewCrmAccountHandler tạo mới CrmAccountHandler
func NewCrmAccountHandler() (*CrmAccountHandler, error) {
	service, err := crmsvc.NewCrmAccountService()
	if err != nil {
		return nil, fmt.Errorf("tạo CRM account service: %w", err)
	}
	return &CrmAccountHandler{
		LifecycleHandler: basehdl.NewLifecycleHandler[crmmodels.CrmAccount, crmdto.CrmAccountCreateInput](
			service, "crm_account", crmsvc.BuildAccount),
		service: service,
	}, nil
}

// Service trả về account service bên dưới (dùng khi dựng các handler khác).
func (h *CrmAccountHandler) Service() *crmsvc.CrmAccountService {
	return h.service
}

// List trả về bản ghi CRM theo trạng thái vòng đời, lọc thêm theo kind
// (?kind=customer|vendor, bỏ trống = cả hai), mới nhất trước.
func (h *CrmAccountHandler) List(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		state, err := basehdl.ParseLifecycleState(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		extra := bson.M{}
		if kind := c.Query("kind"); kind != "" {
			extra["kind"] = kind
		}
		opts := mongoopts.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

		data, err := h.service.FindByLifecycle(c.Context(), state, extra, opts)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if data == nil {
			data = []crmmodels.CrmAccount{}
		}
		return basehdl.HandleResponse(c, data, nil)
	})
}

// Patch áp patch tri-state lên bản ghi CRM, có guard cho name và kind.
func (h *CrmAccountHandler) Patch(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		var patch map[string]interface{}
		if err := basehdl.ParseRequestBody(c, &patch); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		data, err := h.service.PatchAccount(c.Context(), id, patch)
		if err == nil {
			logger.LogCRUD("patch", "crm_account", id.Hex(), c, nil)
		}
		return basehdl.HandleResponse(c, data, err)
	})
}

// AddNote thêm ghi chú vào account, title suy ra từ dòng đầu của body.
func (h *CrmAccountHandler) AddNote(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		var input crmdto.CrmNoteCreateInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		data, err := h.service.AddNote(c.Context(), id, &input)
		return basehdl.HandleCreated(c, data, err)
	})
}

// UpdateNote sửa body một ghi chú của account.
func (h *CrmAccountHandler) UpdateNote(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		var input crmdto.CrmNoteUpdateInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		data, err := h.service.UpdateNote(c.Context(), id, c.Params("noteId"), &input)
		return basehdl.HandleResponse(c, data, err)
	})
}

// RemoveNote xóa một ghi chú khỏi account.
func (h *CrmAccountHandler) RemoveNote(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		data, err := h.service.RemoveNote(c.Context(), id, c.Params("noteId"))
		return basehdl.HandleResponse(c, data, err)
	})
}
