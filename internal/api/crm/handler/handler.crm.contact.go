package crmhdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "ops_console/internal/api/base/handler"
	crmdto "ops_console/internal/api/crm/dto"
	crmsvc "ops_console/internal/api/crm/service"
	"ops_console/internal/logger"
)

// ContactHandler xử lý contact nhúng trong vendor. Các route nhận contactId
// trực tiếp — vendor chứa contact được tra ngược phía service.
type ContactHandler struct {
	manager *crmsvc.ContactManager
}

// NewContactHandler tạo ContactHandler trên account service.
func NewContactHandler(service *crmsvc.CrmAccountService) *ContactHandler {
	return &ContactHandler{manager: crmsvc.NewContactManager(service)}
}

// AddContact thêm contact mới vào vendor (:id là id của vendor).
func (h *ContactHandler) AddContact(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		vendorId, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		var input crmdto.CrmContactCreateInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		data, err := h.manager.AddContact(c.Context(), vendorId, &input)
		return basehdl.HandleCreated(c, data, err)
	})
}

// UpdateContact sửa name/title của contact.
func (h *ContactHandler) UpdateContact(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input crmdto.CrmContactUpdateInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		data, err := h.manager.UpdateContact(c.Context(), c.Params("contactId"), &input)
		return basehdl.HandleResponse(c, data, err)
	})
}

// SetDoNotContact bật/tắt cờ không liên hệ của contact.
func (h *ContactHandler) SetDoNotContact(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input crmdto.CrmContactDoNotContactInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		data, err := h.manager.SetDoNotContact(c.Context(), c.Params("contactId"), input.DoNotContact)
		return basehdl.HandleResponse(c, data, err)
	})
}

// Archive lưu trữ contact. Idempotent.
func (h *ContactHandler) Archive(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		contactId := c.Params("contactId")
		data, err := h.manager.ArchiveContact(c.Context(), contactId)
		if err == nil {
			logger.LogLifecycle("archive", "crm_contact", contactId, c)
		}
		return basehdl.HandleResponse(c, data, err)
	})
}

// Unarchive bỏ lưu trữ contact. Idempotent.
func (h *ContactHandler) Unarchive(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		contactId := c.Params("contactId")
		data, err := h.manager.UnarchiveContact(c.Context(), contactId)
		if err == nil {
			logger.LogLifecycle("unarchive", "crm_contact", contactId, c)
		}
		return basehdl.HandleResponse(c, data, err)
	})
}

// Remove chuyển contact vào thùng rác. Idempotent.
func (h *ContactHandler) Remove(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		contactId := c.Params("contactId")
		data, err := h.manager.RemoveContact(c.Context(), contactId)
		if err == nil {
			logger.LogLifecycle("remove", "crm_contact", contactId, c)
		}
		return basehdl.HandleResponse(c, data, err)
	})
}

// Restore khôi phục contact về hoạt động — xóa key deletedAt và hạ isArchived.
func (h *ContactHandler) Restore(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		contactId := c.Params("contactId")
		data, err := h.manager.RestoreContact(c.Context(), contactId)
		if err == nil {
			logger.LogLifecycle("restore", "crm_contact", contactId, c)
		}
		return basehdl.HandleResponse(c, data, err)
	})
}

// Delete xóa cứng contact khỏi vendor.
func (h *ContactHandler) Delete(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		contactId := c.Params("contactId")
		data, err := h.manager.DeleteContact(c.Context(), contactId)
		if err == nil {
			logger.LogLifecycle("delete", "crm_contact", contactId, c)
		}
		return basehdl.HandleResponse(c, data, err)
	})
}

// AddNote thêm ghi chú vào contact.
func (h *ContactHandler) AddNote(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input crmdto.CrmNoteCreateInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		data, err := h.manager.AddContactNote(c.Context(), c.Params("contactId"), &input)
		return basehdl.HandleCreated(c, data, err)
	})
}

// UpdateNote sửa body một ghi chú của contact.
func (h *ContactHandler) UpdateNote(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input crmdto.CrmNoteUpdateInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		data, err := h.manager.UpdateContactNote(c.Context(), c.Params("contactId"), c.Params("noteId"), &input)
		return basehdl.HandleResponse(c, data, err)
	})
}

// RemoveNote xóa một ghi chú khỏi contact.
func (h *ContactHandler) RemoveNote(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		data, err := h.manager.RemoveContactNote(c.Context(), c.Params("contactId"), c.Params("noteId"))
		return basehdl.HandleResponse(c, data, err)
	})
}
