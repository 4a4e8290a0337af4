package crmhdl

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "ops_console/internal/api/base/handler"
	crmdto "ops_console/internal/api/crm/dto"
	crmmodels "ops_console/internal/api/crm/models"
	crmsvc "ops_console/internal/api/crm/service"
	"ops_console/internal/common"
	"ops_console/internal/logger"
)

// MergeHandler xử lý luồng gộp bản ghi trùng: chọn nhóm, xem nhóm trùng,
// tính trước kết quả và commit.
type MergeHandler struct {
	service     *crmsvc.CrmAccountService
	coordinator *crmsvc.MergeCoordinator
}

// NewMergeHandler tạo MergeHandler trên account service.
func NewMergeHandler(service *crmsvc.CrmAccountService) *MergeHandler {
	return &MergeHandler{
		service:     service,
		coordinator: crmsvc.NewMergeCoordinator(service),
	}
}

// loadGroup đọc root và donors theo thứ tự id trong input — thứ tự quyết định
// cả kết quả union lẫn trình tự ghi khi commit.
func (h *MergeHandler) loadGroup(c fiber.Ctx, rootId string, donorIds []string) (crmmodels.CrmAccount, []crmmodels.CrmAccount, error) {
	var zero crmmodels.CrmAccount

	rootOid, err := primitive.ObjectIDFromHex(rootId)
	if err != nil {
		return zero, nil, common.NewError(common.ErrCodeValidationFormat,
			"rootId không phải ObjectID hợp lệ", common.StatusBadRequest, nil)
	}
	root, err := h.service.FindOneById(c.Context(), rootOid)
	if err != nil {
		return zero, nil, err
	}

	donors := make([]crmmodels.CrmAccount, 0, len(donorIds))
	for _, id := range donorIds {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return zero, nil, common.NewError(common.ErrCodeValidationFormat,
				"donorId không phải ObjectID hợp lệ: "+id, common.StatusBadRequest, nil)
		}
		donor, err := h.service.FindOneById(c.Context(), oid)
		if err != nil {
			return zero, nil, err
		}
		donors = append(donors, donor)
	}
	return root, donors, nil
}

// Toggle chọn/bỏ chọn một bản ghi vào nhóm gộp của phiên làm việc.
// Chọn bị từ chối khi khóa không khớp nhóm hoặc bản ghi thiếu trường khóa.
func (h *MergeHandler) Toggle(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input crmdto.MergeToggleInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		oid, err := primitive.ObjectIDFromHex(input.AccountId)
		if err != nil {
			return basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat,
				"accountId không phải ObjectID hợp lệ", common.StatusBadRequest, nil))
		}
		account, err := h.service.FindOneById(c.Context(), oid)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		selection, err := crmsvc.SelectionForSession(input.SessionId)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		selected, reason := selection.Toggle(account)
		key, members := selection.Current()
		return basehdl.HandleResponse(c, crmdto.MergeToggleResult{
			Selected: selected,
			Reason:   reason,
			GroupKey: key,
			Members:  members,
		}, nil)
	})
}

// Groups trả về các nhóm bản ghi Active chia sẻ cùng khóa gộp
// (?kind=customer|vendor, bỏ trống = cả hai).
func (h *MergeHandler) Groups(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		groups, err := h.service.DetectDuplicateGroups(c.Context(), c.Query("kind"))
		return basehdl.HandleResponse(c, groups, err)
	})
}

// Preview tính trước kết quả gộp — không ghi gì vào store, console dùng để
// hiển thị màn hình xác nhận.
func (h *MergeHandler) Preview(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input crmdto.MergePreviewInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		root, donors, err := h.loadGroup(c, input.RootId, input.DonorIds)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		merged := crmsvc.ComputeMerge(root, donors, input.FieldChoices, input.InclusionSets)
		return basehdl.HandleResponse(c, fiber.Map{
			"merged":      merged,
			"fieldValues": crmsvc.DistinctFieldValues(root, donors),
			"rootId":      input.RootId,
			"donorIds":    input.DonorIds,
		}, nil)
	})
}

// Commit thực hiện gộp theo chiến lược đã chọn. Chuỗi ghi không nằm trong
// transaction — lỗi giữa chừng trả về 500 với chi tiết phần đã/chưa xử lý.
func (h *MergeHandler) Commit(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input crmdto.MergeCommitInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		root, donors, err := h.loadGroup(c, input.RootId, input.DonorIds)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		target, err := h.coordinator.Commit(c.Context(), input.Strategy,
			root, donors, input.FieldChoices, input.InclusionSets)
		if err == nil {
			logger.LogMerge(input.Strategy, target.ID.Hex(), input.DonorIds, c)
		}
		return basehdl.HandleResponse(c, target, err)
	})
}
