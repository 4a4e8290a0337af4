// Package crmsvc - Điều phối commit merge: chuỗi ghi tuần tự, không transaction.
package crmsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	crmdto "ops_console/internal/api/crm/dto"
	crmmodels "ops_console/internal/api/crm/models"
	"ops_console/internal/common"
)

// mergeStore là phần của account service mà coordinator cần dùng.
// Tách interface để test coordinator bằng store giả.
type mergeStore interface {
	MergeReplace(ctx context.Context, id primitive.ObjectID, acc crmmodels.CrmAccount) (crmmodels.CrmAccount, error)
	MergeInsert(ctx context.Context, acc crmmodels.CrmAccount) (crmmodels.CrmAccount, error)
	MergeRemove(ctx context.Context, id primitive.ObjectID) error
}

// MergeCoordinator thực hiện commit merge lên store.
//
// Chuỗi ghi gồm N+1 thao tác độc lập, KHÔNG nằm trong transaction: đứt giữa
// chừng để lại dữ liệu trung gian (bản ghi đích đã ghi, một phần donor còn
// Active). Không có rollback — lỗi trả về kèm danh sách đã xử lý / chưa xử lý,
// donor bị bỏ lại sẽ hiện lại khi quét nhóm trùng và operator gộp tiếp.
type MergeCoordinator struct {
	store mergeStore
}

// NewMergeCoordinator tạo coordinator trên account service.
func NewMergeCoordinator(store mergeStore) *MergeCoordinator {
	return &MergeCoordinator{store: store}
}

// Commit thực hiện gộp theo chiến lược đã chọn và trả về bản ghi đích.
//
// absorb:     ghi đè root bằng kết quả merge, rồi xóa mềm từng donor.
// create_new: chèn kết quả merge thành bản ghi mới, rồi xóa mềm root lẫn donor.
//
// Nhóm không có donor nào thì không có gì để gộp — từ chối trước khi ghi.
func (c *MergeCoordinator) Commit(ctx context.Context, strategy string,
	root crmmodels.CrmAccount, donors []crmmodels.CrmAccount,
	fieldChoices map[string]string, inclusionSets map[string][]string) (*crmmodels.CrmAccount, error) {

	if len(donors) < 1 {
		return nil, common.NewError(common.ErrCodeConflict,
			"Nhóm gộp phải có ít nhất một donor ngoài bản ghi gốc",
			common.StatusConflict, nil)
	}

	merged := ComputeMerge(root, donors, fieldChoices, inclusionSets)

	switch strategy {
	case crmdto.MergeStrategyAbsorb:
		return c.commitAbsorb(ctx, root, donors, merged)
	case crmdto.MergeStrategyCreateNew:
		return c.commitCreateNew(ctx, root, donors, merged)
	default:
		return nil, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Chiến lược gộp không hợp lệ: %s", strategy),
			common.StatusBadRequest, nil)
	}
}

// commitAbsorb ghi đè root trước, sau đó xóa mềm donor theo thứ tự danh sách.
func (c *MergeCoordinator) commitAbsorb(ctx context.Context,
	root crmmodels.CrmAccount, donors []crmmodels.CrmAccount,
	merged crmmodels.CrmAccount) (*crmmodels.CrmAccount, error) {

	target, err := c.store.MergeReplace(ctx, root.ID, merged)
	if err != nil {
		// Chưa ghi gì thành công — store còn nguyên, không phải partial commit
		return nil, err
	}

	removed := []string{}
	for i, donor := range donors {
		if err := c.store.MergeRemove(ctx, donor.ID); err != nil {
			return nil, c.partialCommitError(crmdto.MergeStrategyAbsorb, target.ID.Hex(),
				removed, donorIdsFrom(donors[i:]),
				fmt.Sprintf("xóa mềm donor %s", donor.ID.Hex()), err)
		}
		removed = append(removed, donor.ID.Hex())
	}

	return &target, nil
}

// commitCreateNew chèn bản ghi mới trước, sau đó xóa mềm root rồi donor.
func (c *MergeCoordinator) commitCreateNew(ctx context.Context,
	root crmmodels.CrmAccount, donors []crmmodels.CrmAccount,
	merged crmmodels.CrmAccount) (*crmmodels.CrmAccount, error) {

	target, err := c.store.MergeInsert(ctx, merged)
	if err != nil {
		return nil, err
	}

	// Root cũng là nguồn cần dọn trong chiến lược này
	sources := append([]crmmodels.CrmAccount{root}, donors...)

	removed := []string{}
	for i, src := range sources {
		if err := c.store.MergeRemove(ctx, src.ID); err != nil {
			return nil, c.partialCommitError(crmdto.MergeStrategyCreateNew, target.ID.Hex(),
				removed, donorIdsFrom(sources[i:]),
				fmt.Sprintf("xóa mềm nguồn %s", src.ID.Hex()), err)
		}
		removed = append(removed, src.ID.Hex())
	}

	return &target, nil
}

func (c *MergeCoordinator) partialCommitError(strategy, targetId string,
	removed, pending []string, failedOp string, cause error) error {

	details := crmdto.PartialCommitDetails{
		Strategy:        strategy,
		TargetId:        targetId,
		RemovedIds:      removed,
		PendingIds:      pending,
		FailedOperation: fmt.Sprintf("%s: %v", failedOp, cause),
	}
	return common.NewError(common.ErrCodeMergePartialCommit,
		common.MsgMergePartialCommit, common.StatusInternalServerError, details)
}

func donorIdsFrom(accounts []crmmodels.CrmAccount) []string {
	ids := make([]string, 0, len(accounts))
	for _, acc := range accounts {
		ids = append(ids, acc.ID.Hex())
	}
	return ids
}
