// Package dto - DTO cho luồng gộp bản ghi trùng.
package dto

// Các chiến lược commit merge
const (
	MergeStrategyAbsorb    = "absorb"     // ghi đè bản ghi gốc, xóa mềm các donor
	MergeStrategyCreateNew = "create_new" // tạo bản ghi mới, xóa mềm gốc lẫn donor
)

// MergeToggleInput chọn/bỏ chọn một bản ghi vào nhóm gộp của phiên làm việc.
type MergeToggleInput struct {
	SessionId string `json:"sessionId" validate:"required,max=100"`
	AccountId string `json:"accountId" validate:"required"`
}

// MergeToggleResult kết quả toggle: trạng thái sau thao tác và lý do nếu bị từ chối.
type MergeToggleResult struct {
	Selected bool     `json:"selected"`
	Reason   string   `json:"reason,omitempty"`
	GroupKey string   `json:"groupKey,omitempty"`
	Members  []string `json:"members"`
}

// MergePreviewInput yêu cầu tính trước kết quả gộp (không ghi gì).
type MergePreviewInput struct {
	RootId        string              `json:"rootId" validate:"required"`
	DonorIds      []string            `json:"donorIds" validate:"required,min=1"`
	FieldChoices  map[string]string   `json:"fieldChoices,omitempty"`
	InclusionSets map[string][]string `json:"inclusionSets,omitempty"`
}

// MergeCommitInput yêu cầu thực hiện gộp.
type MergeCommitInput struct {
	Strategy      string              `json:"strategy" validate:"required,oneof=absorb create_new"`
	RootId        string              `json:"rootId" validate:"required"`
	DonorIds      []string            `json:"donorIds" validate:"required,min=1"`
	FieldChoices  map[string]string   `json:"fieldChoices,omitempty"`
	InclusionSets map[string][]string `json:"inclusionSets,omitempty"`
}

// PartialCommitDetails mô tả trạng thái dở dang khi chuỗi ghi merge đứt giữa chừng.
// Gắn vào Details của lỗi — không có rollback, operator xử lý tay từ danh sách này.
type PartialCommitDetails struct {
	Strategy        string   `json:"strategy"`
	TargetId        string   `json:"targetId"`        // bản ghi đích đã ghi xong
	RemovedIds      []string `json:"removedIds"`      // các bản ghi đã chuyển vào thùng rác
	PendingIds      []string `json:"pendingIds"`      // các bản ghi CHƯA xử lý được
	FailedOperation string   `json:"failedOperation"` // thao tác gây lỗi
}

// DuplicateGroup một nhóm bản ghi Active chia sẻ cùng khóa gộp.
type DuplicateGroup struct {
	Key        string   `json:"key"`
	Kind       string   `json:"kind"`
	AccountIds []string `json:"accountIds"`
}
