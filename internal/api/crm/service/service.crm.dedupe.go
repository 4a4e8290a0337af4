// Package crmsvc - Gom nhóm bản ghi trùng và chọn thành viên nhóm gộp.
package crmsvc

import (
	"context"
	"strings"
	"sync"

	crmdto "ops_console/internal/api/crm/dto"
	crmmodels "ops_console/internal/api/crm/models"
	"ops_console/internal/api/lifecycle"
	"ops_console/internal/registry"
)

// Lý do từ chối toggle — trả thẳng cho console hiển thị.
const (
	ReasonMissingKey  = "thiếu trường khóa bắt buộc để gom nhóm"
	ReasonKeyMismatch = "khóa không trùng với nhóm đã chọn"
)

// MergeKeyOf trả về khóa gom nhóm trùng của một bản ghi:
// customer so theo email, vendor so theo name — đều trim và lowercase.
// Khóa rỗng nghĩa là bản ghi không gom nhóm được.
func MergeKeyOf(acc crmmodels.CrmAccount) string {
	switch acc.Kind {
	case crmmodels.AccountKindCustomer:
		return strings.ToLower(strings.TrimSpace(acc.Email))
	case crmmodels.AccountKindVendor:
		return strings.ToLower(strings.TrimSpace(acc.Name))
	default:
		return ""
	}
}

// MergeSelection là nhóm gộp đang chọn dở của một phiên làm việc.
// Bản ghi chọn đầu tiên thiết lập khóa nhóm; các bản ghi sau phải cùng khóa.
// Bỏ chọn thành viên cuối cùng xóa khóa — nhóm quay về trạng thái trống.
type MergeSelection struct {
	mu      sync.Mutex
	kind    string
	key     string
	members []string // account ids theo thứ tự chọn
}

// NewMergeSelection tạo nhóm chọn trống.
func NewMergeSelection() *MergeSelection {
	return &MergeSelection{}
}

// Toggle chọn hoặc bỏ chọn một bản ghi.
// Trả về trạng thái sau thao tác (đang được chọn hay không) và lý do nếu bị từ chối.
// Bỏ chọn luôn được phép; chọn mới phải qua kiểm tra khóa.
func (sel *MergeSelection) Toggle(acc crmmodels.CrmAccount) (selected bool, reason string) {
	sel.mu.Lock()
	defer sel.mu.Unlock()

	id := acc.ID.Hex()

	// Đã là thành viên -> bỏ chọn
	for i, member := range sel.members {
		if member == id {
			sel.members = append(sel.members[:i], sel.members[i+1:]...)
			if len(sel.members) == 0 {
				sel.key = ""
				sel.kind = ""
			}
			return false, ""
		}
	}

	key := MergeKeyOf(acc)
	if key == "" {
		// Bản ghi thiếu trường khóa không bao giờ chọn được,
		// kể cả làm thành viên đầu tiên
		return false, ReasonMissingKey
	}

	if len(sel.members) == 0 {
		// Lựa chọn đầu tiên thiết lập khóa nhóm
		sel.key = key
		sel.kind = acc.Kind
		sel.members = append(sel.members, id)
		return true, ""
	}

	if key != sel.key || acc.Kind != sel.kind {
		return false, ReasonKeyMismatch
	}

	sel.members = append(sel.members, id)
	return true, ""
}

// Current trả về khóa nhóm và danh sách thành viên theo thứ tự chọn.
func (sel *MergeSelection) Current() (key string, members []string) {
	sel.mu.Lock()
	defer sel.mu.Unlock()
	members = make([]string, len(sel.members))
	copy(members, sel.members)
	return sel.key, members
}

// Clear xóa toàn bộ lựa chọn.
func (sel *MergeSelection) Clear() {
	sel.mu.Lock()
	defer sel.mu.Unlock()
	sel.kind = ""
	sel.key = ""
	sel.members = nil
}

// RegistryMergeSessions giữ nhóm chọn theo session id của console.
// Trạng thái chọn sống trong bộ nhớ tiến trình — restart server là mất,
// console chọn lại từ đầu.
var RegistryMergeSessions = registry.NewRegistry[*MergeSelection]()

// SelectionForSession lấy (hoặc tạo) nhóm chọn của một phiên.
func SelectionForSession(sessionId string) (*MergeSelection, error) {
	return RegistryMergeSessions.GetOrCreate(sessionId, func() (*MergeSelection, error) {
		return NewMergeSelection(), nil
	})
}

// DetectDuplicateGroups quét các bản ghi Active và trả về những nhóm từ hai
// bản ghi trở lên chia sẻ cùng khóa gộp. Dùng cho màn hình dedupe và để
// phát hiện donor bị bỏ lại sau một lần commit merge đứt giữa chừng —
// hệ thống không tự gộp, operator quyết định.
func (s *CrmAccountService) DetectDuplicateGroups(ctx context.Context, kind string) ([]crmdto.DuplicateGroup, error) {
	accounts, err := s.ListByLifecycle(ctx, kind, lifecycle.StateActive)
	if err != nil {
		return nil, err
	}

	type groupKey struct{ kind, key string }
	index := make(map[groupKey][]string)
	order := []groupKey{}
	for _, acc := range accounts {
		key := MergeKeyOf(acc)
		if key == "" {
			continue
		}
		gk := groupKey{kind: acc.Kind, key: key}
		if _, seen := index[gk]; !seen {
			order = append(order, gk)
		}
		index[gk] = append(index[gk], acc.ID.Hex())
	}

	groups := []crmdto.DuplicateGroup{}
	for _, gk := range order {
		ids := index[gk]
		if len(ids) < 2 {
			continue
		}
		groups = append(groups, crmdto.DuplicateGroup{
			Key:        gk.key,
			Kind:       gk.kind,
			AccountIds: ids,
		})
	}
	return groups, nil
}
