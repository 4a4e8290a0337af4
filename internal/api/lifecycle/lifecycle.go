// Package lifecycle cài đặt máy trạng thái vòng đời dùng chung cho mọi loại bản ghi
// của console: Active / Archived / Removed.
//
// Trạng thái không lưu trực tiếp — nó được suy ra từ hai mốc thời gian archivedAt
// và deletedAt (UnixMilli, 0 = chưa đặt). deletedAt đặt thì là Removed bất kể
// archivedAt; archivedAt đặt (và deletedAt chưa đặt) thì là Archived; còn lại Active.
//
// Mọi transition đều idempotent: áp lại transition lên bản ghi đã ở trạng thái đích
// trả về markers không đổi.
package lifecycle

// State là trạng thái vòng đời suy ra từ markers.
type State string

const (
	StateActive   State = "active"
	StateArchived State = "archived"
	StateRemoved  State = "removed"
)

// Markers chứa hai mốc thời gian quyết định trạng thái vòng đời.
// Giá trị 0 nghĩa là chưa đặt (key vắng mặt trong document nhờ bson omitempty).
type Markers struct {
	ArchivedAt int64 // UnixMilli lúc lưu trữ, 0 = chưa lưu trữ
	DeletedAt  int64 // UnixMilli lúc chuyển vào thùng rác, 0 = chưa
}

// Entity là bản ghi có markers vòng đời.
type Entity interface {
	LifecycleMarkers() Markers
}

// Classify suy ra trạng thái từ markers. deletedAt thắng archivedAt:
// bản ghi vừa archived vừa removed được phân loại là Removed.
func Classify(m Markers) State {
	if m.DeletedAt != 0 {
		return StateRemoved
	}
	if m.ArchivedAt != 0 {
		return StateArchived
	}
	return StateActive
}

// Archive đặt archivedAt = now. Hợp lệ từ Active lẫn Removed (bản ghi trong
// thùng rác vẫn lưu trữ được — khi restore nó sẽ không quay lại Archived vì
// Restore xóa cả hai markers). Đã archived thì giữ nguyên mốc cũ.
func Archive(m Markers, now int64) Markers {
	if m.ArchivedAt != 0 {
		return m
	}
	m.ArchivedAt = now
	return m
}

// Unarchive xóa archivedAt. Chưa archived thì không đổi gì.
func Unarchive(m Markers) Markers {
	m.ArchivedAt = 0
	return m
}

// Remove đặt deletedAt = now, chuyển bản ghi vào thùng rác từ bất kỳ trạng thái nào.
// archivedAt giữ nguyên. Đã removed thì giữ nguyên mốc cũ.
func Remove(m Markers, now int64) Markers {
	if m.DeletedAt != 0 {
		return m
	}
	m.DeletedAt = now
	return m
}

// Restore xóa cả deletedAt lẫn archivedAt vô điều kiện: restore luôn đưa bản ghi
// về Active, không bao giờ về Archived, kể cả khi nó đã archived trước lúc remove.
func Restore(m Markers) Markers {
	m.ArchivedAt = 0
	m.DeletedAt = 0
	return m
}

// Filter trả về các entity có trạng thái đúng bằng state, giữ nguyên thứ tự.
func Filter[T Entity](items []T, state State) []T {
	result := make([]T, 0, len(items))
	for _, item := range items {
		if Classify(item.LifecycleMarkers()) == state {
			result = append(result, item)
		}
	}
	return result
}

// Partition chia các entity thành ba nhóm active/archived/removed, giữ nguyên thứ tự.
// Mỗi entity rơi vào đúng một nhóm.
func Partition[T Entity](items []T) (active, archived, removed []T) {
	for _, item := range items {
		switch Classify(item.LifecycleMarkers()) {
		case StateRemoved:
			removed = append(removed, item)
		case StateArchived:
			archived = append(archived, item)
		default:
			active = append(active, item)
		}
	}
	return active, archived, removed
}
