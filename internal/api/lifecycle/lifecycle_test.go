package lifecycle

import "testing"

type testRecord struct {
	name    string
	markers Markers
}

func (r testRecord) LifecycleMarkers() Markers {
	return r.markers
}

func TestClassifyMoiTrangThaiDuyNhat(t *testing.T) {
	cases := []struct {
		name string
		m    Markers
		want State
	}{
		{"không marker nào", Markers{}, StateActive},
		{"chỉ archivedAt", Markers{ArchivedAt: 100}, StateArchived},
		{"chỉ deletedAt", Markers{DeletedAt: 200}, StateRemoved},
		{"cả hai marker — deletedAt thắng", Markers{ArchivedAt: 100, DeletedAt: 200}, StateRemoved},
	}

	for _, tc := range cases {
		if got := Classify(tc.m); got != tc.want {
			t.Errorf("%s: Classify = %v, muốn %v", tc.name, got, tc.want)
		}
	}
}

func TestArchiveIdempotent(t *testing.T) {
	m := Archive(Markers{}, 1000)
	if m.ArchivedAt != 1000 {
		t.Fatalf("Archive không đặt archivedAt: %+v", m)
	}

	// Archive lần hai với mốc khác không được ghi đè mốc cũ
	m2 := Archive(m, 2000)
	if m2 != m {
		t.Errorf("Archive lần hai thay đổi markers: %+v -> %+v", m, m2)
	}
}

func TestArchiveTuTrangThaiRemoved(t *testing.T) {
	// Bản ghi trong thùng rác vẫn archive được, trạng thái vẫn là Removed
	m := Archive(Markers{DeletedAt: 500}, 1000)
	if m.ArchivedAt != 1000 || m.DeletedAt != 500 {
		t.Fatalf("Archive từ Removed sai markers: %+v", m)
	}
	if Classify(m) != StateRemoved {
		t.Errorf("deletedAt phải thắng archivedAt, got %v", Classify(m))
	}
}

func TestUnarchiveIdempotent(t *testing.T) {
	m := Unarchive(Markers{ArchivedAt: 100})
	if m.ArchivedAt != 0 {
		t.Fatalf("Unarchive không xóa archivedAt: %+v", m)
	}
	if m2 := Unarchive(m); m2 != m {
		t.Errorf("Unarchive lần hai thay đổi markers: %+v", m2)
	}
}

func TestRemoveGiuArchivedAt(t *testing.T) {
	m := Remove(Markers{ArchivedAt: 100}, 2000)
	if m.DeletedAt != 2000 {
		t.Fatalf("Remove không đặt deletedAt: %+v", m)
	}
	if m.ArchivedAt != 100 {
		t.Errorf("Remove không được xóa archivedAt: %+v", m)
	}

	// Idempotent
	if m2 := Remove(m, 3000); m2 != m {
		t.Errorf("Remove lần hai thay đổi markers: %+v", m2)
	}
}

func TestRestoreXoaCaHaiMarker(t *testing.T) {
	// Kịch bản: archive rồi remove rồi restore — kết quả phải là Active,
	// không quay về Archived
	m := Markers{}
	m = Archive(m, 100)
	m = Remove(m, 200)
	m = Restore(m)

	if m.ArchivedAt != 0 || m.DeletedAt != 0 {
		t.Fatalf("Restore phải xóa cả hai markers: %+v", m)
	}
	if Classify(m) != StateActive {
		t.Errorf("Sau restore phải là Active, got %v", Classify(m))
	}

	// Restore bản ghi đang Active không đổi gì
	if m2 := Restore(m); m2 != m {
		t.Errorf("Restore lần hai thay đổi markers: %+v", m2)
	}
}

func TestFilterTheoTrangThai(t *testing.T) {
	items := []testRecord{
		{name: "a", markers: Markers{}},
		{name: "b", markers: Markers{ArchivedAt: 10}},
		{name: "c", markers: Markers{DeletedAt: 20}},
		{name: "d", markers: Markers{ArchivedAt: 10, DeletedAt: 20}},
		{name: "e", markers: Markers{}},
	}

	active := Filter(items, StateActive)
	if len(active) != 2 || active[0].name != "a" || active[1].name != "e" {
		t.Errorf("Filter active sai: %+v", active)
	}

	archived := Filter(items, StateArchived)
	if len(archived) != 1 || archived[0].name != "b" {
		t.Errorf("Filter archived sai: %+v", archived)
	}

	removed := Filter(items, StateRemoved)
	if len(removed) != 2 || removed[0].name != "c" || removed[1].name != "d" {
		t.Errorf("Filter removed sai: %+v", removed)
	}
}

func TestPartitionKhongTrungKhongSot(t *testing.T) {
	items := []testRecord{
		{name: "a", markers: Markers{}},
		{name: "b", markers: Markers{ArchivedAt: 10}},
		{name: "c", markers: Markers{DeletedAt: 20}},
	}

	active, archived, removed := Partition(items)
	if len(active)+len(archived)+len(removed) != len(items) {
		t.Fatalf("Partition làm mất hoặc trùng phần tử: %d/%d/%d",
			len(active), len(archived), len(removed))
	}
	if active[0].name != "a" || archived[0].name != "b" || removed[0].name != "c" {
		t.Errorf("Partition chia sai nhóm")
	}
}
