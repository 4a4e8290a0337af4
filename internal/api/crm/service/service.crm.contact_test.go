package crmsvc

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	crmdto "ops_console/internal/api/crm/dto"
	crmmodels "ops_console/internal/api/crm/models"
	"ops_console/internal/common"
)

// fakeContactStore giữ vendor trong map, mô phỏng đủ cho contact manager.
// writeCalls đếm số lượt WriteContacts để kiểm tra đường đi không được ghi.
type fakeContactStore struct {
	vendors    map[string]crmmodels.CrmAccount
	writeCalls int
}

func newFakeContactStore(vendors ...crmmodels.CrmAccount) *fakeContactStore {
	store := &fakeContactStore{vendors: map[string]crmmodels.CrmAccount{}}
	for _, v := range vendors {
		store.vendors[v.ID.Hex()] = v
	}
	return store
}

func (f *fakeContactStore) FindOneById(_ context.Context, id primitive.ObjectID) (crmmodels.CrmAccount, error) {
	v, ok := f.vendors[id.Hex()]
	if !ok {
		return crmmodels.CrmAccount{}, common.ErrNotFound
	}
	return v, nil
}

func (f *fakeContactStore) FindVendorsWithContacts(_ context.Context) ([]crmmodels.CrmAccount, error) {
	result := []crmmodels.CrmAccount{}
	for _, v := range f.vendors {
		if v.Kind == crmmodels.AccountKindVendor && len(v.Contacts) > 0 {
			result = append(result, v)
		}
	}
	return result, nil
}

func (f *fakeContactStore) WriteContacts(_ context.Context, vendorId primitive.ObjectID, contacts []crmmodels.CrmContact) error {
	f.writeCalls++
	v, ok := f.vendors[vendorId.Hex()]
	if !ok {
		return common.ErrNotFound
	}
	v.Contacts = contacts
	f.vendors[vendorId.Hex()] = v
	return nil
}

func makeVendor(contacts ...crmmodels.CrmContact) crmmodels.CrmAccount {
	return crmmodels.CrmAccount{
		ID:       primitive.NewObjectID(),
		Kind:     crmmodels.AccountKindVendor,
		Name:     "Nhà cung cấp",
		Contacts: contacts,
	}
}

func TestApplyToContactChiSuaMotPhanTu(t *testing.T) {
	contacts := []crmmodels.CrmContact{
		{Id: "c1", Name: "Một"},
		{Id: "c2", Name: "Hai"},
	}

	result, found, err := applyToContact(contacts, "c2", func(c *crmmodels.CrmContact) error {
		c.Name = "Hai sửa"
		return nil
	})
	if err != nil {
		t.Fatalf("applyToContact lỗi: %v", err)
	}
	if !found {
		t.Fatal("Phải tìm thấy c2")
	}
	if result[1].Name != "Hai sửa" {
		t.Errorf("c2 phải được sửa, nhận %q", result[1].Name)
	}
	if result[0].Name != "Một" || contacts[1].Name != "Hai" {
		t.Error("Phần tử khác và mảng gốc không được bị sửa")
	}

	noop := func(c *crmmodels.CrmContact) error { return nil }
	if _, found, _ := applyToContact(contacts, "khong-ton-tai", noop); found {
		t.Error("Id lạ phải trả found=false")
	}
}

func TestApplyToContactKhongDongSuaNotesGoc(t *testing.T) {
	contacts := []crmmodels.CrmContact{
		{Id: "c1", Name: "Một", Notes: []crmmodels.CrmNote{{Id: "n1", Body: "nguyên bản"}}},
	}

	_, _, err := applyToContact(contacts, "c1", func(c *crmmodels.CrmContact) error {
		c.Notes[0].Body = "đã sửa"
		return nil
	})
	if err != nil {
		t.Fatalf("applyToContact lỗi: %v", err)
	}

	// Transform sửa note qua con trỏ phần tử — mảng Notes của caller phải
	// còn nguyên, không ăn chung backing array với bản copy
	if contacts[0].Notes[0].Body != "nguyên bản" {
		t.Errorf("Notes gốc bị sửa xuyên qua copy: %q", contacts[0].Notes[0].Body)
	}
}

func TestApplyToContactLoiTransformChuyenLenCaller(t *testing.T) {
	contacts := []crmmodels.CrmContact{{Id: "c1", Name: "Một"}}
	muon := errors.New("transform từ chối")

	_, found, err := applyToContact(contacts, "c1", func(c *crmmodels.CrmContact) error {
		return muon
	})
	if !found {
		t.Fatal("c1 phải được tìm thấy")
	}
	if !errors.Is(err, muon) {
		t.Errorf("Lỗi transform phải chuyển nguyên lên, nhận %v", err)
	}
}

func TestFindVendorByContactIdTraNguoc(t *testing.T) {
	vendorA := makeVendor(crmmodels.CrmContact{Id: "c-a", Name: "A"})
	vendorB := makeVendor(crmmodels.CrmContact{Id: "c-b", Name: "B"})
	mgr := NewContactManager(newFakeContactStore(vendorA, vendorB))

	found, err := mgr.FindVendorByContactId(context.Background(), "c-b")
	if err != nil {
		t.Fatalf("Tra ngược lỗi: %v", err)
	}
	if found.ID != vendorB.ID {
		t.Errorf("Phải ra vendorB, nhận %s", found.ID.Hex())
	}

	if _, err := mgr.FindVendorByContactId(context.Background(), "khong-co"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Contact lạ phải trả ErrNotFound, nhận %v", err)
	}
}

func TestArchiveRemoveRestoreContact(t *testing.T) {
	vendor := makeVendor(
		crmmodels.CrmContact{Id: "c1", Name: "Mục tiêu"},
		crmmodels.CrmContact{Id: "c2", Name: "Hàng xóm", IsArchived: true},
	)
	store := newFakeContactStore(vendor)
	mgr := NewContactManager(store)
	ctx := context.Background()

	// archive rồi remove: deletedAt đóng dấu, isArchived giữ nguyên
	if _, err := mgr.ArchiveContact(ctx, "c1"); err != nil {
		t.Fatalf("Archive lỗi: %v", err)
	}
	if _, err := mgr.RemoveContact(ctx, "c1"); err != nil {
		t.Fatalf("Remove lỗi: %v", err)
	}
	got := store.vendors[vendor.ID.Hex()].Contacts[0]
	if !got.IsArchived || got.DeletedAt == 0 {
		t.Fatalf("Sau archive+remove: isArchived=%v deletedAt=%d", got.IsArchived, got.DeletedAt)
	}
	firstStamp := got.DeletedAt

	// remove lần hai giữ dấu cũ
	if _, err := mgr.RemoveContact(ctx, "c1"); err != nil {
		t.Fatalf("Remove lần hai lỗi: %v", err)
	}
	if got := store.vendors[vendor.ID.Hex()].Contacts[0]; got.DeletedAt != firstStamp {
		t.Error("Remove lặp lại không được đổi dấu thời gian")
	}

	// restore xóa deletedAt VÀ hạ isArchived — về thẳng hoạt động
	if _, err := mgr.RestoreContact(ctx, "c1"); err != nil {
		t.Fatalf("Restore lỗi: %v", err)
	}
	got = store.vendors[vendor.ID.Hex()].Contacts[0]
	if got.DeletedAt != 0 || got.IsArchived {
		t.Errorf("Sau restore: deletedAt=%d isArchived=%v, muốn 0/false", got.DeletedAt, got.IsArchived)
	}

	// contact bên cạnh không bị động tới
	neighbor := store.vendors[vendor.ID.Hex()].Contacts[1]
	if !neighbor.IsArchived || neighbor.DeletedAt != 0 {
		t.Errorf("Contact hàng xóm bị sửa oan: %+v", neighbor)
	}
}

func TestDeleteContactXoaHan(t *testing.T) {
	vendor := makeVendor(
		crmmodels.CrmContact{Id: "c1", Name: "Xóa"},
		crmmodels.CrmContact{Id: "c2", Name: "Giữ"},
	)
	store := newFakeContactStore(vendor)
	mgr := NewContactManager(store)

	if _, err := mgr.DeleteContact(context.Background(), "c1"); err != nil {
		t.Fatalf("Delete lỗi: %v", err)
	}
	contacts := store.vendors[vendor.ID.Hex()].Contacts
	if len(contacts) != 1 || contacts[0].Id != "c2" {
		t.Errorf("Mảng sau delete sai: %+v", contacts)
	}
}

func TestSetDoNotContact(t *testing.T) {
	vendor := makeVendor(crmmodels.CrmContact{Id: "c1", Name: "Một"})
	store := newFakeContactStore(vendor)
	mgr := NewContactManager(store)
	ctx := context.Background()

	if _, err := mgr.SetDoNotContact(ctx, "c1", true); err != nil {
		t.Fatalf("SetDoNotContact lỗi: %v", err)
	}
	if !store.vendors[vendor.ID.Hex()].Contacts[0].DoNotContact {
		t.Error("Cờ doNotContact phải bật")
	}
	if _, err := mgr.SetDoNotContact(ctx, "c1", false); err != nil {
		t.Fatalf("Tắt cờ lỗi: %v", err)
	}
	if store.vendors[vendor.ID.Hex()].Contacts[0].DoNotContact {
		t.Error("Cờ doNotContact phải tắt lại được")
	}
}

func TestContactNoteVongDoi(t *testing.T) {
	vendor := makeVendor(crmmodels.CrmContact{Id: "c1", Name: "Một"})
	store := newFakeContactStore(vendor)
	mgr := NewContactManager(store)
	ctx := context.Background()

	if _, err := mgr.AddContactNote(ctx, "c1", &crmdto.CrmNoteCreateInput{
		Body:          "  \nDòng tiêu đề\nphần thân",
		CreatedByName: "Người ghi",
	}); err != nil {
		t.Fatalf("AddContactNote lỗi: %v", err)
	}

	notes := store.vendors[vendor.ID.Hex()].Contacts[0].Notes
	if len(notes) != 1 {
		t.Fatalf("Phải có 1 ghi chú, nhận %d", len(notes))
	}
	if notes[0].Title != "Dòng tiêu đề" {
		t.Errorf("Title phải lấy dòng đầu không rỗng, nhận %q", notes[0].Title)
	}

	noteId := notes[0].Id
	if _, err := mgr.UpdateContactNote(ctx, "c1", noteId, &crmdto.CrmNoteUpdateInput{Body: "Tiêu đề mới"}); err != nil {
		t.Fatalf("UpdateContactNote lỗi: %v", err)
	}
	if got := store.vendors[vendor.ID.Hex()].Contacts[0].Notes[0].Title; got != "Tiêu đề mới" {
		t.Errorf("Title phải suy ra lại, nhận %q", got)
	}

	if _, err := mgr.UpdateContactNote(ctx, "c1", "note-la", &crmdto.CrmNoteUpdateInput{Body: "x"}); err == nil {
		t.Error("Note id lạ phải trả lỗi")
	}

	if _, err := mgr.RemoveContactNote(ctx, "c1", noteId); err != nil {
		t.Fatalf("RemoveContactNote lỗi: %v", err)
	}
	if remaining := store.vendors[vendor.ID.Hex()].Contacts[0].Notes; len(remaining) != 0 {
		t.Errorf("Ghi chú phải bị xóa, còn %d", len(remaining))
	}
}

func TestContactNoteIdLaKhongGhiGiDo(t *testing.T) {
	vendor := makeVendor(crmmodels.CrmContact{
		Id:    "c1",
		Name:  "Một",
		Notes: []crmmodels.CrmNote{{Id: "n1", Title: "Cũ", Body: "Cũ"}},
	})
	store := newFakeContactStore(vendor)
	mgr := NewContactManager(store)
	ctx := context.Background()

	// Contact tồn tại nhưng note thì không: phải dừng TRƯỚC khi ghi —
	// không lượt WriteContacts nào, note cũ còn nguyên
	_, err := mgr.UpdateContactNote(ctx, "c1", "note-la", &crmdto.CrmNoteUpdateInput{Body: "mới"})
	if err == nil {
		t.Fatal("Update note id lạ phải trả lỗi")
	}
	var appErr *common.Error
	if !errors.As(err, &appErr) || appErr.StatusCode != common.StatusNotFound {
		t.Errorf("Lỗi phải mang status not-found, nhận %v", err)
	}

	if _, err := mgr.RemoveContactNote(ctx, "c1", "note-la"); err == nil {
		t.Fatal("Remove note id lạ phải trả lỗi")
	}

	if store.writeCalls != 0 {
		t.Errorf("Không được ghi store trên đường note-không-tồn-tại, đếm được %d lượt", store.writeCalls)
	}
	notes := store.vendors[vendor.ID.Hex()].Contacts[0].Notes
	if len(notes) != 1 || notes[0].Body != "Cũ" {
		t.Errorf("Ghi chú cũ phải còn nguyên: %+v", notes)
	}
}
