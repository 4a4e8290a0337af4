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

func makeAccount(name, email string) crmmodels.CrmAccount {
	return crmmodels.CrmAccount{
		ID:    primitive.NewObjectID(),
		Kind:  crmmodels.AccountKindCustomer,
		Name:  name,
		Email: email,
	}
}

func TestComputeMergeScalarGiuGiaTriRoot(t *testing.T) {
	root := makeAccount("Công ty A", "a@example.com")
	root.Phone = "" // root để trống phone
	donor := makeAccount("Công ty A chi nhánh", "a@example.com")
	donor.Phone = "0901234567"

	result := ComputeMerge(root, []crmmodels.CrmAccount{donor}, nil, nil)

	if result.Name != root.Name {
		t.Errorf("Name phải giữ của root, nhận %q", result.Name)
	}
	// Root trống không có nghĩa là lấy của donor
	if result.Phone != "" {
		t.Errorf("Phone trống của root không được tự thay bằng của donor, nhận %q", result.Phone)
	}
}

func TestComputeMergeScalarTheoFieldChoices(t *testing.T) {
	root := makeAccount("Công ty A", "a@example.com")
	donor := makeAccount("Công ty A mới", "a@example.com")

	choices := map[string]string{MergeFieldName: donor.Name}
	result := ComputeMerge(root, []crmmodels.CrmAccount{donor}, choices, nil)

	if result.Name != donor.Name {
		t.Errorf("Name phải theo fieldChoices, nhận %q", result.Name)
	}
	if result.Email != root.Email {
		t.Errorf("Email không có trong fieldChoices phải giữ của root, nhận %q", result.Email)
	}
}

func TestComputeMergeUnionNotesRootTruoc(t *testing.T) {
	root := makeAccount("A", "a@example.com")
	root.Notes = []crmmodels.CrmNote{
		{Id: "n1", Body: "ghi chú của root"},
	}
	donor := makeAccount("A", "a@example.com")
	donor.Notes = []crmmodels.CrmNote{
		{Id: "n1", Body: "bản trùng id từ donor"},
		{Id: "n2", Body: "ghi chú riêng của donor"},
	}

	result := ComputeMerge(root, []crmmodels.CrmAccount{donor}, nil, nil)

	if len(result.Notes) != 2 {
		t.Fatalf("Union phải ra 2 ghi chú, nhận %d", len(result.Notes))
	}
	if result.Notes[0].Id != "n1" || result.Notes[0].Body != "ghi chú của root" {
		t.Errorf("Trùng id phải lấy bản của root, nhận %+v", result.Notes[0])
	}
	if result.Notes[1].Id != "n2" {
		t.Errorf("Ghi chú riêng của donor phải có mặt, nhận %+v", result.Notes[1])
	}
}

func TestComputeMergeInclusionSets(t *testing.T) {
	root := makeAccount("A", "a@example.com")
	root.Emails = []crmmodels.CrmEmail{{Id: "e1", Address: "mot@example.com"}}
	donor := makeAccount("A", "a@example.com")
	donor.Emails = []crmmodels.CrmEmail{{Id: "e2", Address: "hai@example.com"}}

	inclusion := map[string][]string{"emails": {"e2"}}
	result := ComputeMerge(root, []crmmodels.CrmAccount{donor}, nil, inclusion)

	if len(result.Emails) != 1 || result.Emails[0].Id != "e2" {
		t.Errorf("inclusionSets phải lọc chỉ còn e2, nhận %+v", result.Emails)
	}

	// Vắng inclusionSets = giữ tất cả
	all := ComputeMerge(root, []crmmodels.CrmAccount{donor}, nil, nil)
	if len(all.Emails) != 2 {
		t.Errorf("Không có inclusionSets phải giữ cả 2 email, nhận %d", len(all.Emails))
	}

	// Set rỗng tường minh = operator bỏ hết — kết quả không còn email nào
	none := ComputeMerge(root, []crmmodels.CrmAccount{donor}, nil,
		map[string][]string{"emails": {}})
	if len(none.Emails) != 0 {
		t.Errorf("inclusionSets rỗng phải bỏ hết email, nhận %+v", none.Emails)
	}
}

func TestComputeMergeTagsUnion(t *testing.T) {
	root := makeAccount("A", "a@example.com")
	root.Tags = []string{"vip", "hn"}
	donor1 := makeAccount("A", "a@example.com")
	donor1.Tags = []string{"hn", "moi"}
	donor2 := makeAccount("A", "a@example.com")
	donor2.Tags = []string{"vip"}

	result := ComputeMerge(root, []crmmodels.CrmAccount{donor1, donor2}, nil, nil)

	want := []string{"vip", "hn", "moi"}
	if len(result.Tags) != len(want) {
		t.Fatalf("Tags union sai, muốn %v nhận %v", want, result.Tags)
	}
	for i, tag := range want {
		if result.Tags[i] != tag {
			t.Errorf("Tags[%d] muốn %q nhận %q", i, tag, result.Tags[i])
		}
	}
}

func TestComputeMergePure(t *testing.T) {
	root := makeAccount("A", "a@example.com")
	root.Notes = []crmmodels.CrmNote{{Id: "n1", Body: "x"}}
	donor := makeAccount("A", "a@example.com")
	donor.Notes = []crmmodels.CrmNote{{Id: "n2", Body: "y"}}
	donors := []crmmodels.CrmAccount{donor}

	first := ComputeMerge(root, donors, nil, nil)
	second := ComputeMerge(root, donors, nil, nil)

	if len(first.Notes) != len(second.Notes) {
		t.Errorf("Hai lần tính phải cho cùng kết quả: %d vs %d", len(first.Notes), len(second.Notes))
	}
	if len(root.Notes) != 1 {
		t.Errorf("Input không được bị sửa, root.Notes còn %d phần tử", len(root.Notes))
	}
}

func TestDistinctFieldValues(t *testing.T) {
	root := makeAccount("A", "chung@example.com")
	donor1 := makeAccount("B", "chung@example.com")
	donor2 := makeAccount("A", "")

	values := DistinctFieldValues(root, []crmmodels.CrmAccount{donor1, donor2})

	names := values[MergeFieldName]
	if len(names) != 2 || names[0] != "A" || names[1] != "B" {
		t.Errorf("Name phải ra [A B] (root trước, loại trùng), nhận %v", names)
	}
	emails := values[MergeFieldEmail]
	if len(emails) != 1 {
		t.Errorf("Email trống phải bị bỏ, giá trị trùng gộp lại, nhận %v", emails)
	}
}

// ====================================
// Commit coordinator với store giả
// ====================================

type fakeMergeStore struct {
	replaced   []primitive.ObjectID
	inserted   []crmmodels.CrmAccount
	removed    []primitive.ObjectID
	failRemove map[string]error // id hex -> lỗi muốn trả
}

func newFakeMergeStore() *fakeMergeStore {
	return &fakeMergeStore{failRemove: map[string]error{}}
}

func (f *fakeMergeStore) MergeReplace(_ context.Context, id primitive.ObjectID, acc crmmodels.CrmAccount) (crmmodels.CrmAccount, error) {
	f.replaced = append(f.replaced, id)
	acc.ID = id
	return acc, nil
}

func (f *fakeMergeStore) MergeInsert(_ context.Context, acc crmmodels.CrmAccount) (crmmodels.CrmAccount, error) {
	acc.ID = primitive.NewObjectID()
	f.inserted = append(f.inserted, acc)
	return acc, nil
}

func (f *fakeMergeStore) MergeRemove(_ context.Context, id primitive.ObjectID) error {
	if err, ok := f.failRemove[id.Hex()]; ok {
		return err
	}
	f.removed = append(f.removed, id)
	return nil
}

func TestCommitTuChoiKhiKhongCoDonor(t *testing.T) {
	store := newFakeMergeStore()
	coord := NewMergeCoordinator(store)
	root := makeAccount("A", "a@example.com")

	_, err := coord.Commit(context.Background(), crmdto.MergeStrategyAbsorb, root, nil, nil, nil)
	if err == nil {
		t.Fatal("Commit không donor phải bị từ chối")
	}
	var appErr *common.Error
	if !errors.As(err, &appErr) || appErr.Code.Code != common.ErrCodeConflict.Code {
		t.Errorf("Lỗi phải mang mã %s, nhận %v", common.ErrCodeConflict.Code, err)
	}
	if len(store.replaced)+len(store.inserted)+len(store.removed) != 0 {
		t.Error("Từ chối trước khi ghi — store phải còn nguyên")
	}
}

func TestCommitAbsorbGhiRootRoiXoaDonor(t *testing.T) {
	store := newFakeMergeStore()
	coord := NewMergeCoordinator(store)
	root := makeAccount("A", "a@example.com")
	donor1 := makeAccount("A", "a@example.com")
	donor2 := makeAccount("A", "a@example.com")

	target, err := coord.Commit(context.Background(), crmdto.MergeStrategyAbsorb,
		root, []crmmodels.CrmAccount{donor1, donor2}, nil, nil)
	if err != nil {
		t.Fatalf("Commit absorb lỗi: %v", err)
	}
	if target.ID != root.ID {
		t.Errorf("Absorb phải giữ id của root, nhận %s", target.ID.Hex())
	}
	if len(store.replaced) != 1 || store.replaced[0] != root.ID {
		t.Errorf("Phải ghi đè đúng root, nhận %v", store.replaced)
	}
	if len(store.removed) != 2 {
		t.Errorf("Phải xóa mềm 2 donor, nhận %d", len(store.removed))
	}
}

func TestCommitCreateNewXoaCaRoot(t *testing.T) {
	store := newFakeMergeStore()
	coord := NewMergeCoordinator(store)
	root := makeAccount("A", "a@example.com")
	donor := makeAccount("A", "a@example.com")

	target, err := coord.Commit(context.Background(), crmdto.MergeStrategyCreateNew,
		root, []crmmodels.CrmAccount{donor}, nil, nil)
	if err != nil {
		t.Fatalf("Commit create_new lỗi: %v", err)
	}
	if target.ID == root.ID {
		t.Error("create_new phải cấp id mới cho bản ghi đích")
	}
	if len(store.removed) != 2 {
		t.Fatalf("Phải xóa mềm cả root lẫn donor, nhận %d", len(store.removed))
	}
	if store.removed[0] != root.ID {
		t.Error("Root phải bị xóa mềm trước donor")
	}
}

func TestCommitDutGiuaChungBaoPartialCommit(t *testing.T) {
	store := newFakeMergeStore()
	coord := NewMergeCoordinator(store)
	root := makeAccount("A", "a@example.com")
	donor1 := makeAccount("A", "a@example.com")
	donor2 := makeAccount("A", "a@example.com")
	donor3 := makeAccount("A", "a@example.com")
	store.failRemove[donor2.ID.Hex()] = errors.New("mất kết nối")

	_, err := coord.Commit(context.Background(), crmdto.MergeStrategyAbsorb,
		root, []crmmodels.CrmAccount{donor1, donor2, donor3}, nil, nil)
	if err == nil {
		t.Fatal("Đứt giữa chừng phải trả lỗi")
	}

	var appErr *common.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("Lỗi phải là *common.Error, nhận %T", err)
	}
	if appErr.Code.Code != common.ErrCodeMergePartialCommit.Code {
		t.Fatalf("Mã lỗi muốn %s nhận %s", common.ErrCodeMergePartialCommit.Code, appErr.Code.Code)
	}

	details, ok := appErr.Details.(crmdto.PartialCommitDetails)
	if !ok {
		t.Fatalf("Details phải là PartialCommitDetails, nhận %T", appErr.Details)
	}
	if len(details.RemovedIds) != 1 || details.RemovedIds[0] != donor1.ID.Hex() {
		t.Errorf("RemovedIds muốn [%s] nhận %v", donor1.ID.Hex(), details.RemovedIds)
	}
	// Donor gây lỗi và donor chưa xử lý đều nằm trong pending
	if len(details.PendingIds) != 2 {
		t.Errorf("PendingIds phải có donor2 và donor3, nhận %v", details.PendingIds)
	}
	if details.TargetId != root.ID.Hex() {
		t.Errorf("TargetId phải là root đã ghi xong, nhận %s", details.TargetId)
	}

	// Không rollback: bản ghi đích đã ghi vẫn nằm đó
	if len(store.replaced) != 1 {
		t.Error("Root đã ghi đè không được hoàn tác")
	}
}
