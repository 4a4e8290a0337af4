package crmsvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	crmmodels "ops_console/internal/api/crm/models"
)

func TestMergeKeyOfChuanHoa(t *testing.T) {
	tests := []struct {
		name string
		acc  crmmodels.CrmAccount
		want string
	}{
		{"customer theo email lowercase", crmmodels.CrmAccount{Kind: crmmodels.AccountKindCustomer, Email: "  An.Nguyen@Example.COM "}, "an.nguyen@example.com"},
		{"vendor theo name lowercase", crmmodels.CrmAccount{Kind: crmmodels.AccountKindVendor, Name: " Công Ty ABC "}, "công ty abc"},
		{"customer không email", crmmodels.CrmAccount{Kind: crmmodels.AccountKindCustomer, Name: "Có tên nhưng thiếu email"}, ""},
		{"kind lạ", crmmodels.CrmAccount{Kind: "employee", Name: "x", Email: "x@example.com"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MergeKeyOf(tt.acc); got != tt.want {
				t.Errorf("MergeKeyOf() = %q, muốn %q", got, tt.want)
			}
		})
	}
}

func customerWithEmail(email string) crmmodels.CrmAccount {
	return crmmodels.CrmAccount{
		ID:    primitive.NewObjectID(),
		Kind:  crmmodels.AccountKindCustomer,
		Name:  "Khách",
		Email: email,
	}
}

func TestToggleThietLapKhoaTuLuaChonDau(t *testing.T) {
	sel := NewMergeSelection()
	first := customerWithEmail("a@example.com")

	selected, reason := sel.Toggle(first)
	if !selected || reason != "" {
		t.Fatalf("Lựa chọn đầu phải được nhận, reason=%q", reason)
	}

	key, members := sel.Current()
	if key != "a@example.com" {
		t.Errorf("Khóa nhóm muốn a@example.com nhận %q", key)
	}
	if len(members) != 1 || members[0] != first.ID.Hex() {
		t.Errorf("Members sai: %v", members)
	}
}

func TestToggleTuChoiKhoaLech(t *testing.T) {
	sel := NewMergeSelection()
	sel.Toggle(customerWithEmail("a@example.com"))

	selected, reason := sel.Toggle(customerWithEmail("khac@example.com"))
	if selected {
		t.Fatal("Khóa lệch phải bị từ chối")
	}
	if reason != ReasonKeyMismatch {
		t.Errorf("Reason muốn %q nhận %q", ReasonKeyMismatch, reason)
	}

	// Cùng email nhưng khác kind cũng lệch
	vendor := crmmodels.CrmAccount{
		ID:   primitive.NewObjectID(),
		Kind: crmmodels.AccountKindVendor,
		Name: "a@example.com",
	}
	if selected, _ := sel.Toggle(vendor); selected {
		t.Error("Khác kind phải bị từ chối dù khóa trùng chuỗi")
	}
}

func TestToggleKhoaRongKhongBaoGioChonDuoc(t *testing.T) {
	sel := NewMergeSelection()

	selected, reason := sel.Toggle(customerWithEmail(""))
	if selected {
		t.Fatal("Bản ghi thiếu email không được chọn, kể cả làm thành viên đầu")
	}
	if reason != ReasonMissingKey {
		t.Errorf("Reason muốn %q nhận %q", ReasonMissingKey, reason)
	}

	// Email toàn khoảng trắng cũng tính là thiếu
	if selected, _ := sel.Toggle(customerWithEmail("   ")); selected {
		t.Error("Email toàn khoảng trắng phải bị từ chối")
	}

	if key, members := sel.Current(); key != "" || len(members) != 0 {
		t.Errorf("Nhóm phải còn trống, key=%q members=%v", key, members)
	}
}

func TestToggleBoChonThanhVienCuoiXoaKhoa(t *testing.T) {
	sel := NewMergeSelection()
	a := customerWithEmail("a@example.com")
	b := customerWithEmail("A@EXAMPLE.COM")

	sel.Toggle(a)
	sel.Toggle(b)

	// Bỏ chọn a — nhóm còn b, khóa giữ nguyên
	if selected, _ := sel.Toggle(a); selected {
		t.Fatal("Toggle thành viên hiện có phải là bỏ chọn")
	}
	if key, members := sel.Current(); key != "a@example.com" || len(members) != 1 {
		t.Fatalf("Còn một thành viên thì khóa phải giữ, key=%q members=%v", key, members)
	}

	// Bỏ nốt b — khóa xóa, chọn khóa khác được
	sel.Toggle(b)
	if key, members := sel.Current(); key != "" || len(members) != 0 {
		t.Fatalf("Nhóm trống phải xóa khóa, key=%q members=%v", key, members)
	}
	if selected, _ := sel.Toggle(customerWithEmail("moi@example.com")); !selected {
		t.Error("Sau khi nhóm trống, khóa mới phải chọn được")
	}
}

func TestSelectionForSessionTaiSuDung(t *testing.T) {
	defer RegistryMergeSessions.ClearAll(nil)

	first, err := SelectionForSession("phien-test-1")
	if err != nil {
		t.Fatalf("SelectionForSession lỗi: %v", err)
	}
	second, err := SelectionForSession("phien-test-1")
	if err != nil {
		t.Fatalf("SelectionForSession lần hai lỗi: %v", err)
	}
	if first != second {
		t.Error("Cùng session id phải trả về cùng một nhóm chọn")
	}

	other, _ := SelectionForSession("phien-test-2")
	if other == first {
		t.Error("Session khác nhau phải có nhóm chọn riêng")
	}
}
