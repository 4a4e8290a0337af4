package basesvc

import "testing"

func TestBuildPatchUpdateBaTrangThai(t *testing.T) {
	// Giá trị -> $set; chuỗi rỗng hoặc nil -> $unset
	patch := map[string]interface{}{
		"name":    "Công ty A",
		"phone":   "",
		"company": nil,
		"source":  "referral",
	}

	update := BuildPatchUpdate(patch)

	if update.Set["name"] != "Công ty A" || update.Set["source"] != "referral" {
		t.Errorf("$set thiếu field có giá trị: %+v", update.Set)
	}
	if _, ok := update.Unset["phone"]; !ok {
		t.Errorf("Chuỗi rỗng phải thành $unset: %+v", update.Unset)
	}
	if _, ok := update.Unset["company"]; !ok {
		t.Errorf("Nil phải thành $unset: %+v", update.Unset)
	}

	// Field không có trong payload thì không xuất hiện ở đâu cả
	if _, ok := update.Set["email"]; ok {
		t.Error("Field vắng mặt không được vào $set")
	}
	if _, ok := update.Unset["email"]; ok {
		t.Error("Field vắng mặt không được vào $unset")
	}
}

func TestBuildPatchUpdateBaoVeFieldHeThong(t *testing.T) {
	patch := map[string]interface{}{
		"_id":       "abc",
		"createdAt": int64(123),
		"updatedAt": int64(456),
		"name":      "X",
	}

	update := BuildPatchUpdate(patch)

	for _, key := range []string{"_id", "createdAt", "updatedAt"} {
		if _, ok := update.Set[key]; ok {
			t.Errorf("Field %s không được patch", key)
		}
	}
	if update.Set["name"] != "X" {
		t.Errorf("Field thường vẫn phải patch được: %+v", update.Set)
	}
}

func TestBuildPatchUpdateRong(t *testing.T) {
	update := BuildPatchUpdate(map[string]interface{}{})
	if len(update.Set) != 0 || len(update.Unset) != 0 {
		t.Errorf("Patch rỗng phải sinh update rỗng: %+v", update)
	}
}
