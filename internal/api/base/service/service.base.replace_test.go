package basesvc

import "testing"

type replaceDoc struct {
	Name  string   `bson:"name,omitempty"`
	Phone string   `bson:"phone,omitempty"`
	Notes []string `bson:"notes,omitempty"`
}

func TestReplacementDocumentFieldRongPhaiBienMat(t *testing.T) {
	// Kết quả merge có thể tính ra field rỗng (vd operator bỏ hết notes).
	// Document thay thế phải VẮNG key đó để giá trị cũ không sống sót.
	data := replaceDoc{Name: "Công ty A"}

	doc, err := replacementDocument(data, int64(1000), int64(2000))
	if err != nil {
		t.Fatalf("replacementDocument lỗi: %v", err)
	}

	if _, ok := doc["phone"]; ok {
		t.Errorf("Field phone rỗng phải vắng mặt khỏi document thay thế: %+v", doc)
	}
	if _, ok := doc["notes"]; ok {
		t.Errorf("Field notes rỗng phải vắng mặt khỏi document thay thế: %+v", doc)
	}
	if doc["name"] != "Công ty A" {
		t.Errorf("Field có giá trị phải giữ nguyên: %+v", doc)
	}
}

func TestReplacementDocumentKhongPhaiUpdateOperator(t *testing.T) {
	doc, err := replacementDocument(replaceDoc{Name: "X"}, int64(1000), int64(2000))
	if err != nil {
		t.Fatalf("replacementDocument lỗi: %v", err)
	}

	// Document đưa vào ReplaceOne là document thuần, không bọc operator
	for _, op := range []string{"$set", "$unset"} {
		if _, ok := doc[op]; ok {
			t.Errorf("Document thay thế không được chứa operator %s: %+v", op, doc)
		}
	}
}

func TestReplacementDocumentGiuCreatedAtDongDauUpdatedAt(t *testing.T) {
	doc, err := replacementDocument(replaceDoc{Name: "X"}, int64(1000), int64(2000))
	if err != nil {
		t.Fatalf("replacementDocument lỗi: %v", err)
	}

	if _, ok := doc["_id"]; ok {
		t.Errorf("_id immutable, không được nằm trong document thay thế: %+v", doc)
	}
	if doc["createdAt"] != int64(1000) {
		t.Errorf("createdAt phải lấy từ bản ghi cũ, nhận %v", doc["createdAt"])
	}
	if doc["updatedAt"] != int64(2000) {
		t.Errorf("updatedAt phải đóng dấu mới, nhận %v", doc["updatedAt"])
	}
}
