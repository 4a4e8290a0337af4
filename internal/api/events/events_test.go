package events

import (
	"context"
	"testing"
	"time"
)

func TestSubscribeNhanDungCollection(t *testing.T) {
	received := make(chan DataChangeEvent, 2)
	unsubscribe := Subscribe("crm_accounts", func(ctx context.Context, e DataChangeEvent) {
		received <- e
	})
	defer unsubscribe()

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "crm_accounts",
		Operation:      OpInsert,
		DocumentID:     "abc",
	})
	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "org_tags",
		Operation:      OpInsert,
		DocumentID:     "def",
	})

	select {
	case e := <-received:
		if e.CollectionName != "crm_accounts" || e.DocumentID != "abc" {
			t.Errorf("Event không đúng: %+v", e)
		}
	case <-time.After(time.Second):
		t.Fatal("Không nhận được event của collection đã đăng ký")
	}

	select {
	case e := <-received:
		t.Errorf("Nhận nhầm event của collection khác: %+v", e)
	case <-time.After(100 * time.Millisecond):
		// Đúng: không nhận event của collection khác
	}
}

func TestUnsubscribeNgungNhanEvent(t *testing.T) {
	received := make(chan DataChangeEvent, 1)
	unsubscribe := Subscribe("email_templates", func(ctx context.Context, e DataChangeEvent) {
		received <- e
	})

	unsubscribe()
	// Gọi lần hai phải an toàn
	unsubscribe()

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "email_templates",
		Operation:      OpDelete,
		DocumentID:     "xyz",
	})

	select {
	case e := <-received:
		t.Errorf("Vẫn nhận event sau khi unsubscribe: %+v", e)
	case <-time.After(100 * time.Millisecond):
		// Đúng: đã ngừng nhận
	}
}
