// Package events cung cấp cơ chế event trung tâm khi dữ liệu thay đổi qua CRUD.
// Các service CRUD không cần override từng method — BaseServiceMongoImpl tự động phát event.
// Logic phản ứng (watch subscriber, audit trail, cache invalidation, ...) đăng ký
// qua OnDataChanged (toàn cục) hoặc Subscribe (theo từng collection).
package events

import (
	"context"
	"sync"
)

// OpInsert, OpUpdate, OpUpsert, OpDelete là các loại thao tác CRUD.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// DataChangeEvent mô tả sự kiện thay đổi dữ liệu.
// Document là bản ghi sau khi thay đổi (nil nếu delete).
type DataChangeEvent struct {
	CollectionName string
	Operation      string
	DocumentID     string
	Document       interface{}
}

// DataChangeHandler xử lý sự kiện thay đổi dữ liệu.
type DataChangeHandler func(ctx context.Context, e DataChangeEvent)

// subscription là một handler gắn với một collection cụ thể.
type subscription struct {
	id      uint64
	handler DataChangeHandler
}

var (
	handlers   []DataChangeHandler
	handlersMu sync.RWMutex

	subscribers   = make(map[string][]subscription)
	subscribersMu sync.RWMutex
	nextSubID     uint64
)

// OnDataChanged đăng ký handler toàn cục, nhận event của mọi collection.
// Gọi khi init (ví dụ audit-trail subscriber).
func OnDataChanged(h DataChangeHandler) {
	handlersMu.Lock()
	defer handlersMu.Unlock()
	handlers = append(handlers, h)
}

// Subscribe đăng ký handler cho một collection cụ thể.
// Trả về hàm unsubscribe; gọi hàm này để ngừng nhận event.
// Unsubscribe idempotent, gọi nhiều lần không lỗi.
func Subscribe(collectionName string, h DataChangeHandler) func() {
	subscribersMu.Lock()
	nextSubID++
	id := nextSubID
	subscribers[collectionName] = append(subscribers[collectionName], subscription{id: id, handler: h})
	subscribersMu.Unlock()

	return func() {
		subscribersMu.Lock()
		defer subscribersMu.Unlock()
		list := subscribers[collectionName]
		for i, s := range list {
			if s.id == id {
				subscribers[collectionName] = append(list[:i], list[i+1:]...)
				break
			}
		}
	}
}

// EmitDataChanged phát sự kiện. Gọi từ BaseServiceMongoImpl sau mỗi CRUD thành công.
// Mỗi handler chạy trong goroutine riêng, panic được recover để không ảnh hưởng handler khác.
func EmitDataChanged(ctx context.Context, e DataChangeEvent) {
	handlersMu.RLock()
	list := make([]DataChangeHandler, len(handlers))
	copy(list, handlers)
	handlersMu.RUnlock()

	subscribersMu.RLock()
	for _, s := range subscribers[e.CollectionName] {
		list = append(list, s.handler)
	}
	subscribersMu.RUnlock()

	for _, h := range list {
		go func(fn DataChangeHandler) {
			defer func() {
				if r := recover(); r != nil {
					// Log panic nhưng không làm sập app
					// Logger có thể chưa init khi event chạy sớm
					_ = r
				}
			}()
			fn(ctx, e)
		}(h)
	}
}
