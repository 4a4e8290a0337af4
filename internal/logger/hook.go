package logger

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// filteredField là field nội bộ mà FilterHook gắn lên entry bị loại.
// AsyncHook đọc field này để bỏ qua entry, và gỡ nó trước khi format —
// field chỉ là dấu truyền giữa hai hook, không bao giờ ra file log.
const filteredField = "_filtered"

// AsyncHook ghi log qua channel + goroutine riêng để Fire không block
// request handling. Channel đầy thì entry bị bỏ (đếm vào dropped) thay vì
// chờ — thà mất log còn hơn chậm request. Audit ghi thay đổi dữ liệu qua
// hook này nên dropped > 0 nghĩa là audit trail có lỗ hổng, Close báo ra
// stderr để operator biết.
type AsyncHook struct {
	writers []io.Writer
	entries chan *logrus.Entry
	dropped atomic.Uint64
	wg      sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewAsyncHook tạo hook ghi bất đồng bộ vào danh sách writers.
// bufferSize <= 0 lấy mặc định 1000 entries.
func NewAsyncHook(writers []io.Writer, bufferSize int) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	hook := &AsyncHook{
		writers: writers,
		entries: make(chan *logrus.Entry, bufferSize),
	}
	hook.wg.Add(1)
	go hook.drain()
	return hook
}

func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đưa entry vào channel, không bao giờ block.
// Hook đã đóng thì ghi thẳng vào writers (đường tắt cho log lúc shutdown).
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()

	if closed {
		h.emit(entry)
		return nil
	}

	select {
	case h.entries <- entry:
	default:
		// Channel đầy. Không được log warning ở đây — sẽ tạo vòng lặp
		// Fire gọi Fire — nên chỉ đếm, Close sẽ báo tổng.
		h.dropped.Add(1)
	}
	return nil
}

// Dropped trả về số entry đã bị bỏ vì channel đầy.
func (h *AsyncHook) Dropped() uint64 {
	return h.dropped.Load()
}

// drain tiêu thụ channel trong goroutine riêng cho tới khi Close.
// Có recover: một entry làm panic (formatter hỏng, writer hỏng) không
// được kéo sập server, chỉ mất đúng entry đó.
func (h *AsyncHook) drain() {
	defer h.wg.Done()
	for entry := range h.entries {
		func() {
			defer func() {
				if r := recover(); r != nil {
					fmt.Fprintf(os.Stderr, "logger: drain panic recovered: %v\n", r)
					debug.PrintStack()
				}
			}()
			h.emit(entry)
		}()
	}
}

// emit format một entry và ghi vào tất cả writers.
// Entry bị FilterHook đánh dấu thì bỏ qua.
func (h *AsyncHook) emit(entry *logrus.Entry) {
	if filtered, ok := entry.Data[filteredField].(bool); ok && filtered {
		return
	}
	if _, ok := entry.Data[filteredField]; ok {
		entry = entry.Dup()
		delete(entry.Data, filteredField)
	}

	data, err := formatEntry(entry)
	if err != nil {
		return
	}
	for _, writer := range h.writers {
		// Writer lỗi thì kệ writer đó, vẫn ghi các writer còn lại —
		// không log được lỗi ở đây vì lại tạo vòng lặp
		_, _ = writer.Write(data)
	}
}

// formatEntry dùng formatter của logger gắn với entry, fallback String().
func formatEntry(entry *logrus.Entry) ([]byte, error) {
	if entry.Logger != nil && entry.Logger.Formatter != nil {
		return entry.Logger.Formatter.Format(entry)
	}
	line, err := entry.String()
	if err != nil {
		return nil, err
	}
	return []byte(line), nil
}

// Close đóng channel và đợi goroutine ghi nốt các entry còn đọng.
// Gọi nhiều lần an toàn.
func (h *AsyncHook) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	h.mu.Unlock()

	close(h.entries)
	h.wg.Wait()

	if n := h.dropped.Load(); n > 0 {
		fmt.Fprintf(os.Stderr, "logger: %d entries dropped (channel đầy)\n", n)
	}
	return nil
}
