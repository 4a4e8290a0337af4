package logger

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
)

// syncBuffer bọc bytes.Buffer cho goroutine ghi của hook dùng an toàn.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newHookLogger(buf *syncBuffer) (*logrus.Logger, *AsyncHook) {
	lg := logrus.New()
	lg.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	lg.SetOutput(io.Discard)
	hook := NewAsyncHook([]io.Writer{buf}, 10)
	lg.AddHook(hook)
	return lg, hook
}

func TestAsyncHookGhiSauKhiClose(t *testing.T) {
	buf := &syncBuffer{}
	lg, hook := newHookLogger(buf)

	lg.Info("dòng thứ nhất")
	lg.Info("dòng thứ hai")

	// Close đợi goroutine ghi nốt entries còn đọng
	if err := hook.Close(); err != nil {
		t.Fatalf("Close lỗi: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "dòng thứ nhất") || !strings.Contains(out, "dòng thứ hai") {
		t.Errorf("Entries phải được ghi hết trước khi Close trả về: %q", out)
	}
	if hook.Dropped() != 0 {
		t.Errorf("Không entry nào bị bỏ, đếm được %d", hook.Dropped())
	}
}

func TestAsyncHookBoQuaEntryBiDanhDau(t *testing.T) {
	buf := &syncBuffer{}
	lg, hook := newHookLogger(buf)

	lg.WithField(filteredField, true).Info("entry bị lọc")
	lg.Info("entry thường")
	hook.Close()

	out := buf.String()
	if strings.Contains(out, "entry bị lọc") {
		t.Errorf("Entry đánh dấu %s phải bị bỏ qua: %q", filteredField, out)
	}
	if !strings.Contains(out, "entry thường") {
		t.Errorf("Entry thường vẫn phải được ghi: %q", out)
	}
	// Dấu nội bộ không được lọt ra file log
	if strings.Contains(out, filteredField) {
		t.Errorf("Field %s không được xuất hiện trong log: %q", filteredField, out)
	}
}

func TestFilterHookDanhDauTheoLogType(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FilterLogTypes = "error"
	hook := NewFilterHook(cfg)

	lg := logrus.New()
	info := &logrus.Entry{Logger: lg, Level: logrus.InfoLevel, Data: logrus.Fields{}}
	if err := hook.Fire(info); err != nil {
		t.Fatalf("Fire lỗi: %v", err)
	}
	if marked, _ := info.Data[filteredField].(bool); !marked {
		t.Error("Level ngoài danh sách cho phép phải bị đánh dấu")
	}

	errEntry := &logrus.Entry{Logger: lg, Level: logrus.ErrorLevel, Data: logrus.Fields{}}
	if err := hook.Fire(errEntry); err != nil {
		t.Fatalf("Fire lỗi: %v", err)
	}
	if _, marked := errEntry.Data[filteredField]; marked {
		t.Error("Level được cho phép không được đánh dấu")
	}
}
