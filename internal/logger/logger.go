// Package logger dựng ba logger đặt tên cho console: app (vận hành),
// audit (vết thay đổi dữ liệu — mọi archive/remove/merge đều qua đây),
// error (lỗi hệ thống). File log rotate bằng lumberjack, ghi bất đồng bộ
// qua AsyncHook để đường request không chờ I/O.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	loggers   = make(map[string]*logrus.Logger)
	loggersMu sync.Mutex

	config *LogConfig

	// rootDir là gốc project, mọi đường dẫn log tương đối tính từ đây
	rootDir string
)

// Init khởi tạo hệ thống logging. cfg nil lấy DefaultConfig.
func Init(cfg *LogConfig) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	config = cfg

	if err := resolveRootDir(); err != nil {
		return fmt.Errorf("logger: không xác định được thư mục gốc: %w", err)
	}
	if err := os.MkdirAll(logDir(), 0755); err != nil {
		return fmt.Errorf("logger: không tạo được thư mục logs: %w", err)
	}
	return nil
}

// resolveRootDir xác định gốc project theo thứ tự ưu tiên:
// LOG_ROOT_DIR > vị trí binary > đi ngược từ working directory.
func resolveRootDir() error {
	if rootDir != "" {
		return nil
	}

	if env := os.Getenv("LOG_ROOT_DIR"); env != "" {
		// Chạy qua systemd thì binary thường là symlink
		if resolved, err := filepath.EvalSymlinks(env); err == nil {
			rootDir = resolved
		} else {
			rootDir = env
		}
		return nil
	}

	if executable, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(executable); err == nil {
			executable = resolved
		}
		// binary nằm ở <root>/cmd/server/<bin> — gốc là 3 cấp trên
		candidate := filepath.Dir(filepath.Dir(filepath.Dir(executable)))
		if looksLikeRoot(candidate) {
			rootDir = candidate
			return nil
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	dir := wd
	for i := 0; i < 5; i++ {
		if looksLikeRoot(dir) {
			rootDir = dir
			return nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	rootDir = wd
	return nil
}

// looksLikeRoot nhận diện gốc project qua thư mục logs hoặc config.
func looksLikeRoot(dir string) bool {
	for _, marker := range []string{"logs", "config"} {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

func logDir() string {
	if filepath.IsAbs(config.LogPath) {
		return config.LogPath
	}
	return filepath.Join(rootDir, config.LogPath)
}

// GetLogger trả về logger theo tên, tạo lần đầu nếu chưa có.
func GetLogger(name string) *logrus.Logger {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if config == nil {
		if err := Init(nil); err != nil {
			panic(fmt.Sprintf("logger: init thất bại: %v", err))
		}
	}

	if lg, ok := loggers[name]; ok {
		return lg
	}
	lg := newNamedLogger(name)
	loggers[name] = lg
	return lg
}

// newNamedLogger dựng một logger với formatter, writers và hooks theo config.
func newNamedLogger(name string) *logrus.Logger {
	lg := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	lg.SetLevel(level)
	lg.SetFormatter(buildFormatter(config.Format))
	lg.SetReportCaller(true)

	// FilterHook phải đứng trước AsyncHook: đánh dấu entry bị loại
	// trước khi entry vào queue ghi
	lg.AddHook(NewFilterHook(config))

	if writers := buildWriters(name); len(writers) > 0 {
		lg.AddHook(NewAsyncHook(writers, 0))
		// Hook lo toàn bộ việc ghi; output mặc định phải discard,
		// không thì mỗi dòng log ra hai lần
		lg.SetOutput(io.Discard)
	}

	lg.WithFields(logrus.Fields{
		"log_file": logFilePath(name),
		"level":    lg.GetLevel().String(),
		"format":   config.Format,
		"output":   config.Output,
	}).Info("Logger sẵn sàng")

	return lg
}

// buildFormatter chọn formatter theo config: json cho môi trường chạy thật,
// text cho development.
func buildFormatter(format string) logrus.Formatter {
	if format == "json" {
		return &logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
				logrus.FieldKeyFunc:  "function",
				logrus.FieldKeyFile:  "file",
			},
		}
	}
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			parts := strings.Split(f.Function, ".")
			return parts[len(parts)-1], fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
		},
	}
}

// buildWriters dựng danh sách writers theo config.Output.
// File writer bọc lumberjack để rotate theo dung lượng và tuổi file.
func buildWriters(name string) []io.Writer {
	var writers []io.Writer
	if config.Output == "file" || config.Output == "both" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   logFilePath(name),
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		})
	}
	if config.Output == "stdout" || config.Output == "both" {
		writers = append(writers, os.Stdout)
	}
	return writers
}

func logFilePath(name string) string {
	var filename string
	switch name {
	case "app":
		filename = config.AppFile
	case "audit":
		filename = config.AuditFile
	case "error":
		filename = config.ErrorFile
	default:
		filename = fmt.Sprintf("%s.log", name)
	}
	return filepath.Join(logDir(), filename)
}

// GetAppLogger trả về logger vận hành chính.
func GetAppLogger() *logrus.Logger {
	return GetLogger("app")
}

// GetAuditLogger trả về logger ghi vết thay đổi dữ liệu.
func GetAuditLogger() *logrus.Logger {
	return GetLogger("audit")
}

// GetErrorLogger trả về logger lỗi hệ thống.
func GetErrorLogger() *logrus.Logger {
	return GetLogger("error")
}
