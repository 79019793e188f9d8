package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// 未调用 InitLog 时使用默认 logger，命令行子命令也能直接打印
var logger = newLogger(os.Stdout, "scorer")

func newLogger(w io.Writer, prefix string) *log.Logger {
	l := log.New(w)
	l.SetPrefix(prefix)
	l.SetReportTimestamp(true)
	l.SetTimeFormat(time.DateTime)
	l.SetReportCaller(true)
	// 包装了一层，调用者要再往上跳一帧
	l.SetCallerOffset(1)
	return l
}

// InitLog 使用 stdout，stderr 在部分 IDE 中整屏标红
func InitLog(appName string, logLevel string) {
	logger = newLogger(os.Stdout, appName)
	logger.SetLevel(ParseLevel(logLevel))
}

// SetOutput 测试中重定向日志
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// ParseLevel 默认为 info 级别
func ParseLevel(logLevel string) log.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// SetLevel 配置热更新时调整级别
func SetLevel(logLevel string) {
	logger.SetLevel(ParseLevel(logLevel))
}

func Fatal(format string, args ...any) {
	logger.Fatalf(format, args...)
}

func Info(format string, args ...any) {
	logger.Infof(format, args...)
}

func Warn(format string, args ...any) {
	logger.Warnf(format, args...)
}

func Error(format string, args ...any) {
	logger.Errorf(format, args...)
}

func Debug(format string, args ...any) {
	logger.Debugf(format, args...)
}

// With 带上结构化字段，例如请求 ID
func With(keyvals ...any) *log.Logger {
	return logger.With(keyvals...)
}
