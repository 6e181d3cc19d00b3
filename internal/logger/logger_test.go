package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newFileLogger 创建只写文件的 logger, 返回日志文件路径
func newFileLogger(t *testing.T, level Level) (*Logger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")
	l := New()
	l.SetConsole(false)
	l.SetLevel(level)
	if err := l.SetFile(true, path); err != nil {
		t.Fatalf("打开日志文件失败: %v", err)
	}
	return l, path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}
	return string(data)
}

func TestLogEventSuccessLevel(t *testing.T) {
	// 级别设为 SUCCESS 时 INFO 被过滤, 成功事件仍须输出
	l, path := newFileLogger(t, SUCCESS)
	defer l.Close()

	l.Info("普通信息")
	l.LogEvent("SET", true, 12.3, "volume = -3.5")

	out := readLog(t, path)
	if strings.Contains(out, "普通信息") {
		t.Errorf("SUCCESS 级别下不应输出 INFO 日志: %q", out)
	}
	if !strings.Contains(out, "SET") || !strings.Contains(out, "OK") {
		t.Errorf("成功事件未以 SUCCESS 级别输出: %q", out)
	}
	if !strings.Contains(out, "volume = -3.5") {
		t.Errorf("事件详情缺失: %q", out)
	}
}

func TestLogEventFailureLevel(t *testing.T) {
	l, path := newFileLogger(t, ERROR)
	defer l.Close()

	l.LogEvent("SET", true, 1.0, "成功事件")
	l.LogEvent("SET", false, 2.0, "失败事件")

	out := readLog(t, path)
	if strings.Contains(out, "成功事件") {
		t.Errorf("ERROR 级别下不应输出成功事件: %q", out)
	}
	if !strings.Contains(out, "NG") || !strings.Contains(out, "失败事件") {
		t.Errorf("失败事件应以 ERROR 级别输出: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"success", SUCCESS},
		{"ok", SUCCESS},
		{"warning", WARN},
		{"error", ERROR},
		{"未知", INFO},
	}
	for _, c := range cases {
		if got := ParseLevel(c.in); got != c.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
