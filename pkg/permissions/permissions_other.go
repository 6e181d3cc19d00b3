//go:build !darwin

// Package permissions 提供系统权限检查
package permissions

// Status 权限状态
type Status struct {
	Accessibility   bool `json:"accessibility"`
	ScreenRecording bool `json:"screen_recording"`
}

// AllGranted 是否全部授权
func (s *Status) AllGranted() bool {
	return s.Accessibility && s.ScreenRecording
}

// Check 检查所需权限（非 macOS 系统无需特殊权限）
func Check() *Status {
	return &Status{
		Accessibility:   true,
		ScreenRecording: true,
	}
}

// RequestAccessibility 请求辅助功能权限
func RequestAccessibility() bool {
	return true
}

// Instructions 权限缺失时的操作指引
func Instructions(s *Status) string {
	return ""
}
