// Package window 提供窗口查找、激活与截图
package window

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-vgo/robotgo"

	"github.com/vocalpilot/vocalpilot/pkg/auto"
	"github.com/vocalpilot/vocalpilot/pkg/auto/screen"
)

// WindowInfo 窗口信息
type WindowInfo struct {
	PID    int         `json:"pid"`
	Title  string      `json:"title"`
	Bounds auto.Region `json:"bounds"`
}

// GetWindows 获取窗口列表，filter 为标题/进程名子串（不区分大小写）
func GetWindows(filter ...string) ([]WindowInfo, error) {
	pids, err := robotgo.Pids()
	if err != nil {
		return nil, fmt.Errorf("获取进程列表失败: %w", err)
	}

	filterStr := ""
	if len(filter) > 0 {
		filterStr = strings.ToLower(filter[0])
	}

	var windows []WindowInfo
	for _, pid := range pids {
		title := robotgo.GetTitle(pid)
		if title == "" {
			continue
		}

		if filterStr != "" {
			name, _ := robotgo.FindName(pid)
			if !strings.Contains(strings.ToLower(title), filterStr) &&
				!strings.Contains(strings.ToLower(name), filterStr) {
				continue
			}
		}

		x, y, w, h := robotgo.GetBounds(pid)
		x, y, w, h = auto.NormalizeRegionForScreen(x, y, w, h)

		windows = append(windows, WindowInfo{
			PID:   pid,
			Title: title,
			Bounds: auto.Region{
				X:      x,
				Y:      y,
				Width:  w,
				Height: h,
			},
		})
	}

	return windows, nil
}

// GetWindowByTitle 按标题子串查找窗口（部分匹配，返回第一个命中）
func GetWindowByTitle(title string) (*WindowInfo, error) {
	windows, err := GetWindows(title)
	if err != nil {
		return nil, err
	}

	if len(windows) == 0 {
		return nil, fmt.Errorf("未找到标题包含 %q 的窗口", title)
	}

	return &windows[0], nil
}

// BringToFront 将窗口置于前台
func BringToFront(pid int) error {
	return robotgo.ActivePid(pid)
}

// CaptureWindow 截取窗口区域
func CaptureWindow(pid int) (image.Image, *auto.Region, error) {
	x, y, w, h := robotgo.GetBounds(pid)
	x, y, w, h = auto.NormalizeRegionForScreen(x, y, w, h)
	if w == 0 || h == 0 {
		return nil, nil, fmt.Errorf("无法获取窗口边界: PID=%d", pid)
	}

	region := &auto.Region{X: x, Y: y, Width: w, Height: h}
	img, err := screen.CaptureRegion(x, y, w, h)
	if err != nil {
		return nil, nil, err
	}
	return img, region, nil
}

// GetActiveWindowTitle 获取当前活动窗口标题
func GetActiveWindowTitle() string {
	return robotgo.GetTitle()
}
