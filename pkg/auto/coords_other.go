//go:build !windows

package auto

import "github.com/go-vgo/robotgo"

// 非 Windows 平台截图像素与输入坐标同空间（macOS Retina 由 robotgo 处理）。

// NormalizePointForInput 截图坐标转输入坐标
func NormalizePointForInput(x, y int) (int, int) {
	return x, y
}

// NormalizePointForScreen 输入坐标转截图坐标
func NormalizePointForScreen(x, y int) (int, int) {
	return x, y
}

// NormalizeRegionForInput 截图区域转输入区域
func NormalizeRegionForInput(x, y, width, height int) (int, int, int, int) {
	return x, y, width, height
}

// NormalizeRegionForScreen 输入区域转截图区域
func NormalizeRegionForScreen(x, y, width, height int) (int, int, int, int) {
	return x, y, width, height
}

// GetDPIScale 非 Windows 平台返回 1.0
func GetDPIScale() float64 {
	return 1.0
}

// GetPhysicalScreenSize 获取物理屏幕尺寸
func GetPhysicalScreenSize() (width, height int) {
	return robotgo.GetScreenSize()
}

// ResetCoordinateScaleCache 非 Windows 平台无操作
func ResetCoordinateScaleCache() {}
