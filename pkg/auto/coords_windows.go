//go:build windows

package auto

import (
	"math"
	"sync"
	"syscall"

	"github.com/go-vgo/robotgo"
)

// Windows 上存在两个坐标空间：截图返回物理像素，而 robotgo 的输入函数
// 在不同 DPI 感知级别下可能使用逻辑坐标。这里不做假设，初始化时用
// 截图尺寸与 robotgo.GetScreenSize() 的比值探测换算系数：
//
//	coordScale = 截图像素尺寸 / 输入坐标空间尺寸
//
// NormalizePointForInput:  截图坐标 → 输入坐标 (÷ coordScale)
// NormalizePointForScreen: 输入坐标 → 截图坐标 (× coordScale)

var (
	coordMu      sync.Mutex
	coordScaleX  float64
	coordScaleY  float64
	coordsProbed bool
)

var (
	user32          = syscall.NewLazyDLL("user32.dll")
	gdi32           = syscall.NewLazyDLL("gdi32.dll")
	procGetDC       = user32.NewProc("GetDC")
	procReleaseDC   = user32.NewProc("ReleaseDC")
	procDeviceCaps  = gdi32.NewProc("GetDeviceCaps")
	cachedDPIScale  float64
	dpiScaleProbedM sync.Once
)

const logPixelsX = 88

// GetDPIScale 获取 Windows DPI 缩放比例 (1.0/1.25/1.5/2.0)
func GetDPIScale() float64 {
	dpiScaleProbedM.Do(func() {
		cachedDPIScale = 1.0
		hdc, _, _ := procGetDC.Call(0)
		if hdc == 0 {
			return
		}
		defer procReleaseDC.Call(0, hdc)
		dpi, _, _ := procDeviceCaps.Call(hdc, logPixelsX)
		if dpi > 0 {
			cachedDPIScale = float64(dpi) / 96.0
		}
	})
	return cachedDPIScale
}

// probeCoordScale 探测截图像素与输入坐标的换算系数
func probeCoordScale() (float64, float64) {
	coordMu.Lock()
	defer coordMu.Unlock()

	if coordsProbed {
		return coordScaleX, coordScaleY
	}

	coordScaleX, coordScaleY = 1.0, 1.0
	coordsProbed = true

	logicalW, logicalH := robotgo.GetScreenSize()
	img, err := robotgo.CaptureImg()
	if err != nil || img == nil {
		return coordScaleX, coordScaleY
	}

	bounds := img.Bounds()
	if logicalW > 0 && bounds.Dx() > 0 {
		coordScaleX = float64(bounds.Dx()) / float64(logicalW)
	}
	if logicalH > 0 && bounds.Dy() > 0 {
		coordScaleY = float64(bounds.Dy()) / float64(logicalH)
	}
	return coordScaleX, coordScaleY
}

// NormalizePointForInput 截图坐标转 robotgo 输入坐标
func NormalizePointForInput(x, y int) (int, int) {
	sx, sy := probeCoordScale()
	return int(math.Round(float64(x) / sx)), int(math.Round(float64(y) / sy))
}

// NormalizePointForScreen robotgo 输入坐标转截图坐标
func NormalizePointForScreen(x, y int) (int, int) {
	sx, sy := probeCoordScale()
	return int(math.Round(float64(x) * sx)), int(math.Round(float64(y) * sy))
}

// NormalizeRegionForInput 截图区域转输入区域
func NormalizeRegionForInput(x, y, width, height int) (int, int, int, int) {
	sx, sy := probeCoordScale()
	return int(math.Round(float64(x) / sx)), int(math.Round(float64(y) / sy)),
		int(math.Round(float64(width) / sx)), int(math.Round(float64(height) / sy))
}

// NormalizeRegionForScreen 输入区域转截图区域
func NormalizeRegionForScreen(x, y, width, height int) (int, int, int, int) {
	sx, sy := probeCoordScale()
	return int(math.Round(float64(x) * sx)), int(math.Round(float64(y) * sy)),
		int(math.Round(float64(width) * sx)), int(math.Round(float64(height) * sy))
}

// GetPhysicalScreenSize 获取物理屏幕尺寸（与截图分辨率一致）
func GetPhysicalScreenSize() (width, height int) {
	w, h := robotgo.GetScreenSize()
	return NormalizePointForScreen(w, h)
}

// ResetCoordinateScaleCache 清除坐标换算缓存（显示器配置变化后调用）
func ResetCoordinateScaleCache() {
	coordMu.Lock()
	defer coordMu.Unlock()
	coordsProbed = false
}
