// Package auto 提供 UI 自动化的共享类型和工具函数。
// 具体功能分布在子包中：screen, input, window。
package auto

import (
	"math"
	"time"

	"github.com/go-vgo/robotgo"
)

// Point 表示二维坐标点
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Region 表示矩形区域
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains 判断点是否在区域内
func (r Region) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Sleep 休眠
func Sleep(d time.Duration) {
	time.Sleep(d)
}

// MilliSleep 毫秒休眠
func MilliSleep(ms int) {
	robotgo.MilliSleep(ms)
}

// ScaleCoord 按比例缩放坐标值
func ScaleCoord(value int, scale float64) int {
	if scale <= 0 {
		return value
	}
	return int(math.Round(float64(value) / scale))
}

// DefaultPollInterval 自动检测的默认轮询间隔
const DefaultPollInterval = 2 * time.Second
