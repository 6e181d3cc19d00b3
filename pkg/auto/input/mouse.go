// Package input 提供鼠标和键盘合成输入
package input

import (
	"time"

	"github.com/go-vgo/robotgo"

	"github.com/vocalpilot/vocalpilot/pkg/auto"
)

// MoveTo 移动鼠标到指定位置
func MoveTo(x, y int) {
	inputX, inputY := auto.NormalizePointForInput(x, y)
	robotgo.Move(inputX, inputY)
}

// Click 点击
func Click(button ...string) {
	btn := "left"
	if len(button) > 0 {
		btn = button[0]
	}
	robotgo.Click(btn, false)
}

// DoubleClick 双击
func DoubleClick(button ...string) {
	btn := "left"
	if len(button) > 0 {
		btn = button[0]
	}
	robotgo.Click(btn, true)
}

// ClickAt 移动到指定位置后点击
func ClickAt(x, y int) {
	MoveTo(x, y)
	time.Sleep(50 * time.Millisecond) // 确保鼠标到位
	robotgo.Click("left", false)
}

// DoubleClickAt 移动到指定位置后双击
func DoubleClickAt(x, y int) {
	MoveTo(x, y)
	time.Sleep(50 * time.Millisecond)
	robotgo.Click("left", true)
}

// GetMousePosition 获取鼠标位置（截图坐标空间）
func GetMousePosition() (x, y int) {
	inputX, inputY := robotgo.Location()
	return auto.NormalizePointForScreen(inputX, inputY)
}
