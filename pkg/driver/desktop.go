package driver

import (
	"fmt"
	"image"

	"github.com/vocalpilot/vocalpilot/internal/logger"
	"github.com/vocalpilot/vocalpilot/pkg/auto"
	"github.com/vocalpilot/vocalpilot/pkg/auto/input"
	"github.com/vocalpilot/vocalpilot/pkg/auto/window"
)

// Desktop 桌面操作抽象，测试用假实现替换
type Desktop interface {
	// FindHostProcess 按名称列表查找宿主程序进程
	FindHostProcess(names []string) (*auto.ProcessInfo, error)
	// FocusProcess 将进程的顶层窗口置前
	FocusProcess(pid int) error
	// FindWindow 查找标题含 title 的窗口, 不改变前后台
	FindWindow(title string) (*window.WindowInfo, error)
	// FocusWindow 查找标题含 title 的窗口并置前
	FocusWindow(title string) (*window.WindowInfo, error)
	// CaptureWindow 截取窗口画面, 返回图像与其屏幕区域
	CaptureWindow(pid int) (image.Image, *auto.Region, error)
	// PointerPosition 当前鼠标位置
	PointerPosition() (x, y int)
	// MovePointer 移动鼠标, 不点击
	MovePointer(x, y int)
	// Click 移动到指定位置并单击
	Click(x, y int)
	// DoubleClick 移动到指定位置并双击
	DoubleClick(x, y int)
	// SelectAll 全选当前输入框内容
	SelectAll()
	// TypeText 键入文本
	TypeText(text string)
	// Confirm 回车确认
	Confirm()
	// Sleep 等待指定毫秒
	Sleep(ms int)
}

// RobotDesktop 基于 robotgo 的真实桌面实现
type RobotDesktop struct{}

// NewRobotDesktop 创建真实桌面实现
func NewRobotDesktop() *RobotDesktop {
	return &RobotDesktop{}
}

// FindHostProcess 查找宿主程序进程, 多个命中时取第一个
func (d *RobotDesktop) FindHostProcess(names []string) (*auto.ProcessInfo, error) {
	procs, err := auto.FindProcessByNames(names)
	if err != nil {
		return nil, err
	}
	if len(procs) == 0 {
		return nil, &ProcessNotFoundError{Names: names}
	}
	logger.Debug("找到宿主程序: %s (pid=%d)", procs[0].Name, procs[0].PID)
	return &procs[0], nil
}

// FocusProcess 将宿主程序置前
func (d *RobotDesktop) FocusProcess(pid int) error {
	if err := window.BringToFront(pid); err != nil {
		return &FocusError{Title: fmt.Sprintf("pid=%d", pid), Err: err}
	}
	return nil
}

// FindWindow 查找窗口, 不改变前后台
func (d *RobotDesktop) FindWindow(title string) (*window.WindowInfo, error) {
	win, err := window.GetWindowByTitle(title)
	if err != nil {
		return nil, &WindowNotFoundError{Title: title}
	}
	return win, nil
}

// FocusWindow 查找窗口并置前
func (d *RobotDesktop) FocusWindow(title string) (*window.WindowInfo, error) {
	win, err := d.FindWindow(title)
	if err != nil {
		return nil, err
	}
	if err := window.BringToFront(win.PID); err != nil {
		return nil, &FocusError{Title: title, Err: err}
	}
	return win, nil
}

// CaptureWindow 截取窗口画面
func (d *RobotDesktop) CaptureWindow(pid int) (image.Image, *auto.Region, error) {
	return window.CaptureWindow(pid)
}

// PointerPosition 当前鼠标位置
func (d *RobotDesktop) PointerPosition() (x, y int) {
	return input.GetMousePosition()
}

// MovePointer 移动鼠标
func (d *RobotDesktop) MovePointer(x, y int) {
	input.MoveTo(x, y)
}

// Click 单击
func (d *RobotDesktop) Click(x, y int) {
	input.ClickAt(x, y)
}

// DoubleClick 双击
func (d *RobotDesktop) DoubleClick(x, y int) {
	input.DoubleClickAt(x, y)
}

// SelectAll 全选
func (d *RobotDesktop) SelectAll() {
	input.SelectAll()
}

// TypeText 键入文本
func (d *RobotDesktop) TypeText(text string) {
	input.TypeText(text)
}

// Confirm 回车确认
func (d *RobotDesktop) Confirm() {
	input.Confirm()
}

// Sleep 等待
func (d *RobotDesktop) Sleep(ms int) {
	auto.MilliSleep(ms)
}
