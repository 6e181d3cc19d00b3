package driver

import "fmt"

// ProcessNotFoundError 未找到宿主程序进程
type ProcessNotFoundError struct {
	Names []string
}

func (e *ProcessNotFoundError) Error() string {
	return fmt.Sprintf("未找到宿主程序进程 %v, 请先打开宿主程序", e.Names)
}

// WindowNotFoundError 未找到目标窗口
type WindowNotFoundError struct {
	Title string
}

func (e *WindowNotFoundError) Error() string {
	return fmt.Sprintf("未找到窗口 %q, 请确认插件界面已打开", e.Title)
}

// FocusError 窗口激活失败
type FocusError struct {
	Title string
	Err   error
}

func (e *FocusError) Error() string {
	return fmt.Sprintf("激活窗口 %q 失败: %v", e.Title, e.Err)
}

func (e *FocusError) Unwrap() error { return e.Err }

// InteractionError 交互序列中某一步失败。
// Step 为失败步骤名称，状态存储不会被更新。
type InteractionError struct {
	Control string
	Step    string
	Err     error
}

func (e *InteractionError) Error() string {
	return fmt.Sprintf("控件 %s 交互失败于 %s: %v", e.Control, e.Step, e.Err)
}

func (e *InteractionError) Unwrap() error { return e.Err }
