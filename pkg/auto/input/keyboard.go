package input

import (
	"runtime"

	"github.com/go-vgo/robotgo"
)

// TypeText 输入文字
func TypeText(text string) {
	robotgo.TypeStr(text)
}

// KeyTap 按键
func KeyTap(key string, modifiers ...string) {
	if len(modifiers) > 0 {
		robotgo.KeyTap(key, modifiers)
	} else {
		robotgo.KeyTap(key)
	}
}

// HotKey 组合键，最后一个为主键，其余为修饰键
func HotKey(keys ...string) {
	if len(keys) == 0 {
		return
	}
	if len(keys) == 1 {
		robotgo.KeyTap(keys[0])
		return
	}
	robotgo.KeyTap(keys[len(keys)-1], keys[:len(keys)-1])
}

// SelectAll 全选（macOS 使用 cmd，其余平台 ctrl）
func SelectAll() {
	if runtime.GOOS == "darwin" {
		robotgo.KeyTap("a", "cmd")
	} else {
		robotgo.KeyTap("a", "ctrl")
	}
}

// Confirm 确认输入（回车）
func Confirm() {
	robotgo.KeyTap("enter")
}
