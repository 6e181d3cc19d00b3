package input

// PointerGuard 保存鼠标位置，Restore 无条件恢复。
// 用法：guard := SavePointer(); defer guard.Restore()
type PointerGuard struct {
	x, y     int
	move     func(x, y int)
	restored bool
}

// SavePointer 记录当前鼠标位置
func SavePointer() *PointerGuard {
	x, y := GetMousePosition()
	return NewPointerGuard(x, y, MoveTo)
}

// NewPointerGuard 以给定位置与移动函数创建守卫,
// 供通过抽象桌面接口操作鼠标的调用方使用
func NewPointerGuard(x, y int, move func(x, y int)) *PointerGuard {
	return &PointerGuard{x: x, y: y, move: move}
}

// Restore 恢复保存的鼠标位置，重复调用只生效一次
func (g *PointerGuard) Restore() {
	if g == nil || g.restored {
		return
	}
	g.restored = true
	g.move(g.x, g.y)
}

// Saved 返回保存的位置
func (g *PointerGuard) Saved() (x, y int) {
	return g.x, g.y
}
