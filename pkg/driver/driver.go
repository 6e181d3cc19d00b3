// Package driver 控件交互驱动：定位 → 点击 → 进入编辑 → 全选 →
// 键入 → 确认的完整序列，序列失败不更新状态存储。
package driver

import (
	"fmt"
	"time"

	"github.com/vocalpilot/vocalpilot/internal/logger"
	"github.com/vocalpilot/vocalpilot/pkg/auto"
	"github.com/vocalpilot/vocalpilot/pkg/auto/input"
	"github.com/vocalpilot/vocalpilot/pkg/config"
	"github.com/vocalpilot/vocalpilot/pkg/control"
)

// Pauser 交互期间暂停后台检测的协调接口。
// autodetect.Session 实现该接口。
type Pauser interface {
	PauseScoped() func()
}

type noopPauser struct{}

func (noopPauser) PauseScoped() func() { return func() {} }

// Driver 控件交互驱动
type Driver struct {
	desktop  Desktop
	locator  Locator
	registry *control.Registry
	store    *control.Store
	pauser   Pauser

	hostNames []string
	timing    config.TimingConfig

	// onChange 自动检测到外部变化时的回调
	onChange func(id string, state control.State)
}

// New 创建驱动。未设置 Pauser 时暂停为空操作。
func New(desktop Desktop, locator Locator, registry *control.Registry,
	store *control.Store, cfg *config.Config) *Driver {
	return &Driver{
		desktop:   desktop,
		locator:   locator,
		registry:  registry,
		store:     store,
		pauser:    noopPauser{},
		hostNames: cfg.Host.ProcessNames,
		timing:    cfg.Timing,
	}
}

// SetPauser 绑定自动检测会话
func (d *Driver) SetPauser(p Pauser) {
	if p != nil {
		d.pauser = p
	}
}

// SetChangeCallback 注册外部变化回调。检测操作发现控件实际状态
// 与已知状态不一致时触发。
func (d *Driver) SetChangeCallback(fn func(id string, state control.State)) {
	d.onChange = fn
}

// notifyChange 对比旧状态, 有变化时触发回调
func (d *Driver) notifyChange(id string, prev, next control.State) {
	if d.onChange != nil && prev != next {
		d.onChange(id, next)
	}
}

// Store 状态存储（展示层只读）
func (d *Driver) Store() *control.Store {
	return d.store
}

// Registry 控件注册表
func (d *Driver) Registry() *control.Registry {
	return d.registry
}

// SetValue 将数值控件设置为 value。超出范围的输入收敛到边界
// 并告警, 返回实际生效的数值。序列任何一步失败时状态存储不变。
// opts 透传给定位器, 支持单次覆盖匹配阈值等调整。
func (d *Driver) SetValue(id string, value float64, opts ...auto.Option) (float64, error) {
	desc, err := d.registry.Get(id)
	if err != nil {
		return 0, err
	}
	if desc.Kind != control.KindNumeric {
		return 0, fmt.Errorf("控件 %s 不是数值控件", id)
	}

	applied := desc.Range.Clamp(value)
	if applied != value {
		logger.Warn("控件 %s 输入 %v 超出范围 [%v, %v], 收敛为 %v",
			id, value, desc.Range.Min, desc.Range.Max, applied)
	}

	resume := d.pauser.PauseScoped()
	defer resume()

	start := time.Now()
	loc, err := d.locateControl(desc, opts...)
	if err != nil {
		logger.LogEvent("SET", false, elapsedMs(start), fmt.Sprintf("%s: %v", id, err))
		return 0, err
	}

	if err := d.inputValue(desc, loc, desc.FormatValue(applied)); err != nil {
		logger.LogEvent("SET", false, elapsedMs(start), fmt.Sprintf("%s: %v", id, err))
		return 0, err
	}

	d.store.SetValue(id, applied)
	logger.LogEvent("SET", true, elapsedMs(start), fmt.Sprintf("%s = %s", id, desc.FormatValue(applied)))
	return applied, nil
}

// Reset 将数值控件恢复为默认值
func (d *Driver) Reset(id string, opts ...auto.Option) (float64, error) {
	desc, err := d.registry.Get(id)
	if err != nil {
		return 0, err
	}
	return d.SetValue(id, desc.Range.Default, opts...)
}

// Toggle 点击开关控件。状态判定与回滚由上层处理,
// 此处只负责定位与单击。
func (d *Driver) Toggle(id string) error {
	desc, err := d.registry.Get(id)
	if err != nil {
		return err
	}
	if desc.Kind != control.KindToggle {
		return fmt.Errorf("控件 %s 不是开关控件", id)
	}

	resume := d.pauser.PauseScoped()
	defer resume()

	start := time.Now()
	loc, err := d.locateControl(desc)
	if err != nil {
		logger.LogEvent("TOGGLE", false, elapsedMs(start), fmt.Sprintf("%s: %v", id, err))
		return err
	}

	px, py := d.desktop.PointerPosition()
	guard := input.NewPointerGuard(px, py, d.desktop.MovePointer)
	defer guard.Restore()

	d.desktop.Click(loc.Click.X, loc.Click.Y)
	d.desktop.Sleep(d.timing.SettleDelayMs)

	logger.LogEvent("TOGGLE", true, elapsedMs(start), id)
	return nil
}

// locateControl 确认宿主程序在运行, 聚焦插件窗口,
// 截屏并定位控件。失败时不产生任何输入。
func (d *Driver) locateControl(desc *control.Descriptor, opts ...auto.Option) (*Location, error) {
	proc, err := d.desktop.FindHostProcess(d.hostNames)
	if err != nil {
		return nil, err
	}
	if err := d.desktop.FocusProcess(proc.PID); err != nil {
		return nil, err
	}

	win, err := d.desktop.FocusWindow(desc.WindowTitle)
	if err != nil {
		return nil, err
	}
	d.desktop.Sleep(d.timing.FocusDelayMs)

	img, region, err := d.desktop.CaptureWindow(win.PID)
	if err != nil {
		return nil, &InteractionError{Control: desc.ID, Step: "截屏", Err: err}
	}

	loc, err := d.locator.Locate(img, region, desc, opts...)
	if err != nil {
		return nil, &InteractionError{Control: desc.ID, Step: "定位", Err: err}
	}
	return loc, nil
}

// inputValue 点击控件进入编辑态, 全选后键入并确认。
// 全程记录并最终恢复鼠标位置。
func (d *Driver) inputValue(desc *control.Descriptor, loc *Location, text string) error {
	px, py := d.desktop.PointerPosition()
	guard := input.NewPointerGuard(px, py, d.desktop.MovePointer)
	defer guard.Restore()

	d.desktop.Click(loc.Click.X, loc.Click.Y)
	d.desktop.Sleep(d.timing.SettleDelayMs)

	d.desktop.DoubleClick(loc.Click.X, loc.Click.Y)
	d.desktop.Sleep(d.timing.EditDelayMs)

	d.desktop.SelectAll()
	d.desktop.TypeText(text)
	d.desktop.Sleep(d.timing.EditDelayMs)

	d.desktop.Confirm()
	d.desktop.Sleep(d.timing.ConfirmDelayMs)
	return nil
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
