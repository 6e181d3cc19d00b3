package toggle

import (
	"errors"
	"testing"

	"github.com/vocalpilot/vocalpilot/pkg/control"
)

// fakeDriver 可编程的假驱动
type fakeDriver struct {
	toggleErr   error
	detectOn    bool
	detectErr   error
	toggleCalls int
	detectCalls int
	store       *control.Store
}

func (d *fakeDriver) Toggle(id string) error {
	d.toggleCalls++
	return d.toggleErr
}

func (d *fakeDriver) DetectToggleState(id string) (bool, error) {
	d.detectCalls++
	if d.detectErr != nil {
		return false, d.detectErr
	}
	if d.store != nil {
		d.store.SetOn(id, d.detectOn)
	}
	return d.detectOn, nil
}

// fakeWidget 记录显示状态与回调的假界面开关。
// SetOn 像真实界面一样触发回调。
type fakeWidget struct {
	id       string
	on       bool
	setCalls int
	manager  *Manager
}

func (w *fakeWidget) ID() string { return w.id }

func (w *fakeWidget) SetOn(on bool) {
	w.on = on
	w.setCalls++
	// 真实界面的显示更新同样会触发回调
	if w.manager != nil {
		w.manager.HandleToggle(w.id, on)
	}
}

func newTestManager(driver *fakeDriver) (*Manager, *control.Store) {
	store := control.NewStore([]*control.Descriptor{
		{ID: "bypass", Kind: control.KindToggle},
	})
	driver.store = store
	return NewManager(driver, store), store
}

func TestHandleToggleSuccess(t *testing.T) {
	driver := &fakeDriver{detectOn: false}
	manager, store := newTestManager(driver)
	widget := &fakeWidget{id: "bypass", on: true}
	manager.Register(widget)

	// 用户点击关闭, 实际状态确认为关闭
	if err := manager.HandleToggle("bypass", false); err != nil {
		t.Fatalf("HandleToggle 失败: %v", err)
	}
	if driver.toggleCalls != 1 {
		t.Errorf("Toggle 调用次数 = %d, want 1", driver.toggleCalls)
	}
	if st, _ := store.Get("bypass"); st.On {
		t.Error("确认后存储应为关闭")
	}
	// 实际与期望一致, 无需纠正显示
	if widget.setCalls != 0 {
		t.Errorf("displayed 纠正次数 = %d, want 0", widget.setCalls)
	}
}

func TestHandleToggleResyncsMismatch(t *testing.T) {
	// 点击成功但插件实际仍为开启 (如点击未命中生效区)
	driver := &fakeDriver{detectOn: true}
	manager, store := newTestManager(driver)
	widget := &fakeWidget{id: "bypass", on: false, manager: nil}
	manager.Register(widget)
	widget.manager = manager

	if err := manager.HandleToggle("bypass", false); err != nil {
		t.Fatalf("HandleToggle 失败: %v", err)
	}

	// 显示应被纠正为实际状态
	if !widget.on {
		t.Error("显示应被纠正为开启")
	}
	if st, _ := store.Get("bypass"); !st.On {
		t.Error("存储应为实际的开启状态")
	}
	// 纠正显示触发的回调被屏蔽, 不应产生第二次点击
	if driver.toggleCalls != 1 {
		t.Errorf("Toggle 调用次数 = %d, want 1 (纠正显示不应递归)", driver.toggleCalls)
	}
}

func TestHandleToggleFailureRollsBack(t *testing.T) {
	driver := &fakeDriver{toggleErr: errors.New("窗口不可用")}
	manager, store := newTestManager(driver)
	store.SetOn("bypass", true)
	widget := &fakeWidget{id: "bypass", on: false}
	manager.Register(widget)
	widget.manager = manager

	// 用户点击关闭, 点击失败
	err := manager.HandleToggle("bypass", false)
	if err == nil {
		t.Fatal("点击失败时应返回错误")
	}

	// 显示回滚到点击前的已知状态
	if !widget.on {
		t.Error("显示应回滚为开启")
	}
	if st, _ := store.Get("bypass"); !st.On {
		t.Error("存储应保持开启")
	}
	// 回滚触发的回调被屏蔽
	if driver.toggleCalls != 1 {
		t.Errorf("Toggle 调用次数 = %d, want 1 (回滚不应递归)", driver.toggleCalls)
	}
}

func TestHandleToggleConfirmFailureKeepsRequested(t *testing.T) {
	driver := &fakeDriver{detectErr: errors.New("模板均未命中")}
	manager, store := newTestManager(driver)
	widget := &fakeWidget{id: "bypass", on: false}
	manager.Register(widget)

	// 点击成功但确认失败, 按期望状态记录
	if err := manager.HandleToggle("bypass", false); err != nil {
		t.Fatalf("确认失败不应报错: %v", err)
	}
	if st, _ := store.Get("bypass"); st.On {
		t.Error("存储应记录期望的关闭状态")
	}
}

func TestInitialize(t *testing.T) {
	driver := &fakeDriver{detectOn: false}
	manager, store := newTestManager(driver)
	widget := &fakeWidget{id: "bypass", on: true}
	manager.Register(widget)
	widget.manager = manager

	manager.Initialize()

	if widget.on {
		t.Error("初始化后显示应同步为检测到的关闭状态")
	}
	if st, _ := store.Get("bypass"); st.On {
		t.Error("初始化后存储应为关闭")
	}
	// 初始化的显示同步不应触发点击
	if driver.toggleCalls != 0 {
		t.Errorf("初始化不应产生点击, 实际 %d 次", driver.toggleCalls)
	}
}

func TestInitializeDetectFailureDefaultsOn(t *testing.T) {
	driver := &fakeDriver{detectErr: errors.New("窗口未打开")}
	manager, store := newTestManager(driver)
	store.SetOn("bypass", false)
	widget := &fakeWidget{id: "bypass", on: false}
	manager.Register(widget)
	widget.manager = manager

	manager.Initialize()

	// 检测失败按默认开启处理
	if !widget.on {
		t.Error("检测失败时显示应为默认开启")
	}
	if st, _ := store.Get("bypass"); !st.On {
		t.Error("检测失败时存储应为默认开启")
	}
}

// pauseRecorder 记录暂停与恢复次数
type pauseRecorder struct {
	pauses  int
	resumes int
}

func (p *pauseRecorder) PauseScoped() func() {
	p.pauses++
	return func() { p.resumes++ }
}

func TestHandleTogglePausesDetection(t *testing.T) {
	driver := &fakeDriver{detectOn: false}
	manager, _ := newTestManager(driver)
	widget := &fakeWidget{id: "bypass", on: true}
	manager.Register(widget)

	recorder := &pauseRecorder{}
	manager.SetPauser(recorder)

	if err := manager.HandleToggle("bypass", false); err != nil {
		t.Fatalf("HandleToggle 失败: %v", err)
	}
	if recorder.pauses != 1 || recorder.resumes != 1 {
		t.Errorf("暂停/恢复次数 = %d/%d, want 1/1", recorder.pauses, recorder.resumes)
	}

	// 失败路径同样成对暂停与恢复
	driver.toggleErr = errors.New("失败")
	manager.HandleToggle("bypass", true)
	if recorder.pauses != 2 || recorder.resumes != 2 {
		t.Errorf("失败路径暂停/恢复次数 = %d/%d, want 2/2", recorder.pauses, recorder.resumes)
	}
}
