// Package toggle 开关控件管理：界面开关与插件实际状态之间的同步。
// 界面点击先乐观生效, 点击失败回滚显示, 点击成功后以重新检测
// 到的实际状态为准。
package toggle

import (
	"sync"

	"github.com/vocalpilot/vocalpilot/internal/logger"
	"github.com/vocalpilot/vocalpilot/pkg/control"
)

// Driver 开关操作能力, driver.Driver 实现该接口
type Driver interface {
	// Toggle 点击开关控件
	Toggle(id string) error
	// DetectToggleState 检测开关当前实际状态
	DetectToggleState(id string) (bool, error)
}

// Pauser 暂停后台检测的协调接口
type Pauser interface {
	PauseScoped() func()
}

type noopPauser struct{}

func (noopPauser) PauseScoped() func() { return func() {} }

// Widget 界面上的开关显示。SetOn 只更新显示,
// 由界面实现回调 HandleToggle 响应用户点击。
type Widget interface {
	ID() string
	SetOn(on bool)
}

// Manager 开关管理器
type Manager struct {
	driver Driver
	store  *control.Store
	pauser Pauser

	mu      sync.Mutex
	widgets map[string]Widget
	muted   map[string]bool
}

// NewManager 创建开关管理器
func NewManager(driver Driver, store *control.Store) *Manager {
	return &Manager{
		driver:  driver,
		store:   store,
		pauser:  noopPauser{},
		widgets: make(map[string]Widget),
		muted:   make(map[string]bool),
	}
}

// SetPauser 绑定自动检测会话
func (m *Manager) SetPauser(p Pauser) {
	if p != nil {
		m.pauser = p
	}
}

// Register 注册界面开关
func (m *Manager) Register(w Widget) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.widgets[w.ID()] = w
}

// Initialize 启动时静默检测各开关实际状态并同步显示。
// 检测失败的开关按默认开启处理并告警。
func (m *Manager) Initialize() {
	for _, id := range m.widgetIDs() {
		on, err := m.driver.DetectToggleState(id)
		if err != nil {
			logger.Warn("开关 %s 初始状态检测失败, 按开启处理: %v", id, err)
			on = true
			m.store.SetOn(id, on)
		}
		m.setWidgetMuted(id, on)
	}
}

// HandleToggle 响应界面开关点击。requested 为用户期望的新状态。
// 程序性显示更新触发的回调直接忽略, 不会递归。
func (m *Manager) HandleToggle(id string, requested bool) error {
	if m.isMuted(id) {
		return nil
	}

	resume := m.pauser.PauseScoped()
	defer resume()

	// 界面点击本身已乐观更新了显示, 先按期望状态记录
	if err := m.driver.Toggle(id); err != nil {
		// 点击失败, 显示回滚到点击前的已知状态
		if st, ok := m.store.Get(id); ok {
			m.setWidgetMuted(id, st.On)
		}
		logger.Warn("开关 %s 切换失败, 显示已回滚: %v", id, err)
		return err
	}

	actual, err := m.driver.DetectToggleState(id)
	if err != nil {
		// 点击成功但无法确认, 按期望状态记录
		logger.Warn("开关 %s 切换后状态确认失败, 按期望状态 %v 记录: %v", id, requested, err)
		m.store.SetOn(id, requested)
		return nil
	}

	// 以实际状态为准, 与期望不一致时纠正显示
	if actual != requested {
		logger.Warn("开关 %s 实际状态 %v 与期望 %v 不一致, 显示已纠正", id, actual, requested)
		m.setWidgetMuted(id, actual)
	}
	return nil
}

func (m *Manager) widgetIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.widgets))
	for id := range m.widgets {
		ids = append(ids, id)
	}
	return ids
}

// setWidgetMuted 程序性更新显示, 期间该开关的回调被屏蔽
func (m *Manager) setWidgetMuted(id string, on bool) {
	m.mu.Lock()
	w, ok := m.widgets[id]
	if !ok {
		m.mu.Unlock()
		return
	}
	m.muted[id] = true
	m.mu.Unlock()

	w.SetOn(on)

	m.mu.Lock()
	m.muted[id] = false
	m.mu.Unlock()
}

func (m *Manager) isMuted(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted[id]
}
