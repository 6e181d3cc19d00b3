package control

import (
	"fmt"
	"sync"
)

// State 控件最近一次成功操作后的已知状态
type State struct {
	// Value 数值控件当前值
	Value float64 `json:"value"`
	// On 开关控件当前状态
	On bool `json:"on"`
}

// Store 按控件 ID 管理 ControlState。
// 仅在成功完成一次交互后更新，展示层只读。
type Store struct {
	mu     sync.RWMutex
	states map[string]State
}

// NewStore 创建状态存储，每个控件初始化为默认值
func NewStore(descriptors []*Descriptor) *Store {
	states := make(map[string]State, len(descriptors))
	for _, d := range descriptors {
		if d.Kind == KindToggle {
			states[d.ID] = State{On: true}
		} else {
			states[d.ID] = State{Value: d.Range.Default}
		}
	}
	return &Store{states: states}
}

// Get 读取控件状态
func (s *Store) Get(id string) (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[id]
	return state, ok
}

// SetValue 更新数值状态
func (s *Store) SetValue(id string, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.states[id]
	state.Value = value
	s.states[id] = state
}

// SetOn 更新开关状态
func (s *Store) SetOn(id string, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.states[id]
	state.On = on
	s.states[id] = state
}

// Snapshot 返回全部状态的拷贝（展示层用）
func (s *Store) Snapshot() map[string]State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := make(map[string]State, len(s.states))
	for id, st := range s.states {
		snap[id] = st
	}
	return snap
}

// String 调试输出
func (s *Store) String() string {
	return fmt.Sprintf("Store(%d controls)", len(s.Snapshot()))
}
