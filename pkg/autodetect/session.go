// Package autodetect 后台自动检测会话：按固定间隔轮询控件状态，
// 交互操作期间可暂停，避免截屏与输入互相干扰。
package autodetect

import (
	"fmt"
	"sync"
	"time"

	"github.com/vocalpilot/vocalpilot/internal/logger"
	"github.com/vocalpilot/vocalpilot/pkg/auto"
)

// Phase 会话阶段
type Phase int

const (
	// Stopped 未运行
	Stopped Phase = iota
	// Running 正常轮询
	Running
	// Paused 已暂停，轮询跳过
	Paused
)

// String 阶段可读名称
func (p Phase) String() string {
	switch p {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// PollFunc 单次轮询。返回错误时记录日志但不终止会话。
type PollFunc func() error

// Session 自动检测会话。同一时刻至多一次轮询在执行。
type Session struct {
	mu       sync.Mutex
	phase    Phase
	interval time.Duration
	poll     PollFunc

	stop chan struct{}
	done chan struct{}

	// polling 当前轮询是否在执行，Pause 等待其结束
	polling sync.Mutex
}

// NewSession 创建会话，interval <= 0 时使用默认轮询间隔
func NewSession(poll PollFunc, interval time.Duration) *Session {
	if interval <= 0 {
		interval = auto.DefaultPollInterval
	}
	return &Session{poll: poll, interval: interval}
}

// Phase 当前阶段
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Start 启动后台轮询。重复启动报错。
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != Stopped {
		return fmt.Errorf("检测会话已在运行 (%s)", s.phase)
	}
	s.phase = Running
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop(s.stop, s.done)

	logger.Info("自动检测会话已启动, 间隔 %v", s.interval)
	return nil
}

// Stop 停止会话并等待当前轮询结束。未运行时为空操作。
func (s *Session) Stop() {
	s.mu.Lock()
	if s.phase == Stopped {
		s.mu.Unlock()
		return
	}
	stop, done := s.stop, s.done
	s.phase = Stopped
	s.mu.Unlock()

	close(stop)
	<-done
	logger.Info("自动检测会话已停止")
}

// Pause 暂停轮询。已有轮询在执行时等待其完成后返回，
// 保证返回后不会再有截屏或识别动作。
func (s *Session) Pause() {
	s.mu.Lock()
	if s.phase == Running {
		s.phase = Paused
	}
	s.mu.Unlock()

	// 等待在途轮询结束
	s.polling.Lock()
	s.polling.Unlock()
}

// Resume 恢复轮询
func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == Paused {
		s.phase = Running
	}
}

// PauseScoped 暂停并返回恢复函数，配合 defer 使用。
// 会话未运行时两步均为空操作。
func (s *Session) PauseScoped() func() {
	s.mu.Lock()
	wasRunning := s.phase == Running
	if wasRunning {
		s.phase = Paused
	}
	s.mu.Unlock()

	if wasRunning {
		s.polling.Lock()
		s.polling.Unlock()
	}

	return func() {
		if wasRunning {
			s.Resume()
		}
	}
}

func (s *Session) loop(stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.runPoll(stop)
		}
	}
}

func (s *Session) runPoll(stop chan struct{}) {
	s.mu.Lock()
	active := s.phase == Running
	s.mu.Unlock()
	if !active {
		return
	}

	s.polling.Lock()
	defer s.polling.Unlock()

	// 暂停或停止可能发生在拿锁期间，再确认一次
	select {
	case <-stop:
		return
	default:
	}
	s.mu.Lock()
	active = s.phase == Running
	s.mu.Unlock()
	if !active {
		return
	}

	start := time.Now()
	if err := s.poll(); err != nil {
		logger.Warn("自动检测轮询失败: %v", err)
		return
	}
	logger.Debug("自动检测轮询完成, 耗时 %v", time.Since(start))
}
