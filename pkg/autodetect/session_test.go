package autodetect

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/vocalpilot/vocalpilot/pkg/auto"
)

func TestSessionDefaultInterval(t *testing.T) {
	session := NewSession(func() error { return nil }, 0)
	if session.interval != auto.DefaultPollInterval {
		t.Errorf("间隔未设置时应使用默认值 %s, 实际为 %s",
			auto.DefaultPollInterval, session.interval)
	}

	session = NewSession(func() error { return nil }, 50*time.Millisecond)
	if session.interval != 50*time.Millisecond {
		t.Errorf("显式间隔被覆盖: %s", session.interval)
	}
}

func TestSessionStartStop(t *testing.T) {
	var polls int64
	session := NewSession(func() error {
		atomic.AddInt64(&polls, 1)
		return nil
	}, 20*time.Millisecond)

	if session.Phase() != Stopped {
		t.Errorf("初始阶段应为 stopped, 实际为 %s", session.Phase())
	}

	if err := session.Start(); err != nil {
		t.Fatalf("启动失败: %v", err)
	}
	if session.Phase() != Running {
		t.Errorf("启动后阶段应为 running, 实际为 %s", session.Phase())
	}

	// 重复启动应报错
	if err := session.Start(); err == nil {
		t.Error("重复启动应报错")
	}

	time.Sleep(120 * time.Millisecond)
	session.Stop()

	if session.Phase() != Stopped {
		t.Errorf("停止后阶段应为 stopped, 实际为 %s", session.Phase())
	}
	count := atomic.LoadInt64(&polls)
	if count == 0 {
		t.Error("运行期间应至少轮询一次")
	}
	t.Logf("轮询次数: %d", count)

	// 停止后不再轮询
	time.Sleep(80 * time.Millisecond)
	if after := atomic.LoadInt64(&polls); after != count {
		t.Errorf("停止后仍在轮询: %d -> %d", count, after)
	}

	// 重复停止为空操作
	session.Stop()
}

func TestSessionPauseResume(t *testing.T) {
	var polls int64
	session := NewSession(func() error {
		atomic.AddInt64(&polls, 1)
		return nil
	}, 15*time.Millisecond)

	if err := session.Start(); err != nil {
		t.Fatalf("启动失败: %v", err)
	}
	defer session.Stop()

	time.Sleep(60 * time.Millisecond)
	session.Pause()
	if session.Phase() != Paused {
		t.Errorf("暂停后阶段应为 paused, 实际为 %s", session.Phase())
	}

	// 暂停期间不得有任何轮询
	paused := atomic.LoadInt64(&polls)
	time.Sleep(80 * time.Millisecond)
	if after := atomic.LoadInt64(&polls); after != paused {
		t.Errorf("暂停期间仍在轮询: %d -> %d", paused, after)
	}

	session.Resume()
	if session.Phase() != Running {
		t.Errorf("恢复后阶段应为 running, 实际为 %s", session.Phase())
	}
	time.Sleep(80 * time.Millisecond)
	if after := atomic.LoadInt64(&polls); after == paused {
		t.Error("恢复后应继续轮询")
	}
}

func TestSessionPauseWaitsForInFlightPoll(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var finished int64

	session := NewSession(func() error {
		entered <- struct{}{}
		<-release
		atomic.AddInt64(&finished, 1)
		return nil
	}, 10*time.Millisecond)

	if err := session.Start(); err != nil {
		t.Fatalf("启动失败: %v", err)
	}

	// 等待一次轮询进入执行
	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("轮询未开始")
	}

	pauseDone := make(chan struct{})
	go func() {
		session.Pause()
		close(pauseDone)
	}()

	// 轮询未结束前 Pause 不应返回
	select {
	case <-pauseDone:
		t.Fatal("Pause 应等待在途轮询结束")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-pauseDone:
	case <-time.After(time.Second):
		t.Fatal("轮询结束后 Pause 应立即返回")
	}

	if atomic.LoadInt64(&finished) != 1 {
		t.Errorf("应恰好完成一次轮询, 实际为 %d", atomic.LoadInt64(&finished))
	}

	// release 已关闭, 之后的轮询只需有人接收 entered 即可完成
	go func() {
		for range entered {
		}
	}()
	session.Resume()
	session.Stop()
}

func TestSessionPauseScoped(t *testing.T) {
	var polls int64
	session := NewSession(func() error {
		atomic.AddInt64(&polls, 1)
		return nil
	}, 15*time.Millisecond)

	if err := session.Start(); err != nil {
		t.Fatalf("启动失败: %v", err)
	}
	defer session.Stop()

	resume := session.PauseScoped()
	if session.Phase() != Paused {
		t.Errorf("PauseScoped 后阶段应为 paused, 实际为 %s", session.Phase())
	}

	paused := atomic.LoadInt64(&polls)
	time.Sleep(60 * time.Millisecond)
	if after := atomic.LoadInt64(&polls); after != paused {
		t.Errorf("暂停期间仍在轮询: %d -> %d", paused, after)
	}

	resume()
	if session.Phase() != Running {
		t.Errorf("恢复后阶段应为 running, 实际为 %s", session.Phase())
	}
}

func TestSessionPauseScopedWhenStopped(t *testing.T) {
	session := NewSession(func() error { return nil }, time.Second)

	// 未运行时暂停与恢复均为空操作
	resume := session.PauseScoped()
	if session.Phase() != Stopped {
		t.Errorf("未运行时 PauseScoped 不应改变阶段, 实际为 %s", session.Phase())
	}
	resume()
	if session.Phase() != Stopped {
		t.Errorf("恢复后阶段应保持 stopped, 实际为 %s", session.Phase())
	}
}

func TestSessionPollErrorDoesNotStop(t *testing.T) {
	var polls int64
	session := NewSession(func() error {
		atomic.AddInt64(&polls, 1)
		return errTest
	}, 15*time.Millisecond)

	if err := session.Start(); err != nil {
		t.Fatalf("启动失败: %v", err)
	}
	defer session.Stop()

	time.Sleep(100 * time.Millisecond)
	if atomic.LoadInt64(&polls) < 2 {
		t.Error("轮询出错后会话应继续运行")
	}
	if session.Phase() != Running {
		t.Errorf("轮询出错后阶段应为 running, 实际为 %s", session.Phase())
	}
}

var errTest = &pollError{}

type pollError struct{}

func (e *pollError) Error() string { return "模拟轮询失败" }
