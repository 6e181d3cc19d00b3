package auto

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// ProcessInfo 进程信息
type ProcessInfo struct {
	PID  int    `json:"pid"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// FindProcess 按名称查找进程（不区分大小写，支持部分匹配）
func FindProcess(name string) ([]ProcessInfo, error) {
	return FindProcessByNames([]string{name})
}

// FindProcessByNames 按一组名称前缀/子串查找进程（不区分大小写）。
// 返回第一个名称命中的全部进程。
func FindProcessByNames(names []string) ([]ProcessInfo, error) {
	pids, err := process.Pids()
	if err != nil {
		return nil, fmt.Errorf("获取进程列表失败: %w", err)
	}

	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(n)
	}

	var matches []ProcessInfo
	for _, pid := range pids {
		proc, err := process.NewProcess(pid)
		if err != nil {
			continue
		}

		procName, err := proc.Name()
		if err != nil {
			continue
		}

		nameLower := strings.ToLower(procName)
		for _, want := range lowered {
			if want == "" {
				continue
			}
			if strings.HasPrefix(nameLower, want) || strings.Contains(nameLower, want) {
				exe, _ := proc.Exe()
				matches = append(matches, ProcessInfo{
					PID:  int(pid),
					Name: procName,
					Path: exe,
				})
				break
			}
		}
	}

	return matches, nil
}

// IsProcessRunning 检查进程是否正在运行
func IsProcessRunning(pid int) bool {
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return false
	}
	running, err := proc.IsRunning()
	if err != nil {
		return false
	}
	return running
}
