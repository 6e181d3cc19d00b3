package driver

import (
	"errors"
	"fmt"
	"time"

	"github.com/vocalpilot/vocalpilot/internal/logger"
	"github.com/vocalpilot/vocalpilot/pkg/control"
)

// BatchItem 批量设值的一项
type BatchItem struct {
	ID    string
	Value float64
}

// BatchResult 批量设值的单项结果
type BatchResult struct {
	ID      string
	Applied float64
	Err     error
}

// SetValues 批量设置数值控件。整批只暂停一次检测、只确认一次
// 宿主程序, 同窗口的控件共享一次聚焦与截屏。单项失败不影响
// 其余项, 返回错误为各失败项的汇总。
func (d *Driver) SetValues(items []BatchItem) ([]BatchResult, error) {
	if len(items) == 0 {
		return nil, nil
	}

	resume := d.pauser.PauseScoped()
	defer resume()

	start := time.Now()
	proc, err := d.desktop.FindHostProcess(d.hostNames)
	if err != nil {
		return nil, err
	}
	if err := d.desktop.FocusProcess(proc.PID); err != nil {
		return nil, err
	}

	descriptors := make([]*control.Descriptor, 0, len(items))
	valueByID := make(map[string]float64, len(items))
	results := make([]BatchResult, 0, len(items))
	for _, item := range items {
		desc, err := d.registry.Get(item.ID)
		if err != nil {
			results = append(results, BatchResult{ID: item.ID, Err: err})
			continue
		}
		if desc.Kind != control.KindNumeric {
			results = append(results, BatchResult{ID: item.ID,
				Err: fmt.Errorf("控件 %s 不是数值控件", item.ID)})
			continue
		}
		descriptors = append(descriptors, desc)
		valueByID[item.ID] = item.Value
	}

	for _, group := range groupByWindow(descriptors) {
		win, err := d.desktop.FocusWindow(group.title)
		if err != nil {
			for _, desc := range group.controls {
				results = append(results, BatchResult{ID: desc.ID, Err: err})
			}
			continue
		}
		d.desktop.Sleep(d.timing.FocusDelayMs)

		img, region, err := d.desktop.CaptureWindow(win.PID)
		if err != nil {
			for _, desc := range group.controls {
				results = append(results, BatchResult{ID: desc.ID,
					Err: &InteractionError{Control: desc.ID, Step: "截屏", Err: err}})
			}
			continue
		}

		for _, desc := range group.controls {
			value := valueByID[desc.ID]
			applied := desc.Range.Clamp(value)
			if applied != value {
				logger.Warn("控件 %s 输入 %v 超出范围 [%v, %v], 收敛为 %v",
					desc.ID, value, desc.Range.Min, desc.Range.Max, applied)
			}

			loc, err := d.locator.Locate(img, region, desc)
			if err != nil {
				results = append(results, BatchResult{ID: desc.ID,
					Err: &InteractionError{Control: desc.ID, Step: "定位", Err: err}})
				continue
			}

			if err := d.inputValue(desc, loc, desc.FormatValue(applied)); err != nil {
				results = append(results, BatchResult{ID: desc.ID, Err: err})
				continue
			}

			d.store.SetValue(desc.ID, applied)
			results = append(results, BatchResult{ID: desc.ID, Applied: applied})
		}
	}

	var errs []error
	ok := 0
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.ID, r.Err))
		} else {
			ok++
		}
	}

	logger.LogEvent("BATCH", len(errs) == 0, elapsedMs(start),
		fmt.Sprintf("成功 %d/%d", ok, len(results)))
	return results, errors.Join(errs...)
}
