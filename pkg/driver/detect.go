package driver

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/vocalpilot/vocalpilot/internal/logger"
	"github.com/vocalpilot/vocalpilot/pkg/control"
	"github.com/vocalpilot/vocalpilot/pkg/vision/ocr"
)

// DetectValue 读取数值控件当前显示值, 不做任何输入。
// 读取结果同时写入状态存储。
func (d *Driver) DetectValue(id string) (float64, error) {
	desc, err := d.registry.Get(id)
	if err != nil {
		return 0, err
	}
	if desc.Kind != control.KindNumeric {
		return 0, fmt.Errorf("控件 %s 不是数值控件", id)
	}

	resume := d.pauser.PauseScoped()
	defer resume()

	win, err := d.desktop.FindWindow(desc.WindowTitle)
	if err != nil {
		return 0, err
	}

	img, region, err := d.desktop.CaptureWindow(win.PID)
	if err != nil {
		return 0, &InteractionError{Control: id, Step: "截屏", Err: err}
	}

	value, err := d.locator.ReadValue(img, region, desc)
	if err != nil {
		return 0, &InteractionError{Control: id, Step: "读数", Err: err}
	}

	prev, _ := d.store.Get(id)
	d.store.SetValue(id, value)
	next, _ := d.store.Get(id)
	d.notifyChange(id, prev, next)

	logger.Debug("控件 %s 当前显示值: %v", id, value)
	return value, nil
}

// DetectToggleState 检测单个开关控件的当前状态并写入状态存储
func (d *Driver) DetectToggleState(id string) (bool, error) {
	desc, err := d.registry.Get(id)
	if err != nil {
		return false, err
	}
	if desc.Kind != control.KindToggle {
		return false, fmt.Errorf("控件 %s 不是开关控件", id)
	}

	win, err := d.desktop.FindWindow(desc.WindowTitle)
	if err != nil {
		return false, err
	}

	img, _, err := d.desktop.CaptureWindow(win.PID)
	if err != nil {
		return false, &InteractionError{Control: id, Step: "截屏", Err: err}
	}

	on, err := d.locator.DetectToggle(img, desc)
	if err != nil {
		return false, err
	}

	prev, _ := d.store.Get(id)
	d.store.SetOn(id, on)
	next, _ := d.store.Get(id)
	d.notifyChange(id, prev, next)
	return on, nil
}

// DetectToggles 检测全部开关控件的当前状态并写入状态存储。
// 单个开关检测失败记告警并跳过, 不终止整轮检测。
// 作为自动检测会话的轮询函数使用。
func (d *Driver) DetectToggles() error {
	var failed int
	for _, byWindow := range groupByWindow(d.registry.Toggles()) {
		win, err := d.desktop.FindWindow(byWindow.title)
		if err != nil {
			logger.Warn("窗口 %q 不可用, 跳过 %d 个开关: %v",
				byWindow.title, len(byWindow.controls), err)
			failed += len(byWindow.controls)
			continue
		}

		img, _, err := d.desktop.CaptureWindow(win.PID)
		if err != nil {
			logger.Warn("窗口 %q 截屏失败: %v", byWindow.title, err)
			failed += len(byWindow.controls)
			continue
		}

		for _, desc := range byWindow.controls {
			on, err := d.locator.DetectToggle(img, desc)
			if err != nil {
				logger.Warn("开关 %s 检测失败: %v", desc.ID, err)
				failed++
				continue
			}

			prev, _ := d.store.Get(desc.ID)
			d.store.SetOn(desc.ID, on)
			next, _ := d.store.Get(desc.ID)
			d.notifyChange(desc.ID, prev, next)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d 个开关状态未能检测", failed)
	}
	return nil
}

// windowGroup 同一窗口下的控件
type windowGroup struct {
	title    string
	controls []*control.Descriptor
}

// groupByWindow 按窗口标题分组, 保持首次出现顺序
func groupByWindow(descriptors []*control.Descriptor) []windowGroup {
	index := make(map[string]int)
	var groups []windowGroup
	for _, desc := range descriptors {
		i, ok := index[desc.WindowTitle]
		if !ok {
			i = len(groups)
			index[desc.WindowTitle] = i
			groups = append(groups, windowGroup{title: desc.WindowTitle})
		}
		groups[i].controls = append(groups[i].controls, desc)
	}
	return groups
}

// parseDisplayedValue 从识别结果中解析第一个可读数值。
// 识别出的词常带单位后缀 (如 "-3.5dB"), 去除首尾非数字字符后解析。
func parseDisplayedValue(anchors []ocr.TextAnchor) (float64, error) {
	for _, a := range anchors {
		token := strings.TrimFunc(a.Text, func(r rune) bool {
			return !unicode.IsDigit(r) && r != '-' && r != '+' && r != '.'
		})
		if token == "" {
			continue
		}
		if v, err := strconv.ParseFloat(token, 64); err == nil {
			return v, nil
		}
	}
	return 0, fmt.Errorf("识别结果中没有可解析的数值")
}
