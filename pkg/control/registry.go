package control

import (
	"fmt"

	"github.com/vocalpilot/vocalpilot/pkg/vision/ocr"
)

// highAfterLow HIGH 锚点的回退策略：布局稳定时 HIGH 在识别顺序中
// 位于 LOW 之后两个词处；LOW 也缺失时取全局第 3 个词。
var highAfterLow = ocr.PairFallback{Companion: "LOW", Offset: 2, Ordinal: 3}

// lowFirst LOW 锚点的回退策略：全局第 1 个词。
var lowFirst = ocr.PairFallback{Ordinal: 1}

// Defaults 返回内置的人声链控件描述。
// 配置可按 ID 覆盖范围与模板文件名。
func Defaults() []*Descriptor {
	return []*Descriptor{
		{
			ID:          "pitch",
			Name:        "修音音高",
			Kind:        KindNumeric,
			WindowTitle: "AutoTune",
			Template:    "pitch_knob.png",
			Range:       Range{Min: -12, Max: 12, Default: 0, Step: 1},
			Click:       ClickPolicy{XFrac: 0.5, YFrac: 0.6},
			Precision:   0,
		},
		{
			ID:          "tune_speed",
			Name:        "修音速度",
			Kind:        KindNumeric,
			WindowTitle: "AutoTune",
			Template:    "speed_knob.png",
			Range:       Range{Min: 0, Max: 100, Default: 20, Step: 1},
			Click:       ClickPolicy{XFrac: 0.5, YFrac: 0.6},
			Precision:   0,
		},
		{
			ID:          "volume",
			Name:        "人声音量",
			Kind:        KindNumeric,
			WindowTitle: "Mixer",
			Template:    "volume_fader.png",
			Range:       Range{Min: -7, Max: 0, Default: 0, Step: 0.5},
			Click:       ClickPolicy{XFrac: 0.5, YFrac: 0.4},
			Precision:   1,
		},
		{
			ID:             "eq_low",
			Name:           "均衡低频增益",
			Kind:           KindNumeric,
			WindowTitle:    "Equalizer",
			Template:       "eq_band.png",
			Anchor:         "LOW",
			AnchorFallback: lowFirst,
			Range:          Range{Min: -18, Max: 18, Default: 0, Step: 0.5},
			Click:          ClickPolicy{XFrac: 0.5, YFrac: 0.6},
			Precision:      1,
		},
		{
			ID:             "eq_high",
			Name:           "均衡高频增益",
			Kind:           KindNumeric,
			WindowTitle:    "Equalizer",
			Template:       "eq_band.png",
			Anchor:         "HIGH",
			AnchorFallback: highAfterLow,
			Range:          Range{Min: -18, Max: 18, Default: 0, Step: 0.5},
			Click:          ClickPolicy{XFrac: 0.5, YFrac: 0.6},
			Precision:      1,
		},
		{
			ID:          "bypass_tuner",
			Name:        "修音开关",
			Kind:        KindToggle,
			WindowTitle: "AutoTune",
			OnTemplate:  "tuner_on.png",
			OffTemplate: "tuner_off.png",
			Click:       CenterClick,
		},
		{
			ID:          "bypass_eq",
			Name:        "均衡开关",
			Kind:        KindToggle,
			WindowTitle: "Equalizer",
			OnTemplate:  "eq_on.png",
			OffTemplate: "eq_off.png",
			Click:       CenterClick,
		},
		{
			ID:          "bypass_reverb",
			Name:        "混响开关",
			Kind:        KindToggle,
			WindowTitle: "Reverb",
			OnTemplate:  "reverb_on.png",
			OffTemplate: "reverb_off.png",
			Click:       CenterClick,
		},
	}
}

// Registry 控件注册表，按 ID 索引，构造后只读
type Registry struct {
	byID  map[string]*Descriptor
	order []string
}

// NewRegistry 由描述列表构建注册表，重复 ID 报错
func NewRegistry(descriptors []*Descriptor) (*Registry, error) {
	r := &Registry{byID: make(map[string]*Descriptor, len(descriptors))}
	for _, d := range descriptors {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, exists := r.byID[d.ID]; exists {
			return nil, fmt.Errorf("控件 ID 重复: %s", d.ID)
		}
		r.byID[d.ID] = d
		r.order = append(r.order, d.ID)
	}
	return r, nil
}

// Get 按 ID 查找控件
func (r *Registry) Get(id string) (*Descriptor, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("未知控件: %s", id)
	}
	return d, nil
}

// All 按注册顺序返回全部控件
func (r *Registry) All() []*Descriptor {
	result := make([]*Descriptor, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.byID[id])
	}
	return result
}

// Toggles 返回全部开关控件
func (r *Registry) Toggles() []*Descriptor {
	var result []*Descriptor
	for _, d := range r.All() {
		if d.Kind == KindToggle {
			result = append(result, d)
		}
	}
	return result
}
