// Package control 定义可操控控件的静态描述与运行时状态
package control

import (
	"fmt"

	"github.com/vocalpilot/vocalpilot/pkg/vision/ocr"
)

// Kind 控件类型
type Kind string

const (
	// KindNumeric 数值控件（可输入具体数值）
	KindNumeric Kind = "numeric"
	// KindToggle 开关控件（开/关两张模板）
	KindToggle Kind = "toggle"
)

// Range 数值范围策略
type Range struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
	Step    float64 `json:"step"`
}

// Clamp 将数值限制到 [Min, Max]
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// ClickPolicy 点击点推导策略：模板图形与可编辑文本框并不重合，
// 以模板匹配区域的比例偏移定位实际点击位置。
// XFrac/YFrac 为相对模板左上角的宽高比例（0.5, 0.5 即中心）。
type ClickPolicy struct {
	XFrac float64 `json:"x_frac"`
	YFrac float64 `json:"y_frac"`
}

// CenterClick 模板中心点击策略
var CenterClick = ClickPolicy{XFrac: 0.5, YFrac: 0.5}

// Descriptor 控件静态描述。启动时由配置构造，之后不可变。
type Descriptor struct {
	// ID 控件标识（配置键）
	ID string
	// Name 可读名称（日志与界面用）
	Name string
	// Kind 控件类型
	Kind Kind

	// WindowTitle 所属插件窗口标题子串
	WindowTitle string

	// Template 数值控件的模板文件名（相对模板目录）
	Template string
	// OnTemplate / OffTemplate 开关控件的两张模板
	OnTemplate  string
	OffTemplate string

	// Anchor 同形控件的区分锚点文字（如 "LOW"/"HIGH"），空则不使用
	Anchor string
	// AnchorFallback 锚点识别失败时的位置回退策略
	AnchorFallback ocr.PairFallback

	// Range 数值范围（开关控件忽略）
	Range Range
	// Click 点击点推导策略
	Click ClickPolicy
	// Precision 输入数值的小数位数
	Precision int
}

// Validate 校验描述完整性
func (d *Descriptor) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("控件缺少 ID")
	}
	switch d.Kind {
	case KindNumeric:
		if d.Template == "" {
			return fmt.Errorf("数值控件 %s 缺少模板", d.ID)
		}
		if d.Range.Min > d.Range.Max {
			return fmt.Errorf("控件 %s 范围非法: min=%.2f > max=%.2f", d.ID, d.Range.Min, d.Range.Max)
		}
	case KindToggle:
		if d.OnTemplate == "" || d.OffTemplate == "" {
			return fmt.Errorf("开关控件 %s 需要开/关两张模板", d.ID)
		}
	default:
		return fmt.Errorf("控件 %s 类型未知: %s", d.ID, d.Kind)
	}
	return nil
}

// FormatValue 按精度格式化输入数值
func (d *Descriptor) FormatValue(v float64) string {
	return fmt.Sprintf("%.*f", d.Precision, v)
}
