// Package cv 提供模板匹配功能
package cv

// DefaultThreshold 默认匹配接受阈值。
// 低于该值的结果一律视为"未找到"，调用方不得使用其坐标。
const DefaultThreshold = 0.65

// Point 表示二维坐标点
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size 表示宽高
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rectangle 表示矩形区域（四个角点）
type Rectangle struct {
	TopLeft     Point `json:"top_left"`
	BottomLeft  Point `json:"bottom_left"`
	BottomRight Point `json:"bottom_right"`
	TopRight    Point `json:"top_right"`
}

// MatchMethod 匹配方法枚举
type MatchMethod string

const (
	// MatchMethodCcoeffNormed 归一化互相关模板匹配
	MatchMethodCcoeffNormed MatchMethod = "ccoeff_normed"
)

// MatchResult 模板匹配结果
type MatchResult struct {
	// Location 匹配区域左上角（被搜索图像坐标空间）
	Location Point `json:"location"`
	// Center 匹配区域中心点
	Center Point `json:"center"`
	// Rectangle 匹配区域四个角点
	Rectangle Rectangle `json:"rectangle"`
	// Confidence 匹配置信度，归一化互相关分数
	Confidence float64 `json:"confidence"`
	// Scale 命中时使用的模板缩放比例
	Scale float64 `json:"scale"`
	// TemplateSize 缩放后的模板尺寸
	TemplateSize Size `json:"template_size"`
	// Method 使用的匹配方法
	Method MatchMethod `json:"method"`
	// Accepted 置信度是否达到接受阈值（仅由原始置信度决定）
	Accepted bool `json:"accepted"`
	// Time 匹配耗时（毫秒）
	Time float64 `json:"time,omitempty"`
}

// buildRectangle 由左上角和尺寸构造角点与中心
func buildRectangle(loc Point, w, h int) (Point, Rectangle) {
	center := Point{X: loc.X + w/2, Y: loc.Y + h/2}
	rect := Rectangle{
		TopLeft:     loc,
		BottomLeft:  Point{X: loc.X, Y: loc.Y + h},
		BottomRight: Point{X: loc.X + w, Y: loc.Y + h},
		TopRight:    Point{X: loc.X + w, Y: loc.Y},
	}
	return center, rect
}
