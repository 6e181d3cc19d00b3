package auto

// Option 单次定位操作的覆盖选项函数类型
type Option func(*Options)

// Options 单次定位操作的覆盖项。零值表示不覆盖配置。
type Options struct {
	// Threshold 图像匹配阈值覆盖 (0-1), 0 表示使用配置值
	Threshold float64
	// ClickOffset 在推导出的点击点上附加的偏移
	ClickOffset Point
	// Region 限定搜索区域 (截图坐标空间), nil 表示整张截图
	Region *Region
}

// ApplyOptions 应用覆盖选项
func ApplyOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithThreshold 覆盖匹配阈值
func WithThreshold(t float64) Option {
	return func(o *Options) {
		o.Threshold = t
	}
}

// WithClickOffset 设置点击偏移量
func WithClickOffset(x, y int) Option {
	return func(o *Options) {
		o.ClickOffset = Point{X: x, Y: y}
	}
}

// WithRegion 限定搜索区域
func WithRegion(x, y, width, height int) Option {
	return func(o *Options) {
		o.Region = &Region{X: x, Y: y, Width: width, Height: height}
	}
}
