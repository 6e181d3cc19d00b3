package cv

import (
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Template 磁盘模板图像，首次使用时加载并缓存灰度图。
type Template struct {
	// Name 控件可读名称（日志用）
	Name string
	// Filename 模板文件路径
	Filename string

	params MultiScaleParams

	mu     sync.Mutex
	cached *gocv.Mat
}

// TemplateOption 模板选项
type TemplateOption func(*Template)

// NewTemplate 创建模板
func NewTemplate(name, filename string, opts ...TemplateOption) *Template {
	t := &Template{
		Name:     name,
		Filename: filename,
		params:   DefaultMultiScaleParams(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// WithMatchParams 设置多尺度匹配参数
func WithMatchParams(params MultiScaleParams) TemplateOption {
	return func(t *Template) {
		t.params = params
	}
}

// WithThreshold 设置接受阈值
func WithThreshold(threshold float64) TemplateOption {
	return func(t *Template) {
		t.params.Threshold = threshold
	}
}

// load 加载并缓存灰度模板
func (t *Template) load() (gocv.Mat, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cached != nil && !t.cached.Empty() {
		return t.cached.Clone(), nil
	}

	mat, err := ReadImageGray(t.Filename)
	if err != nil {
		return gocv.Mat{}, &TemplateLoadError{Filename: t.Filename, Err: err}
	}

	cached := mat.Clone()
	t.cached = &cached
	return mat, nil
}

// BaseSize 返回未缩放的模板尺寸
func (t *Template) BaseSize() (Size, error) {
	mat, err := t.load()
	if err != nil {
		return Size{}, err
	}
	defer mat.Close()
	return Size{Width: mat.Cols(), Height: mat.Rows()}, nil
}

// MatchIn 在灰度源图像中匹配本模板。
// 未达阈值时返回 *NotFoundError（附带最佳候选供调试）。
func (t *Template) MatchIn(sourceGray gocv.Mat) (*MatchResult, error) {
	return t.MatchInWith(sourceGray, t.params)
}

// MatchInWith 以覆盖参数匹配本模板, 供单次调整阈值等场景使用
func (t *Template) MatchInWith(sourceGray gocv.Mat, params MultiScaleParams) (*MatchResult, error) {
	search, err := t.load()
	if err != nil {
		return nil, err
	}
	defer search.Close()

	matcher := NewMultiScaleMatcher(params)
	result, err := matcher.Match(sourceGray, search)

	var nf *NotFoundError
	if errors.As(err, &nf) {
		nf.Template = t.Name
	}
	return result, err
}

// Close 释放缓存
func (t *Template) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cached != nil {
		t.cached.Close()
		t.cached = nil
	}
}

// String 返回字符串表示
func (t *Template) String() string {
	return fmt.Sprintf("Template(%s: %s)", t.Name, t.Filename)
}
