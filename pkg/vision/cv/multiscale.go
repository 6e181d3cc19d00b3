package cv

import (
	"math"
	"sort"
	"time"

	"gocv.io/x/gocv"
)

// MultiScaleParams 多尺度匹配参数
type MultiScaleParams struct {
	// Threshold 接受阈值，低于此值视为未找到
	Threshold float64
	// ScaleMin / ScaleMax / ScaleStep 模板缩放搜索范围
	ScaleMin  float64
	ScaleMax  float64
	ScaleStep float64
	// MaxAttempts 最多尝试的尺度数（含 1.0）
	MaxAttempts int
	// Boost 非 1.0 尺度的置信度补偿。重采样会损失相关性，
	// 两个候选置信度相差不超过 Boost 时，缩放命中可获得补偿；
	// 补偿只参与候选比较，永远不改变 Accepted 判定。
	Boost float64
}

// DefaultMultiScaleParams 默认参数
func DefaultMultiScaleParams() MultiScaleParams {
	return MultiScaleParams{
		Threshold:   DefaultThreshold,
		ScaleMin:    0.6,
		ScaleMax:    1.4,
		ScaleStep:   0.1,
		MaxAttempts: 12,
		Boost:       0.02,
	}
}

// MultiScaleMatcher 多尺度模板匹配器。
// 适用场景：不同分辨率显示器、DPI 缩放、插件窗口被整体缩放。
type MultiScaleMatcher struct {
	params MultiScaleParams
}

// NewMultiScaleMatcher 创建多尺度匹配器
func NewMultiScaleMatcher(params MultiScaleParams) *MultiScaleMatcher {
	if params.Threshold <= 0 {
		params.Threshold = DefaultThreshold
	}
	if params.ScaleStep <= 0 {
		params.ScaleStep = 0.1
	}
	if params.ScaleMin <= 0 || params.ScaleMax < params.ScaleMin {
		params.ScaleMin, params.ScaleMax = 0.6, 1.4
	}
	if params.MaxAttempts <= 0 {
		params.MaxAttempts = 12
	}
	return &MultiScaleMatcher{params: params}
}

// candidate 单尺度匹配候选
type candidate struct {
	conf  float64
	loc   Point
	scale float64
	w, h  int
}

// Match 在灰度源图像中查找灰度模板的最佳匹配。
// 所有尺度均未达阈值时返回 *NotFoundError；此时仍返回最佳候选
// （Accepted=false）供调试可视化使用，调用方不得用其坐标点击。
func (m *MultiScaleMatcher) Match(sourceGray, searchGray gocv.Mat) (*MatchResult, error) {
	startTime := time.Now()

	if err := checkSourceLargerThanSearch(sourceGray, searchGray); err != nil {
		return nil, err
	}

	var best *candidate
	for _, scale := range m.scales() {
		c := m.matchAtScale(sourceGray, searchGray, scale)
		if c == nil {
			continue
		}
		if m.better(c, best) {
			best = c
		}
	}

	if best == nil {
		return nil, &NotFoundError{Threshold: m.params.Threshold}
	}

	center, rect := buildRectangle(best.loc, best.w, best.h)
	result := &MatchResult{
		Location:     best.loc,
		Center:       center,
		Rectangle:    rect,
		Confidence:   best.conf,
		Scale:        best.scale,
		TemplateSize: Size{Width: best.w, Height: best.h},
		Method:       MatchMethodCcoeffNormed,
		Accepted:     best.conf >= m.params.Threshold,
		Time:         float64(time.Since(startTime).Milliseconds()),
	}

	if !result.Accepted {
		return result, &NotFoundError{
			BestConfidence: best.conf,
			Threshold:      m.params.Threshold,
		}
	}
	return result, nil
}

// scales 生成待尝试的尺度序列：1.0 优先，其余按与 1.0 的距离升序，
// 超出 MaxAttempts 的远端尺度被丢弃。
func (m *MultiScaleMatcher) scales() []float64 {
	var list []float64
	for s := m.params.ScaleMin; s <= m.params.ScaleMax+1e-9; s += m.params.ScaleStep {
		list = append(list, math.Round(s*100)/100)
	}

	hasUnity := false
	for _, s := range list {
		if s == 1.0 {
			hasUnity = true
			break
		}
	}
	if !hasUnity {
		list = append(list, 1.0)
	}

	sort.Slice(list, func(i, j int) bool {
		di := math.Abs(list[i] - 1.0)
		dj := math.Abs(list[j] - 1.0)
		if di != dj {
			return di < dj
		}
		return list[i] > list[j]
	})

	if len(list) > m.params.MaxAttempts {
		list = list[:m.params.MaxAttempts]
	}
	return list
}

// matchAtScale 在单一尺度上匹配，返回该尺度最佳候选
func (m *MultiScaleMatcher) matchAtScale(sourceGray, searchGray gocv.Mat, scale float64) *candidate {
	w := int(math.Round(float64(searchGray.Cols()) * scale))
	h := int(math.Round(float64(searchGray.Rows()) * scale))

	// 过小的模板没有判别力，过大的模板无法匹配
	if w < 8 || h < 8 || w > sourceGray.Cols() || h > sourceGray.Rows() {
		return nil
	}

	scaled := searchGray
	var cleanup func()
	if scale != 1.0 {
		resized := ResizeImage(searchGray, w, h)
		scaled = resized
		cleanup = func() { resized.Close() }
	}
	if cleanup != nil {
		defer cleanup()
	}

	result := gocv.NewMat()
	defer result.Close()
	gocv.MatchTemplate(sourceGray, scaled, &result, gocv.TmCcoeffNormed, gocv.NewMat())

	_, maxVal, _, maxLoc := gocv.MinMaxLoc(result)

	return &candidate{
		conf:  float64(maxVal),
		loc:   Point{X: maxLoc.X, Y: maxLoc.Y},
		scale: scale,
		w:     w,
		h:     h,
	}
}

// better 判断候选 a 是否优于当前最佳 b。
// 过线的候选永远优于未过线的（补偿只在两者同侧时参与比较，
// 不能把整体结果从命中变成未命中）。原始置信度相差超过 Boost 时
// 直接比较原始值；近似相等时对非 1.0 尺度的候选加 Boost 补偿
// 重采样损失，仍然相等则取更接近 1.0 的尺度。
func (m *MultiScaleMatcher) better(a, b *candidate) bool {
	if b == nil {
		return true
	}

	aOK := a.conf >= m.params.Threshold
	bOK := b.conf >= m.params.Threshold
	if aOK != bOK {
		return aOK
	}

	diff := a.conf - b.conf
	if math.Abs(diff) > m.params.Boost {
		return diff > 0
	}

	ba := a.conf + m.boostFor(a.scale)
	bb := b.conf + m.boostFor(b.scale)
	if ba != bb {
		return ba > bb
	}
	return math.Abs(a.scale-1.0) < math.Abs(b.scale-1.0)
}

func (m *MultiScaleMatcher) boostFor(scale float64) float64 {
	if scale == 1.0 {
		return 0
	}
	return m.params.Boost
}
