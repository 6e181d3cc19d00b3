package driver

import (
	"fmt"
	"image"
	"math"
	"path/filepath"
	"sync"

	"gocv.io/x/gocv"

	"github.com/vocalpilot/vocalpilot/internal/logger"
	"github.com/vocalpilot/vocalpilot/pkg/auto"
	"github.com/vocalpilot/vocalpilot/pkg/auto/screen"
	"github.com/vocalpilot/vocalpilot/pkg/control"
	"github.com/vocalpilot/vocalpilot/pkg/vision/cv"
	"github.com/vocalpilot/vocalpilot/pkg/vision/ocr"
)

// Location 控件定位结果
type Location struct {
	// Click 屏幕坐标点击点
	Click auto.Point
	// Match 模板匹配结果
	Match *cv.MatchResult
	// Anchor 命中的文字锚点, 无锚点控件为 nil
	Anchor *ocr.TextAnchor
}

// Locator 控件定位抽象，测试用假实现替换
type Locator interface {
	// Locate 在窗口截图中定位控件并推导屏幕点击点,
	// 可选项支持单次覆盖阈值、限定搜索区域与附加点击偏移
	Locate(img image.Image, region *auto.Region, desc *control.Descriptor, opts ...auto.Option) (*Location, error)
	// DetectToggle 判断开关控件当前状态
	DetectToggle(img image.Image, desc *control.Descriptor) (on bool, err error)
	// ReadValue 读取控件当前显示数值
	ReadValue(img image.Image, region *auto.Region, desc *control.Descriptor) (float64, error)
	// Close 释放模板与识别引擎资源
	Close() error
}

// VisionLocatorConfig 视觉定位器配置
type VisionLocatorConfig struct {
	TemplatesDir string
	Params       cv.MultiScaleParams
	OCR          ocr.Config
	DebugDir     string
	Debug        bool
}

// VisionLocator 基于模板匹配与文字识别的定位器
type VisionLocator struct {
	cfg    VisionLocatorConfig
	engine ocr.Engine

	mu        sync.Mutex
	templates map[string]*cv.Template

	valueMu     sync.Mutex
	valueEngine ocr.Engine
}

// NewVisionLocator 创建视觉定位器。锚点识别引擎立即创建，
// 数值读取引擎按需创建。
func NewVisionLocator(cfg VisionLocatorConfig) (*VisionLocator, error) {
	engine, err := ocr.New(cfg.OCR)
	if err != nil {
		return nil, fmt.Errorf("创建识别引擎失败: %w", err)
	}
	return &VisionLocator{
		cfg:       cfg,
		engine:    engine,
		templates: make(map[string]*cv.Template),
	}, nil
}

// template 获取缓存的模板, 首次使用时创建
func (l *VisionLocator) template(filename string) *cv.Template {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t, ok := l.templates[filename]; ok {
		return t
	}
	t := cv.NewTemplate(filename, filepath.Join(l.cfg.TemplatesDir, filename),
		cv.WithMatchParams(l.cfg.Params))
	l.templates[filename] = t
	return t
}

// Locate 定位控件。模板未达阈值时不产生任何点击点。
func (l *VisionLocator) Locate(img image.Image, region *auto.Region, desc *control.Descriptor, opts ...auto.Option) (*Location, error) {
	o := auto.ApplyOptions(opts...)
	params := l.cfg.Params
	if o.Threshold > 0 {
		params.Threshold = o.Threshold
	}

	mat, err := cv.ImageToMat(img)
	if err != nil {
		return nil, err
	}
	defer mat.Close()
	gray := cv.ToGray(mat)
	defer gray.Close()

	// 限定搜索区域时在子图中匹配, 坐标换算回整图
	search := gray
	offX, offY := 0, 0
	if o.Region != nil {
		sub := cv.CropImage(gray, o.Region.X, o.Region.Y,
			o.Region.X+o.Region.Width, o.Region.Y+o.Region.Height)
		defer sub.Close()
		search = sub
		offX, offY = o.Region.X, o.Region.Y
	}

	result, err := l.matchControl(search, desc, params)
	if l.cfg.Debug && result != nil {
		if path, derr := cv.SaveDebugMatch(l.cfg.DebugDir, desc.ID, search, result); derr == nil {
			logger.Debug("匹配可视化已保存: %s", path)
		}
	}
	if err != nil {
		return nil, err
	}

	clickX := offX + result.Location.X + int(math.Round(desc.Click.XFrac*float64(result.TemplateSize.Width)))
	clickY := offY + result.Location.Y + int(math.Round(desc.Click.YFrac*float64(result.TemplateSize.Height)))

	var anchor *ocr.TextAnchor
	if desc.Anchor != "" {
		anchors, err := l.engine.Recognize(img)
		if err != nil {
			return nil, fmt.Errorf("锚点识别失败: %w", err)
		}
		anchor, err = ocr.FindAnchorWithFallback(anchors, desc.Anchor, desc.AnchorFallback)
		if err != nil {
			return nil, err
		}
		// 同形控件横向排列, 锚点决定横坐标, 模板决定纵坐标
		clickX = anchor.Center().X
	}

	clickX += o.ClickOffset.X
	clickY += o.ClickOffset.Y

	meta := screen.BuildCaptureMeta(region, img)
	screenPt := meta.ToScreen(auto.Point{X: clickX, Y: clickY})

	logger.Debug("控件 %s 定位: 图像(%d,%d) -> 屏幕(%d,%d), 置信度 %.3f @%.1fx",
		desc.ID, clickX, clickY, screenPt.X, screenPt.Y, result.Confidence, result.Scale)

	return &Location{Click: screenPt, Match: result, Anchor: anchor}, nil
}

// matchControl 按控件类型匹配模板。开关控件尝试开/关两张,
// 取置信度较高的命中。
func (l *VisionLocator) matchControl(gray gocv.Mat, desc *control.Descriptor, params cv.MultiScaleParams) (*cv.MatchResult, error) {
	if desc.Kind == control.KindToggle {
		onResult, onErr := l.template(desc.OnTemplate).MatchInWith(gray, params)
		offResult, offErr := l.template(desc.OffTemplate).MatchInWith(gray, params)

		onOK := onErr == nil && onResult != nil && onResult.Accepted
		offOK := offErr == nil && offResult != nil && offResult.Accepted
		switch {
		case onOK && offOK:
			if onResult.Confidence >= offResult.Confidence {
				return onResult, nil
			}
			return offResult, nil
		case onOK:
			return onResult, nil
		case offOK:
			return offResult, nil
		case onErr != nil:
			return onResult, onErr
		default:
			return offResult, offErr
		}
	}
	return l.matchNumeric(gray, desc, params)
}

func (l *VisionLocator) matchNumeric(gray gocv.Mat, desc *control.Descriptor, params cv.MultiScaleParams) (*cv.MatchResult, error) {
	return l.template(desc.Template).MatchInWith(gray, params)
}

// DetectToggle 比较开/关两张模板的匹配置信度判断状态。
// 两者均未达阈值时报错。
func (l *VisionLocator) DetectToggle(img image.Image, desc *control.Descriptor) (bool, error) {
	mat, err := cv.ImageToMat(img)
	if err != nil {
		return false, err
	}
	defer mat.Close()
	gray := cv.ToGray(mat)
	defer gray.Close()

	onResult, onErr := l.template(desc.OnTemplate).MatchIn(gray)
	offResult, offErr := l.template(desc.OffTemplate).MatchIn(gray)

	onOK := onErr == nil && onResult != nil && onResult.Accepted
	offOK := offErr == nil && offResult != nil && offResult.Accepted

	switch {
	case onOK && offOK:
		// 两张都命中时取置信度高者
		return onResult.Confidence >= offResult.Confidence, nil
	case onOK:
		return true, nil
	case offOK:
		return false, nil
	default:
		return false, fmt.Errorf("开关 %s 状态无法判断: 开/关模板均未命中", desc.ID)
	}
}

// ReadValue 截取控件附近区域做数字识别, 读取当前显示值
func (l *VisionLocator) ReadValue(img image.Image, region *auto.Region, desc *control.Descriptor) (float64, error) {
	mat, err := cv.ImageToMat(img)
	if err != nil {
		return 0, err
	}
	defer mat.Close()
	gray := cv.ToGray(mat)
	defer gray.Close()

	result, err := l.matchNumeric(gray, desc, l.cfg.Params)
	if err != nil {
		return 0, err
	}

	// 取模板区域及其下方一个模板高度, 数值显示通常紧邻控件
	xMin := result.Location.X
	yMin := result.Location.Y
	xMax := xMin + result.TemplateSize.Width
	yMax := yMin + 2*result.TemplateSize.Height
	crop := cv.CropImage(gray, xMin, yMin, xMax, yMax)
	defer crop.Close()

	cropImg, err := cv.MatToImage(crop)
	if err != nil {
		return 0, err
	}

	engine, err := l.numberEngine()
	if err != nil {
		return 0, err
	}
	anchors, err := engine.Recognize(cropImg)
	if err != nil {
		return 0, fmt.Errorf("数值识别失败: %w", err)
	}

	return parseDisplayedValue(anchors)
}

// numberEngine 数值读取专用引擎, 字符集限定为数字
func (l *VisionLocator) numberEngine() (ocr.Engine, error) {
	l.valueMu.Lock()
	defer l.valueMu.Unlock()

	if l.valueEngine != nil {
		return l.valueEngine, nil
	}
	cfg := l.cfg.OCR
	cfg.Whitelist = "0123456789.-+"
	engine, err := ocr.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("创建数值识别引擎失败: %w", err)
	}
	l.valueEngine = engine
	return engine, nil
}

// Close 释放全部资源
func (l *VisionLocator) Close() error {
	l.mu.Lock()
	for _, t := range l.templates {
		t.Close()
	}
	l.templates = make(map[string]*cv.Template)
	l.mu.Unlock()

	l.valueMu.Lock()
	if l.valueEngine != nil {
		l.valueEngine.Close()
		l.valueEngine = nil
	}
	l.valueMu.Unlock()

	return l.engine.Close()
}
