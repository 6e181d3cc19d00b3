package ocr

import (
	"fmt"
	"image"
	"strings"
	"sync"
	"time"

	goocr "github.com/getcharzp/go-ocr"

	"github.com/vocalpilot/vocalpilot/internal/logger"
)

// PaddleEngine 基于 PaddleOCR (ONNX) 的识别引擎。
// 返回的是文本行框而不是词框，适合中文插件皮肤。
type PaddleEngine struct {
	engine goocr.Engine
	mu     sync.Mutex
}

// NewPaddleEngine 创建 PaddleOCR 引擎
func NewPaddleEngine(cfg Config) (*PaddleEngine, error) {
	ocrConfig := goocr.Config{
		OnnxRuntimeLibPath: cfg.OnnxRuntimeLibPath,
		DetModelPath:       cfg.DetModelPath,
		RecModelPath:       cfg.RecModelPath,
		DictPath:           cfg.DictPath,
	}

	engine, err := goocr.NewPaddleOcrEngine(ocrConfig)
	if err != nil {
		return nil, fmt.Errorf("创建 PaddleOCR 引擎失败: %w", err)
	}

	logger.Info("PaddleOCR 引擎初始化成功")

	return &PaddleEngine{engine: engine}, nil
}

// Recognize 识别图像中的所有非空文本行及边界框
func (e *PaddleEngine) Recognize(img image.Image) ([]TextAnchor, error) {
	if img == nil {
		return nil, nil
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	startTime := time.Now()

	results, err := e.engine.RunOCR(img)
	if err != nil {
		elapsed := float64(time.Since(startTime).Milliseconds())
		logger.LogEvent("OCR", false, elapsed, "识别失败")
		return nil, fmt.Errorf("文字识别失败: %w", err)
	}

	var anchors []TextAnchor
	for _, result := range results {
		text := strings.TrimSpace(result.Text)
		if text == "" {
			continue
		}
		// go-ocr Box: [4]int{x1, y1, x2, y2}
		box := result.Box
		anchors = append(anchors, TextAnchor{
			Text:       text,
			Left:       box[0],
			Top:        box[1],
			Width:      box[2] - box[0],
			Height:     box[3] - box[1],
			Confidence: float64(result.Score),
		})
	}

	elapsed := float64(time.Since(startTime).Milliseconds())
	logger.LogEvent("OCR", true, elapsed, fmt.Sprintf("识别到 %d 个文本", len(anchors)))

	return anchors, nil
}

// Close 释放引擎资源
func (e *PaddleEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.engine != nil {
		e.engine.Destroy()
		e.engine = nil
	}
	return nil
}
