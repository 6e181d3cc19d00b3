package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"
	"sync"
	"time"

	"github.com/otiai10/gosseract/v2"

	"github.com/vocalpilot/vocalpilot/internal/logger"
)

// TesseractEngine 基于 Tesseract 的识别引擎，提供词级边界框。
type TesseractEngine struct {
	client *gosseract.Client
	mu     sync.Mutex
}

// NewTesseractEngine 创建 Tesseract 引擎
func NewTesseractEngine(cfg Config) (*TesseractEngine, error) {
	client := gosseract.NewClient()

	if cfg.TessdataDir != "" {
		if err := client.SetTessdataPrefix(cfg.TessdataDir); err != nil {
			client.Close()
			return nil, fmt.Errorf("设置 tessdata 目录失败: %w", err)
		}
	}

	lang := cfg.Language
	if lang == "" {
		lang = "eng"
	}
	if err := client.SetLanguage(lang); err != nil {
		client.Close()
		return nil, fmt.Errorf("设置识别语言失败: %w", err)
	}

	// 插件界面上的锚点词（LOW/HIGH 等）不是英文常用词，
	// 关闭词典纠错避免被"纠正"成别的单词
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")

	if cfg.Whitelist != "" {
		if err := client.SetWhitelist(cfg.Whitelist); err != nil {
			client.Close()
			return nil, fmt.Errorf("设置字符白名单失败: %w", err)
		}
	}

	logger.Info("Tesseract 引擎初始化成功 (lang=%s)", lang)

	return &TesseractEngine{client: client}, nil
}

// Recognize 识别图像中的所有非空词及边界框
func (e *TesseractEngine) Recognize(img image.Image) ([]TextAnchor, error) {
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

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("编码识别图像失败: %w", err)
	}

	// 插件面板上的文字是稀疏分布的短词
	if err := e.client.SetPageSegMode(gosseract.PSM_SPARSE_TEXT); err != nil {
		return nil, fmt.Errorf("设置页面分割模式失败: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("设置识别图像失败: %w", err)
	}

	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		elapsed := float64(time.Since(startTime).Milliseconds())
		logger.LogEvent("OCR", false, elapsed, "识别失败")
		return nil, fmt.Errorf("文字识别失败: %w", err)
	}

	var anchors []TextAnchor
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		anchors = append(anchors, TextAnchor{
			Text:       text,
			Left:       box.Box.Min.X,
			Top:        box.Box.Min.Y,
			Width:      box.Box.Dx(),
			Height:     box.Box.Dy(),
			Confidence: box.Confidence,
		})
	}

	elapsed := float64(time.Since(startTime).Milliseconds())
	logger.LogEvent("OCR", true, elapsed, fmt.Sprintf("识别到 %d 个词", len(anchors)))

	return anchors, nil
}

// Close 释放引擎资源
func (e *TesseractEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.client != nil {
		err := e.client.Close()
		e.client = nil
		return err
	}
	return nil
}
