// Package ocr 提供文字识别与文字锚点定位
package ocr

import "image"

// Point 表示二维坐标点
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TextAnchor 一个识别出的词及其边界框（识别图像坐标空间）。
// 空白词在识别阶段即被丢弃。
type TextAnchor struct {
	Text       string  `json:"text"`
	Left       int     `json:"left"`
	Top        int     `json:"top"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Confidence float64 `json:"confidence"`
}

// Center 返回边界框中心点
func (a TextAnchor) Center() Point {
	return Point{
		X: a.Left + a.Width/2,
		Y: a.Top + a.Height/2,
	}
}

// Engine 文字识别引擎
type Engine interface {
	// Recognize 识别图像中的所有非空词及边界框。
	// 空图像或无文字返回空列表，不是错误。
	Recognize(img image.Image) ([]TextAnchor, error)
	// Close 释放引擎资源
	Close() error
}

// EngineKind 引擎类型
type EngineKind string

const (
	// EngineTesseract Tesseract（默认，提供词级边界框）
	EngineTesseract EngineKind = "tesseract"
	// EnginePaddle PaddleOCR（中文插件皮肤）
	EnginePaddle EngineKind = "paddle"
)

// Config 识别引擎配置
type Config struct {
	// Engine 引擎类型
	Engine EngineKind
	// Language 识别语言（tesseract: "eng"）
	Language string
	// TessdataDir tessdata 目录，空则使用系统默认
	TessdataDir string
	// Whitelist 限定字符集，空则不限制
	Whitelist string

	// PaddleOCR 专用
	OnnxRuntimeLibPath string
	DetModelPath       string
	RecModelPath       string
	DictPath           string
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		Engine:   EngineTesseract,
		Language: "eng",
	}
}

// New 按配置创建识别引擎
func New(cfg Config) (Engine, error) {
	switch cfg.Engine {
	case EnginePaddle:
		return NewPaddleEngine(cfg)
	default:
		return NewTesseractEngine(cfg)
	}
}
