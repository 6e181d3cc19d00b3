package cv

import "fmt"

// TemplateLoadError 模板图像缺失或不可读。
// 仅导致当前操作失败，不影响进程。
type TemplateLoadError struct {
	Filename string
	Err      error
}

func (e *TemplateLoadError) Error() string {
	return fmt.Sprintf("无法加载模板图像: %s: %v", e.Filename, e.Err)
}

func (e *TemplateLoadError) Unwrap() error {
	return e.Err
}

// NotFoundError 所有尺度均未达到接受阈值。
// BestConfidence 记录实测最高置信度，便于诊断。
type NotFoundError struct {
	Template       string
	BestConfidence float64
	Threshold      float64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("模板匹配未达阈值: %s (最高置信度 %.3f < %.2f)",
		e.Template, e.BestConfidence, e.Threshold)
}

// ImageSizeError 搜索图像尺寸大于源图像
type ImageSizeError struct {
	SourceSize Size
	SearchSize Size
}

func (e *ImageSizeError) Error() string {
	return fmt.Sprintf("模板尺寸 %dx%d 大于源图像 %dx%d",
		e.SearchSize.Width, e.SearchSize.Height,
		e.SourceSize.Width, e.SourceSize.Height)
}
