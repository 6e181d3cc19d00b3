package screen

import (
	"image"

	"github.com/vocalpilot/vocalpilot/pkg/auto"
)

// CaptureMeta 截图元信息：截图像素相对请求区域的缩放与偏移。
// 匹配结果在截图像素空间，点击之前要换算回屏幕坐标。
type CaptureMeta struct {
	ScaleX  float64
	ScaleY  float64
	OffsetX int
	OffsetY int
}

// BuildCaptureMeta 根据请求区域与实际截图尺寸构建元信息
func BuildCaptureMeta(region *auto.Region, img image.Image) CaptureMeta {
	bounds := img.Bounds()
	imgW := bounds.Dx()
	imgH := bounds.Dy()

	expectedW, expectedH := GetScreenSize()
	offsetX, offsetY := 0, 0
	if region != nil {
		expectedW = region.Width
		expectedH = region.Height
		offsetX = region.X
		offsetY = region.Y
	}

	scaleX := 1.0
	if expectedW > 0 && imgW > 0 {
		scaleX = float64(imgW) / float64(expectedW)
	}
	scaleY := 1.0
	if expectedH > 0 && imgH > 0 {
		scaleY = float64(imgH) / float64(expectedH)
	}

	return CaptureMeta{
		ScaleX:  scaleX,
		ScaleY:  scaleY,
		OffsetX: offsetX,
		OffsetY: offsetY,
	}
}

// ToScreen 截图坐标换算为屏幕坐标（反向缩放 + 偏移）
func (m CaptureMeta) ToScreen(p auto.Point) auto.Point {
	return auto.Point{
		X: auto.ScaleCoord(p.X, m.ScaleX) + m.OffsetX,
		Y: auto.ScaleCoord(p.Y, m.ScaleY) + m.OffsetY,
	}
}
