package cv

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"time"

	"gocv.io/x/gocv"
)

// SaveDebugMatch 将匹配结果可视化后存盘：在源图上画出匹配矩形并标注
// 置信度。仅用于观测，失败不影响匹配流程。
func SaveDebugMatch(dir, name string, source gocv.Mat, result *MatchResult) (string, error) {
	if result == nil {
		return "", fmt.Errorf("没有可视化的匹配结果")
	}

	vis := gocv.NewMat()
	defer vis.Close()
	if source.Channels() == 1 {
		gocv.CvtColor(source, &vis, gocv.ColorGrayToBGR)
	} else {
		source.CopyTo(&vis)
	}

	rectColor := color.RGBA{0, 255, 0, 255}
	if !result.Accepted {
		rectColor = color.RGBA{255, 0, 0, 255}
	}

	tl := result.Rectangle.TopLeft
	br := result.Rectangle.BottomRight
	gocv.Rectangle(&vis, image.Rect(tl.X, tl.Y, br.X, br.Y), rectColor, 2)

	caption := fmt.Sprintf("%.3f @%.1fx", result.Confidence, result.Scale)
	textOrigin := image.Point{X: tl.X, Y: tl.Y - 6}
	if textOrigin.Y < 12 {
		textOrigin.Y = br.Y + 14
	}
	gocv.PutText(&vis, caption, textOrigin, gocv.FontHersheySimplex, 0.4, rectColor, 1)

	filename := filepath.Join(dir, fmt.Sprintf("%s_%s.png", name, time.Now().Format("150405.000")))
	if err := WriteImage(filename, vis); err != nil {
		return "", err
	}
	return filename, nil
}
