package screen

import (
	"image"
	"testing"

	"github.com/vocalpilot/vocalpilot/pkg/auto"
)

func TestBuildCaptureMetaWithRegion(t *testing.T) {
	// 请求 100x100 区域, 截图为 200x200 (视网膜屏双倍像素)
	region := &auto.Region{X: 10, Y: 20, Width: 100, Height: 100}
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))

	meta := BuildCaptureMeta(region, img)
	if meta.ScaleX != 2.0 || meta.ScaleY != 2.0 {
		t.Errorf("缩放 = (%v, %v), want (2, 2)", meta.ScaleX, meta.ScaleY)
	}
	if meta.OffsetX != 10 || meta.OffsetY != 20 {
		t.Errorf("偏移 = (%d, %d), want (10, 20)", meta.OffsetX, meta.OffsetY)
	}

	// 截图坐标 (50, 60) -> 反向缩放为 (25, 30), 叠加区域偏移
	got := meta.ToScreen(auto.Point{X: 50, Y: 60})
	want := auto.Point{X: 35, Y: 50}
	if got != want {
		t.Errorf("ToScreen = %+v, want %+v", got, want)
	}
}

func TestBuildCaptureMetaUnityScale(t *testing.T) {
	region := &auto.Region{X: 0, Y: 0, Width: 800, Height: 600}
	img := image.NewRGBA(image.Rect(0, 0, 800, 600))

	meta := BuildCaptureMeta(region, img)
	if meta.ScaleX != 1.0 || meta.ScaleY != 1.0 {
		t.Errorf("缩放 = (%v, %v), want (1, 1)", meta.ScaleX, meta.ScaleY)
	}

	p := auto.Point{X: 123, Y: 456}
	if got := meta.ToScreen(p); got != p {
		t.Errorf("等比时 ToScreen 应为恒等变换, 实际 %+v", got)
	}
}

func TestBuildCaptureMetaAsymmetricScale(t *testing.T) {
	region := &auto.Region{X: 0, Y: 0, Width: 100, Height: 200}
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))

	meta := BuildCaptureMeta(region, img)
	if meta.ScaleX != 2.0 {
		t.Errorf("ScaleX = %v, want 2", meta.ScaleX)
	}
	if meta.ScaleY != 1.0 {
		t.Errorf("ScaleY = %v, want 1", meta.ScaleY)
	}
}
