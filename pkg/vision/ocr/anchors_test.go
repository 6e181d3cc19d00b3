package ocr

import (
	"errors"
	"testing"
)

func anchor(text string, left int) TextAnchor {
	return TextAnchor{Text: text, Left: left, Top: 10, Width: 40, Height: 14}
}

func TestFindAnchor(t *testing.T) {
	anchors := []TextAnchor{
		anchor("LOW", 20),
		anchor("-3.5", 80),
		anchor("HIGH", 140),
	}

	tests := []struct {
		name     string
		target   string
		wantLeft int
		wantNil  bool
	}{
		{name: "精确匹配", target: "LOW", wantLeft: 20},
		{name: "不区分大小写", target: "high", wantLeft: 140},
		{name: "子串匹配", target: "hig", wantLeft: 140},
		{name: "未找到", target: "MID", wantNil: true},
		{name: "空目标", target: "", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindAnchor(anchors, tt.target)
			if tt.wantNil {
				if got != nil {
					t.Errorf("FindAnchor(%q) = %+v, 期望 nil", tt.target, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("FindAnchor(%q) = nil, 期望命中", tt.target)
			}
			if got.Left != tt.wantLeft {
				t.Errorf("FindAnchor(%q).Left = %d, 期望 %d", tt.target, got.Left, tt.wantLeft)
			}
		})
	}
}

func TestFindAnchorWithFallback(t *testing.T) {
	highFallback := PairFallback{Companion: "LOW", Offset: 2, Ordinal: 3}

	tests := []struct {
		name     string
		anchors  []TextAnchor
		target   string
		fb       PairFallback
		wantLeft int
		wantErr  bool
	}{
		{
			name: "直接匹配优先",
			anchors: []TextAnchor{
				anchor("LOW", 20), anchor("mid", 80), anchor("HIGH", 140),
			},
			target:   "HIGH",
			fb:       highFallback,
			wantLeft: 140,
		},
		{
			name: "HIGH 识别失败时取 LOW 之后第二个词",
			anchors: []TextAnchor{
				anchor("LOW", 20), anchor("mid", 80), anchor("HlGH", 140),
			},
			target:   "HIGH",
			fb:       highFallback,
			wantLeft: 140,
		},
		{
			name: "回退位置是数字时拒绝",
			anchors: []TextAnchor{
				anchor("LOW", 20), anchor("mid", 80), anchor("-3.5", 140),
			},
			target:  "HIGH",
			fb:      highFallback,
			wantErr: true,
		},
		{
			name: "LOW 也缺失时按全局序号",
			anchors: []TextAnchor{
				anchor("LQW", 20), anchor("mid", 80), anchor("HlGH", 140),
			},
			target:   "HIGH",
			fb:       highFallback,
			wantLeft: 140,
		},
		{
			name: "序号越界",
			anchors: []TextAnchor{
				anchor("LQW", 20),
			},
			target:  "HIGH",
			fb:      highFallback,
			wantErr: true,
		},
		{
			name:    "空列表",
			anchors: nil,
			target:  "HIGH",
			fb:      highFallback,
			wantErr: true,
		},
		{
			name: "无回退策略时直接失败",
			anchors: []TextAnchor{
				anchor("LOW", 20),
			},
			target:  "HIGH",
			fb:      PairFallback{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindAnchorWithFallback(tt.anchors, tt.target, tt.fb)
			if tt.wantErr {
				var nf *AnchorNotFoundError
				if !errors.As(err, &nf) {
					t.Fatalf("期望 AnchorNotFoundError, 实际 err=%v, got=%+v", err, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("查找失败: %v", err)
			}
			if got.Left != tt.wantLeft {
				t.Errorf("命中 %+v, 期望 Left=%d", got, tt.wantLeft)
			}
		})
	}
}

func TestLooksLikeAnchor(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"LOW", true},
		{"High", true},
		{"-3.5", false},
		{"12", false},
		{"L0W", false},
		{"", false},
		{"  ", false},
	}

	for _, tt := range tests {
		if got := looksLikeAnchor(tt.text); got != tt.want {
			t.Errorf("looksLikeAnchor(%q) = %v, 期望 %v", tt.text, got, tt.want)
		}
	}
}

func TestAnchorCenter(t *testing.T) {
	a := TextAnchor{Left: 100, Top: 40, Width: 60, Height: 20}
	c := a.Center()
	if c.X != 130 || c.Y != 50 {
		t.Errorf("Center() = (%d, %d), 期望 (130, 50)", c.X, c.Y)
	}
}
