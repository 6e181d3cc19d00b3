package cv

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestTemplateLoadMissingFile(t *testing.T) {
	tmpl := NewTemplate("pitch", filepath.Join(t.TempDir(), "不存在.png"))
	defer tmpl.Close()

	source := makeTexture(100, 100)
	defer source.Close()

	_, err := tmpl.MatchIn(source)

	var loadErr *TemplateLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("期望 TemplateLoadError, 实际 %v", err)
	}
}

func TestTemplateMatchIn(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "knob.png")

	patch := makeTexture(40, 30)
	defer patch.Close()
	if err := WriteImage(templatePath, patch); err != nil {
		t.Fatalf("写入测试模板失败: %v", err)
	}

	source := makeGradient(240, 180)
	defer source.Close()
	embed(source, patch, 80, 60)

	tmpl := NewTemplate("knob", templatePath)
	defer tmpl.Close()

	result, err := tmpl.MatchIn(source)
	if err != nil {
		t.Fatalf("匹配失败: %v", err)
	}
	if !result.Accepted {
		t.Fatalf("期望接受匹配, 置信度=%.3f", result.Confidence)
	}
	if result.Location.X != 80 || result.Location.Y != 60 {
		t.Errorf("期望位置 (80, 60), 实际 (%d, %d)", result.Location.X, result.Location.Y)
	}

	// 二次匹配走缓存
	result2, err := tmpl.MatchIn(source)
	if err != nil {
		t.Fatalf("缓存匹配失败: %v", err)
	}
	if result2.Location != result.Location {
		t.Errorf("缓存匹配位置不一致: %+v vs %+v", result2.Location, result.Location)
	}
}

func TestTemplateMatchInWithOverridesThreshold(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "knob.png")

	patch := makeTexture(40, 30)
	defer patch.Close()
	if err := WriteImage(templatePath, patch); err != nil {
		t.Fatalf("写入测试模板失败: %v", err)
	}

	// 源图不含模板, 默认阈值下不命中
	source := makeGradient(200, 150)
	defer source.Close()

	tmpl := NewTemplate("knob", templatePath)
	defer tmpl.Close()

	var nf *NotFoundError
	if _, err := tmpl.MatchIn(source); !errors.As(err, &nf) {
		t.Fatalf("默认阈值下期望 NotFoundError, 实际 %v", err)
	}

	// 覆盖到极低阈值后同一候选被接受
	params := DefaultMultiScaleParams()
	params.Threshold = -1
	result, err := tmpl.MatchInWith(source, params)
	if err != nil {
		t.Fatalf("覆盖阈值后匹配失败: %v", err)
	}
	if !result.Accepted {
		t.Errorf("覆盖阈值后期望接受匹配, 置信度=%.3f", result.Confidence)
	}
}

func TestTemplateNotFoundCarriesName(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "bypass_on.png")

	patch := makeTexture(40, 30)
	defer patch.Close()
	if err := WriteImage(templatePath, patch); err != nil {
		t.Fatalf("写入测试模板失败: %v", err)
	}

	// 源图不含模板
	source := makeGradient(200, 150)
	defer source.Close()

	tmpl := NewTemplate("bypass_on", templatePath)
	defer tmpl.Close()

	_, err := tmpl.MatchIn(source)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("期望 NotFoundError, 实际 %v", err)
	}
	if nf.Template != "bypass_on" {
		t.Errorf("期望错误携带模板名 bypass_on, 实际 %q", nf.Template)
	}
}
