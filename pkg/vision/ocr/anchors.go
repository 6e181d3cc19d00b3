package ocr

import (
	"fmt"
	"strings"
	"unicode"
)

// AnchorNotFoundError 直接匹配与位置回退均未找到锚点
type AnchorNotFoundError struct {
	Target string
}

func (e *AnchorNotFoundError) Error() string {
	return fmt.Sprintf("未找到文字锚点: %s", e.Target)
}

// PairFallback 成对锚点的位置回退策略。
//
// 这是针对固定界面布局的启发式：LOW/HIGH 总是成对出现，布局稳定时
// HIGH 在识别顺序中位于 LOW 之后固定的词数处。识别噪声导致直接匹配
// 失败时，按位置取词可以换取可用性，但不保证正确性——它不是通用的
// 文本理解，布局变化时会失效。
type PairFallback struct {
	// Companion 同组出现的另一个锚点词（找 HIGH 时为 "LOW"）
	Companion string
	// Offset 目标词在 Companion 之后的非空词数
	Offset int
	// Ordinal Companion 也未找到时，目标词在全部非空词中的序号（从 1 开始）
	Ordinal int
}

// FindAnchor 在锚点列表中查找目标文字（不区分大小写的子串匹配）。
// 未找到返回 nil。
func FindAnchor(anchors []TextAnchor, target string) *TextAnchor {
	if target == "" {
		return nil
	}
	want := strings.ToLower(target)

	for i := range anchors {
		text := strings.ToLower(anchors[i].Text)
		if strings.Contains(text, want) {
			return &anchors[i]
		}
	}
	return nil
}

// FindAnchorWithFallback 查找目标锚点，直接匹配失败时按 PairFallback
// 的位置策略回退。回退候选必须通过 looksLikeAnchor 校验，否则视为
// 布局异常，返回 AnchorNotFoundError 而不是冒险误点。
func FindAnchorWithFallback(anchors []TextAnchor, target string, fb PairFallback) (*TextAnchor, error) {
	if a := FindAnchor(anchors, target); a != nil {
		return a, nil
	}

	tokens := nonEmpty(anchors)

	// 回退一：目标词在同组锚点之后的固定位置
	if fb.Companion != "" && fb.Offset > 0 {
		if idx := indexOf(tokens, fb.Companion); idx >= 0 {
			pos := idx + fb.Offset
			if pos < len(tokens) && looksLikeAnchor(tokens[pos].Text) {
				return &tokens[pos], nil
			}
			// 同组锚点在场但目标位置异常，布局假设不成立
			return nil, &AnchorNotFoundError{Target: target}
		}
	}

	// 回退二：按全局序号取词
	if fb.Ordinal > 0 && fb.Ordinal <= len(tokens) {
		candidate := tokens[fb.Ordinal-1]
		if looksLikeAnchor(candidate.Text) {
			return &candidate, nil
		}
	}

	return nil, &AnchorNotFoundError{Target: target}
}

// nonEmpty 过滤空白词（识别阶段已丢弃，双保险）
func nonEmpty(anchors []TextAnchor) []TextAnchor {
	result := make([]TextAnchor, 0, len(anchors))
	for _, a := range anchors {
		if strings.TrimSpace(a.Text) != "" {
			result = append(result, a)
		}
	}
	return result
}

// indexOf 返回第一个包含目标子串的词下标，未找到返回 -1
func indexOf(anchors []TextAnchor, target string) int {
	want := strings.ToLower(target)
	for i := range anchors {
		if strings.Contains(strings.ToLower(anchors[i].Text), want) {
			return i
		}
	}
	return -1
}

// looksLikeAnchor 锚点词只应包含字母。出现数字说明该位置是数值
// 读数而不是标签，不能当作锚点使用。
func looksLikeAnchor(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	for _, r := range text {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
