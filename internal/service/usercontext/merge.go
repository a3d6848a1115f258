// Package usercontext 维护随对话演进的用户上下文段落
// 所有函数都是纯函数，持久化由调用方负责
package usercontext

import (
	"fmt"
	"strings"

	"github.com/ashwinyue/fit-coach/internal/model"
)

// Heading 上下文段落的固定标题行
const Heading = "## Dynamic User Context"

// categoryOrder 固定的分类渲染顺序
var categoryOrder = []string{"Preferences", "Constraints", "Goals", "Dislikes", "Injuries", "Schedule"}

// categorySet 有序去重集合
type categorySet struct {
	seen  map[string]struct{}
	items []string
}

func newCategorySet() *categorySet {
	return &categorySet{seen: make(map[string]struct{})}
}

func (s *categorySet) add(value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if _, ok := s.seen[value]; ok {
		return
	}
	s.seen[value] = struct{}{}
	s.items = append(s.items, value)
}

// MergeParagraph 把一个增量并入已有上下文段落
// 合并是集合并集：同一 bullet 不会重复；空增量原样返回旧段落
// Notes 整体覆盖而不是追加
func MergeParagraph(previous string, delta *model.ContextDelta) string {
	if delta.IsEmpty() {
		return previous
	}

	sections := make(map[string]*categorySet, len(categoryOrder))
	for _, cat := range categoryOrder {
		sections[cat] = newCategorySet()
	}

	// 解析旧段落中形如 "- Category: value" 的 bullet
	for _, line := range strings.Split(previous, "\n") {
		trimmed := strings.TrimSpace(line)
		cat, value, ok := parseBullet(trimmed)
		if !ok {
			continue
		}
		if set, known := sections[cat]; known {
			set.add(value)
		}
	}

	// 并入增量
	for _, v := range delta.Preferences {
		sections["Preferences"].add(v)
	}
	for _, v := range delta.Constraints {
		sections["Constraints"].add(v)
	}
	for _, v := range delta.Goals {
		sections["Goals"].add(v)
	}
	for _, v := range delta.Dislikes {
		sections["Dislikes"].add(v)
	}
	for _, v := range delta.Injuries {
		sections["Injuries"].add(v)
	}
	for _, v := range delta.Schedule {
		sections["Schedule"].add(v)
	}

	lines := []string{Heading}
	for _, cat := range categoryOrder {
		for _, v := range sections[cat].items {
			lines = append(lines, fmt.Sprintf("- %s: %s", cat, v))
		}
	}
	if notes := strings.TrimSpace(delta.Notes); notes != "" {
		lines = append(lines, fmt.Sprintf("- Notes: %s", notes))
	}

	return strings.Join(lines, "\n")
}

// parseBullet 解析 "- Category: value" 形式的行
// 分类名大小写敏感地匹配固定分类表，由调用方完成
func parseBullet(line string) (category, value string, ok bool) {
	rest, found := strings.CutPrefix(line, "- ")
	if !found {
		rest, found = strings.CutPrefix(line, "• ")
		if !found {
			return "", "", false
		}
	}
	category, value, found = strings.Cut(rest, ":")
	if !found {
		return "", "", false
	}
	category = strings.TrimSpace(category)
	value = strings.TrimSpace(value)
	if category == "" || value == "" {
		return "", "", false
	}
	return category, value, true
}
