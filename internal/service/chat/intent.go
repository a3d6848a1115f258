package chat

import "strings"

// changeIndicators 助手回复中暗示计划变更的关键词
var changeIndicators = []string{
	"suggest", "recommend", "modify", "change", "adjust", "update",
	"instead of", "better to", "consider", "try", "switch",
	"add", "remove", "replace", "increase", "decrease",
}

// SuggestsWorkoutChange 判断助手回复是否暗示了计划变更
// 命中任意关键词即为真，大小写不敏感
func SuggestsWorkoutChange(aiResponse string) bool {
	lower := strings.ToLower(aiResponse)
	for _, indicator := range changeIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}
