package usercontext

import (
	"fmt"
	"strings"

	"github.com/ashwinyue/fit-coach/internal/model"
)

// 反馈动作
const (
	ActionLike          = "like"
	ActionFavorite      = "favorite"
	ActionDislike       = "dislike"
	ActionDeleteForever = "delete_forever"
	ActionSkip          = "skip"
)

// ParseDelta 解析聊天模型输出的上下文块
// 块内每行形如 "preferences: a, b"，键不区分大小写，值按逗号拆分
// 没有任何可识别内容时返回空增量
func ParseDelta(block string) *model.ContextDelta {
	delta := &model.ContextDelta{}
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		key, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		rest = strings.TrimSpace(rest)
		if rest == "" || strings.EqualFold(rest, "none") {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "preferences":
			delta.Preferences = append(delta.Preferences, splitValues(rest)...)
		case "constraints":
			delta.Constraints = append(delta.Constraints, splitValues(rest)...)
		case "goals":
			delta.Goals = append(delta.Goals, splitValues(rest)...)
		case "dislikes":
			delta.Dislikes = append(delta.Dislikes, splitValues(rest)...)
		case "injuries":
			delta.Injuries = append(delta.Injuries, splitValues(rest)...)
		case "schedule":
			delta.Schedule = append(delta.Schedule, splitValues(rest)...)
		case "notes":
			delta.Notes = rest
		}
	}
	return delta
}

func splitValues(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DeltaForAction 把针对某个动作的练习反馈映射为上下文增量
// skip 以及未知动作不产生增量，返回 nil
func DeltaForAction(action, exerciseName, reason string) *model.ContextDelta {
	exerciseName = strings.TrimSpace(exerciseName)
	if exerciseName == "" {
		return nil
	}
	switch action {
	case ActionLike, ActionFavorite:
		return &model.ContextDelta{
			Preferences: []string{fmt.Sprintf("Enjoys %s", exerciseName)},
		}
	case ActionDislike, ActionDeleteForever:
		entry := exerciseName
		if reason = strings.TrimSpace(reason); reason != "" {
			entry = fmt.Sprintf("%s (%s)", exerciseName, reason)
		}
		return &model.ContextDelta{
			Dislikes: []string{entry},
		}
	default:
		return nil
	}
}
