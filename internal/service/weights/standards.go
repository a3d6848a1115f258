// Package weights 计算每个动作的组数、次数与重量建议
// 规则路径基于体重倍数的力量标准表，AI 路径委托给聊天模型
package weights

import "strings"

// 经验等级
const (
	LevelBeginner     = "beginner"
	LevelNovice       = "novice"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// experienceMultipliers 按经验等级缩放标准重量
var experienceMultipliers = map[string]float64{
	LevelBeginner:     0.3,
	LevelNovice:       0.5,
	LevelIntermediate: 0.7,
	LevelAdvanced:     0.8,
}

// strengthStandard 中级水平（50 分位）的 1RM 参考值
// Bodyweight 为该参考值对应的基准体重
type strengthStandard struct {
	Weight     float64
	Bodyweight float64
}

// 力量标准，来源 strengthlevel.com，单位 kg
var strengthStandards = map[string]map[string]strengthStandard{
	"male": {
		"barbell squat": {Weight: 100, Bodyweight: 80},
		"barbell bench press": {Weight: 85, Bodyweight: 80},
		"barbell deadlift": {Weight: 120, Bodyweight: 80},
		"overhead press": {Weight: 55, Bodyweight: 80},
		"barbell row": {Weight: 75, Bodyweight: 80},
		"dumbbell bench press": {Weight: 35, Bodyweight: 80},
		"dumbbell shoulder press": {Weight: 25, Bodyweight: 80},
		"dumbbell row": {Weight: 30, Bodyweight: 80},
		"dumbbell bicep curl": {Weight: 15, Bodyweight: 80},
		"dumbbell tricep extension": {Weight: 12, Bodyweight: 80},
		"lat pulldown": {Weight: 60, Bodyweight: 80},
		"seated row": {Weight: 55, Bodyweight: 80},
		"leg press": {Weight: 150, Bodyweight: 80},
		"calf raise": {Weight: 80, Bodyweight: 80},
		"lateral raise": {Weight: 8, Bodyweight: 80},
		"face pull": {Weight: 20, Bodyweight: 80},
		"hammer curl": {Weight: 12, Bodyweight: 80},
		"tricep pushdown": {Weight: 25, Bodyweight: 80},
		"incline bench press": {Weight: 70, Bodyweight: 80},
		"romanian deadlift": {Weight: 100, Bodyweight: 80},
		"walking lunge": {Weight: 20, Bodyweight: 80},
	},
	"female": {
		"barbell squat": {Weight: 60, Bodyweight: 60},
		"barbell bench press": {Weight: 40, Bodyweight: 60},
		"barbell deadlift": {Weight: 80, Bodyweight: 60},
		"overhead press": {Weight: 25, Bodyweight: 60},
		"barbell row": {Weight: 40, Bodyweight: 60},
		"dumbbell bench press": {Weight: 18, Bodyweight: 60},
		"dumbbell shoulder press": {Weight: 12, Bodyweight: 60},
		"dumbbell row": {Weight: 15, Bodyweight: 60},
		"dumbbell bicep curl": {Weight: 8, Bodyweight: 60},
		"dumbbell tricep extension": {Weight: 6, Bodyweight: 60},
		"lat pulldown": {Weight: 35, Bodyweight: 60},
		"seated row": {Weight: 30, Bodyweight: 60},
		"leg press": {Weight: 90, Bodyweight: 60},
		"calf raise": {Weight: 60, Bodyweight: 60},
		"lateral raise": {Weight: 4, Bodyweight: 60},
		"face pull": {Weight: 12, Bodyweight: 60},
		"hammer curl": {Weight: 6, Bodyweight: 60},
		"tricep pushdown": {Weight: 15, Bodyweight: 60},
		"incline bench press": {Weight: 35, Bodyweight: 60},
		"romanian deadlift": {Weight: 60, Bodyweight: 60},
		"walking lunge": {Weight: 12, Bodyweight: 60},
	},
}

// 安全限制分类
var exerciseCategories = map[string][]string{
	"barbell_compound": {"barbell squat", "barbell deadlift", "overhead press", "barbell row", "barbell bench press"},
	"olympic_lifts": {"snatch", "clean", "clean & jerk", "power clean"},
	"advanced_core": {"dragon flag", "human flag", "planche"},
	"plyometrics": {"box jump", "burpee", "jumping lunge", "plyometric push-up"},
	"behind_neck": {"behind neck press", "behind neck pull-up"},
}

// synonym 一条别名到标准表 key 的映射
type synonym struct {
	alias     string
	canonical string
}

// synonyms 把常见叫法归一到标准表的 key
// 子串回退按这个固定顺序扫描，结果与进程无关
var synonyms = []synonym{
	{"squat", "barbell squat"},
	{"barbell squats", "barbell squat"},
	{"back squat", "barbell squat"},
	{"bench press", "barbell bench press"},
	{"barbell bench", "barbell bench press"},
	{"deadlift", "barbell deadlift"},
	{"barbell deadlift", "barbell deadlift"},
	{"overhead press", "overhead press"},
	{"ohp", "overhead press"},
	{"barbell row", "barbell row"},
	{"bent over row", "barbell row"},
	{"dumbbell bench", "dumbbell bench press"},
	{"dumbbell press", "dumbbell bench press"},
	{"shoulder press", "dumbbell shoulder press"},
	{"dumbbell shoulder", "dumbbell shoulder press"},
	{"dumbbell row", "dumbbell row"},
	{"bicep curl", "dumbbell bicep curl"},
	{"bicep curls", "dumbbell bicep curl"},
	{"tricep extension", "dumbbell tricep extension"},
	{"tricep extensions", "dumbbell tricep extension"},
	{"lat pulldown", "lat pulldown"},
	{"pulldown", "lat pulldown"},
	{"seated row", "seated row"},
	{"cable row", "seated row"},
	{"leg press", "leg press"},
	{"calf raise", "calf raise"},
	{"calf raises", "calf raise"},
	{"lateral raise", "lateral raise"},
	{"side raise", "lateral raise"},
	{"face pull", "face pull"},
	{"face pulls", "face pull"},
	{"hammer curl", "hammer curl"},
	{"hammer curls", "hammer curl"},
	{"tricep pushdown", "tricep pushdown"},
	{"pushdown", "tricep pushdown"},
	{"incline bench", "incline bench press"},
	{"incline press", "incline bench press"},
	{"romanian deadlift", "romanian deadlift"},
	{"rdl", "romanian deadlift"},
	{"walking lunge", "walking lunge"},
	{"lunges", "walking lunge"},
	{"lunge", "walking lunge"},
}

// synonymMap 精确匹配用的索引，由 synonyms 构建
var synonymMap = func() map[string]string {
	m := make(map[string]string, len(synonyms))
	for _, s := range synonyms {
		m[s.alias] = s.canonical
	}
	return m
}()

// CanonicalKey 把任意动作名归一为标准表 key
// 先精确匹配同义词表，再做双向子串匹配，取最长命中的别名，没有命中返回小写原名
// 归一结果直接决定限制判定，所以必须是确定性的
func CanonicalKey(exerciseName string) string {
	name := strings.ToLower(strings.TrimSpace(exerciseName))
	if canonical, ok := synonymMap[name]; ok {
		return canonical
	}
	var best string
	bestLen := 0
	for _, syn := range synonyms {
		if !strings.Contains(name, syn.alias) && !strings.Contains(syn.alias, name) {
			continue
		}
		if len(syn.alias) > bestLen {
			best = syn.canonical
			bestLen = len(syn.alias)
		}
	}
	if best != "" {
		return best
	}
	return name
}

// IsRestricted 判断动作在给定经验等级下是否禁用
func IsRestricted(exerciseName, level string) bool {
	key := CanonicalKey(exerciseName)
	inCategory := func(cat string) bool {
		for _, v := range exerciseCategories[cat] {
			if v == key {
				return true
			}
		}
		return false
	}

	switch level {
	case LevelBeginner:
		// 初学者禁用全部高风险分类
		return inCategory("barbell_compound") || inCategory("olympic_lifts") ||
			inCategory("advanced_core") || inCategory("plyometrics") || inCategory("behind_neck")
	case LevelNovice:
		return inCategory("olympic_lifts") || inCategory("behind_neck") || inCategory("advanced_core") ||
			(inCategory("plyometrics") && strings.Contains(key, "advanced"))
	default:
		return false
	}
}

// DeriveLevel 从 onboarding 的经验描述推断经验等级
func DeriveLevel(experience string) string {
	switch {
	case strings.Contains(experience, "Less than 6 months"), strings.Contains(experience, "0-1 month"):
		return LevelBeginner
	case strings.Contains(experience, "6 months - 1 year"):
		return LevelNovice
	case strings.Contains(experience, "1-2 years"),
		strings.Contains(experience, "2-5 years"),
		strings.Contains(experience, "More than 5 years"):
		return LevelAdvanced
	default:
		return LevelIntermediate
	}
}
