package weights

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ashwinyue/fit-coach/internal/model"
)

// Profile 计算重量所需的最小用户画像
type Profile struct {
	Weight     float64 // kg
	Gender     string
	Experience string // onboarding 原始描述
	Level      string // 推断出的经验等级
}

// Calculation 规则路径的计算结果
type Calculation struct {
	Weight            float64
	IsRestricted      bool
	RestrictionReason string
	Multiplier        float64
	MaxAllowed        float64
}

var (
	setsPattern    = regexp.MustCompile(`(?i)(\d+)\s*sets?`)
	repsPattern    = regexp.MustCompile(`(?i)(\d+)-(\d+)\s*reps?`)
	profilePattern = regexp.MustCompile(`Age: (\d+).*Weight: (\d+).*Gender: (\w+).*Experience duration: ([^-\n]+)`)
)

// ParseProfile 从 onboarding 拼出的上下文文本解析用户画像
// 解析失败返回保守默认值
func ParseProfile(userContext string) Profile {
	p := Profile{Weight: 70, Gender: "Male", Experience: "Less than 6 months"}
	if m := profilePattern.FindStringSubmatch(userContext); m != nil {
		if w, err := strconv.ParseFloat(m[2], 64); err == nil {
			p.Weight = w
		}
		p.Gender = m[3]
		p.Experience = strings.TrimSpace(m[4])
	}
	p.Level = DeriveLevel(p.Experience)
	return p
}

// CalculateWeight 规则路径：按力量标准、体重比例和经验倍数计算建议重量
// 禁用动作返回重量 0 与非空原因；重量不超过 1RM 的 70%，下限 2.5kg
func CalculateWeight(exerciseName string, profile Profile) Calculation {
	key := CanonicalKey(exerciseName)
	multiplier, ok := experienceMultipliers[profile.Level]
	if !ok {
		multiplier = experienceMultipliers[LevelNovice]
	}

	if IsRestricted(key, profile.Level) {
		reason := "This exercise requires more experience. Consider a lighter variation or alternative."
		if profile.Level == LevelBeginner {
			reason = "This exercise is not recommended for beginners. Consider using a machine-based alternative."
		}
		return Calculation{IsRestricted: true, RestrictionReason: reason, Multiplier: multiplier}
	}

	standards, ok := strengthStandards[strings.ToLower(profile.Gender)]
	if !ok {
		standards = strengthStandards["male"]
	}
	standard, known := standards[key]
	if !known {
		// 未知动作用体重的 10% 兜底
		w := roundWeight(key, profile.Weight*0.1)
		return Calculation{Weight: math.Max(w, 2.5), Multiplier: multiplier}
	}

	var suggested float64
	if strings.Contains(key, "dumbbell") || strings.Contains(key, "lateral") || strings.Contains(key, "curl") {
		// 哑铃类标准值就是单只重量，不按体重缩放
		suggested = standard.Weight * multiplier
	} else {
		suggested = standard.Weight * (profile.Weight / standard.Bodyweight) * multiplier
	}

	maxAllowed := standard.Weight * 0.7
	suggested = math.Min(suggested, maxAllowed)
	suggested = math.Max(roundWeight(key, suggested), 2.5)

	return Calculation{Weight: suggested, Multiplier: multiplier, MaxAllowed: maxAllowed}
}

// roundWeight 杠铃和器械取整到 2.5kg，其它取整到 1kg
func roundWeight(key string, w float64) float64 {
	if strings.Contains(key, "barbell") || strings.Contains(key, "machine") ||
		strings.Contains(key, "press") || strings.Contains(key, "squat") || strings.Contains(key, "deadlift") {
		return math.Round(w/2.5) * 2.5
	}
	return math.Round(w)
}

// BuildSets 围绕基准重量生成渐进组
// 第一组 80% 做热身，最后一组 110%，组内 (reps, weight) 不重复
func BuildSets(exerciseName string, baseWeight float64, exerciseDetails string) []model.ExerciseSet {
	targetSets := 3
	targetReps := []int{10, 10, 8}

	if exerciseDetails != "" {
		if m := setsPattern.FindStringSubmatch(exerciseDetails); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 && n <= 6 {
				targetSets = n
			}
		}
		if m := repsPattern.FindStringSubmatch(exerciseDetails); m != nil {
			minReps, _ := strconv.Atoi(m[1])
			maxReps, _ := strconv.Atoi(m[2])
			targetReps = make([]int, targetSets)
			for i := 0; i < targetSets; i++ {
				span := maxReps - minReps
				denom := targetSets - 1
				if denom < 1 {
					denom = 1
				}
				targetReps[i] = minReps + int(math.Round(float64(span)*float64(i)/float64(denom)))
			}
		}
	}

	key := CanonicalKey(exerciseName)
	sets := make([]model.ExerciseSet, 0, targetSets)
	for i := 0; i < targetSets; i++ {
		weight := baseWeight
		setType := model.SetTypeWorking
		switch {
		case i == 0:
			weight = baseWeight * 0.8
			setType = model.SetTypeWarmup
		case i == targetSets-1:
			weight = baseWeight * 1.1
		}
		weight = math.Max(roundWeight(key, weight), 2.5)

		reps := 8 + i*2
		if i < len(targetReps) {
			reps = targetReps[i]
		}

		sets = append(sets, model.ExerciseSet{
			ID:     fmt.Sprintf("set-%d", i+1),
			Type:   setType,
			Reps:   reps,
			Weight: weight,
		})
	}
	return dedupeSets(sets)
}

// dedupeSets 保证没有两组共享相同的 (reps, weight)
// 发现重复时把后一组的次数减 1
func dedupeSets(sets []model.ExerciseSet) []model.ExerciseSet {
	type pair struct {
		reps   int
		weight float64
	}
	seen := make(map[pair]struct{}, len(sets))
	for i := range sets {
		p := pair{sets[i].Reps, sets[i].Weight}
		for {
			if _, dup := seen[p]; !dup {
				break
			}
			p.reps--
			if p.reps < 1 {
				p.reps = 1
				break
			}
		}
		sets[i].Reps = p.reps
		seen[p] = struct{}{}
	}
	return sets
}
