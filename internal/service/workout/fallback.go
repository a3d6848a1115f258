package workout

import (
	"strings"

	"github.com/ashwinyue/fit-coach/internal/model"
)

// genericCoachTips 模型输出缺少 ai_coach_tips 时的注入值
var genericCoachTips = []string{
	"Balanced workout for all muscles",
	"Compound movements for efficiency",
	"Moderate volume prevents overtraining",
	"Progressive overload for growth",
}

// FallbackPlan 根据上下文关键词确定性地选择一份固定计划
// 初学者标记优先；否则昨天练胸给背肩计划，其余给腿部计划
// 这条路径永远不会失败
func FallbackPlan(context string) *model.Plan {
	lower := strings.ToLower(context)
	switch {
	case strings.Contains(lower, "beginner") || strings.Contains(lower, "first time"):
		return beginnerBodyweightPlan()
	case strings.Contains(lower, "chest"):
		return backShoulderPlan()
	default:
		return legDayPlan()
	}
}

func beginnerBodyweightPlan() *model.Plan {
	return &model.Plan{
		Today: []model.PlanSection{
			{Section: "Warmup", Exercises: []string{
				"5-minute light walking",
				"Arm circles - 10 each direction",
				"Leg swings - 10 each leg",
			}},
			{Section: "Main Workout", Exercises: []string{
				"Bodyweight squats - 3 sets of 10-15",
				"Wall push-ups - 3 sets of 8-12",
				"Plank - 3 sets of 20-30 seconds",
				"Glute bridges - 3 sets of 12-15",
				"Bird dog - 3 sets of 8 each side",
			}},
			{Section: "Cardio", Exercises: []string{
				"Brisk walking - 15 minutes",
			}},
			{Section: "Cooldown", Exercises: []string{
				"Static stretching - 10 minutes",
				"Deep breathing exercises",
			}},
		},
		AICoachTips: []string{
			"Beginner-safe exercises only",
			"Bodyweight for building confidence",
			"Full body for balanced development",
			"Low intensity prevents injury risk",
			"Focus on proper form first",
		},
	}
}

func backShoulderPlan() *model.Plan {
	return &model.Plan{
		Today: []model.PlanSection{
			{Section: "Warmup", Exercises: []string{
				"5-minute light cardio",
				"Arm circles and shoulder rolls",
				"Dynamic stretching",
			}},
			{Section: "Main Workout", Exercises: []string{
				"Pull-ups or Lat pulldowns - 3 sets of 8-12",
				"Seated cable rows - 3 sets of 10-12",
				"Dumbbell shoulder press - 3 sets of 8-10",
				"Lateral raises - 3 sets of 12-15",
				"Bicep curls - 3 sets of 10-12",
				"Hammer curls - 3 sets of 10-12",
			}},
			{Section: "Cardio", Exercises: []string{
				"Elliptical - 20 minutes moderate",
			}},
			{Section: "Cooldown", Exercises: []string{
				"Back and shoulder stretches",
				"Foam rolling upper body",
			}},
		},
		AICoachTips: []string{
			"Avoiding chest after yesterday's workout",
			"Back & shoulders for balanced training",
			"Pull-ups for compound upper body",
			"Biceps isolation for arm development",
			"Moderate volume prevents overtraining risk",
		},
	}
}

func legDayPlan() *model.Plan {
	return &model.Plan{
		Today: []model.PlanSection{
			{Section: "Warmup", Exercises: []string{
				"5-minute light cardio",
				"Dynamic stretching",
				"Movement preparation",
			}},
			{Section: "Main Workout", Exercises: []string{
				"Barbell squats - 3 sets of 8-10",
				"Romanian deadlifts - 3 sets of 8-10",
				"Walking lunges - 3 sets of 10 each leg",
				"Leg press - 3 sets of 12-15",
				"Calf raises - 3 sets of 15-20",
			}},
			{Section: "Cardio", Exercises: []string{
				"Treadmill - 20 minutes moderate",
			}},
			{Section: "Cooldown", Exercises: []string{
				"Leg stretches - 10 minutes",
				"Foam rolling legs",
			}},
		},
		AICoachTips: []string{
			"Leg day for lower body strength",
			"Compound movements for efficiency",
			"Progressive overload for growth",
			"Balanced workout for all muscles",
			"Proper form prevents injury",
		},
	}
}
