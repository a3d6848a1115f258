package weights

import (
	"fmt"
	"testing"
)

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Squat", "barbell squat"},
		{"Back Squat", "barbell squat"},
		{"RDL", "romanian deadlift"},
		{"Bicep Curls", "dumbbell bicep curl"},
		{"Incline Bench Press", "incline bench press"},
		{"Walking Lunges", "walking lunge"},
		{"Cable Row", "seated row"},
		{"Some Unknown Movement", "some unknown movement"},
	}
	for _, tt := range tests {
		if got := CanonicalKey(tt.in); got != tt.want {
			t.Errorf("CanonicalKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalKeyDeterministic(t *testing.T) {
	// 子串回退命中多个别名时结果必须稳定
	// "incline bench press" 同时含 "incline bench" 和 "bench press"，最长别名赢
	first := CanonicalKey("incline bench press")
	if first != "incline bench press" {
		t.Fatalf("CanonicalKey(\"incline bench press\") = %q, want %q", first, "incline bench press")
	}
	for i := 0; i < 200; i++ {
		if got := CanonicalKey("incline bench press"); got != first {
			t.Fatalf("call %d resolved to %q, earlier call resolved to %q", i, got, first)
		}
	}
}

func TestDeriveLevel(t *testing.T) {
	tests := []struct {
		experience string
		want       string
	}{
		{"Less than 6 months", LevelBeginner},
		{"0-1 month", LevelBeginner},
		{"6 months - 1 year", LevelNovice},
		{"1-2 years", LevelAdvanced},
		{"More than 5 years", LevelAdvanced},
		{"something unrecognized", LevelIntermediate},
	}
	for _, tt := range tests {
		if got := DeriveLevel(tt.experience); got != tt.want {
			t.Errorf("DeriveLevel(%q) = %q, want %q", tt.experience, got, tt.want)
		}
	}
}

func TestIsRestricted(t *testing.T) {
	tests := []struct {
		exercise string
		level    string
		want     bool
	}{
		{"Barbell Squat", LevelBeginner, true},
		{"Burpee", LevelBeginner, true},
		{"Snatch", LevelBeginner, true},
		{"Dumbbell Row", LevelBeginner, false},
		{"Barbell Squat", LevelNovice, false},
		{"Snatch", LevelNovice, true},
		{"Behind Neck Press", LevelNovice, true},
		{"Barbell Squat", LevelIntermediate, false},
		{"Snatch", LevelAdvanced, false},
	}
	for _, tt := range tests {
		if got := IsRestricted(tt.exercise, tt.level); got != tt.want {
			t.Errorf("IsRestricted(%q, %s) = %v, want %v", tt.exercise, tt.level, got, tt.want)
		}
	}
}

func TestCalculateWeightRestricted(t *testing.T) {
	profile := Profile{Weight: 75, Gender: "Male", Level: LevelBeginner}
	calc := CalculateWeight("Barbell Squat", profile)

	if !calc.IsRestricted {
		t.Fatal("barbell squat should be restricted for beginners")
	}
	if calc.Weight != 0 {
		t.Errorf("restricted exercise weight = %v, want 0", calc.Weight)
	}
	if calc.RestrictionReason == "" {
		t.Error("restricted exercise must carry a reason")
	}
}

func TestCalculateWeightBounds(t *testing.T) {
	profile := Profile{Weight: 80, Gender: "Male", Level: LevelIntermediate}
	calc := CalculateWeight("Barbell Squat", profile)

	if calc.IsRestricted {
		t.Fatal("barbell squat should not be restricted for intermediates")
	}
	// 100kg 标准 * 体重比 1.0 * 0.7 = 70，正好在 70% 上限
	if calc.Weight != 70 {
		t.Errorf("weight = %v, want 70", calc.Weight)
	}
	if calc.Weight > calc.MaxAllowed {
		t.Errorf("weight %v exceeds 70%% cap %v", calc.Weight, calc.MaxAllowed)
	}
}

func TestCalculateWeightBarbellRounding(t *testing.T) {
	profile := Profile{Weight: 72, Gender: "Female", Level: LevelNovice}
	calc := CalculateWeight("Barbell Bench Press", profile)

	if calc.IsRestricted {
		t.Fatal("should not be restricted for novice")
	}
	if remainder := calc.Weight / 2.5; remainder != float64(int(remainder)) {
		t.Errorf("barbell weight %v not rounded to 2.5kg", calc.Weight)
	}
	if calc.Weight < 2.5 {
		t.Errorf("weight %v below 2.5kg floor", calc.Weight)
	}
}

func TestCalculateWeightDumbbellNotScaledByBodyweight(t *testing.T) {
	light := CalculateWeight("Dumbbell Bicep Curl", Profile{Weight: 60, Gender: "Male", Level: LevelIntermediate})
	heavy := CalculateWeight("Dumbbell Bicep Curl", Profile{Weight: 100, Gender: "Male", Level: LevelIntermediate})

	if light.Weight != heavy.Weight {
		t.Errorf("dumbbell standards should not scale with bodyweight: %v vs %v", light.Weight, heavy.Weight)
	}
}

func TestCalculateWeightUnknownExerciseFallback(t *testing.T) {
	profile := Profile{Weight: 70, Gender: "Male", Level: LevelIntermediate}
	calc := CalculateWeight("Mystery Machine Exercise", profile)

	if calc.IsRestricted {
		t.Fatal("unknown exercise should not be restricted")
	}
	if calc.Weight < 2.5 {
		t.Errorf("fallback weight %v below floor", calc.Weight)
	}
}

func TestBuildSetsProgressive(t *testing.T) {
	sets := BuildSets("Lat Pulldown", 40, "")

	if len(sets) != 3 {
		t.Fatalf("got %d sets, want 3", len(sets))
	}
	if sets[0].Type != "warmup" {
		t.Errorf("first set type = %q, want warmup", sets[0].Type)
	}
	if sets[0].Weight >= sets[len(sets)-1].Weight {
		t.Errorf("first set %v should be lighter than last set %v", sets[0].Weight, sets[len(sets)-1].Weight)
	}
	for i, set := range sets {
		if set.Weight < 2.5 {
			t.Errorf("set %d weight %v below floor", i, set.Weight)
		}
		if set.Completed {
			t.Errorf("set %d should start incomplete", i)
		}
		if set.ID == "" {
			t.Errorf("set %d missing id", i)
		}
	}
}

func TestBuildSetsFromDetails(t *testing.T) {
	sets := BuildSets("Dumbbell Row", 20, "Dumbbell Row - 4 sets of 8-12 reps")

	if len(sets) != 4 {
		t.Fatalf("got %d sets, want 4 from exercise details", len(sets))
	}
	if sets[0].Reps != 8 || sets[len(sets)-1].Reps != 12 {
		t.Errorf("rep range not spread over parsed bounds: first %d last %d", sets[0].Reps, sets[len(sets)-1].Reps)
	}
}

func TestBuildSetsNoDuplicatePairs(t *testing.T) {
	for _, details := range []string{"", "3 sets of 10-10 reps", "5 sets of 8-8 reps"} {
		sets := BuildSets("Seated Row", 30, details)
		seen := map[string]bool{}
		for _, set := range sets {
			key := fmt.Sprintf("%d|%v", set.Reps, set.Weight)
			if seen[key] {
				t.Errorf("details %q: duplicate (reps=%d, weight=%v)", details, set.Reps, set.Weight)
			}
			seen[key] = true
		}
	}
}
