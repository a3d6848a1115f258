package usercontext

import (
	"reflect"
	"testing"

	"github.com/ashwinyue/fit-coach/internal/model"
)

func TestParseDelta(t *testing.T) {
	block := `preferences: swimming, early mornings
CONSTRAINTS: no gym access
goals: none
- dislikes: burpees
injuries:
notes: recovering from a cold`

	got := ParseDelta(block)

	if !reflect.DeepEqual(got.Preferences, []string{"swimming", "early mornings"}) {
		t.Errorf("Preferences = %v", got.Preferences)
	}
	if !reflect.DeepEqual(got.Constraints, []string{"no gym access"}) {
		t.Errorf("Constraints = %v (keys should be case-insensitive)", got.Constraints)
	}
	if got.Goals != nil {
		t.Errorf("Goals = %v, 'none' should be skipped", got.Goals)
	}
	if !reflect.DeepEqual(got.Dislikes, []string{"burpees"}) {
		t.Errorf("Dislikes = %v (leading dash should be tolerated)", got.Dislikes)
	}
	if got.Injuries != nil {
		t.Errorf("Injuries = %v, empty value should be skipped", got.Injuries)
	}
	if got.Notes != "recovering from a cold" {
		t.Errorf("Notes = %q", got.Notes)
	}
}

func TestParseDeltaEmptyBlock(t *testing.T) {
	got := ParseDelta("just some prose with no key value lines")
	if !got.IsEmpty() {
		t.Errorf("expected empty delta, got %+v", got)
	}
}

func TestDeltaForAction(t *testing.T) {
	tests := []struct {
		name     string
		action   string
		exercise string
		reason   string
		want     *model.ContextDelta
	}{
		{
			name:     "like becomes preference",
			action:   ActionLike,
			exercise: "Goblet Squat",
			want:     &model.ContextDelta{Preferences: []string{"Enjoys Goblet Squat"}},
		},
		{
			name:     "favorite becomes preference",
			action:   ActionFavorite,
			exercise: "Deadlift",
			want:     &model.ContextDelta{Preferences: []string{"Enjoys Deadlift"}},
		},
		{
			name:     "dislike without reason",
			action:   ActionDislike,
			exercise: "Burpees",
			want:     &model.ContextDelta{Dislikes: []string{"Burpees"}},
		},
		{
			name:     "delete forever carries reason",
			action:   ActionDeleteForever,
			exercise: "Overhead Press",
			reason:   "shoulder pain",
			want:     &model.ContextDelta{Dislikes: []string{"Overhead Press (shoulder pain)"}},
		},
		{
			name:     "skip yields nothing",
			action:   ActionSkip,
			exercise: "Plank",
			want:     nil,
		},
		{
			name:     "unknown action yields nothing",
			action:   "shrug",
			exercise: "Plank",
			want:     nil,
		},
		{
			name:     "empty exercise yields nothing",
			action:   ActionLike,
			exercise: "  ",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeltaForAction(tt.action, tt.exercise, tt.reason)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DeltaForAction() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
