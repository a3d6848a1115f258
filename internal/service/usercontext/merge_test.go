package usercontext

import (
	"strings"
	"testing"

	"github.com/ashwinyue/fit-coach/internal/model"
)

func TestMergeParagraphEmptyDelta(t *testing.T) {
	prev := "## Dynamic User Context\n- Goals: build muscle"
	got := MergeParagraph(prev, &model.ContextDelta{})
	if got != prev {
		t.Errorf("empty delta should return previous paragraph unchanged, got %q", got)
	}
}

func TestMergeParagraphFromEmpty(t *testing.T) {
	delta := &model.ContextDelta{
		Goals:       []string{"build muscle"},
		Preferences: []string{"morning workouts"},
	}
	got := MergeParagraph("", delta)

	want := "## Dynamic User Context\n- Preferences: morning workouts\n- Goals: build muscle"
	if got != want {
		t.Errorf("MergeParagraph() = %q, want %q", got, want)
	}
}

func TestMergeParagraphUnion(t *testing.T) {
	prev := MergeParagraph("", &model.ContextDelta{
		Preferences: []string{"morning workouts"},
		Injuries:    []string{"left knee"},
	})
	got := MergeParagraph(prev, &model.ContextDelta{
		Preferences: []string{"morning workouts", "dumbbells"},
		Goals:       []string{"lose weight"},
	})

	if strings.Count(got, "morning workouts") != 1 {
		t.Errorf("duplicate bullet not deduplicated:\n%s", got)
	}
	for _, want := range []string{
		"- Preferences: dumbbells",
		"- Goals: lose weight",
		"- Injuries: left knee",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("merged paragraph missing %q:\n%s", want, got)
		}
	}
}

func TestMergeParagraphCategoryOrder(t *testing.T) {
	got := MergeParagraph("", &model.ContextDelta{
		Schedule:    []string{"3 days per week"},
		Injuries:    []string{"shoulder"},
		Dislikes:    []string{"burpees"},
		Goals:       []string{"strength"},
		Constraints: []string{"home gym only"},
		Preferences: []string{"barbell work"},
	})

	lines := strings.Split(got, "\n")
	wantPrefixes := []string{
		"## Dynamic User Context",
		"- Preferences:",
		"- Constraints:",
		"- Goals:",
		"- Dislikes:",
		"- Injuries:",
		"- Schedule:",
	}
	if len(lines) != len(wantPrefixes) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(wantPrefixes), got)
	}
	for i, prefix := range wantPrefixes {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], prefix)
		}
	}
}

func TestMergeParagraphNotesOverwrite(t *testing.T) {
	prev := MergeParagraph("", &model.ContextDelta{
		Goals: []string{"strength"},
		Notes: "prefers short sessions",
	})
	got := MergeParagraph(prev, &model.ContextDelta{
		Dislikes: []string{"running"},
		Notes:    "training for a 5k",
	})

	if strings.Contains(got, "prefers short sessions") {
		t.Errorf("old notes should be overwritten:\n%s", got)
	}
	if !strings.Contains(got, "- Notes: training for a 5k") {
		t.Errorf("new notes missing:\n%s", got)
	}
	if !strings.Contains(got, "- Goals: strength") {
		t.Errorf("category bullets should survive notes overwrite:\n%s", got)
	}
}

func TestMergeParagraphNotesDroppedWhenDeltaSilent(t *testing.T) {
	prev := MergeParagraph("", &model.ContextDelta{
		Goals: []string{"strength"},
		Notes: "prefers short sessions",
	})
	got := MergeParagraph(prev, &model.ContextDelta{Dislikes: []string{"running"}})
	if strings.Contains(got, "Notes:") {
		t.Errorf("notes without a replacement should not persist:\n%s", got)
	}
}

func TestMergeParagraphIdempotent(t *testing.T) {
	delta := &model.ContextDelta{
		Preferences: []string{"kettlebells"},
		Schedule:    []string{"weekday evenings"},
		Notes:       "new to lifting",
	}
	once := MergeParagraph("", delta)
	twice := MergeParagraph(once, delta)
	if once != twice {
		t.Errorf("merge not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestMergeParagraphIgnoresUnknownCategories(t *testing.T) {
	prev := "## Dynamic User Context\n- Mood: cheerful\n- goals: lowercase ignored\n- Goals: strength"
	got := MergeParagraph(prev, &model.ContextDelta{Dislikes: []string{"running"}})

	if strings.Contains(got, "Mood") || strings.Contains(got, "lowercase ignored") {
		t.Errorf("unknown or wrong-case categories should be dropped:\n%s", got)
	}
	if !strings.Contains(got, "- Goals: strength") {
		t.Errorf("known category lost:\n%s", got)
	}
}
