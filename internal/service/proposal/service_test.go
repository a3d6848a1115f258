package proposal

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"

	"github.com/ashwinyue/fit-coach/internal/model"
	"github.com/ashwinyue/fit-coach/internal/service/weights"
	"github.com/ashwinyue/fit-coach/internal/service/workout"
)

type fakeGenerator struct {
	responses []fakeResponse
	calls     int
	prompts   []string
}

type fakeResponse struct {
	content string
	err     error
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.calls >= len(f.responses) {
		return "", "", errors.New("unexpected call")
	}
	resp := f.responses[f.calls]
	f.calls++
	return resp.content, "test-model", resp.err
}

func (f *fakeGenerator) GenerateMessages(ctx context.Context, messages []*schema.Message) (string, string, error) {
	var prompt string
	if len(messages) > 0 {
		prompt = messages[len(messages)-1].Content
	}
	return f.Generate(ctx, prompt)
}

type fakeChatStore struct {
	sessions map[string]*model.ChatSession
	messages []*model.ChatMessage
}

func (f *fakeChatStore) CreateSession(s *model.ChatSession) error { f.sessions[s.ID] = s; return nil }

func (f *fakeChatStore) GetSessionByID(id string) (*model.ChatSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (f *fakeChatStore) GetSessionForUser(id, userID string) (*model.ChatSession, error) {
	s, ok := f.sessions[id]
	if !ok || s.UserID != userID {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (f *fakeChatStore) ListSessions(string, int, int) ([]*model.ChatSession, error) {
	return nil, nil
}

func (f *fakeChatStore) UpdateSession(s *model.ChatSession) error { f.sessions[s.ID] = s; return nil }

func (f *fakeChatStore) UpdateSessionContext(sessionID, userContext string) error {
	s, ok := f.sessions[sessionID]
	if !ok {
		return errors.New("not found")
	}
	s.UserContext = userContext
	return nil
}

func (f *fakeChatStore) UpdateSessionPlan(sessionID string, plan model.Plan) error {
	s, ok := f.sessions[sessionID]
	if !ok {
		return errors.New("not found")
	}
	s.CurrentPlan = plan
	return nil
}

func (f *fakeChatStore) CreateMessage(msg *model.ChatMessage) error {
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeChatStore) GetMessagesBySessionID(sessionID string) ([]*model.ChatMessage, error) {
	var out []*model.ChatMessage
	for _, m := range f.messages {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeChatStore) GetRecentMessagesBySession(sessionID string, limit int) ([]*model.ChatMessage, error) {
	return f.GetMessagesBySessionID(sessionID)
}

type fakeProposalStore struct {
	proposals map[string]*model.WorkoutChangeProposal
	createErr error
}

func (f *fakeProposalStore) CreateProposal(p *model.WorkoutChangeProposal) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.proposals[p.ID] = p
	return nil
}

func (f *fakeProposalStore) GetProposalForUser(id, userID string) (*model.WorkoutChangeProposal, error) {
	p, ok := f.proposals[id]
	if !ok || p.UserID != userID {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (f *fakeProposalStore) FinalizeProposal(id, status string) (bool, error) {
	p, ok := f.proposals[id]
	if !ok || p.Status != model.ProposalStatusPending {
		return false, nil
	}
	p.Status = status
	return true, nil
}

func (f *fakeProposalStore) ListProposalsBySession(sessionID string) ([]*model.WorkoutChangeProposal, error) {
	return nil, nil
}

const changedPlanJSON = `{
  "today": [
    {"section": "Warmup", "exercises": ["Arm circles"]},
    {"section": "Main Workout", "exercises": ["Lat Pulldown - 3 sets of 8-12", "Leg Press - 3 sets of 12"]}
  ],
  "ai_coach_tips": ["Lighter leg day", "Back work retained"],
  "change_summary": "Replaced squats with leg press to spare the knees."
}`

const batchForLegPress = `{"exercises": [
  {"exercise_name": "Leg Press", "sets": [{"id": "set-1", "type": "working", "reps": 12, "weight": 80, "completed": false}], "reasoning": "r", "safety_notes": "s"}
]}`

func newPipeline(gen *fakeGenerator) (*Service, *fakeChatStore, *fakeProposalStore) {
	chats := &fakeChatStore{sessions: map[string]*model.ChatSession{}}
	proposals := &fakeProposalStore{proposals: map[string]*model.WorkoutChangeProposal{}}
	weightSvc := weights.NewService(gen, nil, nil)
	workoutSvc := workout.NewService(gen, weightSvc, nil)
	return NewService(chats, proposals, workoutSvc, weightSvc), chats, proposals
}

func seedSession(chats *fakeChatStore) *model.ChatSession {
	session := &model.ChatSession{
		ID:     "s1",
		UserID: "user-1",
		CurrentPlan: model.Plan{
			Today: []model.PlanSection{
				{Section: "Main Workout", Exercises: []string{"Lat Pulldown - 3 sets of 8-12", "Barbell squats - 3 sets of 8"}},
			},
			WeightSuggestions: model.SuggestionMap{
				"Lat Pulldown - 3 sets of 8-12": {
					ExerciseName: "Lat Pulldown - 3 sets of 8-12",
					Sets:         []model.ExerciseSet{{ID: "set-1", Type: "working", Reps: 10, Weight: 35}},
					Reasoning:    "kept from last revision",
					Success:      true,
				},
				"Barbell squats - 3 sets of 8": {
					ExerciseName: "Barbell squats - 3 sets of 8",
					Sets:         []model.ExerciseSet{{ID: "set-1", Type: "working", Reps: 8, Weight: 60}},
					Success:      true,
				},
			},
		},
	}
	chats.sessions["s1"] = session
	return session
}

func TestProposeReusesExistingSuggestions(t *testing.T) {
	gen := &fakeGenerator{responses: []fakeResponse{
		{content: changedPlanJSON},
		{content: batchForLegPress},
	}}
	svc, chats, proposals := newPipeline(gen)
	session := seedSession(chats)
	prior := session.CurrentPlan.WeightSuggestions["Lat Pulldown - 3 sets of 8-12"]

	result, err := svc.Propose(context.Background(), "s1", "user-1", "my knees hurt, drop the squats")
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}
	if result.ProposalID == "" {
		t.Fatal("expected a proposal id")
	}
	if result.ChangeSummary != "Replaced squats with leg press to spare the knees." {
		t.Errorf("change summary = %q", result.ChangeSummary)
	}

	// 批量生成只应收到新增动作
	batchPrompt := gen.prompts[1]
	if !strings.Contains(batchPrompt, "Leg Press - 3 sets of 12") {
		t.Error("new exercise missing from batch prompt")
	}
	if strings.Contains(batchPrompt, "Lat Pulldown") {
		t.Error("already-suggested exercise must not be regenerated")
	}

	// 未变的动作必须逐字复用旧建议
	reused, ok := result.NewPlan.WeightSuggestions["Lat Pulldown - 3 sets of 8-12"]
	if !ok {
		t.Fatal("existing suggestion missing from merged map")
	}
	if !reflect.DeepEqual(reused, prior) {
		t.Errorf("reused suggestion changed:\ngot  %+v\nwant %+v", reused, prior)
	}
	if _, ok := result.NewPlan.WeightSuggestions["Leg Press - 3 sets of 12"]; !ok {
		t.Errorf("new exercise missing from merged map, keys: %v", suggestionKeys(result.NewPlan.WeightSuggestions))
	}

	stored := proposals.proposals[result.ProposalID]
	if stored == nil || stored.Status != model.ProposalStatusPending {
		t.Fatalf("proposal not stored as pending: %+v", stored)
	}
	// 提案创建不得改动会话的当前计划
	if len(chats.sessions["s1"].CurrentPlan.Today) != 1 {
		t.Error("propose must not touch the session's active plan")
	}
}

func TestProposeFailsWhenGenerationFails(t *testing.T) {
	gen := &fakeGenerator{responses: []fakeResponse{{err: errors.New("model down")}}}
	svc, chats, proposals := newPipeline(gen)
	seedSession(chats)

	_, err := svc.Propose(context.Background(), "s1", "user-1", "change it up")
	if err == nil {
		t.Fatal("propose must fail when plan generation fails")
	}
	if len(proposals.proposals) != 0 {
		t.Error("no proposal may be created on generation failure")
	}
}

func TestProposeSessionNotFound(t *testing.T) {
	svc, _, _ := newPipeline(&fakeGenerator{})
	_, err := svc.Propose(context.Background(), "nope", "user-1", "change")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("error = %v, want ErrSessionNotFound", err)
	}
}

func TestConfirmAccept(t *testing.T) {
	svc, chats, proposals := newPipeline(&fakeGenerator{})
	seedSession(chats)
	proposed := model.Plan{
		Today:             []model.PlanSection{{Section: "Main Workout", Exercises: []string{"Leg Press - 3 sets of 12"}}},
		WeightSuggestions: model.SuggestionMap{"Leg Press - 3 sets of 12": {ExerciseName: "Leg Press - 3 sets of 12", Success: true}},
	}
	proposals.proposals["p1"] = &model.WorkoutChangeProposal{
		ID: "p1", SessionID: "s1", UserID: "user-1",
		ProposedPlan:  proposed,
		ChangeSummary: "leg press instead of squats",
		Status:        model.ProposalStatusPending,
	}

	result, err := svc.Confirm(context.Background(), "p1", "user-1", true)
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if !result.Accepted || result.NewPlan == nil {
		t.Fatalf("accept result incomplete: %+v", result)
	}
	if !reflect.DeepEqual(chats.sessions["s1"].CurrentPlan, proposed) {
		t.Error("accepted plan not applied to the session")
	}
	if proposals.proposals["p1"].Status != model.ProposalStatusAccepted {
		t.Errorf("proposal status = %q", proposals.proposals["p1"].Status)
	}
	if len(chats.messages) != 1 || chats.messages[0].Role != model.RoleSystem {
		t.Error("expected a system message about the applied change")
	}
}

func TestConfirmReject(t *testing.T) {
	svc, chats, proposals := newPipeline(&fakeGenerator{})
	session := seedSession(chats)
	before := session.CurrentPlan
	proposals.proposals["p1"] = &model.WorkoutChangeProposal{
		ID: "p1", SessionID: "s1", UserID: "user-1", Status: model.ProposalStatusPending,
	}

	result, err := svc.Confirm(context.Background(), "p1", "user-1", false)
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if result.Accepted {
		t.Error("result should record rejection")
	}
	if !reflect.DeepEqual(chats.sessions["s1"].CurrentPlan, before) {
		t.Error("rejected proposal must not change the session plan")
	}
	if proposals.proposals["p1"].Status != model.ProposalStatusRejected {
		t.Errorf("proposal status = %q", proposals.proposals["p1"].Status)
	}
}

func TestConfirmExactlyOnce(t *testing.T) {
	svc, chats, proposals := newPipeline(&fakeGenerator{})
	seedSession(chats)
	proposals.proposals["p1"] = &model.WorkoutChangeProposal{
		ID: "p1", SessionID: "s1", UserID: "user-1", Status: model.ProposalStatusPending,
	}

	if _, err := svc.Confirm(context.Background(), "p1", "user-1", true); err != nil {
		t.Fatalf("first confirm failed: %v", err)
	}
	_, err := svc.Confirm(context.Background(), "p1", "user-1", false)
	if !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("second confirm error = %v, want ErrAlreadyProcessed", err)
	}
	if proposals.proposals["p1"].Status != model.ProposalStatusAccepted {
		t.Error("terminal state must not be overwritten")
	}
}

func TestConfirmNotFound(t *testing.T) {
	svc, _, _ := newPipeline(&fakeGenerator{})
	_, err := svc.Confirm(context.Background(), "ghost", "user-1", true)
	if !errors.Is(err, ErrProposalNotFound) {
		t.Fatalf("error = %v, want ErrProposalNotFound", err)
	}
}

func suggestionKeys(m model.SuggestionMap) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
