package flows_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"prepbot/core/command"
	"prepbot/core/dispatch"
	"prepbot/core/flows"
	"prepbot/core/menu"
	"prepbot/core/question"
	"prepbot/core/session"
)

type stubQuestions struct {
	questions map[string]*question.Question
	randomIDs []string
	randomErr error
	attempts  int
	stats     []question.SubjectStats
}

func (s *stubQuestions) ByID(_ context.Context, id string) (*question.Question, error) {
	q, ok := s.questions[id]
	if !ok {
		return nil, question.ErrNoQuestions
	}
	return q, nil
}

func (s *stubQuestions) Random(context.Context, string, string) (*question.Question, error) {
	if s.randomErr != nil {
		return nil, s.randomErr
	}
	if len(s.randomIDs) == 0 {
		return nil, question.ErrNoQuestions
	}
	id := s.randomIDs[0]
	if len(s.randomIDs) > 1 {
		s.randomIDs = s.randomIDs[1:]
	}
	return s.questions[id], nil
}

func (s *stubQuestions) RecordAttempt(context.Context, string, string, bool) error {
	s.attempts++
	return nil
}

func (s *stubQuestions) Stats(context.Context, string) ([]question.SubjectStats, error) {
	return s.stats, nil
}

type stubFriends struct {
	added []string
}

func (s *stubFriends) Add(_ context.Context, _, username string) error {
	s.added = append(s.added, username)
	return nil
}

func (s *stubFriends) List(context.Context, string) ([]string, error) {
	return s.added, nil
}

func geometryQuestion() *question.Question {
	return &question.Question{
		ID:          "q1",
		Subject:     "math",
		Topic:       "geometry",
		Prompt:      "How many degrees in a triangle?",
		OptionA:     "90",
		OptionB:     "180",
		OptionC:     "270",
		OptionD:     "360",
		Correct:     "B",
		Explanation: "Interior angles of a triangle sum to 180.",
	}
}

type env struct {
	store      session.Store
	dispatcher *dispatch.Dispatcher
	questions  *stubQuestions
	friends    *stubFriends
}

func newEnv(t *testing.T, batch int) *env {
	t.Helper()

	table := menu.Default()
	if err := table.Audit(); err != nil {
		t.Fatalf("table audit: %v", err)
	}

	store := session.NewMemoryStore()
	d := dispatch.New(store, command.NewParser(table))

	q := geometryQuestion()
	questions := &stubQuestions{
		questions: map[string]*question.Question{q.ID: q},
		randomIDs: []string{q.ID},
	}
	friendStore := &stubFriends{}

	f := flows.New(questions, friendStore, nil, batch)
	if err := f.Register(d); err != nil {
		t.Fatalf("register flows: %v", err)
	}

	return &env{store: store, dispatcher: d, questions: questions, friends: friendStore}
}

func (e *env) send(t *testing.T, text string) string {
	t.Helper()
	return e.dispatcher.HandleMessage(context.Background(), "u1", text)
}

func (e *env) session(t *testing.T) *session.UserSession {
	t.Helper()
	sess, err := e.store.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	return sess
}

// Every command type the transition table can produce must have a handler,
// so no menu choice can hit a routing gap in production wiring.
func TestNoOrphanedMenuEntries(t *testing.T) {
	e := newEnv(t, 5)
	table := menu.Default()
	for _, m := range table.Menus() {
		for choice := 1; choice <= table.Max(m); choice++ {
			cmd, ok := table.Resolve(m, choice)
			if !ok {
				t.Fatalf("menu %q choice %d missing", m, choice)
			}
			if !e.dispatcher.Registered(cmd.Type) {
				t.Fatalf("menu %q choice %d routes to unhandled type %q", m, choice, cmd.Type)
			}
		}
	}
}

func TestRegistrationProgression(t *testing.T) {
	e := newEnv(t, 5)

	reply := e.send(t, "Lena")
	if !strings.Contains(reply, "Lena") || !strings.Contains(reply, "grade") {
		t.Fatalf("name reply = %q", reply)
	}
	if got := e.session(t); got.DisplayName != "Lena" || got.CurrentMenu != session.MenuRegistrationGrade {
		t.Fatalf("after name: %q/%q", got.DisplayName, got.CurrentMenu)
	}

	reply = e.send(t, "3")
	if !strings.Contains(reply, "Grade 9") {
		t.Fatalf("grade reply = %q", reply)
	}
	if got := e.session(t); got.Grade != 9 || got.CurrentMenu != session.MenuWelcome {
		t.Fatalf("after grade: %d/%q", got.Grade, got.CurrentMenu)
	}
}

func TestStudyFlowServeAndGrade(t *testing.T) {
	e := newEnv(t, 5)
	e.send(t, "Lena")
	e.send(t, "3")

	e.send(t, "1") // welcome -> main
	e.send(t, "1") // main -> subjects
	e.send(t, "1") // subjects -> math topics

	reply := e.send(t, "2") // geometry question
	if !strings.Contains(reply, "triangle") || !strings.Contains(reply, "B) 180") {
		t.Fatalf("question reply = %q", reply)
	}
	if got := e.session(t); got.ActiveQuestionID != "q1" {
		t.Fatalf("active question = %q, want q1", got.ActiveQuestionID)
	}

	// Navigation is locked while the question is pending.
	reply = e.send(t, "menu")
	if reply != command.AnswerCorrection {
		t.Fatalf("mid-question nav reply = %q", reply)
	}
	if got := e.session(t); got.ActiveQuestionID != "q1" {
		t.Fatalf("question abandoned by invalid answer")
	}

	reply = e.send(t, "b)")
	if !strings.Contains(reply, "Correct!") {
		t.Fatalf("grade reply = %q", reply)
	}
	got := e.session(t)
	if got.ActiveQuestionID != "" {
		t.Fatalf("active question not cleared")
	}
	if got.CurrentMenu != session.MenuPostAnswer {
		t.Fatalf("menu = %q, want post_answer", got.CurrentMenu)
	}
	if e.questions.attempts != 1 {
		t.Fatalf("attempts = %d, want 1", e.questions.attempts)
	}

	reply = e.send(t, "2") // explain
	if !strings.Contains(reply, "180") {
		t.Fatalf("explain reply = %q", reply)
	}
}

func TestPracticeRunChainsAndSummarizes(t *testing.T) {
	e := newEnv(t, 2)
	e.send(t, "Lena")
	e.send(t, "3")

	reply := e.send(t, "practice")
	if !strings.Contains(reply, "practice") {
		t.Fatalf("practice start reply = %q", reply)
	}
	if got := e.session(t); got.CurrentMenu != session.MenuPracticeActive || got.ActiveQuestionID == "" {
		t.Fatalf("practice not active: %q/%q", got.CurrentMenu, got.ActiveQuestionID)
	}

	// First answer chains straight into the next question: one message,
	// one state, no intermediate stop.
	reply = e.send(t, "B")
	if !strings.Contains(reply, "Next one:") {
		t.Fatalf("chain reply = %q", reply)
	}
	if got := e.session(t); got.ActiveQuestionID == "" {
		t.Fatalf("chain did not serve a next question")
	}

	// Second answer completes the batch of 2.
	reply = e.send(t, "A")
	if !strings.Contains(reply, "2 questions done") || !strings.Contains(reply, "got 1 right") {
		t.Fatalf("summary reply = %q", reply)
	}
	if got := e.session(t); got.ActiveQuestionID != "" {
		t.Fatalf("active question not cleared at batch end")
	}

	// Stop and see the score.
	reply = e.send(t, "3")
	if !strings.Contains(reply, "1 of 2") {
		t.Fatalf("score reply = %q", reply)
	}
}

func TestCollaboratorFailureLeavesSessionIntact(t *testing.T) {
	e := newEnv(t, 5)
	e.send(t, "Lena")
	e.send(t, "3")
	e.questions.randomErr = errors.New("bank unavailable")

	before := e.session(t)
	reply := e.send(t, "practice")
	if reply != dispatch.GenericFailureReply {
		t.Fatalf("reply = %q, want generic failure", reply)
	}
	after := e.session(t)
	if after.CurrentMenu != before.CurrentMenu || after.ActiveQuestionID != before.ActiveQuestionID {
		t.Fatalf("session changed on collaborator failure")
	}
}

func TestEmptyBankReturnsToMenu(t *testing.T) {
	e := newEnv(t, 5)
	e.send(t, "Lena")
	e.send(t, "3")
	e.questions.randomIDs = nil

	reply := e.send(t, "practice")
	if !strings.Contains(reply, "don't have practice questions") {
		t.Fatalf("reply = %q", reply)
	}
	if got := e.session(t); got.CurrentMenu != session.MenuMain {
		t.Fatalf("menu = %q, want main", got.CurrentMenu)
	}
}

func TestUnrecognizedReShowsCurrentMenu(t *testing.T) {
	e := newEnv(t, 5)
	e.send(t, "Lena")
	e.send(t, "3")
	e.send(t, "1") // welcome -> main

	reply := e.send(t, "banana")
	if !strings.Contains(reply, "didn't catch that") || !strings.Contains(reply, "Main menu:") {
		t.Fatalf("reply = %q", reply)
	}
	if got := e.session(t); got.CurrentMenu != session.MenuMain {
		t.Fatalf("menu = %q, want main unchanged", got.CurrentMenu)
	}
}

func TestInvalidOptionNamesRange(t *testing.T) {
	e := newEnv(t, 5)
	e.send(t, "Lena")
	e.send(t, "3")
	e.send(t, "1") // welcome -> main

	reply := e.send(t, "42")
	if !strings.Contains(reply, "1-7") {
		t.Fatalf("reply = %q, want range 1-7 named", reply)
	}
}

func TestFriendsAddFlow(t *testing.T) {
	e := newEnv(t, 5)
	e.send(t, "Lena")
	e.send(t, "3")
	e.send(t, "1") // welcome -> main

	e.send(t, "6") // friends menu
	reply := e.send(t, "1")
	if !strings.Contains(reply, "username") {
		t.Fatalf("add prompt = %q", reply)
	}
	if got := e.session(t); got.ExpectingInput != session.InputFriendUsername {
		t.Fatalf("expecting input = %q", got.ExpectingInput)
	}

	reply = e.send(t, "@study_pal")
	if !strings.Contains(reply, "@study_pal") {
		t.Fatalf("added reply = %q", reply)
	}
	if len(e.friends.added) != 1 || e.friends.added[0] != "study_pal" {
		t.Fatalf("friends = %v", e.friends.added)
	}
	if got := e.session(t); got.ExpectingInput != "" {
		t.Fatalf("expecting input not cleared")
	}
}

// Leaving the friends flow without sending a username abandons the pending
// capture; later free text must not be recorded as a friend.
func TestAbandonedFriendPromptDoesNotCaptureLaterText(t *testing.T) {
	e := newEnv(t, 2)
	e.send(t, "Lena")
	e.send(t, "3")
	e.send(t, "1") // welcome -> main
	e.send(t, "6") // friends menu
	e.send(t, "1") // add friend, now expecting a username

	e.send(t, "practice")
	if got := e.session(t); got.ExpectingInput != "" {
		t.Fatalf("expecting input survived leaving the friends flow: %q", got.ExpectingInput)
	}

	e.send(t, "B") // first practice answer chains to the next question
	reply := e.send(t, "see you tomorrow")
	if reply != command.AnswerCorrection {
		t.Fatalf("reply = %q, want answer correction", reply)
	}
	if len(e.friends.added) != 0 {
		t.Fatalf("friends = %v, want none", e.friends.added)
	}
}

func TestReportSummarizesStats(t *testing.T) {
	e := newEnv(t, 5)
	e.send(t, "Lena")
	e.send(t, "3")
	e.questions.stats = []question.SubjectStats{
		{Subject: "math", Attempts: 4, Correct: 3},
	}

	reply := e.send(t, "report")
	if !strings.Contains(reply, "Math") || !strings.Contains(reply, "3/4") || !strings.Contains(reply, "75%") {
		t.Fatalf("report reply = %q", reply)
	}
}
