package flows

import (
	"encoding/json"

	"prepbot/core/session"
)

// Flow context blobs are a tagged variant: each flow owns its own shape
// and nothing outside this package reads the bytes. The dispatcher and
// session store pass them through opaquely.

const (
	flowStudy    = "study"
	flowPractice = "practice"
	flowExamPrep = "exam_prep"
	flowHomework = "homework"
)

type envelope struct {
	Flow string          `json:"flow"`
	Data json.RawMessage `json:"data"`
}

// StudyContext follows plain topic Q&A: which scope the user is in and
// which question was last graded (for explanations).
type StudyContext struct {
	Subject        string `json:"subject"`
	Topic          string `json:"topic"`
	LastQuestionID string `json:"last_question_id,omitempty"`
}

// PracticeContext tracks a practice run.
type PracticeContext struct {
	Subject        string `json:"subject"`
	Topic          string `json:"topic"`
	Served         int    `json:"served"`
	Correct        int    `json:"correct"`
	LastQuestionID string `json:"last_question_id,omitempty"`
}

// ExamPrepContext tracks the exam prep conversation.
type ExamPrepContext struct {
	Subject      string `json:"subject"`
	ExamDate     string `json:"exam_date,omitempty"`
	ReminderTime string `json:"reminder_time,omitempty"`
}

// HomeworkContext remembers which assignment the user is on.
type HomeworkContext struct {
	Assignment int `json:"assignment"`
}

func encodeContext(flow string, v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	raw, err := json.Marshal(envelope{Flow: flow, Data: data})
	if err != nil {
		return nil
	}
	return raw
}

func decodeEnvelope(raw json.RawMessage, flow string, v any) bool {
	if len(raw) == 0 {
		return false
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Flow != flow {
		return false
	}
	return json.Unmarshal(env.Data, v) == nil
}

func decodeStudy(raw json.RawMessage) (StudyContext, bool) {
	var sc StudyContext
	ok := decodeEnvelope(raw, flowStudy, &sc)
	return sc, ok
}

func decodePractice(raw json.RawMessage) (PracticeContext, bool) {
	var pc PracticeContext
	ok := decodeEnvelope(raw, flowPractice, &pc)
	return pc, ok
}

func decodeExamPrep(raw json.RawMessage) (ExamPrepContext, bool) {
	var ec ExamPrepContext
	ok := decodeEnvelope(raw, flowExamPrep, &ec)
	return ec, ok
}

func decodeHomework(raw json.RawMessage) (HomeworkContext, bool) {
	var hc HomeworkContext
	ok := decodeEnvelope(raw, flowHomework, &hc)
	return hc, ok
}

// clearedContext empties the flow blob when a flow ends.
func clearedContext() *json.RawMessage {
	return session.ContextRef(json.RawMessage(`{}`))
}

// lastScope extracts the most recent subject/topic/question scope from
// whichever flow context is present.
func lastScope(raw json.RawMessage) (subject, topic, lastQuestionID string) {
	if pc, ok := decodePractice(raw); ok {
		return pc.Subject, pc.Topic, pc.LastQuestionID
	}
	if sc, ok := decodeStudy(raw); ok {
		return sc.Subject, sc.Topic, sc.LastQuestionID
	}
	return "", "", ""
}
