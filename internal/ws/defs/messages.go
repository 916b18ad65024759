package defs

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"
)

// Client intent message types
const (
	MsgLayoutBeginDrag    = "layout.begin_drag"
	MsgLayoutPointerMove  = "layout.pointer_move"
	MsgLayoutEndDrag      = "layout.end_drag"
	MsgTestCaseAdd        = "testcase.add"
	MsgTestCaseToggleEdit = "testcase.toggle_edit"
	MsgTestCaseUpdate     = "testcase.update"
	MsgTestCaseRemove     = "testcase.remove"
	MsgTestCaseSetActive  = "testcase.set_active"
	MsgViewSet            = "view.set"
	MsgExecRun            = "exec.run"
	MsgExecSubmit         = "exec.submit"
)

// Server message types
const (
	MsgState       = "state"
	MsgExecResult  = "exec.result"
	MsgExecSettled = "exec.settled"
	MsgError       = "error"
)

// Envelope frames every message in both directions
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// DragData carries begin-drag intents
type DragData struct {
	Axis domain.DragAxis `json:"axis"`
}

// PointerMoveData carries one pointer sample during a drag
type PointerMoveData struct {
	Axis   domain.DragAxis `json:"axis"`
	Bounds domain.Bounds   `json:"bounds"`
	Point  domain.Point    `json:"point"`
}

// TestCaseRefData references one test case by id
type TestCaseRefData struct {
	ID uuid.UUID `json:"id"`
}

// TestCaseUpdateData carries an in-place edit
type TestCaseUpdateData struct {
	ID    uuid.UUID            `json:"id"`
	Field domain.TestCaseField `json:"field"`
	Value string               `json:"value"`
}

// SetActiveData selects a test case by position
type SetActiveData struct {
	Index int `json:"index"`
}

// ViewSetData switches the test panel tab
type ViewSetData struct {
	Mode domain.ViewMode `json:"mode"`
}

// ExecData carries run and submit intents
type ExecData struct {
	SourceCode string `json:"sourceCode"`
	Language   string `json:"language"`
}

// ErrorData is sent with error responses
type ErrorData struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
