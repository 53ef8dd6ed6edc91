// ABOUTME: Scripted Executor double for object-model tests: queued data payloads
// ABOUTME: and a record of every document sent, so tests can assert round-trip counts.
package monday

import (
	"context"
	"encoding/json"
	"errors"
)

// scriptedExecutor returns queued data payloads in order and records every
// document it is asked to execute.
type scriptedExecutor struct {
	responses []string
	calls     []string
	err       error
}

func (s *scriptedExecutor) Execute(ctx context.Context, document string) (json.RawMessage, error) {
	s.calls = append(s.calls, document)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.responses) == 0 {
		return nil, errors.New("scriptedExecutor: no response queued")
	}
	next := s.responses[0]
	s.responses = s.responses[1:]
	return json.RawMessage(next), nil
}

func (s *scriptedExecutor) queue(payloads ...string) {
	s.responses = append(s.responses, payloads...)
}

// newTestAccount builds an Account bound to a scripted executor.
func newTestAccount(exec *scriptedExecutor) *Account {
	account, err := NewAccount(WithExecutor(exec))
	if err != nil {
		panic(err)
	}
	return account
}

// testGraph builds an account -> board -> group -> item chain without any
// remote traffic, for tests that exercise cells directly.
func testGraph(exec *scriptedExecutor) (*Account, *Board, *Group, *Item) {
	account := newTestAccount(exec)
	board := newBoard(account, boardSummary{ID: Present("577318853"), Name: Present("Automation Experiments")})
	account.boards = append(account.boards, board)
	board.columns = []*Column{
		newColumn("name", "Name", ColumnName),
		newColumn("notes", "Notes", ColumnText),
		newColumn("tags", "Tags", ColumnTags),
	}
	group := newGroup(board, "things_to_do", "Things to do")
	board.groups = append(board.groups, group)
	item := newItem(group, "8675309", "Test Item")
	return account, board, group, item
}

const accountPayload = `{
  "tags": [
    {"id": 1, "name": "bugfix", "color": "red"},
    {"id": 2, "name": "feature", "color": "green"}
  ],
  "users": [
    {"id": 11, "name": "Harper", "email": "harper@example.com"},
    {"id": 12, "name": "Jesse", "email": "jesse@example.com"}
  ],
  "boards": [
    {"id": "577318853", "name": "Automation Experiments"}
  ]
}`

const boardPayload = `{
  "boards": [
    {
      "id": "577318853",
      "name": "Automation Experiments",
      "groups": [
        {"id": "things_to_do", "title": "Things to do"},
        {"id": "done", "title": "Done"}
      ],
      "columns": [
        {"id": "name", "title": "Name", "type": "name"},
        {"id": "notes", "title": "Notes", "type": "text"},
        {"id": "tags", "title": "Tags", "type": "tag"}
      ]
    }
  ]
}`
