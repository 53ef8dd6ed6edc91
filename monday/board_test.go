// ABOUTME: Tests for Board.Pull: archived/deleted filtering, wholesale group and
// ABOUTME: column replacement, and case-insensitive lookups.
package monday

import (
	"context"
	"errors"
	"testing"
)

const boardWithArchivedPayload = `{
  "boards": [
    {
      "id": "577318853",
      "name": "Automation Experiments",
      "groups": [
        {"id": "things_to_do", "title": "Things to do"},
        {"id": "old", "title": "Old stuff", "archived": true},
        {"id": "gone", "title": "Gone", "deleted": true}
      ],
      "columns": [
        {"id": "notes", "title": "Notes", "type": "text"},
        {"id": "legacy", "title": "Legacy", "type": "text", "archived": true}
      ]
    }
  ]
}`

func TestBoardPullFiltersArchivedAndDeleted(t *testing.T) {
	exec := &scriptedExecutor{}
	exec.queue(boardWithArchivedPayload)
	_, board, _, _ := testGraph(exec)

	if err := board.Pull(context.Background()); err != nil {
		t.Fatalf("Pull failed: %v", err)
	}

	groups := board.Groups()
	if len(groups) != 1 || groups[0].Title() != "Things to do" {
		t.Errorf("want exactly the live group, got %d groups", len(groups))
	}
	columns := board.Columns()
	if len(columns) != 1 || columns[0].Title() != "Notes" {
		t.Errorf("want exactly the live column, got %d columns", len(columns))
	}
}

func TestBoardPullReplacesGroupsWholesale(t *testing.T) {
	exec := &scriptedExecutor{}
	exec.queue(boardPayload, boardPayload)
	_, board, _, _ := testGraph(exec)
	ctx := context.Background()

	if err := board.Pull(ctx); err != nil {
		t.Fatalf("first pull failed: %v", err)
	}
	before := board.GroupByName("Things to do")

	if err := board.Pull(ctx); err != nil {
		t.Fatalf("second pull failed: %v", err)
	}
	after := board.GroupByName("Things to do")

	if before == after {
		t.Error("groups must be new instances on every pull")
	}
}

func TestBoardPullBoardNotFound(t *testing.T) {
	exec := &scriptedExecutor{}
	exec.queue(`{"boards": []}`)
	_, board, _, _ := testGraph(exec)

	err := board.Pull(context.Background())
	var integrityErr *DataIntegrityError
	if !errors.As(err, &integrityErr) {
		t.Fatalf("want DataIntegrityError, got %v", err)
	}
}

func TestBoardLookupsAreCaseInsensitive(t *testing.T) {
	exec := &scriptedExecutor{}
	exec.queue(boardPayload)
	_, board, _, _ := testGraph(exec)

	if err := board.Pull(context.Background()); err != nil {
		t.Fatalf("Pull failed: %v", err)
	}

	if board.GroupByName("THINGS TO DO") == nil {
		t.Error("GroupByName must match case-insensitively")
	}
	if board.ColumnByName("notes") == nil {
		t.Error("ColumnByName must match case-insensitively")
	}
	if board.GroupByName("nope") != nil || board.ColumnByName("nope") != nil {
		t.Error("lookups must return nil for unknown names")
	}
}
