// ABOUTME: End-to-end test of the object model against the in-memory fake API,
// ABOUTME: exercising the full create / edit / push / pull / search / delete loop.
package monday_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/2389-research/mondaygo/graphql"
	"github.com/2389-research/mondaygo/monday"
	"github.com/2389-research/mondaygo/mondaytest"
)

func newFixture(t *testing.T) (*mondaytest.Server, *monday.Account) {
	t.Helper()

	srv := mondaytest.NewServer()
	srv.AddUser(11, "Harper Q", "harper@example.com")
	srv.AddTag(90210, "bugfix", "#ff642e")
	board := srv.AddBoard("577318853", "Automation Experiments")
	board.AddGroup("things_to_do", "Things to do")
	board.AddColumn("name", "Name", "name")
	board.AddColumn("notes", "Notes", "text")

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	client := graphql.NewClient("test-token", graphql.WithEndpoint(ts.URL))
	account, err := monday.NewAccount(monday.WithExecutor(client))
	if err != nil {
		t.Fatalf("NewAccount failed: %v", err)
	}
	return srv, account
}

func TestEndToEndItemLifecycle(t *testing.T) {
	srv, account := newFixture(t)
	ctx := context.Background()

	board, err := account.LoadBoard(ctx, "577318853")
	if err != nil {
		t.Fatalf("LoadBoard failed: %v", err)
	}
	if board.Name() != "Automation Experiments" {
		t.Fatalf("board name: got %q", board.Name())
	}

	group := board.GroupByName("Things to do")
	if group == nil {
		t.Fatal("group lookup failed")
	}

	item, err := group.CreateItem(ctx, "Test Item")
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	if item.ID() == "" {
		t.Fatal("created item has no id")
	}

	notes := item.ColumnValueByName("Notes")
	if notes == nil {
		t.Fatal("created item must carry a cell per board column")
	}
	if err := notes.SetText("hello"); err != nil {
		t.Fatalf("SetText failed: %v", err)
	}
	if err := item.Push(ctx); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if notes.Changed() {
		t.Error("push must leave the cell clean")
	}

	// A second push with nothing changed must not reach the service.
	before := srv.Requests
	if err := item.Push(ctx); err != nil {
		t.Fatalf("no-op push failed: %v", err)
	}
	if srv.Requests != before {
		t.Errorf("no-op push reached the service: %d -> %d requests", before, srv.Requests)
	}

	if err := item.Pull(ctx); err != nil {
		t.Fatalf("Pull failed: %v", err)
	}
	if got, err := notes.Text(); err != nil || got != "hello" {
		t.Fatalf("pulled notes: got %q, %v", got, err)
	}

	found, err := group.FindItemByColumnValue(ctx, "Notes", "hello")
	if err != nil {
		t.Fatalf("FindItemByColumnValue failed: %v", err)
	}
	if found == nil || found.ID() != item.ID() {
		t.Fatalf("search must find the pushed item, got %+v", found)
	}

	byName, err := group.FindItemByName(ctx, "test item")
	if err != nil {
		t.Fatalf("FindItemByName failed: %v", err)
	}
	if byName == nil || byName.ID() != item.ID() {
		t.Fatalf("name scan must find the pushed item, got %+v", byName)
	}

	if err := item.Delete(ctx); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := item.Push(ctx); !errors.Is(err, monday.ErrItemDeleted) {
		t.Errorf("push after delete: want ErrItemDeleted, got %v", err)
	}

	gone, err := group.FindItemByColumnValue(ctx, "Notes", "hello")
	if err != nil {
		t.Fatalf("search after delete failed: %v", err)
	}
	if gone != nil {
		t.Errorf("deleted item must not be findable, got %+v", gone)
	}
}

func TestEndToEndAccountPull(t *testing.T) {
	_, account := newFixture(t)

	if err := account.Pull(context.Background()); err != nil {
		t.Fatalf("account pull failed: %v", err)
	}

	if u := account.UserByEmail("harper@example.com"); u == nil || u.ID() != 11 {
		t.Errorf("user lookup: got %+v", u)
	}
	if tag := account.TagByName("BUGFIX"); tag == nil || tag.ID() != 90210 {
		t.Errorf("tag lookup: got %+v", tag)
	}
	board := account.BoardByID("577318853")
	if board == nil {
		t.Fatal("board missing after pull")
	}
	if board.GroupByName("Things to do") == nil {
		t.Error("new boards must be pulled during account pull")
	}
}
