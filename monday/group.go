// ABOUTME: Group is a named bucket of items within a board; items are created here.
// ABOUTME: Provides indexed search by column value and a paginated linear-scan fallback.
package monday

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/2389-research/mondaygo/graphql"
)

// Group is a named bucket of items within a board. Group instances are
// replaced wholesale on every Board.Pull, unlike users and boards which are
// merged in place.
type Group struct {
	id    string
	title string
	board *Board
}

func newGroup(board *Board, id, title string) *Group {
	return &Group{id: id, title: title, board: board}
}

func (g *Group) ID() string    { return g.id }
func (g *Group) Title() string { return g.title }
func (g *Group) Board() *Board { return g.board }
func (g *Group) BoardID() string { return g.board.id }

// Columns returns the owning board's schema.
func (g *Group) Columns() []*Column { return g.board.Columns() }

// CreateItem constructs an item with no id, bound to this group, and
// immediately pushes it. The returned item is persisted and carries the
// remote-assigned id and its initial column values.
func (g *Group) CreateItem(ctx context.Context, name string) (*Item, error) {
	item := newItem(g, "", name)
	if err := item.Push(ctx); err != nil {
		return nil, err
	}
	return item, nil
}

// Column types the remote service cannot search by exact value.
var unsearchableColumnTypes = map[ColumnType]bool{
	ColumnTags:     true,
	ColumnPeople:   true,
	ColumnDropdown: true,
}

// FindItemByColumnValue looks up one item by an exact column value. The
// column is resolved by title; Tags, People, and Dropdown columns are
// rejected because the remote service cannot search them by value. A matched
// item is hydrated and pulled before being returned; no match returns nil
// with no error.
func (g *Group) FindItemByColumnValue(ctx context.Context, columnName, value string) (*Item, error) {
	column := g.board.ColumnByName(columnName)
	if column == nil {
		return nil, &ValidationError{Field: "columnName", Reason: fmt.Sprintf("board has no column named %q", columnName)}
	}
	if unsearchableColumnTypes[column.typ] {
		return nil, &ValidationError{
			Field:  "columnName",
			Reason: fmt.Sprintf("columns of type %q cannot be searched by value", column.typ),
		}
	}

	document := fmt.Sprintf(`query {
      items_by_column_values (board_id: %s, column_id: %s, column_value: %s) {
        id
        name
      }
    }`, g.board.id, graphql.String(column.id), graphql.String(value))

	data, err := g.board.account.exec(ctx, document)
	if err != nil {
		return nil, err
	}

	var res struct {
		Items []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"items_by_column_values"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decoding items_by_column_values response: %w", err)
	}
	if len(res.Items) == 0 {
		return nil, nil
	}

	item := newItem(g, res.Items[0].ID, res.Items[0].Name)
	if err := item.Pull(ctx); err != nil {
		return nil, err
	}
	return item, nil
}

// FindItemByName scans the group's items one page at a time, comparing names
// case-insensitively and trimmed, stopping at the first match or the first
// empty page. The remote service has no name index, so this is O(total
// items) in the worst case; it remains useful for data held in columns that
// FindItemByColumnValue rejects. No match returns nil with no error.
func (g *Group) FindItemByName(ctx context.Context, name string) (*Item, error) {
	for page := 1; ; page++ {
		document := fmt.Sprintf(`query {
      boards (ids: %s) {
        groups (ids: %s) {
          items (page: %d) {
            id
            name
          }
        }
      }
    }`, g.board.id, graphql.String(g.id), page)

		data, err := g.board.account.exec(ctx, document)
		if err != nil {
			return nil, err
		}

		var res struct {
			Boards []struct {
				Groups []struct {
					Items []struct {
						ID   string `json:"id"`
						Name string `json:"name"`
					} `json:"items"`
				} `json:"groups"`
			} `json:"boards"`
		}
		if err := json.Unmarshal(data, &res); err != nil {
			return nil, fmt.Errorf("decoding paged items response: %w", err)
		}

		if len(res.Boards) == 0 || len(res.Boards[0].Groups) == 0 {
			return nil, nil
		}
		items := res.Boards[0].Groups[0].Items
		if len(items) == 0 {
			return nil, nil
		}

		for _, candidate := range items {
			if titlesEqual(candidate.Name, name) {
				item := newItem(g, candidate.ID, candidate.Name)
				if err := item.Pull(ctx); err != nil {
					return nil, err
				}
				return item, nil
			}
		}
	}
}

// GroupSnapshot is the plain-record projection of a Group.
type GroupSnapshot struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// Snapshot returns a one-way plain-record projection of the group.
func (g *Group) Snapshot() GroupSnapshot {
	return GroupSnapshot{ID: g.id, Title: g.title}
}
