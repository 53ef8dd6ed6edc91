// ABOUTME: Board owns its groups and column schema, exposing the account's
// ABOUTME: query-execution capability to descendants. Pull filters archived entries.
package monday

import (
	"context"
	"encoding/json"
	"fmt"
)

// Board is a schema (columns) plus a set of groups, identified by a stable
// external id. The board holds a back-reference to its account; the account
// owns the board.
type Board struct {
	id      string
	name    string
	account *Account
	groups  []*Group
	columns []*Column
}

// boardSummary is the account-level remote record for a board. Optional
// fields let the merge apply only what the response carried.
type boardSummary struct {
	ID   Optional[string] `json:"id"`
	Name Optional[string] `json:"name"`
}

func newBoard(account *Account, summary boardSummary) *Board {
	b := &Board{account: account}
	b.updateWithRemoteData(summary)
	return b
}

// updateWithRemoteData merges a remote board summary in place so external
// references to the Board survive an account refresh.
func (b *Board) updateWithRemoteData(summary boardSummary) {
	if v, ok := summary.ID.Get(); ok {
		b.id = v
	}
	if v, ok := summary.Name.Get(); ok {
		b.name = v
	}
}

func (b *Board) ID() string        { return b.id }
func (b *Board) Name() string      { return b.name }
func (b *Board) Account() *Account { return b.account }

// Groups returns the board's groups. The slice is a copy.
func (b *Board) Groups() []*Group {
	out := make([]*Group, len(b.groups))
	copy(out, b.groups)
	return out
}

// Columns returns the board's column schema. The slice is a copy.
func (b *Board) Columns() []*Column {
	out := make([]*Column, len(b.columns))
	copy(out, b.columns)
	return out
}

// GroupByName returns the group whose title matches, case-insensitively,
// or nil if absent.
func (b *Board) GroupByName(name string) *Group {
	for _, g := range b.groups {
		if titlesEqual(g.title, name) {
			return g
		}
	}
	return nil
}

// ColumnByName returns the column whose title matches, case-insensitively,
// or nil if absent.
func (b *Board) ColumnByName(name string) *Column {
	for _, c := range b.columns {
		if titlesEqual(c.title, name) {
			return c
		}
	}
	return nil
}

// Pull fetches the board's id, name, groups, and columns in one round-trip.
// Groups and columns are replaced wholesale with new instances; entries the
// remote service reports as archived or deleted never materialize locally.
func (b *Board) Pull(ctx context.Context) error {
	document := fmt.Sprintf(`query {
      boards (ids: %s) {
        id
        name
        groups {
          id
          title
          archived
          deleted
        }
        columns {
          id
          title
          type
          archived
        }
      }
    }`, b.id)

	data, err := b.account.exec(ctx, document)
	if err != nil {
		return err
	}

	var res struct {
		Boards []struct {
			boardSummary
			Groups []struct {
				ID       string `json:"id"`
				Title    string `json:"title"`
				Archived bool   `json:"archived"`
				Deleted  bool   `json:"deleted"`
			} `json:"groups"`
			Columns []struct {
				ID       string `json:"id"`
				Title    string `json:"title"`
				Type     string `json:"type"`
				Archived bool   `json:"archived"`
			} `json:"columns"`
		} `json:"boards"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return fmt.Errorf("decoding boards response: %w", err)
	}
	if len(res.Boards) == 0 {
		return &DataIntegrityError{Op: "boards", Detail: fmt.Sprintf("board %s not found", b.id)}
	}

	board := res.Boards[0]
	b.updateWithRemoteData(board.boardSummary)

	b.groups = b.groups[:0]
	for _, g := range board.Groups {
		if g.Archived || g.Deleted {
			continue
		}
		b.groups = append(b.groups, newGroup(b, g.ID, g.Title))
	}

	b.columns = b.columns[:0]
	for _, c := range board.Columns {
		if c.Archived {
			continue
		}
		b.columns = append(b.columns, newColumn(c.ID, c.Title, ColumnType(c.Type)))
	}

	return nil
}

// BoardSnapshot is the plain-record projection of a Board.
type BoardSnapshot struct {
	ID      string           `json:"id" yaml:"id"`
	Name    string           `json:"name" yaml:"name"`
	Groups  []GroupSnapshot  `json:"groups" yaml:"groups"`
	Columns []ColumnSnapshot `json:"columns" yaml:"columns"`
}

// Snapshot returns a one-way plain-record projection of the board.
func (b *Board) Snapshot() BoardSnapshot {
	groups := make([]GroupSnapshot, len(b.groups))
	for i, g := range b.groups {
		groups[i] = g.Snapshot()
	}
	columns := make([]ColumnSnapshot, len(b.columns))
	for i, c := range b.columns {
		columns[i] = c.Snapshot()
	}
	return BoardSnapshot{ID: b.id, Name: b.name, Groups: groups, Columns: columns}
}
