// ABOUTME: ColumnType enumeration and the Column schema record for a board.
// ABOUTME: Columns are immutable snapshots, wholesale replaced on every Board.Pull.
package monday

// ColumnType identifies a board column's type as reported by the remote
// schema. The string values are the remote service's own type tokens.
type ColumnType string

const (
	ColumnAutoNumber   ColumnType = "autonumber"
	ColumnCheckbox     ColumnType = "boolean"
	ColumnColorPicker  ColumnType = "color-picker"
	ColumnCountry      ColumnType = "country"
	ColumnCreationLog  ColumnType = "pulse-log"
	ColumnDate         ColumnType = "date"
	ColumnDependency   ColumnType = "dependency"
	ColumnDropdown     ColumnType = "dropdown"
	ColumnEmail        ColumnType = "email"
	ColumnFiles        ColumnType = "file"
	ColumnFormula      ColumnType = "formula"
	ColumnHour         ColumnType = "hour"
	ColumnItemID       ColumnType = "pulse-id"
	ColumnLink         ColumnType = "link"
	ColumnLinkToItem   ColumnType = "board-relation"
	ColumnLongText     ColumnType = "long-text"
	ColumnMirror       ColumnType = "lookup"
	ColumnName         ColumnType = "name"
	ColumnNumber       ColumnType = "numeric"
	ColumnPeople       ColumnType = "multiple-person"
	ColumnPhone        ColumnType = "phone"
	ColumnRating       ColumnType = "rating"
	ColumnStatus       ColumnType = "color"
	ColumnTags         ColumnType = "tag"
	ColumnTeam         ColumnType = "team"
	ColumnText         ColumnType = "text"
	ColumnTimeline     ColumnType = "timerange"
	ColumnTimeTracking ColumnType = "duration"
	ColumnVote         ColumnType = "votes"
	ColumnWeek         ColumnType = "week"
)

// Column is one schema-level field definition on a board.
type Column struct {
	id    string
	title string
	typ   ColumnType
}

func newColumn(id, title string, typ ColumnType) *Column {
	return &Column{id: id, title: title, typ: typ}
}

func (c *Column) ID() string       { return c.id }
func (c *Column) Title() string    { return c.title }
func (c *Column) Type() ColumnType { return c.typ }

// ColumnSnapshot is the plain-record projection of a Column.
type ColumnSnapshot struct {
	ID    string     `json:"id" yaml:"id"`
	Title string     `json:"title" yaml:"title"`
	Type  ColumnType `json:"type" yaml:"type"`
}

// Snapshot returns a one-way plain-record projection of the column.
func (c *Column) Snapshot() ColumnSnapshot {
	return ColumnSnapshot{ID: c.id, Title: c.title, Type: c.typ}
}
