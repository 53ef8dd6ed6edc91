// ABOUTME: Item is one addressable row within a group, owning its column values.
// ABOUTME: Lifecycle: unsaved (no id) -> push -> persisted -> delete -> deleted (terminal).
package monday

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/2389-research/mondaygo/graphql"
)

// Item is a single row of data within a group. An item starts without an id;
// the first Push performs the creation mutation and assigns the id the remote
// service generated. Delete is terminal: afterward only inspection is valid.
type Item struct {
	id      string
	name    string
	group   *Group
	values  []*ColumnValue
	deleted bool
}

func newItem(group *Group, id, name string) *Item {
	return &Item{id: id, name: name, group: group}
}

func (it *Item) ID() string     { return it.id }
func (it *Item) Name() string   { return it.name }
func (it *Item) Group() *Group  { return it.group }
func (it *Item) Board() *Board  { return it.group.board }
func (it *Item) BoardID() string { return it.group.board.id }

// Deleted reports whether a delete has succeeded for this item.
func (it *Item) Deleted() bool { return it.deleted }

// Values returns the item's column values. The slice is a copy; the cells
// are the live objects.
func (it *Item) Values() []*ColumnValue {
	out := make([]*ColumnValue, len(it.values))
	copy(out, it.values)
	return out
}

// ColumnValueByName returns the cell whose column title matches,
// case-insensitively, or nil if the item holds no such cell.
func (it *Item) ColumnValueByName(title string) *ColumnValue {
	for _, cv := range it.values {
		if titlesEqual(cv.title, title) {
			return cv
		}
	}
	return nil
}

func (it *Item) exec(ctx context.Context, document string) (json.RawMessage, error) {
	return it.group.board.account.exec(ctx, document)
}

// Push synchronizes local state to the remote service. An unsaved item is
// created (assigning its id and hydrating its initial column values); a
// persisted item sends exactly the cells marked changed, or performs no
// round-trip at all when nothing changed. Hydration from the response clears
// the changed flag on every touched cell.
func (it *Item) Push(ctx context.Context) error {
	if it.deleted {
		return ErrItemDeleted
	}
	if it.id == "" {
		return it.create(ctx)
	}
	return it.update(ctx)
}

const columnValueFields = `
          id
          value
          type
          title`

type itemMutationResult struct {
	ID           string            `json:"id"`
	ColumnValues []columnValueInfo `json:"column_values"`
}

func (it *Item) create(ctx context.Context) error {
	document := fmt.Sprintf(`mutation {
      create_item (board_id: %s, group_id: %s, item_name: %s) {
        id
        column_values {%s
        }
      }
    }`, it.BoardID(), graphql.String(it.group.id), graphql.String(it.name), columnValueFields)

	data, err := it.exec(ctx, document)
	if err != nil {
		return err
	}

	var res struct {
		CreateItem *itemMutationResult `json:"create_item"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return fmt.Errorf("decoding create_item response: %w", err)
	}
	if res.CreateItem == nil || res.CreateItem.ID == "" {
		return &DataIntegrityError{Op: "create_item", Detail: "response carried no created item"}
	}

	it.id = res.CreateItem.ID
	it.hydrateColumnValues(res.CreateItem.ColumnValues)
	return nil
}

func (it *Item) update(ctx context.Context) error {
	changed := make(map[string]any)
	for _, cv := range it.values {
		if cv.changed {
			changed[cv.id] = cv.value
		}
	}
	if len(changed) == 0 {
		it.group.board.account.logger.Printf("skipping push of item %s: no columns changed", it.id)
		return nil
	}

	payload, err := graphql.JSONString(changed)
	if err != nil {
		return err
	}
	document := fmt.Sprintf(`mutation {
      change_multiple_column_values (board_id: %s, item_id: %s, column_values: %s) {
        id
        column_values {%s
        }
      }
    }`, it.BoardID(), it.id, payload, columnValueFields)

	data, err := it.exec(ctx, document)
	if err != nil {
		return err
	}

	var res struct {
		ChangeMultipleColumnValues *itemMutationResult `json:"change_multiple_column_values"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return fmt.Errorf("decoding change_multiple_column_values response: %w", err)
	}
	if res.ChangeMultipleColumnValues == nil {
		return &DataIntegrityError{Op: "change_multiple_column_values", Detail: "response carried no updated item"}
	}

	it.hydrateColumnValues(res.ChangeMultipleColumnValues.ColumnValues)
	return nil
}

// Pull refreshes every column value from the remote service. This is a
// destructive refresh: unsaved local edits are discarded and every touched
// cell comes back clean.
func (it *Item) Pull(ctx context.Context) error {
	if it.deleted {
		return ErrItemDeleted
	}
	if it.id == "" {
		return ErrItemNotPersisted
	}

	document := fmt.Sprintf(`query {
      items (ids: [%s]) {
        column_values {%s
        }
      }
    }`, it.id, columnValueFields)

	data, err := it.exec(ctx, document)
	if err != nil {
		return err
	}

	var res struct {
		Items []struct {
			ColumnValues []columnValueInfo `json:"column_values"`
		} `json:"items"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return fmt.Errorf("decoding items response: %w", err)
	}
	if len(res.Items) != 1 {
		return &DataIntegrityError{
			Op:     "items",
			Detail: fmt.Sprintf("expected exactly one item for id %s, got %d", it.id, len(res.Items)),
		}
	}

	it.hydrateColumnValues(res.Items[0].ColumnValues)
	return nil
}

// Delete removes the item remotely and marks it terminally deleted. The
// response must echo the item's id.
func (it *Item) Delete(ctx context.Context) error {
	if it.deleted {
		return ErrItemDeleted
	}
	if it.id == "" {
		return ErrItemNotPersisted
	}

	document := fmt.Sprintf(`mutation {
      delete_item (item_id: %s) {
        id
      }
    }`, it.id)

	data, err := it.exec(ctx, document)
	if err != nil {
		return err
	}

	var res struct {
		DeleteItem *struct {
			ID string `json:"id"`
		} `json:"delete_item"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return fmt.Errorf("decoding delete_item response: %w", err)
	}
	if res.DeleteItem == nil || res.DeleteItem.ID != it.id {
		return &DataIntegrityError{Op: "delete_item", Detail: "response did not echo the deleted item's id"}
	}

	it.deleted = true
	return nil
}

// hydrateColumnValues merges remote cell payloads into the item: existing
// cells are updated by column id, unknown columns create new cells. A cell
// that exists locally but is absent from a partial response is kept as is.
func (it *Item) hydrateColumnValues(infos []columnValueInfo) {
	for _, info := range infos {
		id, _ := info.ID.Get()
		existing := it.columnValueByID(id)
		if existing == nil {
			it.values = append(it.values, newColumnValue(it, info))
			continue
		}
		existing.updateWithRemoteData(info)
	}
}

func (it *Item) columnValueByID(id string) *ColumnValue {
	if id == "" {
		return nil
	}
	for _, cv := range it.values {
		if cv.id == id {
			return cv
		}
	}
	return nil
}

// ItemSnapshot is the plain-record projection of an Item.
type ItemSnapshot struct {
	ID      string                `json:"id" yaml:"id"`
	Name    string                `json:"name" yaml:"name"`
	Deleted bool                  `json:"deleted,omitempty" yaml:"deleted,omitempty"`
	Values  []ColumnValueSnapshot `json:"values" yaml:"values"`
}

// Snapshot returns a one-way plain-record projection of the item.
func (it *Item) Snapshot() ItemSnapshot {
	values := make([]ColumnValueSnapshot, len(it.values))
	for i, cv := range it.values {
		values[i] = cv.Snapshot()
	}
	return ItemSnapshot{ID: it.id, Name: it.name, Deleted: it.deleted, Values: values}
}
