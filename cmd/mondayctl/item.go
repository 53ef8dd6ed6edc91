// ABOUTME: The item command family: create items, set column values, find, and delete.
package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/2389-research/mondaygo/monday"
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Create, find, and delete items",
}

var (
	itemBoardID  string
	itemGroup    string
	itemName     string
	itemSets     []string
	findColumn   string
	findValue    string
	deleteOnFind bool
)

func init() {
	itemCreateCmd.Flags().StringVar(&itemBoardID, "board", "", "board id (required)")
	itemCreateCmd.Flags().StringVar(&itemGroup, "group", "", "group title (required)")
	itemCreateCmd.Flags().StringVar(&itemName, "name", "", "item name (default: a generated unique name)")
	itemCreateCmd.Flags().StringArrayVar(&itemSets, "set", nil, "column=value pair to set after creation (repeatable)")
	_ = itemCreateCmd.MarkFlagRequired("board")
	_ = itemCreateCmd.MarkFlagRequired("group")

	itemFindCmd.Flags().StringVar(&itemBoardID, "board", "", "board id (required)")
	itemFindCmd.Flags().StringVar(&itemGroup, "group", "", "group title (required)")
	itemFindCmd.Flags().StringVar(&findColumn, "column", "", "column title to search (required)")
	itemFindCmd.Flags().StringVar(&findValue, "value", "", "exact value to search for (required)")
	itemFindCmd.Flags().BoolVar(&deleteOnFind, "delete", false, "delete the matched item")
	_ = itemFindCmd.MarkFlagRequired("board")
	_ = itemFindCmd.MarkFlagRequired("group")
	_ = itemFindCmd.MarkFlagRequired("column")
	_ = itemFindCmd.MarkFlagRequired("value")

	itemCmd.AddCommand(itemCreateCmd)
	itemCmd.AddCommand(itemFindCmd)
}

func resolveGroup(cmd *cobra.Command) (*monday.Group, error) {
	account, err := monday.LoadAccount(cmd.Context(), accountOptions()...)
	if err != nil {
		return nil, err
	}
	board := account.BoardByID(itemBoardID)
	if board == nil {
		return nil, fmt.Errorf("account has no board with id %s", itemBoardID)
	}
	group := board.GroupByName(itemGroup)
	if group == nil {
		return nil, fmt.Errorf("board %s has no group named %q", itemBoardID, itemGroup)
	}
	return group, nil
}

var itemCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an item in a group, optionally setting column values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		group, err := resolveGroup(cmd)
		if err != nil {
			return err
		}

		name := itemName
		if name == "" {
			name = "mondayctl-" + uuid.NewString()[:8]
		}

		item, err := group.CreateItem(cmd.Context(), name)
		if err != nil {
			return err
		}

		for _, pair := range itemSets {
			column, value, found := strings.Cut(pair, "=")
			if !found {
				return fmt.Errorf("--set %q: want column=value", pair)
			}
			cv := item.ColumnValueByName(column)
			if cv == nil {
				return fmt.Errorf("item has no column named %q", column)
			}
			if cv.Type() == monday.ColumnText {
				if err := cv.SetText(value); err != nil {
					return err
				}
			} else {
				cv.Set(value)
			}
		}
		if len(itemSets) > 0 {
			if err := item.Push(cmd.Context()); err != nil {
				return err
			}
		}

		return render(item.Snapshot())
	},
}

var itemFindCmd = &cobra.Command{
	Use:   "find",
	Short: "Find an item by an exact column value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		group, err := resolveGroup(cmd)
		if err != nil {
			return err
		}

		item, err := group.FindItemByColumnValue(cmd.Context(), findColumn, findValue)
		if err != nil {
			return err
		}
		if item == nil {
			fmt.Println("no match")
			return nil
		}

		if err := render(item.Snapshot()); err != nil {
			return err
		}
		if deleteOnFind {
			if err := item.Delete(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("deleted item %s\n", item.ID())
		}
		return nil
	},
}
