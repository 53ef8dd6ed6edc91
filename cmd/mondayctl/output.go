// ABOUTME: Output rendering for mondayctl: lipgloss-styled text, JSON, or YAML.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/2389-research/mondaygo/monday"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	dirtyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// render writes snapshot to stdout in the format selected by --output.
// Snapshots are plain records, so JSON and YAML rendering are generic; the
// text form is styled per snapshot kind.
func render(snapshot any) error {
	switch viper.GetString("output") {
	case "json":
		out, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	case "yaml":
		out, err := yaml.Marshal(snapshot)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	case "text":
		renderText(snapshot)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text, json, or yaml)", viper.GetString("output"))
	}
}

func renderText(snapshot any) {
	switch s := snapshot.(type) {
	case monday.AccountSnapshot:
		fmt.Println(headingStyle.Render("Account"))
		fmt.Printf("  %s %d users, %d tags, %d boards\n",
			labelStyle.Render("contains"), len(s.Users), len(s.Tags), len(s.Boards))
		for _, b := range s.Boards {
			fmt.Printf("  %s %s (%s): %d groups, %d columns\n",
				labelStyle.Render("board"), b.Name, b.ID, len(b.Groups), len(b.Columns))
		}
	case monday.BoardSnapshot:
		fmt.Println(headingStyle.Render("Board " + s.Name))
		fmt.Printf("  %s %s\n", labelStyle.Render("id"), s.ID)
		for _, g := range s.Groups {
			fmt.Printf("  %s %s (%s)\n", labelStyle.Render("group"), g.Title, g.ID)
		}
		for _, c := range s.Columns {
			fmt.Printf("  %s %s (%s, %s)\n", labelStyle.Render("column"), c.Title, c.ID, c.Type)
		}
	case monday.ItemSnapshot:
		fmt.Println(headingStyle.Render("Item " + s.Name))
		fmt.Printf("  %s %s\n", labelStyle.Render("id"), s.ID)
		for _, v := range s.Values {
			line := fmt.Sprintf("  %s %s (%s) = %v", labelStyle.Render("value"), v.Title, v.Type, v.Value)
			if v.Changed {
				line += " " + dirtyStyle.Render("(unsaved)")
			}
			fmt.Println(line)
		}
	default:
		// Fall back to YAML for shapes without a text form.
		out, err := yaml.Marshal(snapshot)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rendering: %v\n", err)
			return
		}
		fmt.Print(string(out))
	}
}
