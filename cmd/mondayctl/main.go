// ABOUTME: mondayctl is a small harness CLI over the monday object model:
// ABOUTME: pull an account, inspect a board, and run the item lifecycle.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "mondayctl",
	Short: "Inspect and mutate monday.com boards from the terminal",
	Long: `mondayctl is a thin harness over the mondaygo object model.

It resolves the API token from --token, the MONDAY_API_TOKEN environment
variable, a .env file in the working directory, or the config file in
~/.config/mondayctl/config.yaml, in that order of precedence.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("token", "", "monday.com API token")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "output format: text, json, or yaml")
	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))

	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(itemCmd)
}

func initConfig() {
	// A .env in the working directory provides defaults without overriding
	// the real environment.
	if err := loadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: reading .env: %v\n", err)
	}

	_ = viper.BindEnv("token", "MONDAY_API_TOKEN")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if dir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(dir, "mondayctl"))
	}
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
