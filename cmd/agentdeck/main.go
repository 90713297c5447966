package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentdeck/agentdeck/pkg/logger"
)

func init() {
	// Environment variables
	viper.SetEnvPrefix("AGENTDECK")
	viper.AutomaticEnv()

	// Config file support
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.agentdeck")
	viper.AddConfigPath(".")

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()
}

var rootCmd = &cobra.Command{
	Use:   "agentdeck",
	Short: "Browse skill and agent definitions",
	Long: `Agentdeck discovers markdown-described skill and agent definitions in a
repository's file tree and in user-global locations, and presents them in
list/detail panels or plain CLI output.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
		os.Exit(1)
	},
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if level := viper.GetString("log_level"); level != "" {
			if err := logger.SetLogLevel(level); err != nil {
				return err
			}
		}
		if format := viper.GetString("log_format"); format != "" {
			logger.SetLogFormat(format)
		}
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().String("repo-root", "", "Repository root to scan (defaults to the current directory)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "fmt", "Log format (fmt, json)")

	viper.BindPFlag("repo_root", rootCmd.PersistentFlags().Lookup("repo-root"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(agentCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
