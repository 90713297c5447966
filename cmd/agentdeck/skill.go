package main

import (
	"github.com/spf13/cobra"

	"github.com/agentdeck/agentdeck/pkg/catalog"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Inspect discovered skill definitions",
	Long:  `List and show skill definitions discovered in the repository and in global locations.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all discovered skills",
	Long: `List discovered skills with their names, sources, and descriptions.

Examples:
  agentdeck skill list
  agentdeck skill list --category project
  agentdeck skill list --search security --format json`,
	Run: func(cmd *cobra.Command, _ []string) {
		listDefinitionsCmd(catalog.KindSkills, getListConfigFromFlags(cmd))
	},
}

var skillShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single skill in full",
	Long:  `Show a skill's full record by id (its path) or name.`,
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		showDefinitionCmd(catalog.KindSkills, args[0])
	},
}

func init() {
	addListFlags(skillListCmd)
	skillCmd.AddCommand(skillListCmd)
	skillCmd.AddCommand(skillShowCmd)
}
