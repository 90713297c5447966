package main

import (
	"github.com/spf13/cobra"

	"github.com/agentdeck/agentdeck/pkg/catalog"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Inspect discovered agent definitions",
	Long:  `List and show agent definitions discovered in the repository and in global locations.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var agentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all discovered agents",
	Long: `List discovered agents with their names, sources, and descriptions.

Examples:
  agentdeck agent list
  agentdeck agent list --category global --format yaml`,
	Run: func(cmd *cobra.Command, _ []string) {
		listDefinitionsCmd(catalog.KindAgents, getListConfigFromFlags(cmd))
	},
}

var agentShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single agent in full",
	Long:  `Show an agent's full record by id (its path) or name.`,
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		showDefinitionCmd(catalog.KindAgents, args[0])
	},
}

func init() {
	addListFlags(agentListCmd)
	agentCmd.AddCommand(agentListCmd)
	agentCmd.AddCommand(agentShowCmd)
}
