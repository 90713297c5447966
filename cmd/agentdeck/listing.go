package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/agentdeck/agentdeck/pkg/catalog"
	"github.com/agentdeck/agentdeck/pkg/presenter"
)

// ListConfig holds the shared flags of the list subcommands.
type ListConfig struct {
	Category string
	Search   string
	Format   string
}

// NewListConfig creates a ListConfig with default values.
func NewListConfig() *ListConfig {
	return &ListConfig{
		Category: string(catalog.CategoryAll),
		Format:   "table",
	}
}

// Validate validates the ListConfig and returns an error if invalid.
func (c *ListConfig) Validate() error {
	if !catalog.Category(c.Category).Valid() {
		return errors.Errorf("invalid category %q: must be one of all, project, global", c.Category)
	}
	switch c.Format {
	case "table", "json", "yaml":
	default:
		return errors.Errorf("invalid format %q: must be one of table, json, yaml", c.Format)
	}
	return nil
}

func getListConfigFromFlags(cmd *cobra.Command) *ListConfig {
	config := NewListConfig()
	if category, err := cmd.Flags().GetString("category"); err == nil {
		config.Category = category
	}
	if search, err := cmd.Flags().GetString("search"); err == nil {
		config.Search = search
	}
	if format, err := cmd.Flags().GetString("format"); err == nil {
		config.Format = format
	}
	return config
}

func addListFlags(cmd *cobra.Command) {
	defaults := NewListConfig()
	cmd.Flags().StringP("category", "c", defaults.Category, "Filter by category (all, project, global)")
	cmd.Flags().StringP("search", "s", defaults.Search, "Case-insensitive text filter over name, description, capabilities, and path")
	cmd.Flags().StringP("format", "f", defaults.Format, "Output format (table, json, yaml)")
}

func listDefinitionsCmd(kind catalog.Kind, config *ListConfig) {
	if err := config.Validate(); err != nil {
		presenter.Error(err, "Invalid configuration")
		os.Exit(1)
	}

	ctx := context.Background()
	deps, err := buildDeps(ctx)
	if err != nil {
		presenter.Error(err, "Failed to prepare environment")
		os.Exit(1)
	}

	items, err := aggregatedItems(ctx, deps, kind)
	if err != nil {
		presenter.Error(err, "Discovery failed")
		os.Exit(1)
	}

	items = catalog.FilterQuery(catalog.FilterCategory(items, catalog.Category(config.Category)), config.Search)

	switch config.Format {
	case "json":
		out, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			presenter.Error(err, "Failed to encode items")
			os.Exit(1)
		}
		fmt.Println(string(out))
	case "yaml":
		out, err := yaml.Marshal(items)
		if err != nil {
			presenter.Error(err, "Failed to encode items")
			os.Exit(1)
		}
		fmt.Print(string(out))
	default:
		printItemTable(kind, items)
	}
}

func printItemTable(kind catalog.Kind, items []catalog.Item) {
	if len(items) == 0 {
		presenter.Info(fmt.Sprintf("No %s found", kind))
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSOURCE\tPRIORITY\tDESCRIPTION\tPATH")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			item.Name, item.Source, item.Priority, item.Description, item.Path)
	}
	w.Flush()
}

func showDefinitionCmd(kind catalog.Kind, id string) {
	ctx := context.Background()
	deps, err := buildDeps(ctx)
	if err != nil {
		presenter.Error(err, "Failed to prepare environment")
		os.Exit(1)
	}

	items, err := aggregatedItems(ctx, deps, kind)
	if err != nil {
		presenter.Error(err, "Discovery failed")
		os.Exit(1)
	}

	item, ok := catalog.FindByID(items, id)
	if !ok {
		// Fall back to name lookup for convenience
		for _, candidate := range items {
			if candidate.Name == id {
				item, ok = candidate, true
				break
			}
		}
	}
	if !ok {
		presenter.Error(errors.Errorf("no %s with id or name %q", strings.TrimSuffix(string(kind), "s"), id), "Not found")
		os.Exit(1)
	}

	presenter.Section(item.Name)
	presenter.Info(fmt.Sprintf("Source: %s (priority %d)", item.Source, item.Priority))
	presenter.Info("Path: " + item.Path)
	presenter.Info("Description: " + item.Description)

	if len(item.Capabilities) > 0 {
		presenter.Separator()
		for _, capability := range item.Capabilities {
			presenter.Info("  - " + capability)
		}
	}

	if item.HasScripts || item.HasReferences || item.HasAssets {
		presenter.Separator()
		printResourceList("scripts", item.ScriptFiles)
		printResourceList("references", item.ReferenceFiles)
		printResourceList("assets", item.AssetFiles)
	}

	if md := item.Metadata; md != nil {
		presenter.Separator()
		presenter.Info(fmt.Sprintf("Installed from %s@%s (%s)", md.Repository, md.Branch, md.Commit))
	}

	presenter.Separator()
	fmt.Println(item.Content)
}

func printResourceList(label string, files []string) {
	if len(files) == 0 {
		return
	}
	presenter.Info(fmt.Sprintf("%s: %s", label, strings.Join(files, ", ")))
}
