package main

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/agentdeck/agentdeck/pkg/catalog"
	"github.com/agentdeck/agentdeck/pkg/events"
	"github.com/agentdeck/agentdeck/pkg/filetree"
	"github.com/agentdeck/agentdeck/pkg/hostdata"
	"github.com/agentdeck/agentdeck/pkg/panel"
)

// readFile is the read capability handed to discovery: plain disk I/O.
func readFile(_ context.Context, absPath string) ([]byte, error) {
	return os.ReadFile(absPath)
}

// resolveRepoRoot picks the repository root from config, falling back
// to the working directory.
func resolveRepoRoot() (string, error) {
	if root := viper.GetString("repo_root"); root != "" {
		return root, nil
	}
	pwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "failed to get current working directory")
	}
	return pwd, nil
}

func ignoreDirs() []string {
	if dirs := viper.GetStringSlice("watch.ignore_dirs"); len(dirs) > 0 {
		return dirs
	}
	return filetree.DefaultIgnoreDirs
}

// buildDeps assembles the injected environment shared by the panels
// and the plain CLI commands: the data-slice store populated with the
// file-tree snapshot and the pre-parsed global items, the event bus,
// the read capability, and the navigation scope.
func buildDeps(ctx context.Context) (panel.Deps, error) {
	root, err := resolveRepoRoot()
	if err != nil {
		return panel.Deps{}, err
	}

	store := hostdata.NewStore()

	snap, err := filetree.BuildSnapshot(root, ignoreDirs())
	if err != nil {
		store.SetError(hostdata.SliceFileTree, err)
	} else {
		store.Set(hostdata.SliceFileTree, snap, root)
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		store.Set(hostdata.SliceGlobalSkills,
			catalog.LoadGlobalItems(ctx, homeDir, readFile, catalog.KindSkills), "user")
		store.Set(hostdata.SliceGlobalAgents,
			catalog.LoadGlobalItems(ctx, homeDir, readFile, catalog.KindAgents), "user")
	}

	return panel.Deps{
		Store: store,
		Bus:   events.NewBus(),
		Read:  readFile,
		Nav:   hostdata.NavContext{RepoRoot: root},
	}, nil
}

// aggregatedItems runs a discovery pass for the kind and merges in the
// global items, mirroring what a list panel shows.
func aggregatedItems(ctx context.Context, deps panel.Deps, kind catalog.Kind) ([]catalog.Item, error) {
	slice, ok := deps.Store.Get(hostdata.SliceFileTree)
	if !ok {
		return nil, errors.New("no repository loaded")
	}
	if slice.Err != nil {
		return nil, errors.Wrap(slice.Err, "file tree unavailable")
	}
	if slice.Data == nil {
		return nil, errors.New("no repository loaded")
	}

	snap, ok := slice.Data.(*filetree.Snapshot)
	if !ok {
		return nil, errors.New("file tree slice holds unexpected data")
	}
	result, err := catalog.Discover(ctx, snap, deps.Read, kind.Locations())
	if err != nil {
		return nil, err
	}

	globalSlice := hostdata.SliceGlobalSkills
	if kind == catalog.KindAgents {
		globalSlice = hostdata.SliceGlobalAgents
	}

	var global []catalog.Item
	if slice, ok := deps.Store.Get(globalSlice); ok {
		if items, ok := slice.Data.([]catalog.Item); ok {
			global = items
		}
	}

	return catalog.Merge(result.Items, global), nil
}
