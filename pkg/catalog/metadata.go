package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/agentdeck/agentdeck/pkg/filetree"
	"github.com/agentdeck/agentdeck/pkg/logger"
)

// LoadInstallMetadata reads the optional .metadata.json side file from
// the item's folder. Any failure (missing file, unparseable content,
// unexpected field types) is treated as absence and never surfaces to
// the user.
func LoadInstallMetadata(ctx context.Context, read ReadFunc, snap *filetree.Snapshot, folder string) *InstallMetadata {
	content, err := read(ctx, snap.Abs(folder+"/"+MetadataFileName))
	if err != nil {
		return nil
	}

	var raw map[string]any
	if err := json.Unmarshal(content, &raw); err != nil {
		logger.G(ctx).WithError(err).WithField("folder", folder).Debug("Ignoring malformed metadata file")
		return nil
	}

	md := &InstallMetadata{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           md,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339),
	})
	if err != nil {
		return nil
	}
	if err := decoder.Decode(raw); err != nil {
		logger.G(ctx).WithError(err).WithField("folder", folder).Debug("Ignoring undecodable metadata file")
		return nil
	}

	return md
}
