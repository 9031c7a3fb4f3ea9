package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivlev/animio/internal/curve"
	"github.com/ivlev/animio/internal/document"
	"github.com/ivlev/animio/internal/engine"
	"github.com/ivlev/animio/internal/reconcile"
)

const importLongDescription = `Import an animation document into a target action file.

Policies:
  replace-action   the target action is replaced by the document
  replace-curves   curves in the document replace the target's curves, new ones are added
  merge-keyframes  keyframes are merged into the target's curves, new curves are added

The target is created when it does not exist; only replace-action works then.`

func importCommand(root *rootCommand) *cobra.Command {
	var curves, protect []string
	cmd := &cobra.Command{
		Use:   "import <document> <target>",
		Short: "Import an animation document into an action file",
		Long:  importLongDescription,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			policy, err := reconcile.ParsePolicy(root.cfg.Policy)
			if err != nil {
				return err
			}
			keys, err := parseKeys(curves)
			if err != nil {
				return err
			}
			filter, err := protectTypes(protect)
			if err != nil {
				return err
			}

			opts := engine.ImportOptions{
				Format: document.FormatFromPath(args[0]),
				Policy: policy,
				Filter: filter,
				Curves: keys,
			}
			host := &engine.FileHost{Path: args[1]}
			action, err := engine.NewImporter(data, opts, root.logger).Run(host)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%d curves, %d keyframes)\n", args[0], args[1], action.Len(), action.KeyframeCount())
			return nil
		},
	}
	cmd.Flags().StringVarP(&root.cfg.Policy, "policy", "p", root.cfg.Policy, "replace-action, replace-curves or merge-keyframes")
	cmd.Flags().StringSliceVar(&curves, "curves", nil, `import only these curves, e.g. "location[0],location[2]"`)
	cmd.Flags().StringSliceVar(&protect, "protect", nil, "keep target keyframes of these types when merging, e.g. EXTREME,BREAKDOWN")
	return cmd
}

func parseKeys(values []string) ([]curve.Key, error) {
	keys := make([]curve.Key, 0, len(values))
	for _, v := range values {
		key, err := curve.ParseKey(v)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// protectTypes builds a filter excluding existing keyframes of the given types.
func protectTypes(values []string) (reconcile.KeyframeFilter, error) {
	if len(values) == 0 {
		return nil, nil
	}
	types := make(map[curve.KeyframeType]bool, len(values))
	for _, v := range values {
		t := curve.KeyframeType(strings.ToUpper(strings.TrimSpace(v)))
		if !t.Valid() {
			return nil, fmt.Errorf("unknown keyframe type %q", v)
		}
		types[t] = true
	}
	return func(_ curve.Key, kf curve.Keyframe) bool {
		return types[kf.Type]
	}, nil
}
