package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ivlev/animio/internal/document"
	"github.com/ivlev/animio/internal/engine"
	"github.com/ivlev/animio/internal/system"
)

const exportLongDescription = `Export scene files to animation documents.

Without arguments the newest scene in the input directory is exported.
Use --all to export every scene in it.`

func exportCommand(root *rootCommand) *cobra.Command {
	all := false
	cmd := &cobra.Command{
		Use:   "export [scene...]",
		Short: "Export scenes to animation documents",
		Long:  exportLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenes, err := resolveScenes(root.cfg.InputDir, args, all)
			if err != nil {
				return err
			}
			if len(args) == 0 && !all {
				root.logger.Infow("using newest scene", "scene", scenes[0])
			}

			format, err := document.ParseFormat(root.cfg.Format)
			if err != nil {
				return err
			}
			exporter := engine.NewExporter(root.cfg.OutputDir, format, root.cfg.Workers, root.logger)
			results, err := exporter.Batch(cmd.Context(), scenes)
			if err != nil {
				return err
			}
			for _, res := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%d curves, %d keyframes)\n", res.Scene, res.Output, res.Curves, res.Keyframes)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "export every scene in the input directory")
	cmd.Flags().IntVarP(&root.cfg.Workers, "workers", "w", root.cfg.Workers, "scenes exported in parallel")
	return cmd
}

func resolveScenes(inputDir string, args []string, all bool) ([]string, error) {
	switch {
	case len(args) > 0:
		return args, nil
	case all:
		scenes, err := system.FindScenes(inputDir)
		if err != nil {
			return nil, err
		}
		if len(scenes) == 0 {
			return nil, fmt.Errorf("no scene files found in %s", inputDir)
		}
		return scenes, nil
	default:
		if err := os.MkdirAll(inputDir, 0755); err != nil {
			return nil, err
		}
		latest, err := system.FindLatestScene(inputDir)
		if err != nil {
			return nil, fmt.Errorf("%w: put a scene into %s or pass one as an argument", err, inputDir)
		}
		return []string{latest}, nil
	}
}
