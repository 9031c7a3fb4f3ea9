package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivlev/animio/internal/engine"
)

func bakeCommand(root *rootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "bake <document> [scene]",
		Short: "Sample a document at every frame and write it as a scene",
		Long: `Evaluate every curve of a document at whole frames and write the samples
as a scene file. The scene goes to the output directory unless a path is given.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			docPath := args[0]
			scenePath := ""
			if len(args) == 2 {
				scenePath = args[1]
			} else {
				base := filepath.Base(docPath)
				scenePath = filepath.Join(root.cfg.OutputDir, strings.TrimSuffix(base, filepath.Ext(base))+".yaml")
			}

			action, err := engine.BakeFile(docPath, scenePath)
			if err != nil {
				return err
			}
			root.logger.Infow("action baked", "action", action.Name, "scene", scenePath, "curves", action.Len())
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", docPath, scenePath)
			return nil
		},
	}
}
