package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ivlev/animio/internal/config"
	"github.com/ivlev/animio/internal/system"
)

var BuildVersion = "dev"

const description = `animio exports animation curves to JSON documents and imports
them back into an action, replacing or merging with what is already there.`

type rootCommand struct {
	cmd        *cobra.Command
	cfg        config.Config
	configPath string
	logger     *zap.SugaredLogger
	start      time.Time
}

func newRootCommand(stdout, stderr io.Writer) *rootCommand {
	root := &rootCommand{cfg: config.Default(), start: time.Now()}

	root.cmd = &cobra.Command{
		Use:               "animio",
		Short:             "Export and import animation curves as JSON documents",
		Long:              description,
		Version:           BuildVersion,
		SilenceUsage:      true,
		PersistentPreRunE: root.init,
		PersistentPostRun: root.report,
	}
	root.cmd.SetOut(stdout)
	root.cmd.SetErr(stderr)

	flags := root.cmd.PersistentFlags()
	flags.StringVarP(&root.configPath, "config", "c", "animio.yaml", "path to the config file")
	flags.StringVarP(&root.cfg.Format, "format", "f", root.cfg.Format, "document format: json, yaml")
	flags.StringVar(&root.cfg.LogLevel, "log-level", root.cfg.LogLevel, "debug, info, warn, error")
	flags.BoolVar(&root.cfg.ShowStats, "stats", false, "print a performance report")
	flags.StringVar(&root.cfg.InputDir, "input-dir", root.cfg.InputDir, "directory searched for scenes")
	flags.StringVarP(&root.cfg.OutputDir, "output-dir", "o", root.cfg.OutputDir, "directory for written files")

	root.cmd.AddCommand(
		exportCommand(root),
		importCommand(root),
		bakeCommand(root),
	)
	return root
}

// init layers the config file and environment under the flags set on the command line.
func (root *rootCommand) init(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(root.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	override := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	override("format", func() { cfg.Format = root.cfg.Format })
	override("log-level", func() { cfg.LogLevel = root.cfg.LogLevel })
	override("stats", func() { cfg.ShowStats = root.cfg.ShowStats })
	override("input-dir", func() { cfg.InputDir = root.cfg.InputDir })
	override("output-dir", func() { cfg.OutputDir = root.cfg.OutputDir })
	override("policy", func() { cfg.Policy = root.cfg.Policy })
	override("workers", func() { cfg.Workers = root.cfg.Workers })
	cfg.BuildVersion = BuildVersion

	if err := cfg.Validate(); err != nil {
		return err
	}
	root.cfg = cfg

	root.logger, err = system.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	return nil
}

func (root *rootCommand) report(cmd *cobra.Command, _ []string) {
	if root.logger != nil {
		_ = root.logger.Sync()
	}
	if !root.cfg.ShowStats {
		return
	}
	stats, err := system.CollectStats(root.start)
	if err != nil {
		root.logger.Warnw("cannot collect stats", "error", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Build: %s\n%s", root.cfg.BuildVersion, stats)
}

func (root *rootCommand) Execute() int {
	if err := root.cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(newRootCommand(os.Stdout, os.Stderr).Execute())
}
