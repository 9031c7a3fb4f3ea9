package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/animio/internal/curve"
	"github.com/ivlev/animio/internal/document"
	"github.com/ivlev/animio/internal/source"
)

// ExportResult describes one exported scene.
type ExportResult struct {
	Scene     string
	Output    string
	Action    string
	Curves    int
	Keyframes int
}

// Exporter turns scene files into documents in OutputDir.
type Exporter struct {
	OutputDir string
	Format    document.Format
	Workers   int
	Logger    *zap.SugaredLogger
}

func NewExporter(outputDir string, format document.Format, workers int, logger *zap.SugaredLogger) *Exporter {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Exporter{OutputDir: outputDir, Format: format, Workers: workers, Logger: logger}
}

// OutputPath returns the document path for a scene file.
func (e *Exporter) OutputPath(scene string) string {
	base := filepath.Base(scene)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(e.OutputDir, strings.ReplaceAll(name, " ", "_")+e.Format.Ext())
}

// ExportFile exports a single scene.
func (e *Exporter) ExportFile(scene string) (ExportResult, error) {
	src, err := source.ReadScene(scene)
	if err != nil {
		return ExportResult{}, fmt.Errorf("read scene %s: %w", scene, err)
	}
	data, action, err := exportAction(src, e.Format)
	if err != nil {
		return ExportResult{}, fmt.Errorf("export %s: %w", scene, err)
	}

	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return ExportResult{}, err
	}
	out := e.OutputPath(scene)
	if err := os.WriteFile(out, data, 0644); err != nil {
		return ExportResult{}, err
	}

	for _, c := range src.Curves {
		e.Logger.Debugw("curve exported", "scene", scene, "curve", c.Key().String(), "sampled", c.Sampled())
	}
	e.Logger.Infow("action exported", "action", action.Name, "output", out, "curves", action.Len())
	return ExportResult{
		Scene:     scene,
		Output:    out,
		Action:    action.Name,
		Curves:    action.Len(),
		Keyframes: action.KeyframeCount(),
	}, nil
}

// Batch exports scenes concurrently, at most Workers at a time. The first
// failure cancels the scenes not started yet. Results keep the input order.
func (e *Exporter) Batch(ctx context.Context, scenes []string) ([]ExportResult, error) {
	results := make([]ExportResult, len(scenes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(e.Workers, 1))
	for i, scene := range scenes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := e.ExportFile(scene)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// BakeFile evaluates every curve of a document at whole frames and writes
// the samples as a scene.
func BakeFile(docPath, scenePath string) (*curve.Action, error) {
	action, err := document.ReadFile(docPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", docPath, err)
	}
	if err := os.MkdirAll(filepath.Dir(scenePath), 0755); err != nil {
		return nil, err
	}
	if err := source.WriteScene(action, scenePath); err != nil {
		return nil, fmt.Errorf("write scene %s: %w", scenePath, err)
	}
	return action, nil
}
