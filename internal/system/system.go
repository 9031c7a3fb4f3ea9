package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sceneExtensions = []string{".yaml", ".yml"}

// FindLatestScene returns the most recently modified scene file in dir.
func FindLatestScene(dir string) (string, error) {
	files, err := FindScenes(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time
	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if latestFile == "" || info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = path
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no scene files found in %s", dir)
	}
	return latestFile, nil
}

// FindScenes lists the scene files in dir, sorted by name.
func FindScenes(dir string) ([]string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(f.Name()))
		for _, want := range sceneExtensions {
			if ext == want {
				out = append(out, filepath.Join(dir, f.Name()))
				break
			}
		}
	}
	return out, nil
}

// NewLogger builds a console logger writing to stderr at the given level
// ("debug", "info", "warn", "error").
func NewLogger(level string) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		EncodeTime:       zapcore.TimeEncoderOfLayout(time.TimeOnly),
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		ConsoleSeparator: "\t",
	})
	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), lvl)
	return zap.New(core).Sugar(), nil
}

// Stats is a snapshot of the run for the performance report.
type Stats struct {
	Elapsed time.Duration
	RSS     uint64
}

// CollectStats measures the time since start and the resident memory of
// this process.
func CollectStats(start time.Time) (Stats, error) {
	stats := Stats{Elapsed: time.Since(start)}
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return stats, err
	}
	mem, err := proc.MemoryInfo()
	if err != nil {
		return stats, err
	}
	stats.RSS = mem.RSS
	return stats, nil
}

func (s Stats) String() string {
	return fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Total Time: %.2fs\n"+
			"Memory (RSS): %.1f MiB\n"+
			"----------------------------\n",
		s.Elapsed.Seconds(), float64(s.RSS)/(1<<20),
	)
}
