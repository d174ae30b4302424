package bootstrap

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/assetpack/pkg/asst/format_v1"
)

// ScriptRunner is the embedding scripting runtime
type ScriptRunner interface {
	// BindFiles exposes open/read/close over the active source
	BindFiles(files Opener)

	// SetAssets publishes the preloaded asset table before execution
	SetAssets(assets map[string][]byte)

	// RunScript executes script text registered under name
	RunScript(name string, script []byte) error
}

// BootReport describes a finished bootstrap
type BootReport struct {
	Kind       SourceKind
	Location   string
	AssetCount int
	ScriptSize int
}

// Loader boots a ScriptRunner from whichever asset source is present
type Loader struct {
	cfg    Config
	logger hclog.Logger
}

// NewLoader creates a Loader for cfg
func NewLoader(cfg Config) *Loader {
	return &Loader{cfg: cfg, logger: cfg.logger()}
}

// LoadBootstrap returns the bootstrap script and the strategy that supplied it
func (l *Loader) LoadBootstrap() ([]byte, SourceKind, error) {
	src, err := Resolve(l.cfg)
	if err != nil {
		return nil, 0, err
	}
	defer l.closeSource(src)

	script, err := src.BootstrapScript()
	if err != nil {
		return nil, src.Kind(), err
	}
	return script, src.Kind(), nil
}

// Boot opens the asset source, publishes the asset table when the source has
// one, and runs the bootstrap script. Loading is all-or-nothing: a bad entry
// aborts before the runner executes anything. The source is closed when Boot
// returns, so runners must finish file access inside RunScript.
func (l *Loader) Boot(runner ScriptRunner) (*BootReport, error) {
	src, err := Resolve(l.cfg)
	if err != nil {
		l.logger.Warn("⚠️ No valid asset source; scripts may fail to access files", "error", err)
		return nil, err
	}
	defer l.closeSource(src)

	report := &BootReport{Kind: src.Kind(), Location: src.Location()}

	assets, err := src.Assets()
	if err != nil {
		return nil, fmt.Errorf("load assets from %s: %w", src.Location(), err)
	}

	script, err := src.BootstrapScript()
	if err != nil {
		return nil, err
	}
	report.ScriptSize = len(script)

	runner.BindFiles(src)
	if assets != nil {
		report.AssetCount = len(assets)
		runner.SetAssets(assets)
	}

	l.logger.Info("🚀 Running bootstrap script",
		"source", report.Kind,
		"location", report.Location,
		"assets", report.AssetCount,
		"size", report.ScriptSize)

	if err := runner.RunScript(format_v1.BootstrapName, script); err != nil {
		return report, fmt.Errorf("run %s: %w", format_v1.BootstrapName, err)
	}
	return report, nil
}

func (l *Loader) closeSource(src Source) {
	if err := src.Close(); err != nil {
		l.logger.Debug("Failed to close asset source", "location", src.Location(), "error", err)
	}
}
