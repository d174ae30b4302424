package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/provide-io/assetpack/internal/assetenv"
	"github.com/provide-io/assetpack/internal/buildinfo"
	"github.com/provide-io/assetpack/pkg"
	"github.com/provide-io/assetpack/pkg/asst/format_v1"
	"github.com/provide-io/assetpack/pkg/bootstrap"
	"github.com/provide-io/assetpack/pkg/logging"
)

var (
	archivePath string
	looseDir    string
	baseDir     string
	printScript bool
	logLevel    string
	rootCmd     *cobra.Command
	versionFlag bool
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "asset-loader",
		Short: "Resolve the asset source and load the bootstrap script",
		Long: `Resolve the asset source the way the runtime does: the packed archive
when it exists, otherwise the loose asset directory. The bootstrap script
is loaded from the selected source and optionally printed.`,
		Args: cobra.NoArgs,
		RunE: loadAssets,
	}

	rootCmd.Flags().StringVar(&archivePath, "archive", "", "Packed archive (env ASSET_BIN_PATH, default assets.bin)")
	rootCmd.Flags().StringVar(&looseDir, "dir", "", "Loose asset directory (env ASSET_DIR, default assets)")
	rootCmd.Flags().StringVar(&baseDir, "base-dir", "", "Base directory for relative paths (env ASSET_BASE_DIR, defaults to CWD)")
	rootCmd.Flags().BoolVar(&printScript, "print", false, "Write the bootstrap script to stdout")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")
}

func main() {
	// Handle --version or -V before cobra parses other flags
	if buildinfo.IsVersionRequest(os.Args[1:]) {
		buildinfo.Print(os.Stdout, "asset-loader")
		os.Exit(format_v1.ExitSuccess)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(format_v1.ExitFailure)
	}
}

// printRunner stands in for the scripting runtime
type printRunner struct {
	out    io.Writer
	print  bool
	assets int
}

func (p *printRunner) BindFiles(bootstrap.Opener) {}

func (p *printRunner) SetAssets(assets map[string][]byte) {
	p.assets = len(assets)
}

func (p *printRunner) RunScript(name string, script []byte) error {
	if !p.print {
		return nil
	}
	if _, err := p.out.Write(script); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func loadAssets(cmd *cobra.Command, args []string) error {
	if versionFlag {
		buildinfo.Print(cmd.OutOrStdout(), "asset-loader")
		return nil
	}
	cmd.SilenceUsage = true

	logger := logging.NewToolLogger("asset-loader", "ASSET_LOADER_LOG_LEVEL", logLevel)

	paths, err := assetenv.Resolve(assetenv.Overrides{
		BaseDir:  baseDir,
		Archive:  archivePath,
		LooseDir: looseDir,
	})
	if err != nil {
		return err
	}
	if err := paths.Validate(); err != nil {
		logger.Warn("⚠️ Asset source check failed", "error", err)
	}
	logger.Debug("🔍 Asset paths resolved",
		"archive", paths.Archive,
		"dir", paths.LooseDir,
		"has_archive", paths.HasArchive())

	runner := &printRunner{out: cmd.OutOrStdout(), print: printScript}
	report, err := pkg.Boot(paths.Archive, paths.LooseDir, runner, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Loaded %s (%d bytes) from %s %s, %d assets\n",
		format_v1.BootstrapName, report.ScriptSize, report.Kind, report.Location, report.AssetCount)
	return nil
}
