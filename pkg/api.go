package pkg

import (
	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/assetpack/pkg/asst/format_v1"
	"github.com/provide-io/assetpack/pkg/bootstrap"
	"github.com/provide-io/assetpack/pkg/logging"
)

// ArchiveListing is the header summary plus one report per entry
type ArchiveListing struct {
	Path       string
	Version    uint32
	EntryCount uint32
	Entries    []format_v1.EntryReport
}

// BuildArchive packs the top-level files of sourceDir into outputPath
func BuildArchive(sourceDir, outputPath string) (*format_v1.BuildResult, error) {
	return BuildArchiveWithLogger(sourceDir, outputPath, format_v1.BuilderOptions{}, hclog.NewNullLogger())
}

// BuildArchiveWithLogLevel builds with the asset-packer log level resolution
func BuildArchiveWithLogLevel(sourceDir, outputPath string, opts format_v1.BuilderOptions, cliLogLevel string) (*format_v1.BuildResult, error) {
	logger := logging.NewToolLogger("asset-packer", "ASSET_PACKER_LOG_LEVEL", cliLogLevel)
	return BuildArchiveWithLogger(sourceDir, outputPath, opts, logger)
}

func BuildArchiveWithLogger(sourceDir, outputPath string, opts format_v1.BuilderOptions, logger hclog.Logger) (*format_v1.BuildResult, error) {
	logger.Info("📦 Building asset archive", "source", sourceDir, "output", outputPath)
	result, err := format_v1.NewBuilder(opts, logger).Build(sourceDir, outputPath)
	if err != nil {
		logger.Error("❌ Build failed", "error", err)
		return nil, err
	}
	return result, nil
}

// ListArchive returns the header summary and the inspected entries of an archive
func ListArchive(archivePath string, opts format_v1.InspectOptions) (*ArchiveListing, error) {
	return ListArchiveWithLogger(archivePath, opts, hclog.NewNullLogger())
}

func ListArchiveWithLogger(archivePath string, opts format_v1.InspectOptions, logger hclog.Logger) (*ArchiveListing, error) {
	reader, err := format_v1.OpenArchive(archivePath, logger)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := reader.Close(); err != nil {
			logger.Debug("Failed to close reader", "error", err)
		}
	}()

	header, err := reader.Header()
	if err != nil {
		return nil, err
	}

	reports, err := reader.Inspect(opts)
	if err != nil {
		return nil, err
	}

	return &ArchiveListing{
		Path:       archivePath,
		Version:    header.Version,
		EntryCount: header.EntryCount,
		Entries:    reports,
	}, nil
}

// ReadAsset returns one entry of an archive by name
func ReadAsset(archivePath, name string) ([]byte, error) {
	reader, err := format_v1.OpenArchive(archivePath, nil)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return reader.ReadEntry(name)
}

// Boot runs runner from whichever asset source exists
func Boot(archivePath, looseDir string, runner bootstrap.ScriptRunner, logger hclog.Logger) (*bootstrap.BootReport, error) {
	loader := bootstrap.NewLoader(bootstrap.Config{
		ArchivePath: archivePath,
		LooseDir:    looseDir,
		Logger:      logger,
	})
	return loader.Boot(runner)
}
