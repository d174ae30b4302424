package pkg

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/assetpack/pkg/asst/format_v1"
	"github.com/provide-io/assetpack/pkg/logging"
)

// VerifyArchiveWithLogger checks the header and that every entry lies inside
// the file and can be read. Entry failures are joined into one error.
func VerifyArchiveWithLogger(archivePath string, logger hclog.Logger) error {
	reader, err := format_v1.OpenArchive(archivePath, logger)
	if err != nil {
		logger.Error("Failed to open archive", "error", err)
		return err
	}
	defer func() {
		if err := reader.Close(); err != nil {
			logger.Debug("Failed to close reader", "error", err)
		}
	}()

	logger.Info("Verifying archive integrity")
	logger.Info("✓ Header valid")

	reports, err := reader.Inspect(format_v1.InspectOptions{Digest: true})
	if err != nil {
		return err
	}

	var failures []error
	for i, report := range reports {
		if report.Err != nil {
			failures = append(failures, report.Err)
			logger.Error("Asset verification failed", "index", i, "name", report.Name, "error", report.Err)
			continue
		}
		logger.Info("✓ Asset readable", "index", i, "name", report.Name, "digest", report.Digest)
	}

	if len(failures) > 0 {
		logger.Error("✗ Archive verification failed", "error_count", len(failures))
		return fmt.Errorf("%d of %d assets failed verification: %w", len(failures), len(reports), errors.Join(failures...))
	}

	logger.Info("✓ Archive verification passed")
	return nil
}

// VerifyArchive verifies an archive using default logger settings
func VerifyArchive(archivePath string) error {
	logger := logging.NewLogger("asset-verify", logging.GetLogLevel(), nil)
	return VerifyArchiveWithLogger(archivePath, logger)
}
