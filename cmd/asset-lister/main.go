package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/provide-io/assetpack/internal/buildinfo"
	"github.com/provide-io/assetpack/pkg"
	"github.com/provide-io/assetpack/pkg/asst/format_v1"
	"github.com/provide-io/assetpack/pkg/logging"
)

var (
	showDigest  bool
	verify      bool
	logLevel    string
	rootCmd     *cobra.Command
	versionFlag bool
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "asset-lister <assets_bin>",
		Short: "List the contents of an ASST archive",
		Args: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				return nil
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: listAssets,
	}

	rootCmd.Flags().BoolVar(&showDigest, "digest", false, "Print a sha256 digest of every asset")
	rootCmd.Flags().BoolVar(&verify, "verify", false, "Fail if any asset lies outside the file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")
}

func main() {
	// Handle --version or -V before cobra parses other flags
	if buildinfo.IsVersionRequest(os.Args[1:]) {
		buildinfo.Print(os.Stdout, "asset-lister")
		os.Exit(format_v1.ExitSuccess)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(format_v1.ExitFailure)
	}
}

func listAssets(cmd *cobra.Command, args []string) error {
	if versionFlag {
		buildinfo.Print(cmd.OutOrStdout(), "asset-lister")
		return nil
	}
	cmd.SilenceUsage = true

	logger := logging.NewToolLogger("asset-lister", "ASSET_LISTER_LOG_LEVEL", logLevel)

	listing, err := pkg.ListArchiveWithLogger(args[0], format_v1.InspectOptions{Digest: showDigest}, logger)
	if err != nil {
		return err
	}
	printListing(cmd.OutOrStdout(), listing)

	if verify {
		return pkg.VerifyArchiveWithLogger(args[0], logger)
	}
	return nil
}

func printListing(w io.Writer, listing *pkg.ArchiveListing) {
	fmt.Fprintf(w, "Assets in %s (version %d, %d assets):\n", listing.Path, listing.Version, listing.EntryCount)
	for _, e := range listing.Entries {
		fmt.Fprintf(w, "- %s (offset: %d, size: %d)\n", e.Name, e.Offset, e.Size)
		if e.Err != nil {
			fmt.Fprintf(w, "  Unreadable: %v\n", e.Err)
			continue
		}
		fmt.Fprintf(w, "  First %d bytes: %s\n", len(e.Preview), e.PreviewHex())
		if e.Digest != "" {
			fmt.Fprintf(w, "  Digest: %s\n", e.Digest)
		}
	}
}
