package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/provide-io/assetpack/internal/buildinfo"
	"github.com/provide-io/assetpack/pkg"
	"github.com/provide-io/assetpack/pkg/asst/format_v1"
)

var (
	strictNames bool
	createDirs  bool
	logLevel    string
	rootCmd     *cobra.Command
	versionFlag bool
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "asset-packer <input_dir> <output_bin>",
		Short: "Pack a directory of assets into an ASST archive",
		Long: `Pack the top-level files of input_dir into a single ASST archive.
Subdirectories are skipped, at most 100 files are packed and names are
truncated to 31 bytes.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: packAssets,
	}

	rootCmd.Flags().BoolVar(&strictNames, "strict-names", false, "Fail when two names collide after truncation")
	rootCmd.Flags().BoolVar(&createDirs, "create-dirs", false, "Create missing parent directories of output_bin")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")
}

func main() {
	// Handle --version or -V before cobra parses other flags
	if buildinfo.IsVersionRequest(os.Args[1:]) {
		buildinfo.Print(os.Stdout, "asset-packer")
		os.Exit(format_v1.ExitSuccess)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(format_v1.ExitFailure)
	}
}

func packAssets(cmd *cobra.Command, args []string) error {
	if versionFlag {
		buildinfo.Print(cmd.OutOrStdout(), "asset-packer")
		return nil
	}
	cmd.SilenceUsage = true

	opts := format_v1.BuilderOptions{
		StrictNames: strictNames,
		CreateDirs:  createDirs,
	}
	result, err := pkg.BuildArchiveWithLogLevel(args[0], args[1], opts, logLevel)
	if err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), warning)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s with %d assets\n", result.OutputPath, result.EntryCount)
	return nil
}
