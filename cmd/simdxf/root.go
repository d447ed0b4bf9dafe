package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/cli"
)

var (
	// Global flags
	cfgFile        string
	verbose        bool
	linksFile      string
	taxonomiesFile string
)

var rootCmd = &cobra.Command{
	Use:   "simdxf",
	Short: "simdxf - SIMULTAN project file toolkit",
	Long: `simdxf reads, validates and upgrades SIMULTAN project files.

Every format version ever written is readable; files are always written in
the current version. Unresolved references are reported, not fatal, unless
strict references are enabled.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with a code describing the
// failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&linksFile, "links", "", "links file (.lidxf) used to locate linked resources")
	rootCmd.PersistentFlags().StringVar(&taxonomiesFile, "taxonomies", "", "taxonomy file (.txdxf) used by migrations")
}
