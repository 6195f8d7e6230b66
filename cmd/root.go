// Package cmd implements the pathtracer command line.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pathtracer",
	Short: "A Monte Carlo path tracer",
	Long: `pathtracer renders built-in or YAML-described scenes of spheres, rects and
boxes with diffuse, metal, glass and emissive materials.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "enable verbose logging (repeat for debug output)")
}

// Execute runs the root command. An interrupt cancels the running render.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}
