// Command assets builds the web asset bundle: styles, scripts and static
// files from web/src/assets into web/static/dist.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/remitflow/remitflow/internal/assets"
	"github.com/remitflow/remitflow/internal/logging"
)

var (
	srcDir  string
	distDir string
	addr    string
)

var rootCmd = &cobra.Command{
	Use:   "assets",
	Short: "Asset pipeline for the web bundle",
	Long: `Builds the deployable asset bundle from the source tree.

Available commands:
  build    Build all stages once
  watch    Build, then rebuild on changes with livereload
  clean    Remove the dist tree`,
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build all stages once",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPipeline()
		_, err := p.Build()
		return err
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Build, then rebuild on changes with livereload",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPipeline()

		reload := assets.NewLivereload()
		watcher := assets.NewWatcher(p, srcDir)
		watcher.OnRebuild = reload.Broadcast

		mux := http.NewServeMux()
		mux.Handle("/livereload", reload)
		go func() {
			slog.Info("Livereload listening", "addr", addr)
			if err := http.ListenAndServe(addr, mux); err != nil {
				slog.Error("Livereload server failed", "error", err)
			}
		}()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err := watcher.Run(ctx)
		if err == context.Canceled {
			return nil
		}
		return err
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the dist tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		return newPipeline().Clean()
	},
}

func newPipeline() *assets.Pipeline {
	return assets.NewPipeline(afero.NewOsFs(), srcDir, distDir)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&srcDir, "src", "web/src/assets", "asset source directory")
	rootCmd.PersistentFlags().StringVar(&distDir, "dist", "web/static/dist", "build output directory")
	watchCmd.Flags().StringVar(&addr, "addr", ":35729", "livereload listen address")

	rootCmd.AddCommand(buildCmd, watchCmd, cleanCmd)
}

func main() {
	logging.New()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
