package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	svgo "github.com/ajstarks/svgo"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/flanksource/svgx"
	"github.com/flanksource/svgx/probe"
	"github.com/flanksource/svgx/sanitize"
	"github.com/flanksource/svgx/store"
)

// Build information (set by goreleaser)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "svgx",
		Short: "Inspect and transform SVG documents",
		Long: `Svgx reads intrinsic SVG dimensions and applies resize, crop, and pad
transforms by rewriting the viewBox and width/height attributes. Generated
variants are cached under a content-addressed key so repeated transforms of
the same source are free.`,
		Example: `  svgx dims logo.svg
  svgx transform --op fill --width 100 --height 100 logo.svg
  svgx chain --presets presets.yaml --preset thumbnail logo.svg
  svgx inspect logo.svg`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			svgx.Flags.UseFlags()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	svgx.BindAllFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newDimsCommand())
	rootCmd.AddCommand(newTransformCommand())
	rootCmd.AddCommand(newChainCommand())
	rootCmd.AddCommand(newSanitizeCommand())
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newSampleCommand())
	rootCmd.AddCommand(newCacheCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// newEngine builds an engine from the shared flags. The returned closer is a
// no-op for in-memory stores.
func newEngine() (*svgx.Engine, func(), error) {
	config := svgx.Config{
		DisableGeneration: svgx.Flags.ReadOnly,
		SanitizeOnLoad:    svgx.Flags.Sanitize,
	}
	closer := func() {}
	if !svgx.Flags.NoCache {
		db, err := store.NewSQLite(svgx.Flags.CachePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open variant cache: %w", err)
		}
		config.Store = db
		closer = func() { _ = db.Close() }
	}
	return svgx.New(config), closer, nil
}

func writeResult(outputFile string, data []byte) error {
	if outputFile == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputFile, err)
	}
	return nil
}

func newDimsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dims <file1> [file2...]",
		Short: "Print the intrinsic dimensions of SVG files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				dims, err := svgx.ReadDimensions(data)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Printf("%s: %s\n", path, dims)
			}
			return nil
		},
	}
}

func newTransformCommand() *cobra.Command {
	var step svgx.Step
	var outputFile string

	cmd := &cobra.Command{
		Use:   "transform [flags] <file>",
		Short: "Apply a single transform to an SVG file",
		Long: `Apply one resize, crop, or pad operation to a document and print the
result. The cache is bypassed: transform always recomputes.`,
		Example: `  svgx transform --op fill --width 100 --height 100 logo.svg
  svgx transform --op focus_fill --width 400 --height 200 --focus-x 0.3 --focus-y 0.7 hero.svg
  svgx transform --op crop --x 10 --y 20 --width 50 --height 60 -o cropped.svg diagram.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := step.Spec()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			out, err := svgx.Apply(data, spec)
			if err != nil {
				return fmt.Errorf("transform failed: %w", err)
			}
			return writeResult(outputFile, out)
		},
	}

	cmd.Flags().StringVar(&step.Op, "op", "", "Transform operation (fit, fill, pad, crop, scale_width, ...)")
	cmd.Flags().IntVar(&step.Width, "width", 0, "Target width in user units")
	cmd.Flags().IntVar(&step.Height, "height", 0, "Target height in user units")
	cmd.Flags().IntVar(&step.X, "x", 0, "Crop window x offset")
	cmd.Flags().IntVar(&step.Y, "y", 0, "Crop window y offset")
	cmd.Flags().Float64Var(&step.FocusX, "focus-x", 0.5, "Normalized focus x in [0,1]")
	cmd.Flags().Float64Var(&step.FocusY, "focus-y", 0.5, "Normalized focus y in [0,1]")
	cmd.Flags().BoolVar(&step.Upscale, "upscale", false, "Allow focus_fill to grow small documents")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default stdout)")
	cmd.MarkFlagRequired("op")

	return cmd
}

func newChainCommand() *cobra.Command {
	var presetsFile string
	var presetName string
	var outputFile string

	cmd := &cobra.Command{
		Use:   "chain [flags] <file>",
		Short: "Run a named preset pipeline against an SVG file",
		Long: `Run a transform pipeline from a YAML presets file. Each step of the
pipeline produces a cached variant keyed by the file's content hash, so
rerunning the same chain serves stored bytes.`,
		Example: `  svgx chain --presets presets.yaml --preset thumbnail logo.svg
  svgx chain --presets presets.yaml --preset hero --cache ./variants.db -o hero.svg banner.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := svgx.LoadPresetsFile(presetsFile)
			if err != nil {
				return err
			}
			preset, ok := presets[presetName]
			if !ok {
				return fmt.Errorf("preset %q not found in %s", presetName, presetsFile)
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			engine, closer, err := newEngine()
			if err != nil {
				return err
			}
			defer closer()

			asset := engine.Load(filepath.Base(args[0]), data)
			out, err := asset.ApplyPreset(preset)
			if err != nil {
				return err
			}
			if out.Variant != "" {
				fmt.Fprintf(os.Stderr, "%s %s\n", labelStyle.Render("variant:"), out.Variant)
			}
			return writeResult(outputFile, out.Bytes())
		},
	}

	cmd.Flags().StringVar(&presetsFile, "presets", "", "YAML file mapping preset names to pipelines (required)")
	cmd.Flags().StringVar(&presetName, "preset", "", "Preset name to run (required)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default stdout)")
	cmd.MarkFlagRequired("presets")
	cmd.MarkFlagRequired("preset")

	return cmd
}

func newSanitizeCommand() *cobra.Command {
	var options sanitize.Options
	var outputFile string

	cmd := &cobra.Command{
		Use:   "sanitize [flags] <file>",
		Short: "Strip active content from an SVG file",
		Long: `Remove script elements, event handler attributes, and hostile hyperlink
targets from a document. Everything removed is reported on stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			clean, removed, err := sanitize.New(options).Clean(data)
			if err != nil {
				return err
			}
			for _, item := range removed {
				fmt.Fprintf(os.Stderr, "%s %s\n", failStyle.Render("removed"), item)
			}
			if len(removed) == 0 {
				fmt.Fprintln(os.Stderr, okStyle.Render("nothing to remove"))
			}
			return writeResult(outputFile, clean)
		},
	}

	cmd.Flags().BoolVar(&options.AllowExternalReferences, "allow-external", false, "Keep http(s) hyperlink targets")
	cmd.Flags().BoolVar(&options.AllowDataURIs, "allow-data-uris", false, "Keep all data: URIs, not only data:image/")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default stdout)")

	return cmd
}

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Report an SVG file's size and element composition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			report, err := probe.Inspect(data)
			if err != nil {
				return err
			}

			fmt.Println(headingStyle.Render(args[0]))
			fmt.Printf("%s %s\n", labelStyle.Render("dimensions:"), report.Dimensions)

			names := make([]string, 0, len(report.Elements))
			for name := range report.Elements {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("%s %d\n", labelStyle.Render(name+":"), report.Elements[name])
			}
			for _, id := range report.IDs {
				fmt.Printf("%s %s\n", labelStyle.Render("id:"), id)
			}
			return nil
		},
	}
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file1> [file2...]",
		Short: "Run SVG files through a strict parser",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				if err := probe.Validate(data); err != nil {
					failed++
					fmt.Printf("%s %s: %v\n", failStyle.Render("✗"), path, err)
					continue
				}
				fmt.Printf("%s %s\n", okStyle.Render("✓"), path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed validation", failed, len(args))
			}
			return nil
		},
	}
}

func newSampleCommand() *cobra.Command {
	var width, height int
	var outputFile string

	cmd := &cobra.Command{
		Use:   "sample [flags]",
		Short: "Generate a sample SVG document",
		Long:  `Generate a simple SVG document, useful for trying out transforms.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var buf bytes.Buffer
			canvas := svgo.New(&buf)
			canvas.Start(width, height)
			canvas.Rect(0, 0, width, height, "fill:#eef2ff")
			r := width
			if height < width {
				r = height
			}
			canvas.Circle(width/2, height/2, r/3, "fill:#6366f1;fill-opacity:0.8")
			canvas.Text(width/2, height/2, fmt.Sprintf("%dx%d", width, height),
				"text-anchor:middle;font-size:14px;fill:#1e1b4b")
			canvas.End()
			return writeResult(outputFile, buf.Bytes())
		},
	}

	cmd.Flags().IntVar(&width, "width", 200, "Document width")
	cmd.Flags().IntVar(&height, "height", 150, "Document height")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default stdout)")

	return cmd
}

func newCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Variant cache maintenance",
	}
	cmd.AddCommand(newCacheStatsCommand())
	cmd.AddCommand(newCacheClearCommand())
	cmd.AddCommand(newCachePurgeCommand())
	return cmd
}

func openCache() (*store.SQLite, error) {
	return store.NewSQLite(svgx.Flags.CachePath)
}

func newCacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show variant cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openCache()
			if err != nil {
				return err
			}
			defer db.Close()

			stats, err := db.Stats()
			if err != nil {
				return err
			}
			fmt.Println(headingStyle.Render("variant cache"))
			fmt.Printf("%s %s\n", labelStyle.Render("path:"), db.Path())
			fmt.Printf("%s %d\n", labelStyle.Render("variants:"), stats.Variants)
			fmt.Printf("%s %d\n", labelStyle.Render("bytes:"), stats.Bytes)
			return nil
		},
	}
}

func newCacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached variants",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openCache()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Clear(); err != nil {
				return err
			}
			fmt.Println(okStyle.Render("✓") + " cache cleared")
			return nil
		},
	}
}

func newCachePurgeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "purge <file-id>",
		Short: "Remove all cached variants of one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openCache()
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := db.Purge(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s purged %d variants of %s\n", okStyle.Render("✓"), n, args[0])
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("svgx %s (commit: %s, built: %s, go: %s)\n",
				version, commit, date, runtime.Version())
		},
	}
}
