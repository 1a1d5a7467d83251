package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/flanksource/commons/logger"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/flanksource/svgpreview"
	"github.com/flanksource/svgpreview/api"
	"github.com/flanksource/svgpreview/formatters"
	"github.com/flanksource/svgpreview/formatters/pdf"
	"github.com/flanksource/svgpreview/host"
	"github.com/flanksource/svgpreview/shutdown"
)

// Build information (set by goreleaser)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
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
		Use:   "svgpreview",
		Short: "Preview SVG images and SVG fonts as HTML glyph sheets",
		Long: `svgpreview renders SVG images and SVG fonts into self-contained HTML
documents. Every glyph of a font becomes a card showing its outline, name and
code point.`,
		Example: `  svgpreview render icons.svg > icons.html
  svgpreview render --mode stroke --sort name -o previews/ fonts/*.svg
  svgpreview watch -o previews/ icons.svg
  svgpreview export icons.svg --glyph home --format png`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			svgpreview.Flags.UseFlags()
		},
	}
	svgpreview.BindAllFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

func resolveConfig() (api.RenderConfiguration, error) {
	return svgpreview.ResolveConfig(svgpreview.Flags.ConfigFile, svgpreview.Flags.RenderOptions)
}

// statusNotifier prints one themed line per notification to stderr.
func statusNotifier() func(host.Notification) {
	theme := api.DefaultTheme()
	return func(n host.Notification) {
		line := theme.Status(n.File, n.Result)
		if msg := host.MessageFor(n.Result.Kind); msg != "" {
			line += ": " + msg
		}
		fmt.Fprintln(os.Stderr, line)
	}
}

func newRenderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "render [flags] <file1> [file2...]",
		Short: "Render SVG files to HTML previews",
		Long: `Render each file to an HTML preview. With a single file and no --output the
preview is written to stdout, otherwise each preview is written to
<output>/<name>.preview.html.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig()
			if err != nil {
				return err
			}
			output := svgpreview.Flags.RenderOptions.Output
			if output == "" && len(args) == 1 {
				return renderToStdout(args[0], cfg)
			}
			if output == "" {
				return fmt.Errorf("--output is required when rendering more than one file")
			}

			previewer := host.NewPreviewer(svgpreview.Render, cfg,
				host.WithOutputDir(output), host.WithNotifier(statusNotifier()))
			failed := 0
			for _, result := range previewer.OpenAll(cmd.Context(), args, svgpreview.Flags.Concurrency) {
				if result.Err != nil {
					logger.Errorf("%v", result.Err)
					failed++
					continue
				}
				if !result.Panel.Result.IsDocument() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be previewed", failed, len(args))
			}
			return nil
		},
	}
}

func renderToStdout(file string, cfg api.RenderConfiguration) error {
	doc, err := host.ReadSource(file)
	if err != nil {
		return err
	}
	result, err := svgpreview.Render(doc, cfg)
	if err != nil {
		return err
	}
	if !result.IsDocument() {
		return fmt.Errorf("%s: %s", file, host.MessageFor(result.Kind))
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		fmt.Fprintln(os.Stderr, api.DefaultTheme().Status(file, result))
	}
	_, err = fmt.Fprint(os.Stdout, result.Markup)
	return err
}

func newWatchCommand() *cobra.Command {
	var clean bool

	cmd := &cobra.Command{
		Use:   "watch [flags] <file1> [file2...]",
		Short: "Re-render previews whenever the files change",
		Long: `Render each file and keep its preview up to date until interrupted. Previews
are written to <output>/<name>.preview.html (default: the current directory).
Changes to the configuration file re-render every preview.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig()
			if err != nil {
				return err
			}
			output := svgpreview.Flags.RenderOptions.Output
			if output == "" {
				output = "."
			}

			_, statErr := os.Stat(output)
			createdOutput := errors.Is(statErr, os.ErrNotExist)

			previewer := host.NewPreviewer(svgpreview.Render, cfg,
				host.WithOutputDir(output), host.WithNotifier(statusNotifier()))
			watcher, err := host.NewWatcher(previewer, svgpreview.Flags.WatchOptions)
			if err != nil {
				return err
			}
			shutdown.AddHookWithPriority("file watcher", shutdown.PriorityWatcher, func() {
				if err := watcher.Close(); err != nil {
					logger.Warnf("failed to close watcher: %v", err)
				}
			})
			if clean {
				shutdown.AddHookWithPriority("previews", shutdown.PriorityPreviews, previewer.Close)
				if createdOutput {
					shutdown.AddHookWithPriority("output directory", shutdown.PriorityOutput, previewer.RemoveOutputDir)
				}
			}

			for _, file := range args {
				if _, err := watcher.Add(file); err != nil {
					return err
				}
			}
			if err := observeConfig(watcher, previewer); err != nil {
				return err
			}

			logger.Infof("Watching %s, press Ctrl+C to stop", strings.Join(watcher.Files(), ", "))
			return shutdown.RunAndWait(cmd.Context(), watcher.Run)
		},
	}
	cmd.Flags().BoolVar(&clean, "clean", false, "Remove the previews, and the output directory if watch created it, on exit")
	return cmd
}

func observeConfig(watcher *host.Watcher, previewer *host.Previewer) error {
	path := svgpreview.Flags.ConfigFile
	if path == "" {
		if _, err := os.Stat(svgpreview.DefaultConfigFile); err != nil {
			return nil
		}
		path = svgpreview.DefaultConfigFile
	}
	return watcher.Observe(path, func() {
		cfg, err := resolveConfig()
		if err != nil {
			logger.Errorf("%v", err)
			return
		}
		logger.Infof("Configuration changed, re-rendering previews")
		if err := previewer.SetConfiguration(cfg); err != nil {
			logger.Errorf("%v", err)
		}
	})
}

func newExportCommand() *cobra.Command {
	var glyphName, format string
	var size, columns int
	var debugGrid bool

	cmd := &cobra.Command{
		Use:   "export [flags] <font.svg>",
		Short: "Export glyphs as PNG or a PDF sheet",
		Long: `Export one glyph as a PNG image, or the glyphs of a font as an A4 PDF sheet.
Without --glyph the PDF sheet contains every glyph of every font.`,
		Example: `  svgpreview export icons.svg --glyph home --format png -o home.png
  svgpreview export icons.svg --format pdf -o icons.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig()
			if err != nil {
				return err
			}
			doc, err := host.ReadSource(args[0])
			if err != nil {
				return err
			}
			sections, err := svgpreview.Fonts(doc)
			if err != nil {
				return err
			}

			var data []byte
			ext := strings.ToLower(format)
			switch ext {
			case "png":
				if glyphName == "" {
					return fmt.Errorf("--glyph is required for png export")
				}
				font, glyph, err := svgpreview.FindGlyph(sections, glyphName)
				if err != nil {
					return err
				}
				data, err = formatters.GlyphPNG(font, glyph, cfg, size)
				if err != nil {
					return err
				}
			case "pdf":
				opts := pdf.SheetOptions{Columns: columns, GlyphSize: size, Debug: debugGrid}
				if glyphName != "" {
					font, glyph, err := svgpreview.FindGlyph(sections, glyphName)
					if err != nil {
						return err
					}
					sections = []api.FontSection{{Font: font, Glyphs: []api.GlyphDescriptor{glyph}}}
				}
				data, err = pdf.GlyphSheet(sections, cfg, opts)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported export format %q, use png or pdf", format)
			}

			return writeExport(args[0], glyphName, ext, data)
		},
	}
	cmd.Flags().StringVar(&glyphName, "glyph", "", "Glyph name or hex code to export")
	cmd.Flags().StringVar(&format, "format", "png", "Export format: png, pdf")
	cmd.Flags().IntVar(&size, "size", 256, "Glyph height in pixels")
	cmd.Flags().IntVar(&columns, "columns", 6, "Glyphs per row on the PDF sheet (divisor of 12)")
	cmd.Flags().BoolVar(&debugGrid, "debug-grid", false, "Outline the rows and columns of the PDF sheet")
	return cmd
}

// writeExport writes to --output, or next to the source when it is unset.
// An --output naming an existing directory receives the default file name.
func writeExport(source, glyph, ext string, data []byte) error {
	name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if glyph != "" {
		name += "-" + formatters.Slug(glyph)
	}
	name += "." + ext

	path := svgpreview.Flags.RenderOptions.Output
	switch {
	case path == "":
		path = filepath.Join(filepath.Dir(source), name)
	case isDir(path):
		path = filepath.Join(path, name)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintln(os.Stderr, api.DefaultTheme().Success.Render("✓ "+path))
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(getVersionInfo())
		},
	}
}

func getVersionInfo() string {
	return fmt.Sprintf("svgpreview %s (commit: %s, built: %s, go: %s)",
		version, commit, date, runtime.Version())
}
