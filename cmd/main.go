package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/emzakit/slothymarker/internal/app"
	"github.com/emzakit/slothymarker/internal/document"
	"github.com/emzakit/slothymarker/internal/export"
	"github.com/emzakit/slothymarker/internal/logger"
	"github.com/emzakit/slothymarker/internal/render"
	"github.com/emzakit/slothymarker/internal/watch"
	"github.com/emzakit/slothymarker/pkg/config"
	"github.com/emzakit/slothymarker/pkg/errors"
	"github.com/emzakit/slothymarker/pkg/timecode"
)

var cfg *config.Config

var (
	configPath string
	tagsFlag   string
	noColors   bool
	quiet      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "slothymarker <FILE>",
	Short: "Extract and export ==marked== highlights from documents",
	Long: `Slothy Marker reads text, markdown, Word and PDF documents, collects the
spans marked as highlights, and re-exports them as plain text or SRT/VTT
subtitles. Transcript documents ([SRT], [VTT], [TRANSCRIPT]) give every
highlight the timestamp of the nearest header above it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runList(args[0])
	},
}

var catHTML bool

var catCmd = &cobra.Command{
	Use:   "cat <FILE>",
	Short: "Print the highlight list as plain text",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		a := app.New(cfg)
		if err := a.ProcessFile(args[0]); err != nil {
			return err
		}
		if catHTML {
			fmt.Println(render.Document(a.Engine().RawText(), a.Engine().Highlights(), nil,
				cfg.HighlightColor, cfg.SelectionColor))
			return nil
		}
		fmt.Println(export.PlainText(a.Engine().Highlights(), a.Engine().Mode()))
		return nil
	},
}

var (
	exportFormat    string
	exportOutput    string
	exportClipboard bool
)

var exportCmd = &cobra.Command{
	Use:   "export <FILE>",
	Short: "Export highlights to txt, srt, vtt or transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runExport(args[0])
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <FILE>",
	Short: "Show word counts and timestamp durations",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runStats(args[0])
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch <FILE>",
	Short: "Reload and reprint highlights whenever the file changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runWatch(args[0])
	},
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported document formats",
	Run: func(_ *cobra.Command, _ []string) {
		for _, f := range document.SupportedFormats() {
			fmt.Println(f)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&tagsFlag, "tags", "", "Comma-separated transcript tags (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&noColors, "no-colors", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress status output")

	catCmd.Flags().BoolVar(&catHTML, "html", false, "Render the document as HTML with highlight spans")

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "txt", "Export format: txt, srt, vtt or transcript")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().BoolVar(&exportClipboard, "clipboard", false, "Copy the export to the clipboard instead of a file")

	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		if tagsFlag != "" {
			var tags []string
			for _, tag := range strings.Split(tagsFlag, ",") {
				if trimmed := strings.TrimSpace(tag); trimmed != "" {
					tags = append(tags, trimmed)
				}
			}
			cfg.FileTags = tags
		}
		if noColors {
			cfg.UseColors = false
		}
		if quiet {
			cfg.QuietMode = true
		}

		logger.SetColorMode(cfg.UseColors)
		logger.SetQuietMode(cfg.QuietMode)
		return nil
	}

	rootCmd.AddCommand(catCmd, exportCmd, statsCmd, watchCmd, formatsCmd)
}

func runList(path string) error {
	a := app.New(cfg)
	if err := a.ProcessFile(path); err != nil {
		return err
	}

	ordered := a.Engine().DisplayOrder()
	if len(ordered) == 0 {
		logger.Warning("No highlights found.")
		return nil
	}
	for i, h := range ordered {
		fmt.Printf("%d.\n%s\n\n", i+1, h.DisplayText())
	}
	return nil
}

func runExport(path string) error {
	a := app.New(cfg)
	if err := a.ProcessFile(path); err != nil {
		return err
	}

	var content string
	switch exportFormat {
	case "txt":
		content = export.PlainText(a.Engine().Highlights(), a.Engine().Mode())
	case "srt":
		content = export.Subtitle(a.Engine().Highlights(), export.FormatSRT, timing())
	case "vtt":
		content = export.Subtitle(a.Engine().Highlights(), export.FormatVTT, timing())
	case "transcript":
		content = export.Transcript(a.Engine().Highlights())
	default:
		return errors.NewFormatError(fmt.Sprintf("unknown export format: '%s'", exportFormat), nil)
	}

	if content == "" && exportFormat != "txt" {
		return errors.NewNotFoundError("no timestamped highlights to export", nil)
	}

	if exportClipboard {
		if err := export.CopyToClipboard(content); err != nil {
			return err
		}
		logger.Success("Copied to clipboard.")
		return nil
	}

	out := exportOutput
	if out == "" {
		out = defaultOutput(path, exportFormat)
	}
	if err := export.WriteFile(out, content); err != nil {
		return err
	}
	logger.Success(fmt.Sprintf("Saved %s", out))
	return nil
}

func runStats(path string) error {
	a := app.New(cfg)
	if err := a.ProcessFile(path); err != nil {
		return err
	}

	s := a.Stats()
	fmt.Printf("Words: %d (highlighted: %d)\n", s.DocumentWords, s.HighlightWords)
	var estimates []string
	for _, wpm := range app.ReadingRates {
		estimates = append(estimates, fmt.Sprintf("%dwpm %s",
			wpm, timecode.FormatDuration(app.ReadingTime(s.HighlightWords, wpm))))
	}
	fmt.Printf("Reading time (highlighted): %s\n", strings.Join(estimates, ", "))
	if s.DocumentDuration > 0 {
		fmt.Printf("Duration: %s (highlighted: %s)\n",
			timecode.FormatDuration(s.DocumentDuration),
			timecode.FormatDuration(s.HighlightDuration))
	}
	return nil
}

func runWatch(path string) error {
	a := app.New(cfg)
	if err := a.ProcessFile(path); err != nil {
		return err
	}
	printHighlights(a)

	w, err := watch.New(path, func() {
		if errReload := a.Reload(); errReload != nil {
			logger.Error(errReload.Error())
			return
		}
		printHighlights(a)
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = w.Close()
	}()

	logger.Info(fmt.Sprintf("Watching %s (Ctrl-C to stop)", path))
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}

func printHighlights(a *app.App) {
	out := export.PlainText(a.Engine().Highlights(), a.Engine().Mode())
	if out == "" {
		logger.Warning("No highlights found.")
		return
	}
	fmt.Println(out)
}

func timing() export.Timing {
	return export.Timing{
		FallbackDuration: cfg.FallbackDuration,
		MinimumDuration:  cfg.MinimumDuration,
	}
}

// defaultOutput derives an output path next to the source document
func defaultOutput(path, format string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	switch format {
	case "srt":
		return base + ".srt"
	case "vtt":
		return base + ".vtt"
	default:
		return base + ".highlights.txt"
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
