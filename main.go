package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/loaders"
	"github.com/df07/go-weekend-raytracer/pkg/output"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

const scenesDir = "scenes"

// options holds the parsed command line
type options struct {
	sceneName  string
	configPath string
	outPath    string
	width      int
	spp        int
	depth      int
	seed       int64
	workers    int
	preview    int
	quiet      bool
	list       bool
	help       bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts, err := parseFlags(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if opts.help {
		printHelp(fs, stdout)
		return 0
	}
	if opts.list {
		if err := listScenes(stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := render(opts, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(fs *flag.FlagSet, args []string) (options, error) {
	var opts options
	fs.StringVar(&opts.sceneName, "scene", "three-spheres", "Built-in scene name or path to a .json scene file")
	fs.StringVar(&opts.configPath, "config", "", "JSON scene description (overrides -scene)")
	fs.StringVar(&opts.outPath, "out", "", "Output file (.ppm, .png, .jpg, .gif, .tif, .bmp); '-' writes PPM to stdout")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (height follows the camera aspect ratio)")
	fs.IntVar(&opts.spp, "spp", 0, "Samples per pixel")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum ray bounce depth")
	fs.Int64Var(&opts.seed, "seed", 0, "Random seed for a reproducible render (0 = time based)")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = use CPU count)")
	fs.IntVar(&opts.preview, "preview", 0, "Also write a preview scaled to this width")
	fs.BoolVar(&opts.quiet, "quiet", false, "Suppress log output and the progress bar")
	fs.BoolVar(&opts.list, "list", false, "List available scenes")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	for name, value := range map[string]int{"width": opts.width, "spp": opts.spp, "depth": opts.depth, "workers": opts.workers, "preview": opts.preview} {
		if value < 0 {
			return opts, fmt.Errorf("-%s must not be negative, got %d", name, value)
		}
	}
	return opts, nil
}

func printHelp(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Weekend Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, name := range scene.Names() {
		fmt.Fprintf(w, "  %s\n", name)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output defaults to output/<scene>/render_<timestamp>.png")
}

func listScenes(w io.Writer) error {
	groups, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		return err
	}
	for _, group := range groups {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			id := info.ID
			if info.Type == "json" {
				id = info.FilePath
			}
			fmt.Fprintf(w, "  %-28s %s\n", id, info.Description)
		}
	}
	return nil
}

// createScene builds the scene named on the command line. A -config file or a
// -scene ending in .json is loaded from disk; anything else is a built-in scene.
func createScene(opts options) (*scene.Scene, error) {
	path := opts.configPath
	if path == "" && strings.HasSuffix(strings.ToLower(opts.sceneName), ".json") {
		path = opts.sceneName
	}
	if path != "" {
		return loaders.LoadScene(path)
	}
	if opts.sceneName == "" {
		return nil, errors.New("no scene given")
	}
	return scene.Create(opts.sceneName, opts.seed)
}

// applyOverrides folds command line sampling settings into the scene
func applyOverrides(s *scene.Scene, opts options) error {
	if opts.width > 0 {
		s.SetWidth(opts.width)
	}
	s.SamplingConfig = renderer.MergeSamplingConfig(s.SamplingConfig, renderer.SamplingConfig{
		SamplesPerPixel: opts.spp,
		MaxDepth:        opts.depth,
		Seed:            opts.seed,
		NumWorkers:      opts.workers,
	})
	return s.Validate()
}

// sceneLabel names the output directory for a scene
func sceneLabel(opts options) string {
	path := opts.configPath
	if path == "" {
		path = opts.sceneName
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func defaultOutputPath(opts options, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", sceneLabel(opts), fmt.Sprintf("render_%s.png", timestamp))
}

// barProgress feeds render progress into a terminal progress bar
type barProgress struct {
	bar *progressbar.ProgressBar
}

func (p barProgress) Increment(n int) {
	_ = p.bar.Add(n)
}

func newProgressBar(total int, w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Rendering"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "#",
			SaucerHead:    ">",
			SaucerPadding: "-",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func render(opts options, stdout, stderr io.Writer) error {
	selectedScene, err := createScene(opts)
	if err != nil {
		return err
	}
	if err := applyOverrides(selectedScene, opts); err != nil {
		return err
	}

	outPath := opts.outPath
	if outPath == "" {
		outPath = defaultOutputPath(opts, time.Now())
	}
	toStdout := outPath == "-"

	// Logs and progress never share stdout with image data
	var logger core.Logger = renderer.NewWriterLogger(stdout)
	progressWriter := stderr
	if toStdout {
		logger = renderer.NewWriterLogger(stderr)
	}
	if opts.quiet {
		logger = renderer.NopLogger{}
	}

	logger.Printf("Scene %q: %d spheres\n", sceneLabel(opts), selectedScene.GetPrimitiveCount())

	raytracer, err := renderer.NewRaytracer(selectedScene, selectedScene.SamplingConfig, logger)
	if err != nil {
		return err
	}
	config := raytracer.GetConfig()

	var bar *progressbar.ProgressBar
	if !opts.quiet {
		bar = newProgressBar(config.Width*config.Height, progressWriter)
		raytracer.SetProgress(barProgress{bar: bar})
	}

	img, stats, err := raytracer.Render()
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(progressWriter)
	}
	if err != nil {
		return err
	}
	logger.Printf("Seed %d, %.1f samples per pixel\n", stats.Seed, stats.AverageSamples)

	if toStdout {
		if err := output.WritePPM(stdout, img); err != nil {
			return fmt.Errorf("failed to write image: %w", err)
		}
	} else {
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := output.Save(outPath, img); err != nil {
			return err
		}
		logger.Printf("Render saved as %s\n", outPath)
	}

	if opts.preview > 0 {
		previewPath := previewPathFor(outPath, sceneLabel(opts))
		if err := output.SavePreview(previewPath, img, opts.preview); err != nil {
			return err
		}
		logger.Printf("Preview saved as %s\n", previewPath)
	}

	return nil
}

// previewPathFor places the preview next to the render as <name>_preview.png
func previewPathFor(outPath, label string) string {
	if outPath == "-" {
		return label + "_preview.png"
	}
	ext := filepath.Ext(outPath)
	return strings.TrimSuffix(outPath, ext) + "_preview.png"
}
