package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/worldview"
)

// runOpts holds the command-line flags for the run command.
type runOpts struct {
	config string // TOML config file, watched for changes
	width  int    // window width in pixels
	height int    // window height in pixels
	title  string // window title
	fps    bool   // show the status readout
	shots  string // screenshot directory
	format string // screenshot encoding
}

// runCommand creates the run command, which opens the demo world.
func (c *CLI) runCommand() *cobra.Command {
	opts := runOpts{width: 1024, height: 768, title: "worldview"}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open a window with a pannable, zoomable demo world",
		Long: `Open a window showing a labelled grid world.

Drag with the mouse or use the arrow keys to pan, scroll or press +/- to zoom,
press Escape to return the camera home, and press F12 to save a screenshot.
With --config the file is reloaded whenever it changes on disk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML config file (reloaded on change)")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "window width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", opts.height, "window height in pixels")
	cmd.Flags().StringVar(&opts.title, "title", opts.title, "window title")
	cmd.Flags().BoolVar(&opts.fps, "fps", false, "show the scale, origin and FPS readout")
	cmd.Flags().StringVar(&opts.shots, "screenshots", "screenshots", "directory for F12 screenshots")
	cmd.Flags().StringVar(&opts.format, "screenshot-format", "png", "screenshot encoding: png, tiff or bmp")

	return cmd
}

func (c *CLI) run(cmd *cobra.Command, opts runOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg := worldview.DefaultConfig()
	if opts.config != "" {
		loaded, err := worldview.LoadConfig(opts.config)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := c.applyLogLevel(logger, cfg); err != nil {
		return err
	}
	format, err := worldview.ParseCaptureFormat(opts.format)
	if err != nil {
		return err
	}

	surface := worldview.NewEbitenSurface(opts.width, opts.height)
	vp := worldview.NewViewport(surface, worldview.WithConfig(cfg), worldview.WithLogger(logger))
	vp.SetBackground(cfg.Viewport.Background)
	scene := newDemoScene(surface)
	cfg.Labels.Apply(scene.Labels)
	vp.Scenes().AddToFront(scene)
	vp.AddCameraControls()
	vp.Camera().SetSize(float64(opts.width), float64(opts.height))
	vp.Camera().Reset(true, cfg.Viewport.DefaultScale)

	game := worldview.NewGame(vp, surface, worldview.NewEbitenInput(cfg.Keys.Aliases))
	game.ScreenshotDir = opts.shots
	game.CaptureFormat = format
	game.OnCapture = func(shot worldview.Capture) { c.reportCapture(shot) }
	vp.Keys().AddToFront(&shortcuts{screenshot: game.Screenshot})

	if opts.config != "" {
		watcher, err := worldview.NewConfigWatcher(opts.config, logger)
		if err != nil {
			return err
		}
		defer watcher.Close()
		printInfo(c.stderr, "watching %s", opts.config)
		go func() {
			for next := range watcher.Configs() {
				apply := func() {
					if err := c.applyLogLevel(logger, next); err != nil {
						logger.Warn("ignoring log level", "err", err)
					}
					vp.SetConfig(next)
					next.Labels.Apply(scene.Labels)
					game.Belt().SetPaintBudget(next.Viewport.PaintBudget)
				}
				if !game.Post(apply) {
					logger.Warn("config reload dropped", "path", opts.config)
				}
			}
		}()
	}

	go func() {
		select {
		case <-ctx.Done():
			game.Stop()
		case <-game.Done():
		}
	}()

	logger.Debug("starting", "width", opts.width, "height", opts.height, "config", opts.config)
	if err := game.Run(worldview.RunConfig{
		Title:     opts.title,
		Width:     opts.width,
		Height:    opts.height,
		Resizable: true,
		ShowFPS:   opts.fps,
	}); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return ctx.Err()
}

// applyLogLevel sets the level named by cfg unless --verbose forced debug.
func (c *CLI) applyLogLevel(logger *log.Logger, cfg worldview.Config) error {
	if c.verbose {
		return nil
	}
	level, err := cfg.Log.ParseLevel()
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	return nil
}

// reportCapture prints where a screenshot went and what it shows.
func (c *CLI) reportCapture(shot worldview.Capture) {
	if shot.Err != nil {
		printError(c.stderr, "screenshot %d failed", shot.Seq)
		printDetail(c.stderr, "%v", shot.Err)
		return
	}
	printSuccess(c.stderr, "saved %s", shot.Path)
	if shot.Rendered {
		printDetail(c.stderr, "scale %g, origin (%g, %g)", shot.Scale, shot.X, shot.Y)
	}
}
