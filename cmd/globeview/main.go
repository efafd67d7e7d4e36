package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"globeview/internal/geom"
	"globeview/internal/scene"
	"globeview/internal/tui"
	"globeview/internal/viewer"
)

// injected via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath string
		logPath string
		verbose bool

		dataFlag   string
		zFlag      string
		viewFlag   string
		gridFlag   float64
		gridOnFlag bool
		alphaFlag  float64
		flyFlag    bool
	)

	cmd := &cobra.Command{
		Use:   "globeview [file|url|globeview:?query]",
		Short: "globeview renders GeoJSON depth/elevation data in the terminal",
		Long: `globeview loads a GeoJSON document from a file or URL, reprojects its
third coordinate (elevation, depth meters, or depth kilometers) into a
renderer height, and draws the geometry over a lat/lon graticule with
simplestyle colors. The current view is shareable as a globeview:?...
deep link, which is also accepted as the positional argument.`,
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := viewer.DefaultSettings()

			// precedence: defaults < config file < share link < flags
			if cfgPath == "" {
				if p := defaultConfigPath(); p != "" {
					if _, err := os.Stat(p); err == nil {
						cfgPath = p
					}
				}
			}
			if cfgPath != "" {
				var err error
				settings, err = viewer.ApplyConfigFile(cfgPath, settings)
				if err != nil {
					return fmt.Errorf("config: %w", err)
				}
			}
			if len(args) == 1 {
				if st, ok := viewer.ParseShareLink(args[0]); ok {
					settings = st
				} else {
					settings.Data = args[0]
				}
			}
			fl := cmd.Flags()
			if fl.Changed("data") {
				settings.Data = dataFlag
			}
			if fl.Changed("z") {
				settings.Z = geom.ParseZConvention(zFlag)
			}
			if fl.Changed("view") {
				settings.View = scene.ParseViewMode(viewFlag)
			}
			if fl.Changed("grid") {
				settings.GridDeg = gridFlag
			}
			if fl.Changed("grid-on") {
				settings.GridOn = gridOnFlag
			}
			if fl.Changed("alpha") && alphaFlag >= 0 && alphaFlag <= 1 {
				settings.GroundAlpha = alphaFlag
			}
			if fl.Changed("fly") {
				settings.Fly = flyFlag
			}

			logger, closeLog, err := newLogger(logPath, verbose)
			if err != nil {
				return err
			}
			defer closeLog()

			sess := viewer.NewSession(settings, logger)
			p := tea.NewProgram(tui.New(sess), tea.WithAltScreen(), tea.WithMouseAllMotion())
			_, err = p.Run()
			return err
		},
	}

	cmd.SetVersionTemplate(fmt.Sprintf("globeview %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	cmd.Flags().StringVar(&cfgPath, "config", "", "TOML config file (default: user config dir)")
	cmd.Flags().StringVar(&logPath, "log", "", "append logs to this file (the TUI owns the terminal)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "V", false, "enable debug logging")

	cmd.Flags().StringVar(&dataFlag, "data", "", "GeoJSON source URL or file path")
	cmd.Flags().StringVar(&zFlag, "z", string(geom.DefaultZConvention), "z convention: elevation_m, depth_m, depth_km")
	cmd.Flags().StringVar(&viewFlag, "view", string(scene.DefaultViewMode), "view mode: space or translucent")
	cmd.Flags().Float64Var(&gridFlag, "grid", 1, "graticule spacing in degrees")
	cmd.Flags().BoolVar(&gridOnFlag, "grid-on", true, "draw the lat/lon graticule")
	cmd.Flags().Float64Var(&alphaFlag, "alpha", 0.18, "globe surface alpha in translucent mode (0..1)")
	cmd.Flags().BoolVar(&flyFlag, "fly", true, "animate the camera to loaded data")

	return cmd
}

// newLogger writes to the given file, or discards everything when no file
// is named; stderr is unusable while the TUI runs.
func newLogger(path string, verbose bool) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
	return logger, func() { f.Close() }, nil
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "globeview", "config.toml")
}
