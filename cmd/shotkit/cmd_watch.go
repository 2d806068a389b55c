package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	hook "github.com/robotn/gohook"
	"github.com/spf13/cobra"

	"github.com/wudi/shotkit/capture"
	"github.com/wudi/shotkit/observability"
	"github.com/wudi/shotkit/record"
)

var (
	watchOnChange bool
	watchInterval time.Duration
	watchDisplay  int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run as a hotkey daemon",
	Long: `Listens for the configured hotkeys (watch.hotkey_capture saves a
screenshot, watch.hotkey_record toggles a recording) until interrupted.
With --on-change it instead polls the display and saves a frame whenever
the screen content changes.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchOnChange, "on-change", false, "save a frame when the screen changes instead of listening for hotkeys")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 2*time.Second, "polling interval with --on-change")
	watchCmd.Flags().IntVarP(&watchDisplay, "display", "d", 0, "display index")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	outDir, err := cfg.OutputDir()
	if err != nil {
		return err
	}
	if watchOnChange {
		return watchChanges(cmd, outDir)
	}
	return watchHotkeys(cmd, outDir)
}

func watchChanges(cmd *cobra.Command, outDir string) error {
	detector := &capture.Detector{}
	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()
	log.Info("watching for changes",
		observability.Int("display", watchDisplay),
		observability.String("dir", outDir))
	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case <-ticker.C:
		}
		shot, err := capture.Display(watchDisplay)
		if err != nil {
			return err
		}
		if !detector.Changed(shot) {
			continue
		}
		path := filepath.Join(outDir, fmt.Sprintf("change_%s.png", shot.CapturedAt.Format("20060102_150405")))
		if err := shot.SavePNG(path); err != nil {
			return err
		}
		log.Info("screen changed", observability.String("path", path))
	}
}

func watchHotkeys(cmd *cobra.Command, outDir string) error {
	captureKeys := splitHotkey(cfg.Watch.HotkeyCapture)
	recordKeys := splitHotkey(cfg.Watch.HotkeyRecord)

	var recorder *record.Recorder

	hook.Register(hook.KeyDown, captureKeys, func(e hook.Event) {
		shot, err := capture.Display(watchDisplay)
		if err != nil {
			log.Error("hotkey capture failed", observability.Error("error", err))
			return
		}
		path := filepath.Join(outDir, fmt.Sprintf("hotkey_%s.png", shot.CapturedAt.Format("20060102_150405")))
		if err := shot.SavePNG(path); err != nil {
			log.Error("hotkey capture failed", observability.Error("error", err))
			return
		}
		notify("captured " + path)
	})

	hook.Register(hook.KeyDown, recordKeys, func(e hook.Event) {
		if recorder != nil {
			path, err := recorder.Stop("")
			recorder = nil
			if err != nil {
				log.Error("hotkey recording failed", observability.Error("error", err))
				return
			}
			notify("recorded " + path)
			return
		}
		r, err := record.New(cfg.Recording.FPS,
			record.WithFormat(record.Format(cfg.Recording.Format)),
			record.WithQuality(record.Quality(cfg.Recording.Quality)),
			record.WithMaxDuration(time.Duration(cfg.Recording.MaxDuration)*time.Second),
			record.WithDisplay(watchDisplay),
			record.WithLogger(log))
		if err != nil {
			log.Error("hotkey recording failed", observability.Error("error", err))
			return
		}
		if err := r.Start(cmd.Context()); err != nil {
			log.Error("hotkey recording failed", observability.Error("error", err))
			return
		}
		recorder = r
		notify("recording started")
	})

	log.Info("watching hotkeys",
		observability.String("capture", cfg.Watch.HotkeyCapture),
		observability.String("record", cfg.Watch.HotkeyRecord))

	events := hook.Start()
	defer hook.End()
	done := hook.Process(events)
	select {
	case <-cmd.Context().Done():
	case <-done:
	}
	return nil
}

// notify surfaces daemon events. Notifications go through the logger so
// headless runs still record them.
func notify(msg string) {
	if cfg.Watch.Notifications {
		log.Info(msg)
	}
}

func splitHotkey(combo string) []string {
	parts := strings.Split(strings.ToLower(combo), "+")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
