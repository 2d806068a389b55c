package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wudi/shotkit/record"
)

var (
	recordFPS       int
	recordDuration  time.Duration
	recordFormat    string
	recordQuality   string
	recordRegion    string
	recordDisplay   int
	recordWatermark string
)

var recordCmd = &cobra.Command{
	Use:   "record [output]",
	Short: "Record the screen to GIF or MP4",
	Long: `Records the primary display (or --display / --region) for --duration
and encodes the result. The output extension is derived from --format
when no path is given. Progress is printed every few frames.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecord,
}

func init() {
	recordCmd.Flags().IntVar(&recordFPS, "fps", 0, "frames per second 1..60 (default from config)")
	recordCmd.Flags().DurationVarP(&recordDuration, "duration", "d", 10*time.Second, "recording length")
	recordCmd.Flags().StringVarP(&recordFormat, "format", "f", "", "gif or mp4 (default from config)")
	recordCmd.Flags().StringVarP(&recordQuality, "quality", "q", "", "low, medium, high, lossless (default from config)")
	recordCmd.Flags().StringVarP(&recordRegion, "region", "r", "", "region as x,y,w,h")
	recordCmd.Flags().IntVar(&recordDisplay, "display", 0, "display index")
	recordCmd.Flags().StringVarP(&recordWatermark, "watermark", "w", "", "text stamped on every frame")
	rootCmd.AddCommand(recordCmd)
}

func runRecord(cmd *cobra.Command, args []string) error {
	fps := recordFPS
	if fps == 0 {
		fps = cfg.Recording.FPS
	}
	format := recordFormat
	if format == "" {
		format = cfg.Recording.Format
	}
	quality := recordQuality
	if quality == "" {
		quality = cfg.Recording.Quality
	}

	opts := []record.Option{
		record.WithFormat(record.Format(format)),
		record.WithQuality(record.Quality(quality)),
		record.WithMaxDuration(time.Duration(cfg.Recording.MaxDuration) * time.Second),
		record.WithLogger(log),
		record.WithProgress(func(frames int, elapsed, eta time.Duration) {
			fmt.Fprintf(cmd.ErrOrStderr(), "\r%d frames, %s elapsed", frames, elapsed.Truncate(time.Second))
		}),
	}
	if recordWatermark != "" {
		opts = append(opts, record.WithWatermark(recordWatermark))
	}
	if recordRegion != "" {
		rect, err := parseRegion(recordRegion)
		if err != nil {
			return err
		}
		opts = append(opts, record.WithRegion(rect))
	} else if recordDisplay != 0 {
		opts = append(opts, record.WithDisplay(recordDisplay))
	}

	r, err := record.New(fps, opts...)
	if err != nil {
		return err
	}

	output := ""
	if len(args) > 0 {
		output = args[0]
	}
	path, err := r.Record(cmd.Context(), recordDuration, output)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "\n")
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
