// Package record captures screen frames on a fixed interval and encodes
// them to animated GIF or MP4. Capture and collection run on separate
// goroutines joined by a bounded queue, so a slow encoder or a burst of
// large frames never stalls the grabber past its frame interval.
package record

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/wudi/shotkit/capture"
	"github.com/wudi/shotkit/observability"
)

// Format selects the output container.
type Format string

const (
	FormatGIF Format = "gif"
	FormatMP4 Format = "mp4"
)

// Quality selects the encoder quality tier for MP4 output. GIF output
// always quantizes to the same palette regardless of tier.
type Quality string

const (
	QualityLow      Quality = "low"
	QualityMedium   Quality = "medium"
	QualityHigh     Quality = "high"
	QualityLossless Quality = "lossless"
)

// ErrNoFrames is returned by Stop when the capture loop produced nothing.
var ErrNoFrames = errors.New("record: no frames captured")

// ErrNotRecording is returned by Stop when no recording is in progress.
var ErrNotRecording = errors.New("record: not recording")

// DefaultMaxDuration is the safety stop for open-ended recordings.
const DefaultMaxDuration = 300 * time.Second

// progressEvery is how many frames pass between progress callbacks.
const progressEvery = 10

// requiredFreeBytes is the preflight free-space floor before recording.
const requiredFreeBytes = 1 << 30

// Grabber produces one frame. The default grabs the primary display.
type Grabber func() (*image.RGBA, error)

// Progress receives periodic updates during capture: frames collected so
// far, time since Start, and time remaining until the max-duration stop.
type Progress func(frames int, elapsed, eta time.Duration)

// Recorder captures a screen region to an animated file. A Recorder runs
// one recording at a time; Start while recording is an error.
type Recorder struct {
	fps         int
	format      Format
	quality     Quality
	grab        Grabber
	maxDuration time.Duration
	watermark   string
	progress    Progress
	log         observability.Logger

	mu      sync.Mutex
	session *session
}

type session struct {
	start     time.Time
	stop      chan struct{}
	stopOnce  sync.Once
	collected chan struct{}
	paused    bool
	pausedMu  sync.Mutex
	frames    []*image.RGBA
	grabErr   error
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithFormat sets the output format; the default is GIF.
func WithFormat(f Format) Option {
	return func(r *Recorder) { r.format = f }
}

// WithQuality sets the MP4 quality tier; the default is high.
func WithQuality(q Quality) Option {
	return func(r *Recorder) { r.quality = q }
}

// WithRegion records a fixed rectangle in virtual-desktop coordinates
// instead of the primary display.
func WithRegion(rect image.Rectangle) Option {
	return func(r *Recorder) {
		r.grab = func() (*image.RGBA, error) {
			shot, err := capture.Region(rect)
			if err != nil {
				return nil, err
			}
			return shot.Image, nil
		}
	}
}

// WithDisplay records the given display instead of the primary one.
func WithDisplay(n int) Option {
	return func(r *Recorder) {
		r.grab = func() (*image.RGBA, error) {
			shot, err := capture.Display(n)
			if err != nil {
				return nil, err
			}
			return shot.Image, nil
		}
	}
}

// WithGrabber replaces the frame source entirely.
func WithGrabber(g Grabber) Option {
	return func(r *Recorder) { r.grab = g }
}

// WithMaxDuration sets the safety stop for open-ended recordings.
func WithMaxDuration(d time.Duration) Option {
	return func(r *Recorder) { r.maxDuration = d }
}

// WithWatermark stamps the given text onto the bottom-right corner of
// every frame.
func WithWatermark(text string) Option {
	return func(r *Recorder) { r.watermark = text }
}

// WithProgress installs a callback invoked every few frames.
func WithProgress(p Progress) Option {
	return func(r *Recorder) { r.progress = p }
}

// WithLogger sets the recorder's logger; the default is silent.
func WithLogger(l observability.Logger) Option {
	return func(r *Recorder) { r.log = l }
}

// New builds a Recorder. fps must be within 1..60.
func New(fps int, opts ...Option) (*Recorder, error) {
	if fps < 1 || fps > 60 {
		return nil, fmt.Errorf("record: fps must be between 1 and 60, got %d", fps)
	}
	r := &Recorder{
		fps:         fps,
		format:      FormatGIF,
		quality:     QualityHigh,
		maxDuration: DefaultMaxDuration,
		log:         observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	switch r.format {
	case FormatGIF, FormatMP4:
	default:
		return nil, fmt.Errorf("record: unknown format %q", r.format)
	}
	switch r.quality {
	case QualityLow, QualityMedium, QualityHigh, QualityLossless:
	default:
		return nil, fmt.Errorf("record: unknown quality %q", r.quality)
	}
	if r.grab == nil {
		r.grab = func() (*image.RGBA, error) {
			shot, err := capture.Primary()
			if err != nil {
				return nil, err
			}
			return shot.Image, nil
		}
	}
	return r, nil
}

// Start begins capturing frames in the background. The recording ends
// when Stop is called, ctx is cancelled, the grabber fails, or the
// max-duration safety stop fires.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session != nil {
		return errors.New("record: already recording")
	}
	if err := checkDiskSpace(requiredFreeBytes); err != nil {
		return err
	}

	var wm *watermarker
	if r.watermark != "" {
		w, err := newWatermarker(r.watermark)
		if err != nil {
			return err
		}
		wm = w
	}

	s := &session{
		start:     time.Now(),
		stop:      make(chan struct{}),
		collected: make(chan struct{}),
	}
	// Two seconds of frames between grabber and collector.
	queue := make(chan *image.RGBA, 2*r.fps)

	go r.captureLoop(ctx, s, queue)
	go r.collectLoop(s, queue, wm)

	r.session = s
	r.log.Info("record: started",
		observability.Int("fps", r.fps),
		observability.String("format", string(r.format)))
	return nil
}

func (r *Recorder) captureLoop(ctx context.Context, s *session, queue chan *image.RGBA) {
	defer close(queue)
	interval := time.Second / time.Duration(r.fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	count := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
		}

		elapsed := time.Since(s.start)
		if elapsed >= r.maxDuration {
			r.log.Warn("record: max duration reached",
				observability.Int("seconds", int(r.maxDuration.Seconds())))
			return
		}
		if s.isPaused() {
			continue
		}

		frame, err := r.grab()
		if err != nil {
			s.grabErr = err
			r.log.Error("record: frame capture failed", observability.Error("error", err))
			return
		}
		pushDropOldest(queue, frame)

		count++
		if r.progress != nil && count%progressEvery == 0 {
			r.progress(count, elapsed, r.maxDuration-elapsed)
		}
	}
}

// pushDropOldest enqueues frame, evicting the oldest queued frame when
// the queue is full so the grabber never blocks past its interval. The
// capture loop is the only sender, so the eviction receive cannot race
// another producer.
func pushDropOldest(queue chan *image.RGBA, frame *image.RGBA) {
	select {
	case queue <- frame:
		return
	default:
	}
	select {
	case <-queue:
	default:
	}
	select {
	case queue <- frame:
	default:
	}
}

func (r *Recorder) collectLoop(s *session, queue <-chan *image.RGBA, wm *watermarker) {
	defer close(s.collected)
	for frame := range queue {
		if wm != nil {
			wm.stamp(frame)
		}
		s.frames = append(s.frames, frame)
	}
}

// Pause suspends frame capture without ending the recording.
func (r *Recorder) Pause() {
	r.mu.Lock()
	s := r.session
	r.mu.Unlock()
	if s != nil {
		s.setPaused(true)
		r.log.Info("record: paused")
	}
}

// Resume continues a paused recording.
func (r *Recorder) Resume() {
	r.mu.Lock()
	s := r.session
	r.mu.Unlock()
	if s != nil {
		s.setPaused(false)
		r.log.Info("record: resumed")
	}
}

// Stop ends the recording and encodes the collected frames to output.
// An empty output picks a timestamped name in the current directory. The
// absolute path of the written file is returned.
func (r *Recorder) Stop(output string) (string, error) {
	r.mu.Lock()
	s := r.session
	r.session = nil
	r.mu.Unlock()
	if s == nil {
		return "", ErrNotRecording
	}

	s.stopOnce.Do(func() { close(s.stop) })
	<-s.collected

	if len(s.frames) == 0 {
		if s.grabErr != nil {
			return "", fmt.Errorf("record: %w", s.grabErr)
		}
		return "", ErrNoFrames
	}

	if output == "" {
		output = fmt.Sprintf("recording_%s.%s", time.Now().Format("20060102_150405"), r.format)
	}
	abs, err := filepath.Abs(output)
	if err != nil {
		return "", fmt.Errorf("record: resolve output path: %w", err)
	}

	encodeStart := time.Now()
	switch r.format {
	case FormatMP4:
		err = encodeMP4(abs, s.frames, r.fps, r.quality)
	default:
		err = encodeGIFFile(abs, s.frames, r.fps)
	}
	if err != nil {
		return "", err
	}
	r.log.Info("record: saved",
		observability.String("path", abs),
		observability.Int("frames", len(s.frames)),
		observability.Int("encode_ms", int(time.Since(encodeStart).Milliseconds())))
	return abs, nil
}

// Record captures for a fixed duration and writes the result to output.
// Cancelling ctx stops early and still encodes what was captured.
func (r *Recorder) Record(ctx context.Context, duration time.Duration, output string) (string, error) {
	if err := r.Start(ctx); err != nil {
		return "", err
	}
	select {
	case <-ctx.Done():
	case <-time.After(duration):
	}
	return r.Stop(output)
}

func (s *session) isPaused() bool {
	s.pausedMu.Lock()
	defer s.pausedMu.Unlock()
	return s.paused
}

func (s *session) setPaused(v bool) {
	s.pausedMu.Lock()
	s.paused = v
	s.pausedMu.Unlock()
}

func checkDiskSpace(required uint64) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	free, ok := diskFree(home)
	if ok && free < required {
		return fmt.Errorf("record: insufficient disk space: %d bytes free, need %d", free, required)
	}
	return nil
}
