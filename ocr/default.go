package ocr

import (
	"context"
	"fmt"

	"github.com/wudi/shotkit/capture"
)

var defaultEngine Engine = &noopEngine{}

// DefaultEngine returns the library's default OCR engine (Tesseract when
// the tesseract subpackage is linked in).
func DefaultEngine() Engine {
	return defaultEngine
}

// SetDefaultEngine sets the library's default OCR engine.
func SetDefaultEngine(engine Engine) {
	defaultEngine = engine
}

// RecognizeScreenshots converts captured frames to OCR inputs and invokes
// the provided engine. If the engine supports batch operation, it is used;
// otherwise calls are executed sequentially.
func RecognizeScreenshots(ctx context.Context, engine Engine, shots []*capture.Screenshot, opts ...InputOption) ([]Result, error) {
	inputs := make([]Input, 0, len(shots))
	for _, shot := range shots {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		in, err := FromScreenshot(shot, opts...)
		if err != nil {
			return nil, fmt.Errorf("build input for monitor %d: %w", shot.Monitor, err)
		}
		inputs = append(inputs, in)
	}
	if b, ok := engine.(BatchEngine); ok {
		return b.RecognizeBatch(ctx, inputs)
	}
	results := make([]Result, 0, len(inputs))
	for _, in := range inputs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		res, err := engine.Recognize(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("recognize %s: %w", in.ID, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// DefaultRecognizeScreenshots runs recognition with the default engine.
func DefaultRecognizeScreenshots(ctx context.Context, shots []*capture.Screenshot, opts ...InputOption) ([]Result, error) {
	return RecognizeScreenshots(ctx, DefaultEngine(), shots, opts...)
}

type noopEngine struct{}

func (n noopEngine) Name() string {
	return "noop"
}

func (n noopEngine) Recognize(ctx context.Context, input Input) (Result, error) {
	return Result{InputID: input.ID}, nil
}
