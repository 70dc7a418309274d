package speech

import "context"

// Synthesizer turns narration text into an audio file at outPath.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, outPath string) error
}
