package progress

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
)

// Config controls terminal progress output
type Config struct {
	Enabled bool
	Writer  io.Writer
}

// StageBar renders pipeline stages as a progress bar. It implements pipeline.ProgressSink.
type StageBar struct {
	container *mpb.Progress
	bar       *mpb.Bar
	enabled   bool

	mu    sync.Mutex
	stage model.Stage
}

// NewStageBar creates a bar over every pipeline stage; a disabled bar ignores reports
func NewStageBar(config Config, description string) *StageBar {
	if !config.Enabled {
		return &StageBar{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
	)

	sb := &StageBar{container: container, enabled: true}
	sb.bar = container.AddBar(int64(len(model.Stages)),
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.Any(func(decor.Statistics) string { return string(sb.current()) }, decor.WCSyncSpaceR),
		),
		mpb.AppendDecorators(
			decor.OnComplete(decor.Elapsed(decor.ET_STYLE_GO, decor.WCSyncWidth), " ✓ "),
		),
	)
	return sb
}

// Report advances the bar to stage
func (sb *StageBar) Report(stage model.Stage) {
	if !sb.enabled {
		return
	}

	sb.mu.Lock()
	sb.stage = stage
	sb.mu.Unlock()

	for i, s := range model.Stages {
		if s == stage {
			sb.bar.SetCurrent(int64(i))
			return
		}
	}
}

// Finish completes the bar and waits for the final render
func (sb *StageBar) Finish() {
	if !sb.enabled {
		return
	}
	sb.bar.SetTotal(-1, true)
	sb.container.Wait()
}

// Abort drops the bar without completing it
func (sb *StageBar) Abort() {
	if !sb.enabled {
		return
	}
	sb.bar.Abort(false)
	sb.container.Wait()
}

func (sb *StageBar) current() model.Stage {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.stage
}

// IsTTY reports whether writer is a terminal
func IsTTY(writer io.Writer) bool {
	if writer == nil {
		return false
	}

	if file, ok := writer.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// ShouldShowProgress enables bars when forced or when stderr is a terminal
func ShouldShowProgress(forced bool) bool {
	if forced {
		return true
	}
	return IsTTY(os.Stderr)
}
