package promotion

import (
	"fmt"
	"time"
)

// Phase is a single stage of the promotion pipeline.
type Phase interface {
	Name() string
	Run(ctx *Context) error
}

// RunPhases executes the given phases sequentially. Every phase strictly
// follows the previous phase's successful completion; the first error stops
// the pipeline.
func RunPhases(ctx *Context, phases []Phase) error {
	for i, phase := range phases {
		phaseStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(phases))

		ctx.Observer.Event(Event{Type: EventPhaseStarted, Phase: phase.Name(), Message: "starting"})

		if err := phase.Run(ctx); err != nil {
			ctx.Observer.Event(Event{
				Type:    EventPhaseFailed,
				Phase:   phase.Name(),
				Message: fmt.Sprintf("failed: %v", err),
			})
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		ctx.Observer.Event(Event{
			Type:    EventPhaseCompleted,
			Phase:   phase.Name(),
			Message: fmt.Sprintf("%s completed in %v", name, time.Since(phaseStart).Round(time.Millisecond)),
		})
	}

	return nil
}
