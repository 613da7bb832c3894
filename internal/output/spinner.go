package output

import (
	"context"
	"time"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/log"
)

// spinnerTTY is swapped in tests.
var spinnerTTY = IsTTY

// showSpinner animates title until wait returns or the user quits the
// spinner. Swapped in tests.
var showSpinner = func(title string, wait func()) error {
	return spinner.New().Title(" " + title).Action(wait).Run()
}

// RunWithSpinner runs action while a spinner titled title animates on
// stderr. Without a terminal, or in verbose mode where log lines would
// tear the animation, the action runs directly.
//
// It never returns before action does, so anything action writes is safe
// to read afterwards. Cancellation reaches action through ctx.
func RunWithSpinner(ctx context.Context, title string, action func(context.Context) error) error {
	start := time.Now()
	defer func() {
		Debug("finished", "task", title, "elapsed", time.Since(start).Round(time.Millisecond))
	}()

	if !spinnerTTY() || logger.GetLevel() <= log.DebugLevel {
		return action(ctx)
	}

	finished := make(chan struct{})
	var actionErr error
	go func() {
		defer close(finished)
		actionErr = action(ctx)
	}()

	if err := showSpinner(title, func() { <-finished }); err != nil {
		Debug("spinner stopped", "task", title, "err", err)
	}

	<-finished
	return actionErr
}
