package cmd

import (
	"fmt"
	"sync"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"

	"projectflow/cli/internal/terminal"
)

// startSpinner shows a stick-style spinner in a pterm area while a request is
// in flight. It is skipped when output is not a terminal or debug logs would
// interleave with it. The returned function stops and removes the spinner.
func startSpinner(text string) func() {
	if verbose || !terminal.IsInteractive() {
		return func() {}
	}

	cursor.Hide()
	area, err := pterm.DefaultArea.WithRemoveWhenDone(true).Start()
	if err != nil {
		cursor.Show()
		return func() {}
	}

	frames := []string{"|", "/", "-", "\\"}
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		t := time.NewTicker(120 * time.Millisecond)
		defer t.Stop()
		for i := 0; ; i++ {
			area.Update(fmt.Sprintf("%s %s", frames[i%len(frames)], text))
			select {
			case <-t.C:
			case <-stop:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			wg.Wait()
			area.Stop()
			cursor.Show()
		})
	}
}
