package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickCmd returns a bubbletea Cmd that sends a TickEvent after the given
// duration. This drives the clock.
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickEvent{Time: t}
	})
}

// DataFetchCmd returns a Cmd that runs fetchFn in a goroutine and delivers
// the result as a DataUpdateEvent. If fetchFn returns an error, the event's
// Err field is set. A panic inside fetchFn is reported the same way so it
// cannot take the program down with it.
//
// Usage:
//
//	cmd := DataFetchCmd("weather", func() (interface{}, error) {
//	    return registry.RunOnce(ctx, "weather")
//	})
func DataFetchCmd(source string, fetchFn func() (interface{}, error)) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = DataUpdateEvent{
					Source:    source,
					Err:       fmt.Errorf("fetch %s: panic: %v", source, r),
					Timestamp: time.Now(),
				}
			}
		}()
		data, err := fetchFn()
		return DataUpdateEvent{
			Source:    source,
			Data:      data,
			Err:       err,
			Timestamp: time.Now(),
		}
	}
}

// RefreshCmd returns a Cmd that asks source to reload after d, tagged with
// generation gen. A non-positive d yields nil: the widget only refreshes on
// demand.
func RefreshCmd(source string, gen uint64, d time.Duration) tea.Cmd {
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return RefreshEvent{Source: source, Gen: gen}
	})
}
