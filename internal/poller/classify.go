package poller

import (
	"fmt"
	"time"

	"github.com/D-ASA-D/TaskManager/internal/model"
	"github.com/D-ASA-D/TaskManager/internal/view"
)

// situation is one detected time-relative state of an event together with
// its dedup key.
type situation struct {
	key   string
	toast view.Toast
}

func dedupKey(eventID int64) string {
	return fmt.Sprintf("event-%d", eventID)
}

// classify evaluates the three independent checks for one event against now.
// Upcoming and started share one dedup key, so whichever of the two fires
// first blocks the other for the rest of the session. Expired carries its
// own key and fires regardless of the shared one.
func classify(ev model.Event, now time.Time) []situation {
	key := dedupKey(ev.ID)
	t := ev.EventTime.Time
	var out []situation

	// Strictly in the future and at most 5 minutes ahead.
	if t.After(now) && !t.After(now.Add(5*time.Minute)) {
		out = append(out, situation{
			key: key,
			toast: view.Toast{
				Kind:      view.KindInfo,
				Type:      model.TypeFiveMinutesBefore,
				Title:     "Event coming up",
				Message:   fmt.Sprintf("%s starts within 5 minutes", ev.Title),
				EventTime: t,
			},
		})
	}

	// Symmetric one-minute window around the event time, inclusive.
	if !now.Before(t.Add(-time.Minute)) && !now.After(t.Add(time.Minute)) {
		out = append(out, situation{
			key: key,
			toast: view.Toast{
				Kind:      view.KindUrgent,
				Type:      model.TypeEventStarted,
				Title:     "Event started!",
				Message:   fmt.Sprintf("%s is starting now", ev.Title),
				EventTime: t,
			},
		})
	}

	// More than 10 minutes in the past.
	if t.Before(now.Add(-10 * time.Minute)) {
		out = append(out, situation{
			key: key + "-expired",
			toast: view.Toast{
				Kind:      view.KindUrgent,
				Type:      model.TypeEventExpired,
				Title:     "Event overdue",
				Message:   fmt.Sprintf("%s should have started at %s", ev.Title, t.Format("2006-01-02 15:04")),
				EventTime: t,
			},
		})
	}

	return out
}
