package clipboard

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Source yields the current clipboard text.
type Source interface {
	Read() (string, error)
}

// Handler is called once per clipboard change. A returned error is
// logged and does not stop the watcher.
type Handler func(text string) error

// Watcher polls a Source and reports changes.
type Watcher struct {
	Source   Source
	Interval time.Duration // Polling period
	// Window suppresses a text that was already handled within this long,
	// e.g. when the user toggles between two clipboard entries.
	// Zero disables suppression.
	Window time.Duration
	Log    logrus.FieldLogger
}

// Watch polls until ctx is done, calling fn synchronously for each new
// text. The content present when Watch starts is not handled. Read
// errors are logged and polling continues. Watch returns nil when ctx is
// cancelled.
func (w *Watcher) Watch(ctx context.Context, fn Handler) error {
	if w.Interval <= 0 {
		return errors.New("watch interval must be positive")
	}
	log := w.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	limiter := rate.NewLimiter(rate.Every(w.Interval), 1)
	var seen *cache.Cache
	if w.Window > 0 {
		seen = cache.New(w.Window, 2*w.Window)
	}

	last, err := w.Source.Read()
	if err != nil {
		log.WithError(err).Warn("Initial clipboard read failed")
	}

	for {
		if err := limiter.Wait(ctx); err != nil {
			// Either cancelled or the deadline falls before the next tick.
			<-ctx.Done()
			return nil
		}

		current, err := w.Source.Read()
		if err != nil {
			log.WithError(err).Debug("Clipboard read failed")
			continue
		}
		if current == last {
			continue
		}
		last = current

		if seen != nil {
			if _, dup := seen.Get(current); dup {
				log.Debug("Skipping text handled within dedupe window")
				continue
			}
			seen.SetDefault(current, struct{}{})
		}

		if err := fn(current); err != nil {
			log.WithError(err).Warn("Clipboard text not converted")
		}
	}
}
