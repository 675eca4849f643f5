package window

import (
	"mini-render/internal/logger"

	"go.uber.org/zap"
)

// MessageWindowClose is sent to every observer once the render loop has
// ended.
const MessageWindowClose = "WINDOWCLOSE"

// Observer receives window lifecycle messages.
type Observer interface {
	Notify(message string)
}

// Registration identifies one AddObserver call.
type Registration uint64

type registration struct {
	id       Registration
	observer Observer
}

// AddObserver appends o. The same observer may be added more than once and
// is then notified once per registration.
func (w *RenderWindow) AddObserver(o Observer) Registration {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.nextRegistration++
	id := w.nextRegistration
	w.observers = append(w.observers, registration{id: id, observer: o})
	return id
}

// RemoveObserver drops a registration. It reports whether it was present.
func (w *RenderWindow) RemoveObserver(id Registration) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, r := range w.observers {
		if r.id == id {
			w.observers = append(w.observers[:i], w.observers[i+1:]...)
			return true
		}
	}
	return false
}

// notifyObservers sends MessageWindowClose in registration order. Only the
// first call has an effect.
func (w *RenderWindow) notifyObservers() {
	w.notifyOnce.Do(func() {
		w.mu.Lock()
		observers := make([]registration, len(w.observers))
		copy(observers, w.observers)
		w.mu.Unlock()

		logger.Log.Info("notifying window observers", zap.Int("count", len(observers)))
		for _, r := range observers {
			r.observer.Notify(MessageWindowClose)
		}
	})
}
