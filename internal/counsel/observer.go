package counsel

// Observer receives human-readable progress messages from the pipeline.
// It is a side channel only: the pipeline never reads it back or branches
// on it.
type Observer interface {
	Report(msg string)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(msg string)

// Report calls f(msg).
func (f ObserverFunc) Report(msg string) { f(msg) }

// NopObserver discards all progress messages.
var NopObserver Observer = ObserverFunc(func(string) {})
