package notify

var defaultDispatcher *Dispatcher

// Setup creates and starts the global dispatcher.
func Setup(sink Sink) *Dispatcher {
	defaultDispatcher = NewDispatcher(sink, defaultQueueSize)
	defaultDispatcher.Start()
	return defaultDispatcher
}

// GetDispatcher returns the global dispatcher, or nil before Setup.
func GetDispatcher() *Dispatcher {
	return defaultDispatcher
}

// Shutdown stops the global dispatcher, draining queued notifications.
func Shutdown() {
	if defaultDispatcher != nil {
		defaultDispatcher.Stop()
	}
}
