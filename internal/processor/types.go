package processor

// Processor reacts to pipeline events, such as a finished tournament import.
type Processor struct {
	stats    Stats
	notifier Notifier
}
