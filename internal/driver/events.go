package driver

// Event is one progress update streamed to an interactive UI.
type Event struct {
	Path     string
	Fraction float64
	Total    int
	// ChunkDone marks the completion of one melt invocation rather than
	// an in-scan progress tick.
	ChunkDone bool
}

// ChannelSink adapts a channel of Events to the progress.Reporter the
// melter fires. Sends never block: a slow UI drops ticks instead of
// stalling the scan.
type ChannelSink struct {
	Ch   chan<- Event
	Path string
}

func (s ChannelSink) Show(fraction float64, total int) {
	select {
	case s.Ch <- Event{Path: s.Path, Fraction: fraction, Total: total}:
	default:
	}
}

func (s ChannelSink) Stop() {
	select {
	case s.Ch <- Event{Path: s.Path, Fraction: 1, ChunkDone: true}:
	default:
	}
}
