package flock

// history is a bounded FIFO of frames. The oldest frame sits at the front;
// push appends at the back and evicts from the front once the capacity is
// exceeded. Frames are never edited in place after they are pushed.
type history struct {
	frames [][]Boid
	cap    int
}

func newHistory(capacity int) *history {
	if capacity < 1 {
		capacity = 1
	}
	return &history{frames: make([][]Boid, 0, capacity+1), cap: capacity}
}

// push appends frame and returns it.
func (h *history) push(frame []Boid) []Boid {
	h.frames = append(h.frames, frame)
	if overflow := len(h.frames) - h.cap; overflow > 0 {
		copy(h.frames, h.frames[overflow:])
		h.frames = h.frames[:len(h.frames)-overflow]
	}
	return frame
}

// current returns the most recently pushed frame. The buffer is seeded before
// any read, so an empty read is a programmer error and fails loudly.
func (h *history) current() []Boid {
	if len(h.frames) == 0 {
		panic("flock: history is empty")
	}
	return h.frames[len(h.frames)-1]
}

// earliest returns the oldest retained frame.
func (h *history) earliest() []Boid {
	if len(h.frames) == 0 {
		panic("flock: history is empty")
	}
	return h.frames[0]
}

func (h *history) len() int { return len(h.frames) }

func (h *history) clear() { h.frames = h.frames[:0] }
