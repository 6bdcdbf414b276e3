package outbreaksim

import "container/heap"

// EventQueue is a min-heap on Event.Time with a monotonic insertion
// counter breaking ties, the total order spec §4.6 requires ("the
// comparator must produce a total order"). Grounded on the standard
// library container/heap interface; the teacher's own engine is
// step/generation-based and has no equivalent structure, and no
// third-party priority-queue library appears anywhere in the example
// corpus, so this is implemented directly against container/heap the
// way Go programs conventionally do (see DESIGN.md).
type EventQueue struct {
	items   eventHeap
	counter int
}

// NewEventQueue returns an empty queue ready for use.
func NewEventQueue() *EventQueue {
	q := &EventQueue{}
	heap.Init(&q.items)
	return q
}

// Push schedules e, assigning it the next insertion sequence number.
func (q *EventQueue) Push(e Event) {
	e.seq = q.counter
	q.counter++
	heap.Push(&q.items, e)
}

// Pop removes and returns the minimum-time event. ok is false if the
// queue is empty.
func (q *EventQueue) Pop() (Event, bool) {
	if q.items.Len() == 0 {
		return Event{}, false
	}
	e := heap.Pop(&q.items).(Event)
	return e, true
}

// Len reports the number of events currently queued.
func (q *EventQueue) Len() int {
	return q.items.Len()
}

type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
