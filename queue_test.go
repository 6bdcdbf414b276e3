package outbreaksim

import "testing"

func TestEventQueue_PopsInTimeOrder(t *testing.T) {
	q := NewEventQueue()
	q.Push(Event{Time: 5, PersonID: 1})
	q.Push(Event{Time: 1, PersonID: 2})
	q.Push(Event{Time: 3, PersonID: 3})

	want := []float64{1, 3, 5}
	for _, w := range want {
		ev, ok := q.Pop()
		if !ok {
			t.Fatalf(UnexpectedErrorWhileError, "popping from a non-empty queue", "queue reported empty")
		}
		if ev.Time != w {
			t.Errorf(UnequalFloatParameterError, "popped event time", w, ev.Time)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Errorf(ExpectedErrorWhileError, "popping an exhausted queue")
	}
}

func TestEventQueue_TiesBrokenByInsertionOrder(t *testing.T) {
	q := NewEventQueue()
	q.Push(Event{Time: 2, PersonID: 10})
	q.Push(Event{Time: 2, PersonID: 20})

	first, _ := q.Pop()
	if first.PersonID != 10 {
		t.Errorf(UnequalIntParameterError, "first popped person id among ties", 10, first.PersonID)
	}
	second, _ := q.Pop()
	if second.PersonID != 20 {
		t.Errorf(UnequalIntParameterError, "second popped person id among ties", 20, second.PersonID)
	}
}

func TestEventQueue_Len(t *testing.T) {
	q := NewEventQueue()
	if q.Len() != 0 {
		t.Errorf(UnequalIntParameterError, "length of an empty queue", 0, q.Len())
	}
	q.Push(Event{Time: 1})
	q.Push(Event{Time: 2})
	if q.Len() != 2 {
		t.Errorf(UnequalIntParameterError, "length after two pushes", 2, q.Len())
	}
	q.Pop()
	if q.Len() != 1 {
		t.Errorf(UnequalIntParameterError, "length after one pop", 1, q.Len())
	}
}
