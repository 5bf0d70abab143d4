package event

import (
	"sync"
	"testing"

	"github.com/lixenwraith/typecast/match"
	"github.com/lixenwraith/typecast/parameter"
)

func TestQueueFIFO(t *testing.T) {
	q := NewEventQueue()
	for i := 1; i <= 3; i++ {
		q.Emit(EventWordCompleted, &WordCompletedPayload{Target: match.TargetID(i)}, 0)
	}

	if q.Len() != 3 {
		t.Errorf("Expected 3 pending events, got %d", q.Len())
	}

	events := q.Consume()
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	for i, ev := range events {
		p := ev.Payload.(*WordCompletedPayload)
		if p.Target != match.TargetID(i+1) {
			t.Errorf("Expected target %d at position %d, got %d", i+1, i, p.Target)
		}
	}

	if q.Consume() != nil {
		t.Error("Expected empty queue after consume")
	}
}

func TestQueueOverflowDropsOldest(t *testing.T) {
	q := NewEventQueue()
	total := parameter.EventQueueSize + 10
	for i := 0; i < total; i++ {
		q.Push(GameEvent{Type: EventPlayerHit, Frame: int64(i)})
	}

	if q.Len() != parameter.EventQueueSize {
		t.Errorf("Expected len capped at %d, got %d", parameter.EventQueueSize, q.Len())
	}

	events := q.Consume()
	if len(events) != parameter.EventQueueSize {
		t.Fatalf("Expected %d events, got %d", parameter.EventQueueSize, len(events))
	}
	if events[0].Frame != 10 {
		t.Errorf("Expected oldest surviving frame 10, got %d", events[0].Frame)
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewEventQueue()
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 32; i++ {
				q.Push(GameEvent{Type: EventPlayerHit})
			}
		}()
	}
	wg.Wait()

	if got := len(q.Consume()); got != 128 {
		t.Errorf("Expected 128 events, got %d", got)
	}
}

type countingHandler struct {
	types []EventType
	seen  []EventType
}

func (h *countingHandler) HandleEvent(ctx *int, ev GameEvent) {
	*ctx++
	h.seen = append(h.seen, ev.Type)
}

func (h *countingHandler) EventTypes() []EventType { return h.types }

func TestRouterDispatchesByType(t *testing.T) {
	q := NewEventQueue()
	r := NewRouter[*int](q)

	combat := &countingHandler{types: []EventType{EventWordCompleted, EventPlayerHit}}
	audio := &countingHandler{types: []EventType{EventGlobalTypo}}
	r.Register(combat)
	r.Register(audio)

	q.Emit(EventWordCompleted, &WordCompletedPayload{Target: 1}, 1)
	q.Emit(EventGlobalTypo, &GlobalTypoPayload{}, 1)
	q.Emit(EventPlayerHit, nil, 1)
	q.Emit(EventEnemyDied, &EnemyDiedPayload{Target: 1}, 1)

	calls := 0
	if n := r.DispatchAll(&calls); n != 4 {
		t.Errorf("Expected 4 events consumed, got %d", n)
	}
	if calls != 3 {
		t.Errorf("Expected 3 handler calls, got %d", calls)
	}
	if len(combat.seen) != 2 || combat.seen[0] != EventWordCompleted || combat.seen[1] != EventPlayerHit {
		t.Errorf("Unexpected combat handler sequence %v", combat.seen)
	}
	if len(audio.seen) != 1 {
		t.Errorf("Expected audio handler to see 1 event, got %d", len(audio.seen))
	}
}

func TestRouterHandlerFunc(t *testing.T) {
	q := NewEventQueue()
	r := NewRouter[*int](q)
	r.Register(HandlerFunc[*int]{
		Types: []EventType{EventCastFinished},
		Fn:    func(ctx *int, ev GameEvent) { *ctx += 10 },
	})

	if r.HandlerCount(EventCastFinished) != 1 {
		t.Errorf("Expected 1 handler, got %d", r.HandlerCount(EventCastFinished))
	}

	q.Emit(EventCastFinished, &CastFinishedPayload{}, 0)
	total := 0
	r.DispatchAll(&total)
	if total != 10 {
		t.Errorf("Expected handler to run once, got total %d", total)
	}
}

func TestEventNames(t *testing.T) {
	tests := map[EventType]string{
		EventGlobalTypo:     "GlobalTypo",
		EventCastFired:      "CastFired",
		EventPlayerDefeated: "PlayerDefeated",
		EventType(999):      "Unknown",
	}
	for et, want := range tests {
		if got := et.String(); got != want {
			t.Errorf("Expected %s, got %s", want, got)
		}
	}
}
