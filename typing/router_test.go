package typing

import (
	"testing"
	"time"

	"github.com/lixenwraith/typecast/event"
	"github.com/lixenwraith/typecast/match"
	"github.com/lixenwraith/typecast/status"
)

type countingScoring struct {
	typos int
}

func (s *countingScoring) OnGlobalTypo() { s.typos++ }

type recordingReassigner struct {
	targets []*match.Target
	onCall  func(t *match.Target)
}

func (r *recordingReassigner) ScheduleReassign(t *match.Target) {
	r.targets = append(r.targets, t)
	if r.onCall != nil {
		r.onCall(t)
	}
}

type typoDisplay struct {
	typos int
}

func (d *typoDisplay) SetWord(string)      {}
func (d *typoDisplay) UpdateProgress(int) {}
func (d *typoDisplay) ShowCompletion()    {}
func (d *typoDisplay) ShowTypo()          { d.typos++ }

func latin(id match.TargetID, word string) *match.Target {
	return match.NewTarget(id, match.NewWord(word, match.ScriptLatin), nil)
}

func submit(r *Router, text string) []Result {
	var results []Result
	for _, s := range text {
		results = append(results, r.SubmitSymbol(s))
	}
	return results
}

func TestNoPenaltyOnSharedPrefix(t *testing.T) {
	scoring := &countingScoring{}
	r := NewRouter(WithScoring(scoring))
	drop := latin(1, "drop")
	dragon := latin(2, "dragon")
	r.Register(drop)
	r.Register(dragon)

	results := submit(r, "dra")

	if scoring.typos != 0 {
		t.Errorf("Expected no global typo, got %d", scoring.typos)
	}
	last := results[2]
	if last.Typos[1] != 2 {
		t.Errorf("Expected drop reset from progress 2, got typos %v", last.Typos)
	}
	if last.GlobalTypo {
		t.Error("Expected dragon progress 3 to subsume the drop miss")
	}
	if drop.Progress() != 0 || dragon.Progress() != 3 {
		t.Errorf("Expected drop=0 dragon=3, got %d and %d", drop.Progress(), dragon.Progress())
	}

	// drop at 0 rejects 'g' silently while dragon advances
	res := r.SubmitSymbol('g')
	if scoring.typos != 0 || len(res.Typos) != 0 {
		t.Errorf("Expected silent reject at progress 0, got typos %v", res.Typos)
	}
	if dragon.Progress() != 4 {
		t.Errorf("Expected dragon progress 4, got %d", dragon.Progress())
	}
}

func TestFirstLetterMisPickIgnored(t *testing.T) {
	scoring := &countingScoring{}
	r := NewRouter(WithScoring(scoring))
	r.Register(latin(1, "apple"))
	r.Register(latin(2, "banana"))

	res := r.SubmitSymbol('b')

	if len(res.Typos) != 0 {
		t.Errorf("Expected no typo targets, got %v", res.Typos)
	}
	if len(res.Accepted) != 1 || res.Accepted[0] != 2 {
		t.Errorf("Expected banana to accept, got %v", res.Accepted)
	}
	if scoring.typos != 0 {
		t.Error("Expected no global typo")
	}
}

func TestGlobalTypoFiresWhenNobodyAhead(t *testing.T) {
	scoring := &countingScoring{}
	display := &typoDisplay{}
	queue := event.NewEventQueue()
	r := NewRouter(WithScoring(scoring), WithEvents(queue), WithTypoEffect(500*time.Millisecond))
	cat := match.NewTarget(1, match.NewWord("cat", match.ScriptLatin), display)
	r.Register(cat)

	submit(r, "ca")
	res := r.SubmitSymbol('x')

	if !res.GlobalTypo {
		t.Fatal("Expected global typo")
	}
	if scoring.typos != 1 {
		t.Errorf("Expected exactly 1 scoring call, got %d", scoring.typos)
	}
	if display.typos != 1 {
		t.Errorf("Expected typo flag on cat, got %d", display.typos)
	}
	if cat.Progress() != 0 {
		t.Errorf("Expected cat reset to 0, got %d", cat.Progress())
	}

	events := queue.Consume()
	if len(events) != 1 || events[0].Type != event.EventGlobalTypo {
		t.Fatalf("Expected one GlobalTypo event, got %v", events)
	}
	payload := events[0].Payload.(*event.GlobalTypoPayload)
	if payload.Targets[1] != 2 {
		t.Errorf("Expected payload progress 2 for cat, got %v", payload.Targets)
	}
}

func TestSingleLetterMissIsNotGlobal(t *testing.T) {
	scoring := &countingScoring{}
	r := NewRouter(WithScoring(scoring))
	r.Register(latin(1, "cat"))

	r.SubmitSymbol('c')
	res := r.SubmitSymbol('x')

	if res.GlobalTypo || scoring.typos != 0 {
		t.Error("Expected a miss at progress 1 to stay individual")
	}
	if res.Typos[1] != 1 {
		t.Errorf("Expected individual typo recorded at progress 1, got %v", res.Typos)
	}
}

func TestProgressTieDoesNotSuppress(t *testing.T) {
	scoring := &countingScoring{}
	r := NewRouter(WithScoring(scoring))
	r.Register(latin(1, "abx"))
	r.Register(latin(2, "bc"))

	submit(r, "ab")
	res := r.SubmitSymbol('c')

	// abx was at 2, bc accepts to 2; a tie is not strictly ahead
	if !res.GlobalTypo {
		t.Error("Expected tie to leave the global typo in place")
	}
	if scoring.typos != 1 {
		t.Errorf("Expected 1 global typo, got %d", scoring.typos)
	}
}

func TestGlobalTypoStillCompletesWordOnSameKeystroke(t *testing.T) {
	r := NewRouter()
	r.Register(latin(1, "abx"))
	r.Register(latin(2, "bc"))

	submit(r, "ab")
	res := r.SubmitSymbol('c')

	if !res.GlobalTypo {
		t.Fatal("Expected the keystroke to be a global typo for abx")
	}
	if len(res.Completed) != 1 || res.Completed[0] != 2 {
		t.Errorf("Expected bc completed by the same keystroke, got %v", res.Completed)
	}
}

func TestTypoEffectTimer(t *testing.T) {
	reg := status.NewRegistry()
	r := NewRouter(WithTypoEffect(500*time.Millisecond), WithMetrics(reg))
	r.Register(latin(1, "cat"))
	submit(r, "cax")

	if !r.TypoActive() || !reg.Flags.Get(status.MetricTypoActive).Load() {
		t.Fatal("Expected typo effect active")
	}

	r.Update(300 * time.Millisecond)
	if !r.TypoActive() {
		t.Error("Expected typo effect still active after 300ms")
	}

	r.Update(300 * time.Millisecond)
	if r.TypoActive() || reg.Flags.Get(status.MetricTypoActive).Load() {
		t.Error("Expected typo effect cleared after 600ms")
	}
	if reg.Counter(status.MetricGlobalTypos) != 1 {
		t.Errorf("Expected global typo counter 1, got %d", reg.Counter(status.MetricGlobalTypos))
	}
}

func TestCompletionScan(t *testing.T) {
	queue := event.NewEventQueue()
	re := &recordingReassigner{}
	r := NewRouter(WithEvents(queue), WithReassigner(re))
	cat := latin(7, "cat")
	r.Register(cat)
	r.Register(latin(8, "cow"))

	results := submit(r, "cat")
	last := results[2]

	if len(last.Completed) != 1 || last.Completed[0] != 7 {
		t.Fatalf("Expected target 7 completed, got %v", last.Completed)
	}
	if !cat.Completed() {
		t.Error("Expected completion latched on target")
	}
	if _, ok := r.Lookup(7); ok || r.Len() != 1 {
		t.Error("Expected completed target to be unregistered")
	}
	if len(re.targets) != 1 || re.targets[0] != cat {
		t.Error("Expected reassignment scheduled for cat")
	}

	events := queue.Consume()
	if len(events) != 1 || events[0].Type != event.EventWordCompleted {
		t.Fatalf("Expected one WordCompleted event, got %v", events)
	}
	if p := events[0].Payload.(*event.WordCompletedPayload); p.Target != 7 || p.Word != "cat" {
		t.Errorf("Unexpected payload %+v", p)
	}
}

func TestSimultaneousCompletionsInRegistrationOrder(t *testing.T) {
	r := NewRouter()
	r.Register(latin(3, "go"))
	r.Register(latin(1, "go"))
	r.Register(latin(2, "go"))

	results := submit(r, "go")
	got := results[1].Completed

	want := []match.TargetID{3, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("Expected %d completions, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Completion %d: expected %d, got %d", i, want[i], got[i])
		}
	}
	if r.Len() != 0 {
		t.Errorf("Expected empty registry, got %d", r.Len())
	}
}

func TestRegistrationDuringPassUsesSnapshot(t *testing.T) {
	var r *Router
	re := &recordingReassigner{}
	re.onCall = func(*match.Target) {
		// Fresh word starting with the symbol that just completed
		r.Register(latin(99, "tree"))
	}
	r = NewRouter(WithReassigner(re))
	r.Register(latin(1, "at"))

	submit(r, "at")

	fresh, ok := r.Lookup(99)
	if !ok {
		t.Fatal("Expected target registered during pass")
	}
	if fresh.Progress() != 0 {
		t.Errorf("Expected new target untouched by current symbol, got progress %d", fresh.Progress())
	}
}

func TestBackspace(t *testing.T) {
	r := NewRouter()
	a := latin(1, "fire")
	b := latin(2, "frost")
	r.Register(a)
	r.Register(b)
	submit(r, "f")

	if !r.SubmitBackspace() {
		t.Fatal("Expected backspace to be handled")
	}
	if a.Progress() != 0 || b.Progress() != 0 {
		t.Errorf("Expected both at 0, got %d and %d", a.Progress(), b.Progress())
	}

	// Idempotent at zero
	r.SubmitBackspace()
	if a.Progress() != 0 {
		t.Errorf("Expected progress to stay 0, got %d", a.Progress())
	}
}

func TestBackspaceDisabled(t *testing.T) {
	r := NewRouter(WithAllowBackspace(false))
	target := latin(1, "fire")
	r.Register(target)
	submit(r, "fi")

	if r.SubmitBackspace() {
		t.Error("Expected backspace to be refused")
	}
	if target.Progress() != 2 {
		t.Errorf("Expected progress unchanged at 2, got %d", target.Progress())
	}
}

func TestHangulTargets(t *testing.T) {
	scoring := &countingScoring{}
	r := NewRouter(WithScoring(scoring), WithScript(match.ScriptHangul))
	magic := match.NewTarget(1, match.NewWord("마법", match.ScriptHangul), nil)
	horse := match.NewTarget(2, match.NewWord("말", match.ScriptHangul), nil)
	r.Register(magic)
	r.Register(horse)

	for _, j := range []rune{'ㅁ', 'ㅏ', 'ㅂ'} {
		r.SubmitSymbol(j)
	}

	// 말 expected ㄹ at progress 2; 마법 is ahead at 3
	if scoring.typos != 0 {
		t.Errorf("Expected no global typo, got %d", scoring.typos)
	}
	if magic.Progress() != 3 || horse.Progress() != 0 {
		t.Errorf("Expected 마법=3 말=0, got %d and %d", magic.Progress(), horse.Progress())
	}
	if r.Script() != match.ScriptHangul {
		t.Errorf("Expected hangul script, got %v", r.Script())
	}
}

func TestRegisterReplacesInPlace(t *testing.T) {
	r := NewRouter()
	r.Register(latin(1, "one"))
	r.Register(latin(2, "two"))
	replacement := latin(1, "uno")
	r.Register(replacement)

	targets := r.Targets()
	if len(targets) != 2 || targets[0] != replacement {
		t.Error("Expected replacement to keep registration slot")
	}

	r.Unregister(42)
	r.Unregister(1)
	if r.Len() != 1 {
		t.Errorf("Expected 1 target, got %d", r.Len())
	}
}

func TestEmptyRegistryIgnoresInput(t *testing.T) {
	reg := status.NewRegistry()
	r := NewRouter(WithMetrics(reg))
	res := r.SubmitSymbol('a')
	if len(res.Accepted) != 0 || res.GlobalTypo {
		t.Error("Expected empty result")
	}
	if reg.Counter(status.MetricKeystrokes) != 0 {
		t.Error("Expected keystroke not counted without targets")
	}
}
