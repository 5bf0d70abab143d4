package words

import (
	"math/rand/v2"
	"sync"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/typecast/match"
	"github.com/lixenwraith/typecast/parameter"
)

// Supply picks words by weighted difficulty tier
// Safe for concurrent use
type Supply struct {
	mu      sync.Mutex
	rng     *rand.Rand
	lists   map[match.Script]*List
	chances [tierCount]float64
	log     zerolog.Logger
}

// Option configures a Supply
type Option func(*Supply)

// WithRand fixes the random source
func WithRand(rng *rand.Rand) Option { return func(s *Supply) { s.rng = rng } }

// WithChances sets the easy and medium tier weights; hard takes the remainder
func WithChances(easy, medium float64) Option {
	return func(s *Supply) {
		s.chances = [tierCount]float64{easy, medium, max(0, 1-easy-medium)}
	}
}

func WithLogger(log zerolog.Logger) Option { return func(s *Supply) { s.log = log } }

// WithList replaces the embedded list for the list's script
func WithList(l *List) Option { return func(s *Supply) { s.lists[l.Script()] = l } }

// NewSupply creates a supply backed by the embedded lists
func NewSupply(opts ...Option) *Supply {
	s := &Supply{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		lists: map[match.Script]*List{
			match.ScriptLatin:  Embedded(match.ScriptLatin),
			match.ScriptHangul: Embedded(match.ScriptHangul),
		},
		chances: [tierCount]float64{parameter.WordEasyChance, parameter.WordMediumChance, parameter.WordHardChance},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	for script, l := range s.lists {
		s.log.Info().
			Str("script", script.String()).
			Int("total", l.Len()).
			Int("easy", len(l.Tier(TierEasy))).
			Int("medium", len(l.Tier(TierMedium))).
			Int("hard", len(l.Tier(TierHard))).
			Msg("word list loaded")
	}
	return s
}

// Next returns a random word for script, picking the tier by weight
func (s *Supply) Next(script match.Script) string {
	return s.NextExcept(script, nil)
}

// NextExcept is Next skipping words in live, so two targets never show the same word
// A duplicate is returned only when every word of the list is live
func (s *Supply) NextExcept(script match.Script, live map[string]bool) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	roll := s.rng.Float64()
	tier := TierHard
	switch {
	case roll < s.chances[TierEasy]:
		tier = TierEasy
	case roll < s.chances[TierEasy]+s.chances[TierMedium]:
		tier = TierMedium
	}
	return s.pick(script, tier, live)
}

// NextTier returns a random word from one tier
func (s *Supply) NextTier(script match.Script, tier Tier) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pick(script, tier, nil)
}

// pick falls back from an empty or fully live tier to the whole list, then to the placeholder
func (s *Supply) pick(script match.Script, tier Tier, live map[string]bool) string {
	l, ok := s.lists[script]
	if !ok || l.Len() == 0 {
		return match.Placeholder(script)
	}
	candidates := exclude(l.Tier(tier), live)
	if len(candidates) == 0 {
		s.log.Debug().Str("tier", tier.String()).Msg("tier exhausted, picking from full list")
		candidates = exclude(l.all, live)
	}
	if len(candidates) == 0 {
		candidates = l.all
	}
	return candidates[s.rng.IntN(len(candidates))]
}

func exclude(words []string, live map[string]bool) []string {
	if len(live) == 0 {
		return words
	}
	out := make([]string, 0, len(words))
	for _, w := range words {
		if !live[w] {
			out = append(out, w)
		}
	}
	return out
}
