package core

// Outcome is the final result of one play session.
// A game produces it exactly once; nothing mutates it afterwards.
type Outcome struct {
	Score        int            `json:"score"`
	Won          bool           `json:"won"`
	TimeSpentSec float64        `json:"timeSpentSec"`
	CustomData   map[string]any `json:"customData,omitempty"`
}

// Clone returns a copy whose CustomData map is not shared.
func (o Outcome) Clone() Outcome {
	if o.CustomData != nil {
		cd := make(map[string]any, len(o.CustomData))
		for k, v := range o.CustomData {
			cd[k] = v
		}
		o.CustomData = cd
	}
	return o
}

// Reporter receives a game's score events.
//
// ScoreUpdate is advisory and may be called any number of times.
// GameOver must be called at most once per play session.
type Reporter interface {
	ScoreUpdate(score int)
	GameOver(outcome Outcome)
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) ScoreUpdate(int)  {}
func (NopReporter) GameOver(Outcome) {}
