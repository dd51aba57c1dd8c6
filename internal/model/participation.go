package model

import "time"

// Participation tracks one player's run through one game.
type Participation struct {
	PlayerID  string     `json:"player_id"`
	GameID    string     `json:"game_id"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}

// Start records the start time if it is not set yet.
func (p *Participation) Start(now time.Time) {
	if p.StartTime == nil {
		p.StartTime = &now
	}
}

// Finish records the end time if it is not set yet.
func (p *Participation) Finish(now time.Time) {
	if p.EndTime == nil {
		p.EndTime = &now
	}
}

// Finished reports whether the player has found every word.
func (p *Participation) Finished() bool {
	return p.EndTime != nil
}

// Duration returns the time between start and end, or zero while running.
func (p *Participation) Duration() time.Duration {
	if p.StartTime == nil || p.EndTime == nil {
		return 0
	}
	return p.EndTime.Sub(*p.StartTime)
}
