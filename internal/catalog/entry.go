// Package catalog stores pipette-tip catalog entries and the reward-token
// ledger they feed.
package catalog

import "time"

// Entry is one catalogued tip box.
type Entry struct {
	ID        string    `json:"id"`
	Rack      string    `json:"rack"` // rack coordinate label, e.g. "B7"
	TipType   string    `json:"tipType"`
	VolumeUL  float64   `json:"volumeUl"`
	Filtered  bool      `json:"filtered"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
