package room

import (
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/playable"
)

const logMessageLimit = 25

// addLogMessages keeps a bounded history of game log messages for clients
// that connect mid-game
// NOTE: must only be called from within the run loop
func (d *Dealer) addLogMessages(messages []*playable.LogMessage) {
	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
}

// sendLogMessages broadcasts new game log messages to connected clients
// NOTE: must only be called from within the run loop
func (d *Dealer) sendLogMessages(messages []*playable.LogMessage) {
	for _, client := range d.Clients() {
		client.Send <- &playable.Response{
			Key:  "logs",
			Data: messages,
		}
	}
}
