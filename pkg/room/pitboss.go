package room

import (
	"github.com/sirupsen/logrus"
)

// PitBoss routes connecting players to the dealer for their table,
// spinning dealers up and down as tables gain and lose clients.
type PitBoss struct {
	dealers    map[string]*Dealer
	connect    chan *Client
	disconnect chan *Client
}

// NewPitBoss returns a new dispatch object
func NewPitBoss() *PitBoss {
	return &PitBoss{
		dealers:    make(map[string]*Dealer),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case client := <-p.connect:
			p.handleConnect(client)
		case client := <-p.disconnect:
			p.handleDisconnect(client)
		}
	}
}

func (p *PitBoss) handleConnect(client *Client) {
	logrus.WithField("player", client.String()).Debug("client connected")

	tableUUID := client.table.UUID
	dealer, found := p.dealers[tableUUID]
	if !found {
		dealer = NewDealer(p, client.table)
		dealer.StartShift()
		p.dealers[tableUUID] = dealer
	}

	dealer.AddClient(client)
}

func (p *PitBoss) handleDisconnect(client *Client) {
	logrus.WithField("player", client.String()).Debug("client disconnected")

	tableUUID := client.table.UUID
	dealer, found := p.dealers[tableUUID]
	if !found {
		logrus.WithField("uuid", tableUUID).Error("no dealer for table")
		return
	}

	// last client out shuts the dealer down
	if dealer.RemoveClient(client) {
		dealer.EndShift()
		delete(p.dealers, tableUUID)
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}
