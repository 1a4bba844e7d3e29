package ws

import "sync"

// Presence maps a user id to their active channel. It is process-local:
// initialized empty, rebuilt from zero on restart, torn down on stop. A user
// not present here is simply offline.
type Presence struct {
	mu     sync.RWMutex
	byUser map[uint]*Client
}

func NewPresence() *Presence {
	return &Presence{
		byUser: make(map[uint]*Client),
	}
}

// Register associates a user with a channel. Last registration wins: a user
// opening a second channel is tracked only by the newest one.
func (p *Presence) Register(userID uint, client *Client) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byUser[userID] = client
}

func (p *Presence) Lookup(userID uint) (*Client, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	client, ok := p.byUser[userID]
	return client, ok
}

// Unregister drops the user's entry if this channel still owns it. A stale
// channel that was displaced by a newer registration must not knock out its
// replacement. The caller passes the user id it observed under its own lock;
// a channel that never registered passes zero, a no-op.
func (p *Presence) Unregister(userID uint, client *Client) {
	if client == nil || userID == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if current, ok := p.byUser[userID]; ok && current.id == client.id {
		delete(p.byUser, userID)
	}
}

func (p *Presence) OnlineUserIDs() []uint {
	p.mu.RLock()
	defer p.mu.RUnlock()
	ids := make([]uint, 0, len(p.byUser))
	for id := range p.byUser {
		ids = append(ids, id)
	}
	return ids
}
