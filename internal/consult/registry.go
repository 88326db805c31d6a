package consult

import "sync"

// Conn is the opaque handle the registry holds for a joined connection.
// The socket layer adapts its own connection type to this; tests use fakes.
type Conn interface {
	ID() string
	Emit(event string, payload interface{})
}

// Member is one joined connection plus the display metadata needed for
// fan-out without re-querying the store per message.
type Member struct {
	Conn          Conn
	ParticipantID uint
	Name          string
	Initials      string
	Role          Role
}

// Registry is the process-wide map from appointment id to joined
// connections. Pure in-memory presence state: created once at startup,
// never persisted, emptied entry-by-entry as connections leave. A restart
// clears everything and clients must rejoin.
type Registry struct {
	mu       sync.RWMutex
	channels map[uint]map[string]Member // appointment id -> conn id -> member
	conns    map[string]uint            // conn id -> appointment id, for O(1) leave
}

func NewRegistry() *Registry {
	return &Registry{
		channels: make(map[uint]map[string]Member),
		conns:    make(map[string]uint),
	}
}

// Join adds the connection to the appointment's channel. Idempotent for the
// same connection; a connection belongs to at most one channel, so joining a
// different appointment implicitly leaves the previous one.
func (r *Registry) Join(appointmentID uint, m Member) {
	r.mu.Lock()
	defer r.mu.Unlock()

	connID := m.Conn.ID()
	if prev, ok := r.conns[connID]; ok && prev != appointmentID {
		r.removeLocked(prev, connID)
	}

	ch, ok := r.channels[appointmentID]
	if !ok {
		ch = make(map[string]Member)
		r.channels[appointmentID] = ch
	}
	ch[connID] = m
	r.conns[connID] = appointmentID
}

// Leave removes the connection from whatever channel it belongs to. Safe to
// call for connections that never joined.
func (r *Registry) Leave(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appointmentID, ok := r.conns[connID]
	if !ok {
		return
	}
	r.removeLocked(appointmentID, connID)
}

func (r *Registry) removeLocked(appointmentID uint, connID string) {
	if ch, ok := r.channels[appointmentID]; ok {
		delete(ch, connID)
		if len(ch) == 0 {
			delete(r.channels, appointmentID)
		}
	}
	delete(r.conns, connID)
}

// MembersOf returns a snapshot of the channel's current members.
func (r *Registry) MembersOf(appointmentID uint) []Member {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ch := r.channels[appointmentID]
	members := make([]Member, 0, len(ch))
	for _, m := range ch {
		members = append(members, m)
	}
	return members
}

// ChannelOf returns the appointment the connection is currently joined to.
func (r *Registry) ChannelOf(connID string) (uint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appointmentID, ok := r.conns[connID]
	return appointmentID, ok
}

// MemberOf returns the member entry for one connection in a channel.
func (r *Registry) MemberOf(appointmentID uint, connID string) (Member, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.channels[appointmentID][connID]
	return m, ok
}
