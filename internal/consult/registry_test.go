package consult

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeConn records emitted events; shared by registry and coordinator tests.
type fakeConn struct {
	id string

	mu     sync.Mutex
	events []fakeEvent
}

type fakeEvent struct {
	Event   string
	Payload interface{}
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id}
}

func (f *fakeConn) ID() string {
	return f.id
}

func (f *fakeConn) Emit(event string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, fakeEvent{Event: event, Payload: payload})
}

func (f *fakeConn) Events() []fakeEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]fakeEvent, len(f.events))
	copy(out, f.events)
	return out
}

func member(conn Conn, participantID uint, name string) Member {
	return Member{
		Conn:          conn,
		ParticipantID: participantID,
		Name:          name,
		Initials:      Initials(name),
	}
}

func TestRegistryJoinAndMembersOf(t *testing.T) {
	r := NewRegistry()
	conn := newFakeConn("c1")

	r.Join(42, member(conn, 7, "Asha Rao"))

	members := r.MembersOf(42)
	assert.Len(t, members, 1)
	assert.Equal(t, "c1", members[0].Conn.ID())
	assert.Equal(t, uint(7), members[0].ParticipantID)

	appt, ok := r.ChannelOf("c1")
	assert.True(t, ok)
	assert.Equal(t, uint(42), appt)
}

func TestRegistryJoinIdempotent(t *testing.T) {
	r := NewRegistry()
	conn := newFakeConn("c1")

	r.Join(42, member(conn, 7, "Asha Rao"))
	r.Join(42, member(conn, 7, "Asha Rao"))

	assert.Len(t, r.MembersOf(42), 1)
}

func TestRegistryJoinSwitchesChannel(t *testing.T) {
	r := NewRegistry()
	conn := newFakeConn("c1")

	r.Join(42, member(conn, 7, "Asha Rao"))
	r.Join(43, member(conn, 7, "Asha Rao"))

	// A connection belongs to at most one channel
	assert.Empty(t, r.MembersOf(42))
	assert.Len(t, r.MembersOf(43), 1)

	appt, ok := r.ChannelOf("c1")
	assert.True(t, ok)
	assert.Equal(t, uint(43), appt)
}

func TestRegistryLeave(t *testing.T) {
	r := NewRegistry()
	doctor := newFakeConn("c1")
	patient := newFakeConn("c2")

	r.Join(42, member(doctor, 7, "Asha Rao"))
	r.Join(42, member(patient, 9, "Ravi Patel"))

	r.Leave("c1")

	members := r.MembersOf(42)
	assert.Len(t, members, 1)
	assert.Equal(t, "c2", members[0].Conn.ID())

	_, ok := r.ChannelOf("c1")
	assert.False(t, ok)
}

func TestRegistryLeaveUnknownConn(t *testing.T) {
	r := NewRegistry()
	assert.NotPanics(t, func() {
		r.Leave("never-joined")
	})
}
