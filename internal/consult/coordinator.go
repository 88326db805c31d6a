package consult

import (
	"context"
	"strings"
	"sync"

	"github.com/IqraSayed2/E-HealthCare/internal/models"
	"github.com/rs/zerolog"
)

// EventMessage is the socket event name for delivered chat messages.
const EventMessage = "consult_message"

// displayTimeLayout formats server timestamps for the chat UI, e.g. "02:15 PM".
const displayTimeLayout = "03:04 PM"

// Event is the fan-out payload delivered to every joined connection,
// including the sender's own (so its UI shows the authoritative persisted
// timestamp rather than a locally optimistic one).
type Event struct {
	Content        string `json:"content"`
	SenderID       uint   `json:"senderId"`
	SenderName     string `json:"senderName"`
	Timestamp      string `json:"timestamp"`
	SenderInitials string `json:"senderInitials"`
}

// Coordinator mediates join/send/disconnect for consultation channels:
// authorization through the Gate, persistence through the Store, membership
// through the Registry. It is the only code that touches the Registry.
type Coordinator struct {
	gate     *Gate
	dir      Directory
	store    Store
	registry *Registry
	log      zerolog.Logger

	// Per-appointment send locks: two sends on the same channel must not
	// race to persist out of order, while sends on distinct channels may
	// proceed in parallel. Entries are refcounted and removed once the
	// last in-flight send releases them, so the map does not accumulate
	// one entry per appointment ever seen.
	sendMu sync.Mutex
	sends  map[uint]*sendLock
}

type sendLock struct {
	mu   sync.Mutex
	refs int
}

func NewCoordinator(dir Directory, store Store, registry *Registry, log zerolog.Logger) *Coordinator {
	return &Coordinator{
		gate:     NewGate(dir),
		dir:      dir,
		store:    store,
		registry: registry,
		log:      log,
		sends:    make(map[uint]*sendLock),
	}
}

func (c *Coordinator) lockChannel(appointmentID uint) *sendLock {
	c.sendMu.Lock()
	l, ok := c.sends[appointmentID]
	if !ok {
		l = &sendLock{}
		c.sends[appointmentID] = l
	}
	l.refs++
	c.sendMu.Unlock()

	l.mu.Lock()
	return l
}

func (c *Coordinator) unlockChannel(appointmentID uint, l *sendLock) {
	l.mu.Unlock()

	c.sendMu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(c.sends, appointmentID)
	}
	c.sendMu.Unlock()
}

// HandleJoin authorizes the participant for the appointment and, on
// success, adds the connection to the channel. On Denied/NotFound the
// registry is left untouched.
func (c *Coordinator) HandleJoin(ctx context.Context, conn Conn, appointmentID, participantID uint) error {
	role, err := c.gate.Authorize(ctx, appointmentID, participantID)
	if err != nil {
		c.log.Debug().
			Uint("appointment_id", appointmentID).
			Uint("participant_id", participantID).
			Err(err).
			Msg("channel join rejected")
		return err
	}

	name, err := c.dir.DisplayName(ctx, participantID)
	if err != nil {
		return err
	}

	c.registry.Join(appointmentID, Member{
		Conn:          conn,
		ParticipantID: participantID,
		Name:          name,
		Initials:      Initials(name),
		Role:          role,
	})

	c.log.Debug().
		Uint("appointment_id", appointmentID).
		Uint("participant_id", participantID).
		Str("role", string(role)).
		Msg("joined consultation channel")
	return nil
}

// HandleSend persists the message and fans it out to every current channel
// member. The connection must already be joined to the declared appointment;
// a mismatched appointment id is a protocol violation, not an implicit join.
// A persistence failure produces no broadcast.
func (c *Coordinator) HandleSend(ctx context.Context, conn Conn, appointmentID, senderID uint, content string) (*models.ChatMessage, error) {
	joined, ok := c.registry.ChannelOf(conn.ID())
	if !ok || joined != appointmentID {
		return nil, ErrUnauthorized
	}

	sender, ok := c.registry.MemberOf(appointmentID, conn.ID())
	if !ok || sender.ParticipantID != senderID {
		return nil, ErrUnauthorized
	}

	if strings.TrimSpace(content) == "" {
		return nil, ErrInvalidContent
	}

	// Serialize persistence per channel so broadcast order always matches
	// store order for any two members.
	l := c.lockChannel(appointmentID)
	defer c.unlockChannel(appointmentID, l)

	msg := &models.ChatMessage{
		AppointmentID: appointmentID,
		SenderID:      senderID,
		Content:       content,
	}
	if err := c.store.Append(ctx, msg); err != nil {
		c.log.Error().
			Uint("appointment_id", appointmentID).
			Uint("sender_id", senderID).
			Err(err).
			Msg("message persistence failed")
		return nil, &PersistenceError{Err: err}
	}

	event := Event{
		Content:        msg.Content,
		SenderID:       senderID,
		SenderName:     sender.Name,
		Timestamp:      msg.CreatedAt.Format(displayTimeLayout),
		SenderInitials: sender.Initials,
	}

	// Membership snapshot is taken after persistence completes: a
	// connection that disconnected mid-send is already gone from the
	// registry and is simply skipped; everyone else, sender included,
	// receives the event.
	for _, m := range c.registry.MembersOf(appointmentID) {
		m.Conn.Emit(EventMessage, event)
	}

	return msg, nil
}

// HandleDisconnect removes the connection from its channel. No persistence
// side effect; an in-flight send for this connection still completes.
func (c *Coordinator) HandleDisconnect(conn Conn) {
	c.registry.Leave(conn.ID())
}

// History returns the appointment's persisted messages in presentation
// order, re-authorizing the requester through the Gate. Used by the HTTP
// replay endpoint when a participant opens the consultation view.
func (c *Coordinator) History(ctx context.Context, appointmentID, participantID uint) ([]models.ChatMessage, error) {
	if _, err := c.gate.Authorize(ctx, appointmentID, participantID); err != nil {
		return nil, err
	}
	return c.store.History(ctx, appointmentID)
}
