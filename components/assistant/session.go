package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Greeting opens every transcript.
const Greeting = "NIKS-AI System Initialized. Standing by for owner operational queries."

var (
	// ErrChatClosed rejects sends while the widget is closed.
	ErrChatClosed = errors.New("assistant: chat is closed")
	// ErrBusy rejects a send while a reply is outstanding.
	ErrBusy = errors.New("assistant: a reply is still pending")
	// ErrEmptyMessage rejects blank input.
	ErrEmptyMessage = errors.New("assistant: message is empty")
)

// ChatState is the widget state.
type ChatState string

const (
	ChatClosed  ChatState = "closed"
	ChatIdle    ChatState = "idle"
	ChatSending ChatState = "sending"
)

// Sender identifies the author of a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one transcript entry.
type Message struct {
	ID     string    `json:"id"`
	Sender Sender    `json:"sender"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// Asker answers prompts without failing. *Bridge satisfies it.
type Asker interface {
	Ask(ctx context.Context, prompt, role string) string
}

// Snapshot is a read-only copy of a session.
type Snapshot struct {
	State      ChatState `json:"state"`
	Transcript []Message `json:"transcript"`
}

// Session is one chat widget: open flag, in-flight flag and the transcript.
type Session struct {
	asker Asker
	now   func() time.Time

	mu         sync.Mutex
	open       bool
	sending    bool
	transcript []Message
}

// NewSession starts a closed session whose transcript holds the greeting.
func NewSession(asker Asker) *Session {
	s := &Session{asker: asker, now: time.Now}
	s.transcript = []Message{s.message(SenderBot, Greeting)}
	return s
}

func (s *Session) message(sender Sender, text string) Message {
	return Message{
		ID:     uuid.NewString(),
		Sender: sender,
		Text:   text,
		SentAt: s.now().UTC(),
	}
}

// State reports the widget state. A closed widget reports closed even when
// a reply is still outstanding.
func (s *Session) State() ChatState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() ChatState {
	switch {
	case !s.open:
		return ChatClosed
	case s.sending:
		return ChatSending
	default:
		return ChatIdle
	}
}

// SetOpen opens or closes the widget and returns the new state.
func (s *Session) SetOpen(open bool) ChatState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = open
	return s.stateLocked()
}

// Toggle flips the widget open flag.
func (s *Session) Toggle() ChatState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = !s.open
	return s.stateLocked()
}

// Send appends the user message, asks for a reply and appends it. Only one
// send may be outstanding. Closing the widget mid-request keeps the reply.
func (s *Session) Send(ctx context.Context, text, role string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return Message{}, ErrChatClosed
	}
	if s.sending {
		s.mu.Unlock()
		return Message{}, ErrBusy
	}
	s.sending = true
	s.transcript = append(s.transcript, s.message(SenderUser, text))
	s.mu.Unlock()

	reply := FallbackReply
	if s.asker != nil {
		reply = s.asker.Ask(ctx, text, role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.message(SenderBot, reply)
	s.transcript = append(s.transcript, msg)
	s.sending = false
	return msg, nil
}

// Transcript returns a copy of the messages in send order.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.transcript...)
}

// Snapshot returns the state and transcript together.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:      s.stateLocked(),
		Transcript: append([]Message(nil), s.transcript...),
	}
}
