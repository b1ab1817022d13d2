package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/qloax/niks-aqua/components/assistant"
	dashboard "github.com/qloax/niks-aqua/components/dashboard"
)

var errMissingSessions = errors.New("chat command requires session store")

// ToggleChatInput opens or closes the assistant widget. A nil Open flips it.
type ToggleChatInput struct {
	Viewer dashboard.ViewerContext
	Open   *bool
	Result *assistant.ChatState
}

// SendMessageInput submits one operator query.
type SendMessageInput struct {
	Viewer dashboard.ViewerContext
	Text   string
	// Result receives the bot reply.
	Result *assistant.Message
}

type chatSessions interface {
	Session(viewer string) *assistant.Session
}

type chatShell interface {
	State(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.ShellState, error)
	SetChatOpen(ctx context.Context, viewer dashboard.ViewerContext, open bool) (dashboard.ShellState, error)
}

// ToggleChatCommand keeps the chat session and the shell flag in step.
type ToggleChatCommand struct {
	sessions  chatSessions
	shell     chatShell
	telemetry Telemetry
}

// NewToggleChatCommand creates the command. shell may be nil.
func NewToggleChatCommand(sessions chatSessions, shell chatShell, telemetry Telemetry) *ToggleChatCommand {
	return &ToggleChatCommand{sessions: sessions, shell: shell, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleChatInput] = (*ToggleChatCommand)(nil)

// Execute updates the widget visibility.
func (c *ToggleChatCommand) Execute(ctx context.Context, msg ToggleChatInput) error {
	if c.sessions == nil {
		return errMissingSessions
	}
	session := c.sessions.Session(msg.Viewer.UserID)
	var state assistant.ChatState
	if msg.Open != nil {
		state = session.SetOpen(*msg.Open)
	} else {
		state = session.Toggle()
	}
	if c.shell != nil {
		if _, err := c.shell.SetChatOpen(ctx, msg.Viewer, state != assistant.ChatClosed); err != nil {
			return err
		}
	}
	if msg.Result != nil {
		*msg.Result = state
	}
	c.telemetry.Record(ctx, "dashboard.command.chat_toggle", map[string]any{
		"viewer": msg.Viewer.UserID,
		"state":  string(state),
	})
	return nil
}

// SendMessageCommand forwards a query to the assistant with the viewer's active role.
type SendMessageCommand struct {
	sessions  chatSessions
	shell     chatShell
	telemetry Telemetry
}

// NewSendMessageCommand creates the command. shell may be nil, in which case no role is attached.
func NewSendMessageCommand(sessions chatSessions, shell chatShell, telemetry Telemetry) *SendMessageCommand {
	return &SendMessageCommand{sessions: sessions, shell: shell, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SendMessageInput] = (*SendMessageCommand)(nil)

// Execute blocks until the reply is appended to the transcript.
func (c *SendMessageCommand) Execute(ctx context.Context, msg SendMessageInput) error {
	if c.sessions == nil {
		return errMissingSessions
	}
	var role string
	if c.shell != nil {
		state, err := c.shell.State(ctx, msg.Viewer)
		if err != nil {
			return err
		}
		role = string(state.Role)
	}
	reply, err := c.sessions.Session(msg.Viewer.UserID).Send(ctx, msg.Text, role)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = reply
	}
	c.telemetry.Record(ctx, "dashboard.command.chat_send", map[string]any{
		"viewer": msg.Viewer.UserID,
		"role":   role,
	})
	return nil
}
