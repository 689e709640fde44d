// Package router classifies utterances and dispatches them to the
// meeting ledger or the chat collaborator.
//
// Routes form an ordered table evaluated in fixed priority:
// add-meeting, show-meetings, delete-meeting, then general chat. An
// utterance matching several keyword sets resolves to the first route.
package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmadden/officepal/internal/history"
	"github.com/jmadden/officepal/internal/ledger"
	"github.com/jmadden/officepal/internal/telemetry"
	"github.com/jmadden/officepal/internal/temporal"
)

// Keyword sets, matched as substrings of the lower-cased utterance.
var (
	addKeywords    = []string{"add meeting", "schedule", "make meeting", "create meeting", "new meeting"}
	showKeywords   = []string{"show meetings", "list meetings", "upcoming meetings", "view meetings", "any meetings"}
	deleteKeywords = []string{"delete meeting", "remove meeting", "cancel meeting"}
)

// Fixed user-facing strings for the recoverable add-meeting failures.
const (
	msgBadTime    = "I couldn't understand the time. Try 'schedule meeting team sync tomorrow 3pm'."
	msgNeedTime   = "Please provide a time, e.g. 'schedule meeting with HR at 2pm'."
	msgBadDetails = "Couldn't parse meeting details properly."
)

// Chatter is the external LLM collaborator: full transcript plus the
// newest human turn in, one assistant reply out.
type Chatter interface {
	Reply(ctx context.Context, transcript []history.Message, input string) (string, error)
}

// Router handles one utterance at a time. Meeting intents resolve
// locally and never touch the transcript; everything else goes to Chat.
type Router struct {
	Ledger  *ledger.Ledger
	History *history.Log
	Chat    Chatter
	Now     func() time.Time
}

type route struct {
	intent string
	match  func(lowered string) bool
	handle func(ctx context.Context, raw, lowered string) (string, error)
}

func (r *Router) routes() []route {
	return []route{
		{"add_meeting", matchAny(addKeywords), r.handleAdd},
		{"show_meetings", matchAny(showKeywords), r.handleShow},
		{"delete_meeting", matchAny(deleteKeywords), r.handleDelete},
		{"chat", func(string) bool { return true }, r.handleChat},
	}
}

func matchAny(keywords []string) func(string) bool {
	return func(lowered string) bool {
		for _, k := range keywords {
			if strings.Contains(lowered, k) {
				return true
			}
		}
		return false
	}
}

// Handle classifies input and produces the turn's reply.
func (r *Router) Handle(ctx context.Context, input string) (string, error) {
	lowered := strings.ToLower(input)
	for _, rt := range r.routes() {
		if !rt.match(lowered) {
			continue
		}
		reply, err := rt.handle(ctx, input, lowered)
		telemetry.Emit("turn_routed", map[string]any{
			"intent": rt.intent,
			"error":  telemetry.Err(err),
		})
		return reply, err
	}
	return "", nil // unreachable: the chat route matches everything
}

func (r *Router) handleAdd(_ context.Context, raw, lowered string) (string, error) {
	if !strings.Contains(lowered, " at ") {
		return msgNeedTime, nil
	}
	parts := strings.SplitN(raw, " at ", 2)
	if len(parts) != 2 {
		// Separator found only in the lowered copy (e.g. " At ").
		return msgBadDetails, nil
	}
	title := stripKeywords(parts[0], addKeywords)
	phrase := strings.TrimSpace(parts[1])

	at, err := temporal.Parse(phrase, r.Now())
	if err != nil {
		if errors.Is(err, temporal.ErrUnparseable) {
			telemetry.Emit("parse_failure", map[string]any{"phrase": phrase})
			return msgBadTime, nil
		}
		return msgBadDetails, nil
	}
	return r.Ledger.Add(title, at)
}

func (r *Router) handleShow(_ context.Context, _, _ string) (string, error) {
	return r.Ledger.Upcoming()
}

func (r *Router) handleDelete(_ context.Context, raw, _ string) (string, error) {
	title := stripKeywords(raw, deleteKeywords)
	return r.Ledger.DeleteByTitle(title)
}

func (r *Router) handleChat(ctx context.Context, raw, _ string) (string, error) {
	start := time.Now()
	reply, err := r.Chat.Reply(ctx, r.History.Messages(), raw)
	telemetry.Emit("llm_call", map[string]any{
		"duration_ms": time.Since(start).Milliseconds(),
		"error":       telemetry.Err(err),
	})
	if err != nil {
		// The turn fails; nothing is persisted for it.
		return "", fmt.Errorf("router: chat turn: %w", err)
	}
	r.History.Append(history.RoleHuman, raw)
	r.History.Append(history.RoleAI, reply)
	if err := r.History.Save(); err != nil {
		return "", fmt.Errorf("router: persist transcript: %w", err)
	}
	return reply, nil
}

// stripKeywords removes every case-insensitive occurrence of each
// keyword and trims the result.
func stripKeywords(s string, keywords []string) string {
	for _, k := range keywords {
		for {
			idx := strings.Index(strings.ToLower(s), k)
			if idx < 0 {
				break
			}
			s = s[:idx] + s[idx+len(k):]
		}
	}
	return strings.TrimSpace(s)
}
