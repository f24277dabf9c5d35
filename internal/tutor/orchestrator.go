// Package tutor runs one learner turn: route the message, call the
// capabilities the chosen handler needs and append the reply.
package tutor

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/lingua/internal/capability"
	"github.com/abhisek/lingua/internal/intent"
	"github.com/abhisek/lingua/internal/progress"
)

// ErrEmptyMessage is returned by ProcessTurn for blank input.
var ErrEmptyMessage = errors.New("message is empty")

// DefaultCapabilityTimeout bounds each capability call.
const DefaultCapabilityTimeout = 30 * time.Second

// Router picks the handler for a message.
type Router interface {
	Match(text string) intent.Match
}

// Orchestrator is the routing state machine. It is safe for concurrent
// use; per-learner state lives in the progress registry.
type Orchestrator struct {
	router   Router
	caps     capability.Set
	progress *progress.Registry
	language string
	timeout  time.Duration
	log      *zap.Logger
	handlers map[intent.Handler]handlerFunc
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRouter replaces the default keyword classifier.
func WithRouter(r Router) Option {
	return func(o *Orchestrator) { o.router = r }
}

// WithLanguage sets the language being learned. Default "German".
func WithLanguage(lang string) Option {
	return func(o *Orchestrator) {
		if lang != "" {
			o.language = lang
		}
	}
}

// WithCapabilityTimeout bounds each capability call.
func WithCapabilityTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(o *Orchestrator) {
		if log != nil {
			o.log = log
		}
	}
}

// New creates an Orchestrator. A nil registry gets a fresh in-memory one;
// missing capabilities answer with their handler's error reply.
func New(caps capability.Set, reg *progress.Registry, opts ...Option) *Orchestrator {
	if reg == nil {
		reg = progress.NewRegistry()
	}
	o := &Orchestrator{
		router:   intent.NewClassifier(),
		caps:     caps.Complete(),
		progress: reg,
		language: "German",
		timeout:  DefaultCapabilityTimeout,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.handlers = map[intent.Handler]handlerFunc{
		intent.Grammar:        o.handleGrammar,
		intent.Vocabulary:     o.handleVocabulary,
		intent.Pronunciation:  o.handlePronunciation,
		intent.TranslateEN:    o.handleTranslateEN,
		intent.TranslateBN:    o.handleTranslateBN,
		intent.GrammarExplain: o.handleGrammarExplain,
		intent.Conversation:   o.handleConversation,
	}
	for _, h := range intent.Handlers() {
		if _, ok := o.handlers[h]; !ok {
			panic("tutor: no handler registered for " + string(h))
		}
	}
	return o
}

// Progress returns the registry the orchestrator records into.
func (o *Orchestrator) Progress() *progress.Registry {
	return o.progress
}

// Run takes the state through Routing, one handler and End. The returned
// state holds the input messages plus exactly one ai reply and Next set to
// intent.End. The caller's slice is never modified.
func (o *Orchestrator) Run(ctx context.Context, learnerID string, in State) State {
	out, _ := o.run(ctx, learnerID, in)
	return out
}

func (o *Orchestrator) run(ctx context.Context, learnerID string, in State) (State, intent.Handler) {
	start := time.Now()

	match := intent.Match{Handler: intent.Conversation}
	var text string
	if last, ok := in.Last(); ok {
		text = last.Content
		match = o.router.Match(text)
	}

	if match.Handler == intent.End || !match.Handler.Valid() {
		o.log.Warn("router returned no routable handler, falling back to conversation",
			zap.String("handler", string(match.Handler)))
		match = intent.Match{Handler: intent.Conversation}
	}

	reply := o.handlers[match.Handler](ctx, learnerID, text, match)

	out := State{
		Messages: make([]Message, len(in.Messages), len(in.Messages)+1),
		Next:     intent.End,
	}
	copy(out.Messages, in.Messages)
	out.Messages = append(out.Messages, Message{Role: RoleAI, Content: reply})

	o.log.Info("turn complete",
		zap.String("learner", learnerID),
		zap.String("handler", string(match.Handler)),
		zap.Duration("duration", time.Since(start)),
	)
	return out, match.Handler
}

// Turn is the outcome of ProcessTurn.
type Turn struct {
	Reply     string
	Handler   intent.Handler
	Level     progress.Level
	Timestamp time.Time
}

// ProcessTurn runs a single message through the state machine.
func (o *Orchestrator) ProcessTurn(ctx context.Context, learnerID, text string) (Turn, error) {
	if strings.TrimSpace(text) == "" {
		return Turn{}, ErrEmptyMessage
	}

	out, handler := o.run(ctx, learnerID, State{Messages: []Message{{Role: RoleHuman, Content: text}}})
	reply, _ := out.Last()

	return Turn{
		Reply:     reply.Content,
		Handler:   handler,
		Level:     o.progress.Level(ctx, learnerID),
		Timestamp: time.Now().UTC(),
	}, nil
}
