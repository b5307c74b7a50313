// Package chat drives a message through the full assistant pipeline:
// intent classification, facet extraction, action execution, context
// assembly, completion, and mentioned-product resolution.
package chat

import (
	"context"
	"time"

	"shoestore-assistant/internal/assistant/actions"
	"shoestore-assistant/internal/assistant/contextbuild"
	"shoestore-assistant/internal/assistant/facets"
	"shoestore-assistant/internal/assistant/intent"
	"shoestore-assistant/internal/assistant/matcher"
	"shoestore-assistant/internal/common/errors"
	"shoestore-assistant/internal/common/logger"
	"shoestore-assistant/internal/common/metrics"
	"shoestore-assistant/internal/models"
)

// OffTopicResponse is the canned refusal for out-of-domain messages.
const OffTopicResponse = "I'm your shoe shopping assistant. I can only help with questions about our shoes, orders, or shopping experience."

// Completer produces the model reply for an assembled prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ColorSource supplies the live color vocabulary for detection.
type ColorSource interface {
	AllColors(ctx context.Context) ([]string, error)
}

// Request is one incoming chat message. UserID is empty for anonymous
// requesters.
type Request struct {
	Message string
	UserID  string
}

// Response is the assistant's answer. Response holds rendered HTML for
// completions and plain text for action outcomes and refusals. Shoes
// carries the catalog entries the message was found to mention.
type Response struct {
	Response    string                 `json:"response"`
	Shoes       []models.CatalogEntry  `json:"shoes,omitempty"`
	Pending     *actions.PendingAction `json:"pendingAction,omitempty"`
	ActionTaken *actions.ActionTaken   `json:"actionTaken,omitempty"`
}

type Service struct {
	colors    ColorSource
	assembler *contextbuild.Assembler
	matcher   *matcher.Matcher
	executor  *actions.Executor
	completer Completer
	log       logger.Logger
}

func NewService(colors ColorSource, assembler *contextbuild.Assembler, m *matcher.Matcher, executor *actions.Executor, completer Completer, log logger.Logger) *Service {
	return &Service{
		colors:    colors,
		assembler: assembler,
		matcher:   m,
		executor:  executor,
		completer: completer,
		log:       log,
	}
}

// Process handles one chat message end to end.
func (s *Service) Process(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	outcome := "chat"
	defer func() {
		metrics.ChatRequestsTotal.WithLabelValues(outcome).Inc()
		metrics.ChatRequestDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	}()

	if req.Message == "" {
		outcome = "error"
		return nil, errors.NewMessageRequiredError()
	}

	authenticated := req.UserID != ""
	s.log.Debug("processing chat message", map[string]interface{}{"authenticated": authenticated})

	if intent.IsOffTopic(req.Message) {
		outcome = "offtopic"
		return &Response{Response: OffTopicResponse}, nil
	}

	colorFilters := s.detectColors(ctx, req.Message)

	promptContext := s.assembler.Build(ctx, colorFilters, req.UserID)

	if action := intent.DetectActionRequest(req.Message); action != nil && authenticated {
		result, err := s.executor.Execute(ctx, action, req.UserID, colorFilters)
		if err != nil {
			// Fall through to the normal chat path.
			s.log.WithError(err).Warn("action handling failed, continuing with chat", nil)
		} else {
			outcome = "action"
			return &Response{
				Response:    result.Response,
				Pending:     result.Pending,
				ActionTaken: result.ActionTaken,
			}, nil
		}
	}

	policyTopic := intent.DetectPolicyQuestion(req.Message)
	prompt := buildPrompt(req.Message, promptContext, policyTopic, authenticated)

	reply, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		outcome = "error"
		return nil, err
	}

	mentioned := s.matcher.FindMentionedEntries(req.Message, promptContext.Inventory.Inventory, colorFilters)

	return &Response{
		Response: renderMarkdown(reply),
		Shoes:    mentioned,
	}, nil
}

// detectColors builds the color facet from the live catalog vocabulary. A
// vocabulary fetch failure just disables color detection for the request.
func (s *Service) detectColors(ctx context.Context, message string) []string {
	available, err := s.colors.AllColors(ctx)
	if err != nil {
		s.log.Warn("color vocabulary unavailable", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return facets.DetectColors(message, available)
}
