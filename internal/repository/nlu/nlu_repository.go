package nlu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tableScout/domain"
)

// Closed set of boolean venue attributes the extractor may assert. Anything
// outside this list returned by the model is dropped.
var knownAttributes = []string{
	"outdoorSeating",
	"liveMusic",
	"kidFriendly",
	"dogFriendly",
	"wheelchairAccessible",
	"acceptsReservations",
	"goodForGroups",
	"romantic",
	"quiet",
	"vegetarianFriendly",
	"veganOptions",
	"glutenFreeOptions",
	"servesAlcohol",
	"hasParking",
	"breakfast",
	"brunch",
	"lunch",
	"dinner",
	"late_night",
}

type NLUConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type NLURepository struct {
	nluConfig NLUConfig
	client    *http.Client
}

func NewNLURepository(cfg NLUConfig) *NLURepository {
	return &NLURepository{
		nluConfig: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// ---- chat completion plumbing ----

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete issues one chat-completion call and returns the raw message
// content. Transport failures and non-200s are collaborator errors.
func (r *NLURepository) complete(ctx context.Context, system, user string) (string, error) {
	reqBody := chatRequest{
		Model: r.nluConfig.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	reqBody.ResponseFormat.Type = "json_object"

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal nlu request: %w", err)
	}

	url := strings.TrimRight(r.nluConfig.BaseURL, "/") + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build nlu request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.nluConfig.APIKey)

	res, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: nlu request failed: %v", domain.ErrCollaborator, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read nlu response: %v", domain.ErrCollaborator, err)
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: nlu returned status %d", domain.ErrCollaborator, res.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: nlu returned no choices", domain.ErrMalformedResponse)
	}

	return parsed.Choices[0].Message.Content, nil
}

// ---- ExtractSignals ----

const extractSystemPrompt = `You turn a diner's situational description into structured signals.
Respond with a single JSON object, nothing else:
{
  "hard_constraints": {<attribute>: true, ...},
  "meal_period": "breakfast"|"brunch"|"lunch"|"dinner"|"late_night" or omit,
  "soft_signals": [3 to 6 short descriptive phrases],
  "occasion": "one short phrase"
}
Only assert an attribute as true when the text explicitly requires it.
Never assert false. Allowed attributes: `

type signalsPayload struct {
	HardConstraints map[string]bool `json:"hard_constraints"`
	MealPeriod      string          `json:"meal_period"`
	SoftSignals     []string        `json:"soft_signals"`
	Occasion        string          `json:"occasion"`
}

func (r *NLURepository) ExtractSignals(ctx context.Context, contextText string) (domain.ContextSignals, error) {
	system := extractSystemPrompt + strings.Join(knownAttributes, ", ")

	content, err := r.complete(ctx, system, contextText)
	if err != nil {
		return domain.ContextSignals{}, err
	}

	var payload signalsPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return domain.ContextSignals{}, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	allowed := make(map[string]bool, len(knownAttributes))
	for _, attr := range knownAttributes {
		allowed[attr] = true
	}

	signals := domain.ContextSignals{
		HardConstraints: make(map[string]bool),
		MealPeriod:      payload.MealPeriod,
		SoftSignals:     payload.SoftSignals,
		Occasion:        payload.Occasion,
	}
	for key, val := range payload.HardConstraints {
		if val && allowed[key] {
			signals.HardConstraints[key] = true
		}
	}

	return signals, nil
}

// ---- ScoreRelevance ----

const relevanceSystemPrompt = `You score restaurants for how well they fit a diner's situation.
Given the situation, desired qualities, the occasion, and candidate summaries,
respond with a single JSON object mapping each candidate id to a relevance
score from 0 to 10: {"scores": {"<id>": <0-10>, ...}}
Score every candidate. Nothing but the JSON object.`

type relevanceInput struct {
	Situation   string                    `json:"situation"`
	SoftSignals []string                  `json:"desired_qualities"`
	Occasion    string                    `json:"occasion"`
	Candidates  []domain.CandidateSummary `json:"candidates"`
}

type relevancePayload struct {
	Scores map[string]float64 `json:"scores"`
}

func (r *NLURepository) ScoreRelevance(ctx context.Context, contextText string, softSignals []string, occasion string, summaries []domain.CandidateSummary) (map[uint64]float64, error) {
	input, err := json.Marshal(relevanceInput{
		Situation:   contextText,
		SoftSignals: softSignals,
		Occasion:    occasion,
		Candidates:  summaries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal relevance input: %w", err)
	}

	content, err := r.complete(ctx, relevanceSystemPrompt, string(input))
	if err != nil {
		return nil, err
	}

	var payload relevancePayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if payload.Scores == nil {
		return nil, fmt.Errorf("%w: relevance response missing scores", domain.ErrMalformedResponse)
	}

	scores := make(map[uint64]float64, len(payload.Scores))
	for rawID, score := range payload.Scores {
		id, err := strconv.ParseUint(rawID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: relevance score for non-numeric id %q", domain.ErrMalformedResponse, rawID)
		}
		if score < 0 {
			score = 0
		}
		if score > 10 {
			score = 10
		}
		scores[id] = score
	}

	return scores, nil
}
