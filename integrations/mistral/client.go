// Package mistral est le client du collaborateur de génération de texte.
// Il implémente analytics.Generator ; quand la clé API manque, le moteur
// fonctionne sans lui et sert ses replis locaux.
package mistral

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

const (
	defaultBaseURL     = "https://api.mistral.ai"
	conversationPath   = "/v1/conversations"
	defaultHTTPTimeout = 30 * time.Second
)

type Client struct {
	apiKey  string
	agentID string
	baseURL string
	http    *http.Client
}

type conversationRequest struct {
	AgentID string `json:"agent_id"`
	Inputs  string `json:"inputs"`
}

type conversationResponse struct {
	ID      string               `json:"id"`
	Object  string               `json:"object"`
	Status  string               `json:"status"`
	Message conversationPiece    `json:"message"`
	Outputs []conversationOutput `json:"outputs"`
	Output  any                  `json:"output"`
}

type conversationPiece struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

type conversationOutput struct {
	ID      string              `json:"id"`
	Object  string              `json:"object"`
	Role    string              `json:"role"`
	Content []conversationChunk `json:"content"`
}

type conversationChunk struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NewClientFromEnv construit le client depuis l'environnement. L'absence de
// MISTRAL_API_KEY est une erreur que l'appelant traite comme "collaborateur
// désactivé", pas comme un arrêt.
func NewClientFromEnv() (*Client, error) {
	apiKey := os.Getenv("MISTRAL_API_KEY")
	if apiKey == "" {
		return nil, errors.New("MISTRAL_API_KEY manquant")
	}
	agentID := os.Getenv("MISTRAL_AGENT_ID")
	if agentID == "" {
		return nil, errors.New("MISTRAL_AGENT_ID manquant")
	}
	baseURL := os.Getenv("MISTRAL_API_BASE")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		apiKey:  apiKey,
		agentID: agentID,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
	}, nil
}

// Generate envoie le prompt à l'agent et renvoie le premier texte de la
// réponse. Le timeout vient du contexte appelant en plus de celui du client
// HTTP ; un échec ici ne remonte jamais au-delà des replis du moteur.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload := conversationRequest{
		AgentID: c.agentID,
		Inputs:  prompt,
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+conversationPath, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("mistral conversation status %d", resp.StatusCode)
	}

	var out conversationResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}

	text := out.firstText()
	if text == "" {
		return "", errors.New("réponse Mistral vide")
	}
	return text, nil
}

func (r *conversationResponse) firstText() string {
	if r.Message.Content != "" {
		return r.Message.Content
	}
	for _, out := range r.Outputs {
		for _, chunk := range out.Content {
			if chunk.Text != "" {
				return chunk.Text
			}
		}
	}
	if text, ok := r.Output.(string); ok && text != "" {
		return text
	}
	return ""
}
