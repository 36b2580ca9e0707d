// Package verify implements the meaning-judgment capability for challenge
// mode: an HTTP service that asks a Groq-hosted model for a strict yes/no
// verdict on a player-supplied meaning, and a client for the game to call.
//
// The service fails open everywhere: when the API key is missing, the
// upstream call fails, or the response is malformed, the defender is given
// the benefit of the doubt.
package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	// DefaultGroqURL is the OpenAI-compatible chat completion endpoint.
	DefaultGroqURL = "https://api.groq.com/openai/v1/chat/completions"
	// DefaultModel is the model used for verification.
	DefaultModel = "openai/gpt-oss-120b"
)

const systemPrompt = `You are a word meaning verifier. You will receive a word and a meaning provided by a player.
The meaning can be in English or Bengali (Bangla) language.
Your job is to determine if the meaning is correct or reasonably close to the actual definition of the word.
Be somewhat lenient - accept meanings that capture the core essence of the word, even if not perfectly worded.
The meaning can be provided in any language (English or Bengali), and you should verify it correctly regardless of the language used.
Respond with ONLY "yes" if the meaning is correct/acceptable, or "no" if it is wrong.
Do not include any other text in your response.`

// VerifyRequest is the body of POST /api/verify.
type VerifyRequest struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

// VerifyResponse is the strict binary judgment. No other content is
// permitted in the contract.
type VerifyResponse struct {
	IsCorrect bool   `json:"isCorrect"`
	Error     string `json:"error,omitempty"`
}

// Server holds the upstream configuration for the verification handler.
type Server struct {
	apiKey  string
	groqURL string
	model   string
	http    *http.Client
	logger  *log.Logger
}

type ServerOption func(*Server)

func WithGroqURL(url string) ServerOption {
	return func(s *Server) { s.groqURL = url }
}

func WithModel(model string) ServerOption {
	return func(s *Server) { s.model = model }
}

func WithHTTPClient(h *http.Client) ServerOption {
	return func(s *Server) { s.http = h }
}

func WithServerLogger(logger *log.Logger) ServerOption {
	return func(s *Server) { s.logger = logger }
}

func NewServer(apiKey string, opts ...ServerOption) *Server {
	s := &Server{
		apiKey:  apiKey,
		groqURL: DefaultGroqURL,
		model:   DefaultModel,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP routes of the verification service.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/api/verify", s.handleVerify)
	return r
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, VerifyResponse{Error: "invalid JSON body", IsCorrect: true})
		return
	}
	if req.Word == "" || req.Meaning == "" {
		s.logger.Error("missing word or meaning", "word", req.Word)
		writeJSON(w, http.StatusBadRequest, VerifyResponse{Error: "word and meaning are required", IsCorrect: true})
		return
	}
	if s.apiKey == "" {
		s.logger.Error("verification API key is not configured")
		writeJSON(w, http.StatusOK, VerifyResponse{IsCorrect: true})
		return
	}

	correct, err := s.askModel(r.Context(), req.Word, req.Meaning)
	if err != nil {
		s.logger.Error("meaning verification failed upstream", "word", req.Word, "error", err)
		writeJSON(w, http.StatusOK, VerifyResponse{IsCorrect: true})
		return
	}
	s.logger.Info("meaning verified", "word", req.Word, "isCorrect", correct)
	writeJSON(w, http.StatusOK, VerifyResponse{IsCorrect: correct})
}

type chatRequest struct {
	Messages            []chatMessage `json:"messages"`
	Model               string        `json:"model"`
	Temperature         float64       `json:"temperature"`
	MaxCompletionTokens int           `json:"max_completion_tokens"`
	TopP                float64       `json:"top_p"`
	Stream              bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *Server) askModel(ctx context.Context, word, meaning string) (bool, error) {
	body, err := json.Marshal(chatRequest{
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf(
				"Word: %q\nPlayer's meaning (can be in English or Bengali): %q\n\nIs this meaning correct? Answer only \"yes\" or \"no\".",
				strings.ToUpper(word), meaning)},
		},
		Model:               s.model,
		Temperature:         1,
		MaxCompletionTokens: 100,
		TopP:                1,
	})
	if err != nil {
		return false, fmt.Errorf("failed to encode chat request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.groqURL, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("chat request returned status %d", resp.StatusCode)
	}
	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return false, fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return false, fmt.Errorf("chat response contained no choices")
	}
	answer := strings.ToLower(strings.TrimSpace(chat.Choices[0].Message.Content))
	return answer == "yes", nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
