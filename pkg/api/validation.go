package api

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidationConfig holds configurable limits for request validation.
type ValidationConfig struct {
	MaxTitleLength int
	MaxBodySize    int
}

// DefaultValidationConfig returns a ValidationConfig with sensible defaults.
func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		MaxTitleLength: 512,
		MaxBodySize:    1 * 1024 * 1024, // 1MB
	}
}

// ValidateCreateArticle checks a CreateArticleRequest for validity. It
// returns an *APIError describing the first validation failure, or nil if
// the request is valid.
func ValidateCreateArticle(req *CreateArticleRequest, cfg ValidationConfig) *APIError {
	if strings.TrimSpace(req.Title) == "" {
		return NewInvalidRequestError("title", "title is required")
	}

	if cfg.MaxTitleLength > 0 && utf8.RuneCountInString(req.Title) > cfg.MaxTitleLength {
		return NewInvalidRequestError("title",
			fmt.Sprintf("title exceeds maximum of %d characters", cfg.MaxTitleLength))
	}

	if strings.TrimSpace(req.Body) == "" {
		return NewInvalidRequestError("body", "body is required")
	}

	if cfg.MaxBodySize > 0 && len(req.Body) > cfg.MaxBodySize {
		return NewInvalidRequestError("body",
			fmt.Sprintf("body exceeds maximum of %d bytes", cfg.MaxBodySize))
	}

	return nil
}

// ValidateSummarizeRequest checks a SummarizeRequest for validity.
func ValidateSummarizeRequest(req *SummarizeRequest) *APIError {
	if req.Temperature != nil {
		if *req.Temperature < 0.0 || *req.Temperature > 2.0 {
			return NewInvalidRequestError("temperature", "temperature must be between 0.0 and 2.0")
		}
	}

	if req.TopP != nil {
		if *req.TopP < 0.0 || *req.TopP > 1.0 {
			return NewInvalidRequestError("top_p", "top_p must be between 0.0 and 1.0")
		}
	}

	if req.MaxOutputTokens != nil && *req.MaxOutputTokens <= 0 {
		return NewInvalidRequestError("max_output_tokens", "max_output_tokens must be positive")
	}

	if req.TimeoutMS != nil && *req.TimeoutMS <= 0 {
		return NewInvalidRequestError("timeout_ms", "timeout_ms must be positive")
	}

	return nil
}
