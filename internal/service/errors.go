package service

import (
	"errors"
	"fmt"
)

var (
	ErrGenerationRejected  = errors.New("generation rejected by provider")
	ErrGenerationEmpty     = errors.New("generation returned no text")
	ErrProviderUnavailable = errors.New("generation provider unavailable")
	ErrPersistence         = errors.New("failed to persist advice")
	ErrNotFound            = errors.New("query not found")
)

// GenerationKind is the caller-facing class of a failed generation.
type GenerationKind int

const (
	// KindRejected means the user should rephrase the question.
	KindRejected GenerationKind = iota + 1
	// KindEmpty means a candidate came back without text; retrying may help.
	KindEmpty
	// KindUnavailable covers quota, rate limiting, timeouts and transport errors.
	KindUnavailable
)

// Reasons attached to a GenerationError.
const (
	ReasonNoCandidates   = "no_candidates"
	ReasonPromptBlocked  = "prompt_blocked"
	ReasonSafety         = "safety"
	ReasonMaxTokens      = "max_tokens"
	ReasonRecitation     = "recitation"
	ReasonOther          = "other"
	ReasonUnspecified    = "unspecified"
	ReasonEmptyText      = "empty_text"
	ReasonRateLimited    = "rate_limited"
	ReasonQuota          = "quota"
	ReasonTimeout        = "timeout"
	ReasonCanceled       = "canceled"
	ReasonNotInitialized = "not_initialized"
	ReasonProviderError  = "provider_error"
)

// GenerationError is the classified failure of one Generator call. It
// matches the sentinel of its kind under errors.Is.
type GenerationError struct {
	Kind   GenerationKind
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %v", e.sentinel(), e.Reason, e.Err)
	}
	return fmt.Sprintf("%s (%s)", e.sentinel(), e.Reason)
}

func (e *GenerationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.sentinel()}
	}
	return []error{e.sentinel(), e.Err}
}

func (e *GenerationError) sentinel() error {
	switch e.Kind {
	case KindRejected:
		return ErrGenerationRejected
	case KindEmpty:
		return ErrGenerationEmpty
	default:
		return ErrProviderUnavailable
	}
}

// Hint is the user-facing Turkmen message for the failure.
func (e *GenerationError) Hint() string {
	switch e.Kind {
	case KindRejected:
		switch e.Reason {
		case ReasonSafety, ReasonPromptBlocked:
			return "Soragyňyz howpsuzlyk süzgüji sebäpli jogapsyz galdy. Soragy başgaça ýazyp synanyşyň."
		case ReasonMaxTokens:
			return "Jogap gaty uzyn boldy. Soragy has gysga we anyk ýazyp synanyşyň."
		case ReasonRecitation:
			return "Bu soraga jogap berip bolmady. Soragy öz sözleriňiz bilen ýazyp synanyşyň."
		case ReasonNoCandidates:
			return MsgRephrase
		default:
			return "Soragy has anyk ýazyp synanyşyň."
		}
	case KindEmpty:
		return MsgEmptyAnswer
	default:
		return MsgUnavailable
	}
}

// User-facing messages.
const (
	MsgInvalidInput = "Girizilen maglumatlar nädogry."
	MsgRephrase     = "Soragy başgaça ýazyp synanyşyň."
	MsgEmptyAnswer  = "Jogap alynmady. Soňrak synanyşyň."
	MsgUnavailable  = "Hyzmat häzirki wagtda elýeterli däl. Soňrak synanyşyň."
	MsgInternal     = "Maslahat berişde ýalňyşlyk ýüze çykdy. Soňrak synanyşyň."
	MsgHistoryError = "Taryhy almakda ýalňyşlyk ýüze çykdy."
)

func rejected(reason string, err error) *GenerationError {
	return &GenerationError{Kind: KindRejected, Reason: reason, Err: err}
}

func unavailable(reason string, err error) *GenerationError {
	return &GenerationError{Kind: KindUnavailable, Reason: reason, Err: err}
}
