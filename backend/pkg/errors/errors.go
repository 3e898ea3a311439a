package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeDataset represents CSV and HTML input errors
	ErrorTypeDataset ErrorType = "dataset"
	// ErrorTypeLexicon represents lexicon file errors
	ErrorTypeLexicon ErrorType = "lexicon"
	// ErrorTypeAnalysis represents pipeline errors
	ErrorTypeAnalysis ErrorType = "analysis"
	// ErrorTypeGraph represents graph database errors
	ErrorTypeGraph ErrorType = "graph"
	// ErrorTypePublish represents report publishing errors
	ErrorTypePublish ErrorType = "publish"
	// ErrorTypeLLM represents LLM request errors
	ErrorTypeLLM ErrorType = "llm"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeAPI represents HTTP API lookup errors
	ErrorTypeAPI ErrorType = "api"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Dataset Errors

// ErrDatasetMissingColumn is returned when the CSV header lacks a required column
type ErrDatasetMissingColumn struct {
	*BaseError
	Column string
}

func NewDatasetMissingColumn(column string) *ErrDatasetMissingColumn {
	return &ErrDatasetMissingColumn{
		BaseError: NewBaseError(ErrorTypeDataset, fmt.Sprintf("missing required column: %s", column), nil),
		Column:    column,
	}
}

// ErrDatasetMalformedRow is returned when a CSV record cannot be read
type ErrDatasetMalformedRow struct {
	*BaseError
	Line int
}

func NewDatasetMalformedRow(line int, err error) *ErrDatasetMalformedRow {
	return &ErrDatasetMalformedRow{
		BaseError: NewBaseError(ErrorTypeDataset, fmt.Sprintf("malformed row at line %d", line), err),
		Line:      line,
	}
}

// ErrDatasetEmptyTranscript is returned when an imported page has no transcript text
type ErrDatasetEmptyTranscript struct {
	*BaseError
	Source string
}

func NewDatasetEmptyTranscript(source string) *ErrDatasetEmptyTranscript {
	return &ErrDatasetEmptyTranscript{
		BaseError: NewBaseError(ErrorTypeDataset, fmt.Sprintf("no transcript found in %s", source), nil),
		Source:    source,
	}
}

// Lexicon Errors

// ErrLexiconInvalid is returned when a lexicon file fails validation
type ErrLexiconInvalid struct {
	*BaseError
	Field string
}

func NewLexiconInvalid(field, reason string) *ErrLexiconInvalid {
	return &ErrLexiconInvalid{
		BaseError: NewBaseError(ErrorTypeLexicon, fmt.Sprintf("invalid %s: %s", field, reason), nil),
		Field:     field,
	}
}

// ErrLexiconPattern is returned when a mention pattern does not compile
type ErrLexiconPattern struct {
	*BaseError
	Candidate string
}

func NewLexiconPattern(candidate string, err error) *ErrLexiconPattern {
	return &ErrLexiconPattern{
		BaseError: NewBaseError(ErrorTypeLexicon, fmt.Sprintf("bad mention pattern for %s", candidate), err),
		Candidate: candidate,
	}
}

// Analysis Errors

// ErrAnalysisNoSpeeches is returned when the pipeline receives no input rows
var ErrAnalysisNoSpeeches = NewBaseError(ErrorTypeAnalysis, "no speeches to analyze", nil)

// ErrAnalysisStageFailed is returned when a pipeline stage fails
type ErrAnalysisStageFailed struct {
	*BaseError
	Stage string
}

func NewAnalysisStageFailed(stage string, err error) *ErrAnalysisStageFailed {
	return &ErrAnalysisStageFailed{
		BaseError: NewBaseError(ErrorTypeAnalysis, fmt.Sprintf("stage %s failed", stage), err),
		Stage:     stage,
	}
}

// Graph Errors

// ErrGraphConnectionFailed is returned when Neo4j connection fails
type ErrGraphConnectionFailed struct {
	*BaseError
	URI string
}

func NewGraphConnectionFailed(uri string, err error) *ErrGraphConnectionFailed {
	return &ErrGraphConnectionFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("failed to connect to Neo4j: %s", uri), err),
		URI:       uri,
	}
}

// ErrGraphRunNotFound is returned when no mention edges exist for a run
type ErrGraphRunNotFound struct {
	*BaseError
	RunID string
}

func NewGraphRunNotFound(runID string) *ErrGraphRunNotFound {
	return &ErrGraphRunNotFound{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("analysis run not found: %s", runID), nil),
		RunID:     runID,
	}
}

// Publish Errors

// ErrPublishFailed is returned when posting to Discord fails
type ErrPublishFailed struct {
	*BaseError
	ChannelID string
}

func NewPublishFailed(channelID string, err error) *ErrPublishFailed {
	return &ErrPublishFailed{
		BaseError: NewBaseError(ErrorTypePublish, "failed to send report", err),
		ChannelID: channelID,
	}
}

// LLM Errors

// ErrLLMFailed is returned when the LLM request fails after retries
type ErrLLMFailed struct {
	*BaseError
	Model    string
	Attempts int
}

func NewLLMFailed(model string, attempts int, err error) *ErrLLMFailed {
	return &ErrLLMFailed{
		BaseError: NewBaseError(ErrorTypeLLM, fmt.Sprintf("LLM request failed after %d attempts", attempts), err),
		Model:     model,
		Attempts:  attempts,
	}
}

// ErrLLMNoResponse is returned when the LLM returns no choices
var ErrLLMNoResponse = NewBaseError(ErrorTypeLLM, "no response from LLM", nil)

// Config Errors

// ErrConfigMissing is returned when a required setting is empty
type ErrConfigMissing struct {
	*BaseError
	Key string
}

func NewConfigMissing(key string) *ErrConfigMissing {
	return &ErrConfigMissing{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("%s is required", key), nil),
		Key:       key,
	}
}

// ErrConfigInvalid is returned when a setting has an unusable value
type ErrConfigInvalid struct {
	*BaseError
	Key   string
	Value string
}

func NewConfigInvalid(key, value, reason string) *ErrConfigInvalid {
	return &ErrConfigInvalid{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("%s=%q: %s", key, value, reason), nil),
		Key:       key,
		Value:     value,
	}
}

// API Errors

// ErrSpeakerNotFound is returned when a requested speaker has no data
type ErrSpeakerNotFound struct {
	*BaseError
	Speaker string
}

func NewSpeakerNotFound(speaker string) *ErrSpeakerNotFound {
	return &ErrSpeakerNotFound{
		BaseError: NewBaseError(ErrorTypeAPI, fmt.Sprintf("speaker not found: %s", speaker), nil),
		Speaker:   speaker,
	}
}
