package conversion

import (
	"errors"
	"fmt"
)

// Phase identifies where the conversion session currently sits.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseUploading Phase = "uploading"
	PhaseResult    Phase = "result"
	PhaseError     Phase = "error"
)

// Result holds the fields of a completed conversion needed for download.
type Result struct {
	FileID            string
	ConvertedFilename string
	OriginalFilename  string
	FileSize          int64
}

// State is the full session state. It is a plain value; every change goes
// through Reduce so transitions stay inspectable and testable.
type State struct {
	Phase        Phase
	SourcePath   string
	Result       *Result
	ErrorMessage string
	Downloading  bool
}

// Initial returns the idle state.
func Initial() State {
	return State{Phase: PhaseIdle}
}

// ErrInvalidTransition is returned when an event is not legal in the current phase.
var ErrInvalidTransition = errors.New("invalid state transition")

// Event is a state machine input.
type Event interface{ isEvent() }

// UploadStarted begins a conversion for the given source file.
type UploadStarted struct{ SourcePath string }

// ConversionSucceeded carries the parsed service response.
type ConversionSucceeded struct{ Result Result }

// ConversionFailed carries the user-facing failure message. It is legal from
// the idle phase too, so validation failures reach the error phase without a
// phantom upload.
type ConversionFailed struct{ Message string }

// DownloadStarted guards the download action; it is refused unless a result
// is present and no download is running.
type DownloadStarted struct{}

// DownloadFinished clears the in-flight download marker in every outcome.
type DownloadFinished struct {
	Failed  bool
	Message string
}

// ResetRequested returns the session to idle.
type ResetRequested struct{}

func (UploadStarted) isEvent()       {}
func (ConversionSucceeded) isEvent() {}
func (ConversionFailed) isEvent()    {}
func (DownloadStarted) isEvent()     {}
func (DownloadFinished) isEvent()    {}
func (ResetRequested) isEvent()      {}

// Reduce applies an event to a state, returning the next state. Illegal
// events leave the state untouched and report ErrInvalidTransition.
func Reduce(state State, event Event) (State, error) {
	switch ev := event.(type) {
	case UploadStarted:
		if state.Phase != PhaseIdle {
			return state, fmt.Errorf("%w: upload from %s", ErrInvalidTransition, state.Phase)
		}
		return State{Phase: PhaseUploading, SourcePath: ev.SourcePath}, nil

	case ConversionSucceeded:
		if state.Phase != PhaseUploading {
			return state, fmt.Errorf("%w: conversion result in %s", ErrInvalidTransition, state.Phase)
		}
		result := ev.Result
		return State{Phase: PhaseResult, SourcePath: state.SourcePath, Result: &result}, nil

	case ConversionFailed:
		if state.Phase != PhaseUploading && state.Phase != PhaseIdle {
			return state, fmt.Errorf("%w: conversion failure in %s", ErrInvalidTransition, state.Phase)
		}
		message := ev.Message
		if message == "" {
			message = "Conversion failed. Please try again."
		}
		return State{Phase: PhaseError, SourcePath: state.SourcePath, ErrorMessage: message}, nil

	case DownloadStarted:
		if state.Phase != PhaseResult || state.Result == nil {
			return state, fmt.Errorf("%w: download without result", ErrInvalidTransition)
		}
		if state.Downloading {
			return state, fmt.Errorf("%w: download already running", ErrInvalidTransition)
		}
		next := state
		next.Downloading = true
		next.ErrorMessage = ""
		return next, nil

	case DownloadFinished:
		if state.Phase != PhaseResult || !state.Downloading {
			return state, fmt.Errorf("%w: download finish without download", ErrInvalidTransition)
		}
		next := state
		next.Downloading = false
		if ev.Failed {
			message := ev.Message
			if message == "" {
				message = "Download failed. Please try again."
			}
			next.ErrorMessage = message
		}
		return next, nil

	case ResetRequested:
		return Initial(), nil

	default:
		return state, fmt.Errorf("%w: unknown event %T", ErrInvalidTransition, event)
	}
}
