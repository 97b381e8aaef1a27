package domain

import (
	"errors"
	"strings"
)

var (
	ErrUnreadableFile       = errors.New("unreadable file")
	ErrEmptyPrompt          = errors.New("empty prompt")
	ErrMissingCredential    = errors.New("missing api credential")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrServiceUnavailable   = errors.New("service unavailable")
	ErrNoImageReturned      = errors.New("no image returned")
	ErrUnclassifiedService  = errors.New("generation service error")
	ErrGenerationInProgress = errors.New("generation already in progress")
	ErrNoSourceImage        = errors.New("no source image")
	ErrUnknownProduct       = errors.New("unknown product")
	ErrUnknownMode          = errors.New("mode must be catalog or freetext")
)

// ErrorKind is the closed set of failures a generation intent can end in.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindUnreadableFile
	KindEmptyPrompt
	KindMissingCredential
	KindPermissionDenied
	KindServiceUnavailable
	KindNoImageReturned
	KindUnclassifiedService
)

var kindSentinels = map[ErrorKind]error{
	KindUnreadableFile:      ErrUnreadableFile,
	KindEmptyPrompt:         ErrEmptyPrompt,
	KindMissingCredential:   ErrMissingCredential,
	KindPermissionDenied:    ErrPermissionDenied,
	KindServiceUnavailable:  ErrServiceUnavailable,
	KindNoImageReturned:     ErrNoImageReturned,
	KindUnclassifiedService: ErrUnclassifiedService,
}

var kindMessages = map[ErrorKind]string{
	KindUnreadableFile:      "Could not read the selected file. Please choose another image.",
	KindEmptyPrompt:         "Please describe how you want to transform the image.",
	KindMissingCredential:   "API Key is missing. Please check your environment configuration.",
	KindPermissionDenied:    "API Key invalid or permission denied.",
	KindServiceUnavailable:  "Service temporarily unavailable. Please try again.",
	KindNoImageReturned:     "No image data received from the model.",
	KindUnclassifiedService: "Failed to generate image. Please try again.",
}

func (k ErrorKind) String() string {
	switch k {
	case KindUnreadableFile:
		return "unreadable_file"
	case KindEmptyPrompt:
		return "empty_prompt"
	case KindMissingCredential:
		return "missing_credential"
	case KindPermissionDenied:
		return "permission_denied"
	case KindServiceUnavailable:
		return "service_unavailable"
	case KindNoImageReturned:
		return "no_image_returned"
	case KindUnclassifiedService:
		return "unclassified_service"
	default:
		return "none"
	}
}

// Sentinel returns the package-level error matching k, or nil for KindNone.
func (k ErrorKind) Sentinel() error {
	return kindSentinels[k]
}

// ClassifiedError pairs a failure kind with the error that caused it.
// errors.Is matches both the kind's sentinel and the cause.
type ClassifiedError struct {
	Kind  ErrorKind
	Cause error
}

// Classify wraps cause under kind.
func Classify(kind ErrorKind, cause error) *ClassifiedError {
	return &ClassifiedError{Kind: kind, Cause: cause}
}

func (e *ClassifiedError) Error() string {
	if e.Cause == nil {
		return e.Kind.Sentinel().Error()
	}
	return e.Kind.Sentinel().Error() + ": " + e.Cause.Error()
}

func (e *ClassifiedError) Unwrap() []error {
	out := []error{e.Kind.Sentinel()}
	if e.Cause != nil {
		out = append(out, e.Cause)
	}
	return out
}

// Message is the text shown to the user. Unclassified failures surface the
// underlying message so it can be diagnosed from the UI.
func (e *ClassifiedError) Message() string {
	if e.Kind == KindUnclassifiedService && e.Cause != nil {
		if msg := strings.TrimSpace(e.Cause.Error()); msg != "" {
			return msg
		}
	}
	return kindMessages[e.Kind]
}

// KindOf reports which kind err belongs to, or KindNone.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.Kind
	}
	for kind := KindUnreadableFile; kind <= KindUnclassifiedService; kind++ {
		if errors.Is(err, kindSentinels[kind]) {
			return kind
		}
	}
	return KindNone
}

// UserMessage renders err for the error banner.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.Message()
	}
	if kind := KindOf(err); kind != KindNone {
		return kindMessages[kind]
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return kindMessages[KindUnclassifiedService]
}
