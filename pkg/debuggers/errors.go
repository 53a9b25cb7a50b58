package debuggers

import (
	"github.com/pkg/errors"
)

// Kind classifies a failure so callers can branch on its category rather than
// on message text.
type Kind int

const (
	KindUnknown Kind = iota
	// the required program attribute is absent
	KindMissingAttribute
	// the program path cannot be stat-ed
	KindInvalidProgramPath
	// the program is a file without the .go extension
	KindUnsupportedProgramKind
	// the debugger binary does not exist
	KindToolNotFound
	// the OS refused to start the debugger, or it died while settling
	KindSpawnFailure
	// the process tree could not be killed
	KindTerminationFailure
	// no free local port could be obtained
	KindPortAllocation
	// the server never accepted connections on its endpoint
	KindServerNotReady
	// a launch configuration file could not be read or parsed
	KindInvalidConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindMissingAttribute:
		return "MissingAttribute"
	case KindInvalidProgramPath:
		return "InvalidProgramPath"
	case KindUnsupportedProgramKind:
		return "UnsupportedProgramKind"
	case KindToolNotFound:
		return "ToolNotFound"
	case KindSpawnFailure:
		return "SpawnFailure"
	case KindTerminationFailure:
		return "TerminationFailure"
	case KindPortAllocation:
		return "PortAllocation"
	case KindServerNotReady:
		return "ServerNotReady"
	case KindInvalidConfiguration:
		return "InvalidConfiguration"
	default:
		return "Unknown"
	}
}

// Error is returned by every layer of the launcher. Err carries the detailed
// cause and is reachable through errors.Cause and errors.Unwrap.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Cause() error {
	return e.Err
}

// NewError tags err with kind.
func NewError(kind Kind, err error) error {
	return &Error{Kind: kind, Err: err}
}

// Errorf builds a new error of the given kind from a format string.
func Errorf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Err: errors.Errorf(format, args...)}
}

// Wrapf tags err with kind and annotates it with a message.
func Wrapf(kind Kind, err error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Err: errors.Wrapf(err, format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
