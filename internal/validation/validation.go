package validation

import "strings"

// Severity distinguishes violations the caller may render differently:
// length and required-ness problems are blocking, a tag name collision is
// reported as a warning.
type Severity string

const (
	SeverityBlocking Severity = "blocking"
	SeverityWarning  Severity = "warning"
)

const maxNameLength = 32

const (
	MsgFirstNameLength = "First Name must be between 1 and 32 characters"
	MsgLastNameLength  = "Last Name must be between 1 and 32 characters"
	MsgTagNameLength   = "tag name must be between 1 and 32 characters"
	MsgTagExists       = "Tag already exists"
	MsgPostTitle       = "Posts must have a Title"
)

type (
	Violation struct {
		Field    string   `json:"field"`
		Message  string   `json:"message"`
		Severity Severity `json:"severity"`
	}

	// Error carries every collected violation; checks never short-circuit
	// on the first failure.
	Error struct {
		Violations []Violation
	}
)

func (e *Error) Error() string {
	msgs := make([]string, len(e.Violations))
	for i := range e.Violations {
		msgs[i] = e.Violations[i].Message
	}
	return strings.Join(msgs, "; ")
}

// AsError converts collected violations into an *Error, or nil when the
// input was valid.
func AsError(violations []Violation) error {
	if len(violations) == 0 {
		return nil
	}
	return &Error{Violations: violations}
}

// UserFields checks first and last name independently so that both
// messages can be present at once.
func UserFields(first, last string) []Violation {
	violations := make([]Violation, 0, 2)
	if blank(first) || len(first) > maxNameLength {
		violations = append(violations, Violation{
			Field:    "first_name",
			Message:  MsgFirstNameLength,
			Severity: SeverityBlocking,
		})
	}
	if blank(last) || len(last) > maxNameLength {
		violations = append(violations, Violation{
			Field:    "last_name",
			Message:  MsgLastNameLength,
			Severity: SeverityBlocking,
		})
	}
	return violations
}

// TagName checks length and uniqueness. existing must not contain the
// name of the tag being edited, so an unchanged name is not a collision
// with itself. Comparison is case-sensitive.
func TagName(name string, existing []string) []Violation {
	violations := make([]Violation, 0, 2)
	if blank(name) || len(name) > maxNameLength {
		violations = append(violations, Violation{
			Field:    "name",
			Message:  MsgTagNameLength,
			Severity: SeverityBlocking,
		})
	}
	for _, other := range existing {
		if name == other {
			violations = append(violations, Violation{
				Field:    "name",
				Message:  MsgTagExists,
				Severity: SeverityWarning,
			})
			break
		}
	}
	return violations
}

// PostTitle requires a non-blank title. Content has no constraint.
func PostTitle(title string) []Violation {
	if blank(title) {
		return []Violation{{
			Field:    "title",
			Message:  MsgPostTitle,
			Severity: SeverityBlocking,
		}}
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
