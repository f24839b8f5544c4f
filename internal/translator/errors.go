package translator

import "fmt"

// MalformedReplyError reports an upstream reply missing a field the chat
// translation has no default for.
type MalformedReplyError struct {
	Field string
}

func (e *MalformedReplyError) Error() string {
	return fmt.Sprintf("upstream reply missing required field %q", e.Field)
}
