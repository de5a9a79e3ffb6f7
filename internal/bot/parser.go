package bot

import "strings"

// ParseCommand splits a prefixed message into command and arguments.
// ok is false when the content does not start with the prefix or
// carries no command after it.
func ParseCommand(content, prefix string) (command string, args []string, ok bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}

	parts := strings.Fields(strings.TrimSpace(content[len(prefix):]))
	if len(parts) == 0 {
		return "", nil, false
	}

	return strings.ToLower(parts[0]), parts[1:], true
}
