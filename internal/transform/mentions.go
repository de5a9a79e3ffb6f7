package transform

import (
	"fmt"
	"regexp"
	"strings"
)

// MentionResolver maps mention IDs to display names using the platform
// client's local cache. A false return means the entity is unknown.
type MentionResolver struct {
	User    func(id string) (string, bool)
	Role    func(id string) (string, bool)
	Channel func(id string) (string, bool)
}

var mentionPattern = regexp.MustCompile(`<@!?\d+>|<@&\d+>|<#\d+>`)

const (
	unknownUser    = "@unknown-user"
	unknownRole    = "@unknown-role"
	unknownChannel = "#unknown-channel"
)

// SanitizeMentions replaces user, role and channel mention tokens with
// plain @name / #name text. Unresolved IDs degrade to literal
// placeholders instead of failing the transform.
func SanitizeMentions(content string, resolver MentionResolver) string {
	return mentionPattern.ReplaceAllStringFunc(content, func(match string) string {
		switch {
		case strings.HasPrefix(match, "<@&"):
			id := strings.Trim(match, "<@&>")
			if resolver.Role != nil {
				if name, ok := resolver.Role(id); ok {
					return "@" + name
				}
			}

			return unknownRole
		case strings.HasPrefix(match, "<@"):
			id := strings.Trim(match, "<@!>")
			if resolver.User != nil {
				if name, ok := resolver.User(id); ok {
					return "@" + name
				}
			}

			return unknownUser
		case strings.HasPrefix(match, "<#"):
			id := strings.Trim(match, "<#>")
			if resolver.Channel != nil {
				if name, ok := resolver.Channel(id); ok {
					return "#" + name
				}
			}

			return unknownChannel
		}

		return match
	})
}

// BreakMentions inserts a zero-width space after every @ so relayed text
// cannot re-trigger notifications on the destination platform.
func BreakMentions(content string) string {
	return strings.ReplaceAll(content, "@", "@​")
}

var rawMentionPattern = regexp.MustCompile(`<@\w+>`)

// EscapeMentions wraps @everyone, @here and raw mention tokens in inline
// code so they render as text.
func EscapeMentions(content string) string {
	content = strings.ReplaceAll(content, "@everyone", "`@everyone`")
	content = strings.ReplaceAll(content, "@here", "`@here`")

	return rawMentionPattern.ReplaceAllStringFunc(content, func(match string) string {
		return fmt.Sprintf("`%s`", match)
	})
}
