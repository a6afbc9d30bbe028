// Package sanitize cleans inbound chat text before it reaches the agent core
// or storage: strips script-bearing markup, collapses whitespace, and caps
// the length.
package sanitize

import (
	"regexp"
	"strings"
)

// MaxMessageLength caps sanitized message content.
const MaxMessageLength = 10000

var (
	blockTags = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<script\b.*?</script>`),
		regexp.MustCompile(`(?is)<iframe\b.*?</iframe>`),
		regexp.MustCompile(`(?is)<object\b.*?</object>`),
		regexp.MustCompile(`(?is)<embed\b.*?</embed>`),
	}

	eventHandlerSingle = regexp.MustCompile(`(?i)\s*on\w+\s*=\s*'[^']*'`)
	eventHandlerDouble = regexp.MustCompile(`(?i)\s*on\w+\s*=\s*"[^"]*"`)
	javascriptScheme   = regexp.MustCompile(`(?i)javascript:\S*`)
	dataScheme         = regexp.MustCompile(`(?i)data:\S*`)
	whitespace         = regexp.MustCompile(`\s+`)

	emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	orderPattern = regexp.MustCompile(`(?i)(?:order|ord|#)[\s:-]?[A-Z0-9-]{5,}`)
	phonePattern = regexp.MustCompile(`\+?\(?[0-9]{1,3}\)?[-\s.]?[0-9]{3,4}[-\s.]?[0-9]{3,6}`)
)

// String strips null bytes, script-bearing markup, inline event handlers,
// and javascript/data URI payloads, then collapses whitespace and caps the
// result at MaxMessageLength.
func String(input string) string {
	out := strings.ReplaceAll(input, "\x00", "")
	out = strings.TrimSpace(out)

	for _, re := range blockTags {
		out = re.ReplaceAllString(out, "")
	}
	out = eventHandlerSingle.ReplaceAllString(out, "")
	out = eventHandlerDouble.ReplaceAllString(out, "")
	out = javascriptScheme.ReplaceAllString(out, "")
	out = dataScheme.ReplaceAllString(out, "")
	out = whitespace.ReplaceAllString(out, " ")
	out = strings.TrimSpace(out)

	if runes := []rune(out); len(runes) > MaxMessageLength {
		out = string(runes[:MaxMessageLength])
	}
	return out
}

// SanitizedMessage carries the cleaned content with validity metadata.
type SanitizedMessage struct {
	Content         string `json:"content"`
	IsValid         bool   `json:"is_valid"`
	OriginalLength  int    `json:"original_length"`
	SanitizedLength int    `json:"sanitized_length"`
}

func Message(input string) SanitizedMessage {
	content := String(input)
	return SanitizedMessage{
		Content:         content,
		IsValid:         content != "" && len([]rune(content)) <= MaxMessageLength,
		OriginalLength:  len([]rune(input)),
		SanitizedLength: len([]rune(content)),
	}
}

// Entities are the structured identifiers recognized inside free text.
type Entities struct {
	Emails       []string `json:"emails"`
	OrderNumbers []string `json:"order_numbers"`
	PhoneNumbers []string `json:"phone_numbers"`
}

func ExtractEntities(input string) Entities {
	return Entities{
		Emails:       emailPattern.FindAllString(input, -1),
		OrderNumbers: orderPattern.FindAllString(input, -1),
		PhoneNumbers: phonePattern.FindAllString(input, -1),
	}
}
