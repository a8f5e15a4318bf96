package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"predlozhka/internal/domain"
)

const noUsername = "no username"

var authorSignaturePattern = regexp.MustCompile(`\n\n— Author ID: (\d+) \(([^()\n]*)\) —\s*$`)

// FormatAd renders the visible body of a submission
func FormatAd(d domain.Draft) string {
	return fmt.Sprintf(
		"📝 Description:\n%s\n\n💰 Price: %s\n📞 Contact: %s",
		orDefault(d.Description, "no description"),
		orDefault(d.Price, "no price"),
		orDefault(d.Contact, "no contact"),
	)
}

// FormatPreview renders the draft preview shown to the author
func FormatPreview(d domain.Draft) string {
	return "📋 PREVIEW:\n\n" + FormatAd(d) + "\n\n✅ Check the details"
}

// AuthorHandle renders a username for the signature
func AuthorHandle(username string) string {
	if username == "" {
		return noUsername
	}
	return "@" + username
}

// AppendSignature adds the author signature block to a review post
func AppendSignature(text string, authorID int64, handle string) string {
	return fmt.Sprintf("%s\n\n— Author ID: %d (%s) —", text, authorID, handle)
}

// StripSignature removes the trailing author signature block
func StripSignature(text string) string {
	return strings.TrimSpace(authorSignaturePattern.ReplaceAllString(text, ""))
}

// ParseSignature extracts the author id and handle from a review post
func ParseSignature(text string) (int64, string, bool) {
	m := authorSignaturePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, "", false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, "", false
	}
	return id, m[2], true
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
