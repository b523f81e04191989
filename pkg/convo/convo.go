// Package convo defines the conversation turn types shared by the scoring,
// playbook, session and response packages.
package convo

// Speaker labels for conversation turns. The counterparty is always
// "scammer"; the engagement persona replies as "user".
const (
	SpeakerScammer = "scammer"
	SpeakerAgent   = "user"
)

// Turn is one message in a conversation.
type Turn struct {
	Speaker string `json:"sender"`
	Text    string `json:"text"`
}

// ScammerTexts returns the text of every counterparty turn, in order.
func ScammerTexts(turns []Turn) []string {
	var out []string
	for _, t := range turns {
		if t.Speaker == SpeakerScammer && t.Text != "" {
			out = append(out, t.Text)
		}
	}
	return out
}
