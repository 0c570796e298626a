package whatsapp

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Inbound is one flattened user message extracted from a Cloud API
// webhook delivery. ButtonID is set for quick-reply button taps.
type Inbound struct {
	From     string
	Name     string
	Body     string
	ButtonID string
}

type webhookPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Contacts []struct {
					WaID    string `json:"wa_id"`
					Profile struct {
						Name string `json:"name"`
					} `json:"profile"`
				} `json:"contacts"`
				Messages []struct {
					From string `json:"from"`
					Type string `json:"type"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
					Interactive struct {
						ButtonReply struct {
							ID    string `json:"id"`
							Title string `json:"title"`
						} `json:"button_reply"`
					} `json:"interactive"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// ParseInbound flattens a webhook delivery into the text and button
// messages it carries. Status-only deliveries produce an empty slice.
func ParseInbound(raw []byte) ([]Inbound, error) {
	var payload webhookPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode webhook payload: %w", err)
	}

	messages := make([]Inbound, 0)
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			names := make(map[string]string, len(change.Value.Contacts))
			for _, contact := range change.Value.Contacts {
				names[contact.WaID] = contact.Profile.Name
			}
			for _, message := range change.Value.Messages {
				inbound := Inbound{
					From: message.From,
					Name: names[message.From],
				}
				switch message.Type {
				case "text":
					inbound.Body = message.Text.Body
				case "interactive":
					inbound.Body = message.Interactive.ButtonReply.Title
					inbound.ButtonID = message.Interactive.ButtonReply.ID
				default:
					continue
				}
				if inbound.From == "" || inbound.Body == "" {
					continue
				}
				messages = append(messages, inbound)
			}
		}
	}
	return messages, nil
}

// ValidSignature checks the X-Hub-Signature-256 header Meta attaches to
// webhook deliveries: "sha256=" plus the hex HMAC-SHA256 of the raw body
// under the app secret.
func ValidSignature(appSecret string, payload []byte, header string) bool {
	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write(payload)
	expected := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(header))
}
