package models

// Button is a quick-reply option attached to an outbound message. The ID
// comes back verbatim in the interactive webhook payload.
type Button struct {
	ID    string
	Title string
}

// OutboundMessage is a fully rendered message ready for dispatch.
type OutboundMessage struct {
	Body    string
	Buttons []Button
}
