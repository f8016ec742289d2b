package handlers

// HandlerBundle groups the handlers the route registry wires up.
type HandlerBundle struct {
	Chat        *ChatHandler
	Profile     *ProfileHandler
	Trips       *TripHandler
	Alerts      *AlertHandler
	Attachments *AttachmentHandler
}
