package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// The handlers only construct the payload; rendering and delivery happen in
// the email worker.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "account_activation", "password_reset"
	Data     map[string]any `json:"data,omitempty"`
}
