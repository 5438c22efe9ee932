package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// The message is rendered by the publisher; HTML is optional.
type EmailJob struct {
	From    string `json:"from,omitempty"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// Message returns the job as a ready-to-send message.
func (j EmailJob) Message() Message {
	return Message{From: j.From, To: j.To, Subject: j.Subject, Text: j.Text, HTML: j.HTML}
}
