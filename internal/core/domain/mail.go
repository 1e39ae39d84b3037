package domain

type MailMessage struct {
	To      string
	Subject string
	Body    string
}
