package entities

// MailMessage is a single outbound email
type MailMessage struct {
	ToName    string
	ToEmail   string
	Subject   string
	PlainText string
	HTML      string
}
