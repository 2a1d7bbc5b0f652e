package mail

type ReminderEmailData struct {
	LeadName    string
	Description string
	ReminderAt  string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
