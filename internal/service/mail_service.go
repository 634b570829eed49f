package service

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"github.com/sellerscs/league-portal/internal/league"
)

// MailService sends coach onboarding email from the org's address. Send
// failures never affect league state; callers log and move on.
type MailService struct {
	host string
	port string
	user string
	pass string
}

func NewMailService() *MailService {
	return &MailService{
		host: os.Getenv("SMTP_HOST"),
		port: os.Getenv("SMTP_PORT"),
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASS"),
	}
}

// SendCoachWelcome emails a newly-approved coach their getting-started
// instructions for the org's portal.
func (s *MailService) SendCoachWelcome(org *league.Org, coachEmail string) error {
	if coachEmail == "" || org.Email == "" {
		return fmt.Errorf("welcome email needs both a coach and an org address")
	}

	subject := "Join " + strings.ToUpper(org.Subdomain) + " Portal"
	body := fmt.Sprintf(
		"Welcome to the %s family!\n\n"+
			"Your email address, %s, has been approved for portal account creation.\n\n"+
			"Get started:\n"+
			"1. Log in at https://%s.esportsforedu.com/login/ with Google or Microsoft single sign-on.\n"+
			"2. Add your Discord ID when prompted; it is required to manage a team.\n"+
			"3. Reach out to %s if you need any help.\n",
		strings.ToUpper(org.Subdomain), coachEmail, org.Subdomain, org.Email)

	msg := []byte("To: " + coachEmail + "\r\n" +
		"From: " + org.Email + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body + "\r\n")

	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	addr := s.host + ":" + s.port
	if err := smtp.SendMail(addr, auth, org.Email, []string{coachEmail}, msg); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}
