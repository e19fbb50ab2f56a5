package service

import (
	"CloudVault/internal/mq"
	"CloudVault/utils"
	"encoding/json"
	"fmt"
	"log"

	"golang.org/x/net/context"
)

// MailMessage is the payload handed to the notification worker.
type MailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Attempt int    `json:"attempt"`
}

// QueueMail enqueues an email for the worker. Falls back to a direct SMTP
// send when the broker is unreachable.
func QueueMail(ctx context.Context, to, subject, html string) error {
	msg := MailMessage{To: to, Subject: subject, HTML: html}
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	publisher, err := mq.GetPublisher()
	if err != nil {
		log.Printf("mail queue unavailable, sending directly: %v", err)
		return utils.SendMail(to, subject, html)
	}
	return publisher.PublishNotify(ctx, body)
}

// NotifyMail is the fire-and-forget variant: a delivery problem is logged and
// never propagated to the caller's primary operation.
func NotifyMail(ctx context.Context, to, subject, html string) {
	if err := QueueMail(ctx, to, subject, html); err != nil {
		log.Printf("send mail to %s failed: %v", to, err)
	}
}

func verifyEmailBody(otp string) string {
	return fmt.Sprintf(`
		<h2>Email Verification</h2>
		<p>Your verification OTP is:</p>
		<h1>%s</h1>
		<p>This OTP is valid for 10 minutes.</p>
	`, otp)
}

func resetPasswordBody(resetURL, otp string) string {
	return fmt.Sprintf(`
		<h2>Password Reset</h2>
		<p>Your password reset link:</p>
		<a href="%s"><h4>click here to reset password</h4></a>
		<p>Your OTP:</p>
		<h1>%s</h1>
		<p>This OTP is valid for 10 minutes.</p>
	`, resetURL, otp)
}

func shareNotifyBody(sharerEmail, resourceName, role, link string) string {
	return fmt.Sprintf(`
		<h2>Shared with you</h2>
		<p>%s shared "%s" with you as %s.</p>
		<a href="%s">Open it</a>
	`, sharerEmail, resourceName, role, link)
}

func inviteBody(sharerEmail, resourceName, role, acceptLink string) string {
	return fmt.Sprintf(`
		<h2>You are invited</h2>
		<p>%s invited you to access "%s" as %s.</p>
		<a href="%s">Accept invitation</a>
		<p>The invitation expires in 7 days.</p>
	`, sharerEmail, resourceName, role, acceptLink)
}
