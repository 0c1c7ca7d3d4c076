// Package mailer sends transactional email over SMTP. Delivery is always
// best-effort: an unconfigured or failing SMTP server is logged and never
// propagates to the caller.
package mailer

import (
	"fmt"
	"log"
	"os"
	"strconv"

	gomail "gopkg.in/gomail.v2"
)

type Mailer struct {
	host string
	port int
	user string
	pass string
	from string
}

func New() *Mailer {
	port, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	m := &Mailer{
		host: os.Getenv("SMTP_HOST"),
		port: port,
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASSWORD"),
		from: getEnv("SMTP_FROM", os.Getenv("SMTP_USER")),
	}
	if !m.configured() {
		log.Println("SMTP not configured, emails will be logged only")
	}
	return m
}

func (m *Mailer) configured() bool {
	return m != nil && m.host != "" && m.user != "" && m.pass != ""
}

// Send delivers one HTML mail. Failures are logged, not returned.
func (m *Mailer) Send(to, subject, htmlBody string) {
	if !m.configured() {
		log.Printf("mail (not sent): to=%s subject=%q", to, subject)
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	if err := d.DialAndSend(msg); err != nil {
		log.Printf("mail to %s failed: %v", to, err)
		return
	}
	log.Printf("mail sent to %s: %q", to, subject)
}

func (m *Mailer) SendRegistrationOTP(to, code string) {
	body := fmt.Sprintf(`
		<html><body style="font-family: Arial, sans-serif;">
		<h2 style="color:#006241;">Cafe Ordering</h2>
		<p>Your OTP code is:</p>
		<h1 style="color:#006241; letter-spacing:10px;">%s</h1>
		<p style="color:#999;">This code expires in 10 minutes.</p>
		</body></html>`, code)
	m.Send(to, "Your Cafe Ordering OTP Code", body)
}

func (m *Mailer) SendResetOTP(to, code string) {
	body := fmt.Sprintf(`
		<html><body style="font-family: Arial, sans-serif;">
		<h2>Password Reset</h2>
		<p>Your OTP code is: <strong style="font-size:24px;">%s</strong></p>
		<p>This code expires in 10 minutes.</p>
		</body></html>`, code)
	m.Send(to, "Password Reset OTP", body)
}

func (m *Mailer) SendPaymentOTP(to, orderID, code string, total int64) {
	body := fmt.Sprintf(`
		<html><body style="font-family: Arial, sans-serif;">
		<h2 style="color:#8B4513;">Payment Confirmation</h2>
		<p>Your payment OTP for order <strong>#%s</strong> is:</p>
		<h1 style="color:#8B4513; letter-spacing:10px;">%s</h1>
		<p><strong>Total:</strong> %s&#273;</p>
		<p style="color:#999;">This OTP will expire in 10 minutes.</p>
		</body></html>`, orderID, code, FormatVND(total))
	m.Send(to, "Payment OTP - Confirm Your Order", body)
}

func (m *Mailer) SendReceipt(to, orderID string, amount, newBalance int64) {
	body := fmt.Sprintf(`
		<html><body style="font-family: Arial, sans-serif;">
		<h2 style="color:#2e7d32;">Payment Successful</h2>
		<p>Your payment for order <strong>#%s</strong> has been completed.</p>
		<p><strong>Amount Paid:</strong> %s&#273;<br>
		<strong>New Balance:</strong> %s&#273;</p>
		</body></html>`, orderID, FormatVND(amount), FormatVND(newBalance))
	m.Send(to, "Payment Successful", body)
}

func (m *Mailer) SendRefundNotice(to, name, orderID string, amount int64) {
	body := fmt.Sprintf(`
		<html><body style="font-family: Arial, sans-serif;">
		<h2 style="color:#8B4513;">Refund Processed</h2>
		<p>Hello %s,</p>
		<p>Your order <strong>#%s</strong> has been cancelled and
		<strong>%s&#273;</strong> was refunded to your balance.</p>
		</body></html>`, name, orderID, FormatVND(amount))
	m.Send(to, "Order Cancelled - Refund Processed", body)
}

// FormatVND renders an amount with thousands separators, e.g. 111,000.
func FormatVND(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
