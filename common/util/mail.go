package util

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/proofdeck/proofdeck-api/common"
	"github.com/proofdeck/proofdeck-api/type/shared/model"
	"gopkg.in/gomail.v2"
)

func InitDialer() {
	dialer := gomail.NewDialer(*common.Config.MailHost, 587, *common.Config.MailUser, *common.Config.MailPass)
	common.Dialer = dialer
}

// SendCertificateMail delivers one rendered document to its recipient.
// The PDF is attached straight from memory; nothing touches disk.
func SendCertificateMail(cert *model.Certificate, isReceipt bool, pdfBytes []byte) error {
	if cert.RecipientEmail == "" {
		return fmt.Errorf("certificate %s has no recipient email", cert.ID)
	}
	if len(pdfBytes) == 0 {
		return fmt.Errorf("certificate %s rendered to empty document", cert.ID)
	}

	verificationURL := fmt.Sprintf("%s/verify/%s", *common.Config.FrontendURL, cert.VerificationID)

	subject := fmt.Sprintf("Your Certificate: %s", cert.CourseTitle)
	headerText := fmt.Sprintf("Congratulations, %s!", cert.RecipientName)
	bodyText := fmt.Sprintf("You have been awarded a certificate for successfully completing: <strong>%s</strong>", cert.CourseTitle)
	buttonText := "View &amp; Verify Certificate"
	attachName := "certificate.pdf"

	if isReceipt {
		subject = fmt.Sprintf("Payment Receipt: %s", cert.CourseTitle)
		headerText = "Payment Receipt"
		bodyText = fmt.Sprintf("Please find attached your payment receipt for <strong>%s</strong>.", cert.CourseTitle)
		buttonText = "Verify Receipt"
		attachName = "receipt.pdf"
	}

	htmlBody := fmt.Sprintf(`
		<div style="max-width:600px;margin:auto;background:#ffffff;padding:30px;border-radius:8px;font-family:sans-serif;">
			<div style="text-align:center;border-bottom:1px solid #eee;padding-bottom:20px;margin-bottom:20px;">
				<h2>%s</h2>
			</div>
			<div style="text-align:center;color:#333;">
				<p>Hello %s,</p>
				<p>%s</p>
				<p>Your document is attached to this email.</p>
				<a href="%s" style="background-color:#2563EB;color:#ffffff;padding:12px 24px;text-decoration:none;border-radius:5px;font-weight:bold;display:inline-block;margin-top:20px;" target="_blank">%s</a>
			</div>
			<div style="text-align:center;font-size:12px;color:#999;margin-top:30px;border-top:1px solid #eee;padding-top:10px;">
				<p>Issued by %s via ProofDeck</p>
				<p>Verification ID: %s</p>
			</div>
		</div>`,
		headerText, cert.RecipientName, bodyText, verificationURL, buttonText, cert.IssuerName, cert.VerificationID)

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", *common.Config.MailUser)
	mailer.SetHeader("To", cert.RecipientEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", htmlBody)
	mailer.Attach(attachName,
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(pdfBytes)
			return err
		}),
		gomail.SetHeader(map[string][]string{
			"Content-Type": {"application/pdf"},
		}))

	if err := common.Dialer.DialAndSend(mailer); err != nil {
		slog.Error("Error sending certificate mail", "error", err, "recipient", cert.RecipientEmail, "cert_id", cert.ID)
		return err
	}

	slog.Info("Certificate mail sent", "recipient", cert.RecipientEmail, "cert_id", cert.ID)
	return nil
}

// SummaryRow is one line in an issuer notification table.
type SummaryRow struct {
	RecipientName  string
	CourseTitle    string
	VerificationID string
}

const maxSummaryProblems = 10

// summaryProblems trims a failure list for the email body, appending a
// count of whatever was cut.
func summaryProblems(problems []string) []string {
	if len(problems) <= maxSummaryProblems {
		return problems
	}
	trimmed := append([]string{}, problems[:maxSummaryProblems]...)
	return append(trimmed, fmt.Sprintf("and %d more", len(problems)-maxSummaryProblems))
}

// SendIssuerSummary notifies the issuer account about completed bulk
// actions: counts, the created rows, and a truncated failure list.
// Failures are logged and swallowed; a missing summary never
// invalidates the created records.
func SendIssuerSummary(issuer *model.User, count int, rows []SummaryRow, problems []string, action string) {
	subject := fmt.Sprintf("Certificates %s — ProofDeck", capitalize(action))

	var tableRows strings.Builder
	for i, r := range rows {
		fmt.Fprintf(&tableRows,
			"<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			i+1, r.RecipientName, r.CourseTitle, r.VerificationID)
	}

	var problemBlock strings.Builder
	if len(problems) > 0 {
		problemBlock.WriteString(`<h3 style="color:#B91C1C;margin-top:24px;">Rows that could not be processed</h3><ul style="color:#333;">`)
		for _, problem := range summaryProblems(problems) {
			fmt.Fprintf(&problemBlock, "<li>%s</li>", problem)
		}
		problemBlock.WriteString("</ul>")
	}

	plural := ""
	if count != 1 {
		plural = "s"
	}

	dashboardURL := fmt.Sprintf("%s/dashboard", *common.Config.FrontendURL)
	htmlBody := fmt.Sprintf(`
		<div style="max-width:600px;margin:auto;background:white;padding:30px;border-radius:8px;font-family:Arial, sans-serif;">
			<h2 style="color:#2563EB;">ProofDeck — Certificates %s</h2>
			<p>Dear <b>%s</b>,</p>
			<p>This is to confirm that <b>%d</b> certificate%s have been successfully %s.</p>
			<table width="100%%" border="1" cellspacing="0" cellpadding="6" style="border-collapse:collapse;margin-top:20px;">
				<thead style="background:#2563EB;color:white;">
					<tr><th>#</th><th>Recipient</th><th>Course Title</th><th>Verification ID</th></tr>
				</thead>
				<tbody>%s</tbody>
			</table>
			%s
			<p style="margin-top:20px;">You can view all your certificates anytime on your dashboard.</p>
			<a href="%s" style="display:inline-block;background:#2563EB;color:white;padding:12px 20px;border-radius:5px;text-decoration:none;margin-top:10px;">Go to Dashboard</a>
		</div>`,
		capitalize(action), issuer.Name, count, plural, action, tableRows.String(), problemBlock.String(), dashboardURL)

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", *common.Config.MailUser)
	mailer.SetHeader("To", issuer.Email)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", htmlBody)

	if err := common.Dialer.DialAndSend(mailer); err != nil {
		slog.Error("Failed to send issuer summary", "error", err, "issuer", issuer.Email)
		return
	}

	slog.Info("Issuer summary sent", "issuer", issuer.Email, "count", count, "action", action)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
