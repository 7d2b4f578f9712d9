package certificate_controller

import (
	"github.com/gofiber/fiber/v2"
)

const sampleCSV = "recipient_name,recipient_email,course_title,issue_date,issuer_name\n" +
	"Jane Doe,jane@example.com,Introduction to Go,2024-10-22,Acme Academy\n" +
	"John Smith,john@example.com,Introduction to Go,2024-10-22,Acme Academy\n"

// BulkTemplate serves a starter CSV with the canonical column headers.
func (ctrl *CertificateController) BulkTemplate(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="bulk_template.csv"`)
	return c.SendString(sampleCSV)
}
