package certificate_controller

import (
	"context"
	"fmt"

	templatemodel "github.com/proofdeck/proofdeck-api/api/model/templateModel"
	usermodel "github.com/proofdeck/proofdeck-api/api/model/userModel"
	"github.com/proofdeck/proofdeck-api/common/util"
	"github.com/proofdeck/proofdeck-api/internal/bulk"
	"github.com/proofdeck/proofdeck-api/internal/layout"
	"github.com/proofdeck/proofdeck-api/internal/renderer"
	"github.com/proofdeck/proofdeck-api/type/shared/model"
)

// mailDeliverer renders one credential and emails it to the recipient.
type mailDeliverer struct {
	renderer  *renderer.Renderer
	templates *templatemodel.Store
	users     *usermodel.Store
}

func (d *mailDeliverer) Deliver(ctx context.Context, cert *model.Certificate) error {
	template, err := d.templates.GetById(cert.TemplateID)
	if err != nil {
		return err
	}
	if template == nil {
		return fmt.Errorf("template %s not found", cert.TemplateID)
	}

	issuer, err := d.users.GetById(cert.UserID)
	if err != nil {
		return err
	}

	pdfBytes, err := d.renderer.Render(ctx, cert, template, issuer)
	if err != nil {
		return err
	}

	isReceipt := false
	if family, ok := layout.FamilyByTag(template.LayoutStyle); ok {
		isReceipt = family.Receipt
	}
	return util.SendCertificateMail(cert, isReceipt, pdfBytes)
}

// summaryNotifier emails the issuer a recap after a batch.
type summaryNotifier struct{}

func (summaryNotifier) SendSummary(issuer *model.User, certs []*model.Certificate, report *bulk.Report) {
	rows := make([]util.SummaryRow, 0, len(certs))
	for _, cert := range certs {
		rows = append(rows, util.SummaryRow{
			RecipientName:  cert.RecipientName,
			CourseTitle:    cert.CourseTitle,
			VerificationID: cert.VerificationID,
		})
	}

	problems := make([]string, 0, len(report.Errors))
	for _, rowErr := range report.Errors {
		problems = append(problems, fmt.Sprintf("Row %d: %s", rowErr.Row, rowErr.Message))
	}

	util.SendIssuerSummary(issuer, report.Created, rows, problems, "issued")
}
