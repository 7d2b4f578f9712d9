package certificate_controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/proofdeck/proofdeck-api/api/middleware"
	"github.com/proofdeck/proofdeck-api/common/util"
	"github.com/proofdeck/proofdeck-api/type/payload"
	"github.com/proofdeck/proofdeck-api/type/response"
	"github.com/proofdeck/proofdeck-api/type/shared/model"
)

var (
	errCertNotFound = errors.New("certificate not found")
	errNoRecipient  = errors.New("certificate has no recipient email")
)

// Send renders and emails a single credential to its recipient.
func (ctrl *CertificateController) Send(c *fiber.Ctx) error {
	certId := c.Params("certId")
	if certId == "" {
		return response.SendFailed(c, "Certificate ID is required")
	}

	userId, status := middleware.GetUserFromContext(c)
	if !status {
		return response.SendError(c, "Failed to read user")
	}

	switch _, err := ctrl.deliverOne(c.Context(), certId, userId); {
	case errors.Is(err, errCertNotFound):
		return response.SendNotFound(c, "Certificate not found")
	case errors.Is(err, errNoRecipient):
		return response.SendFailed(c, "Certificate has no recipient email")
	case err != nil:
		slog.Error("Certificate send failed", "cert_id", certId, "error", err)
		return response.SendInternalError(c, err)
	}

	return response.SendSuccess(c, "Certificate sent")
}

// SendBulk emails a list of credentials best effort, reporting per-id
// failures without aborting the rest.
func (ctrl *CertificateController) SendBulk(c *fiber.Ctx) error {
	body := new(payload.SendBulkPayload)

	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	if err := util.ValidateStruct(body); err != nil {
		errs := util.GetValidationErrors(err)
		return response.SendFailed(c, errs[0])
	}

	userId, status := middleware.GetUserFromContext(c)
	if !status {
		return response.SendError(c, "Failed to read user")
	}

	var delivered []util.SummaryRow
	var problems []string
	failures := map[string]string{}
	for _, certId := range body.CertificateIDs {
		cert, err := ctrl.deliverOne(c.Context(), certId, userId)
		if err != nil {
			slog.Warn("Bulk send skipped certificate", "cert_id", certId, "error", err)
			failures[certId] = err.Error()
			problems = append(problems, fmt.Sprintf("%s: %s", certId, err.Error()))
			continue
		}
		delivered = append(delivered, util.SummaryRow{
			RecipientName:  cert.RecipientName,
			CourseTitle:    cert.CourseTitle,
			VerificationID: cert.VerificationID,
		})
	}

	if len(delivered) > 0 {
		if issuer, err := ctrl.users.GetById(userId); err == nil && issuer != nil {
			util.SendIssuerSummary(issuer, len(delivered), delivered, problems, "sent")
		}
	}

	slog.Info("Bulk send finished", "user_id", userId, "sent", len(delivered), "failed", len(failures))
	return response.SendSuccess(c, "Bulk send finished", fiber.Map{
		"sent":     len(delivered),
		"failures": failures,
	})
}

func (ctrl *CertificateController) deliverOne(ctx context.Context, certId, userId string) (*model.Certificate, error) {
	cert, err := ctrl.certs.GetById(certId)
	if err != nil {
		return nil, err
	}
	if cert == nil || cert.UserID != userId {
		return nil, errCertNotFound
	}
	if cert.RecipientEmail == "" {
		return nil, errNoRecipient
	}

	if err := ctrl.deliverer.Deliver(ctx, cert); err != nil {
		return nil, err
	}

	sentAt := time.Now()
	if err := ctrl.certs.MarkSent(ctx, cert.ID, sentAt); err != nil {
		slog.Warn("Failed to record sent time", "cert_id", cert.ID, "error", err)
	}
	return cert, nil
}
