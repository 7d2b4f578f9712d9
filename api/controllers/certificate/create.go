package certificate_controller

import (
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/proofdeck/proofdeck-api/api/middleware"
	"github.com/proofdeck/proofdeck-api/common/util"
	"github.com/proofdeck/proofdeck-api/internal/bulk"
	"github.com/proofdeck/proofdeck-api/internal/spreadsheet"
	"github.com/proofdeck/proofdeck-api/type/payload"
	"github.com/proofdeck/proofdeck-api/type/response"
	"github.com/proofdeck/proofdeck-api/type/shared"
	"github.com/proofdeck/proofdeck-api/type/shared/model"
)

func (ctrl *CertificateController) Create(c *fiber.Ctx) error {
	body := new(payload.CreateCertificatePayload)

	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}

	if err := util.ValidateStruct(body); err != nil {
		errs := util.GetValidationErrors(err)
		return response.SendFailed(c, errs[0])
	}

	userId, status := middleware.GetUserFromContext(c)
	if !status {
		slog.Error("Certificate Create GetUserId failed")
		return response.SendError(c, "Failed to read user")
	}

	issuer, err := ctrl.users.GetOrProvision(userId)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	template, err := ctrl.templates.GetById(body.TemplateID)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if template == nil {
		return response.SendFailed(c, "Template not found")
	}
	if !templateVisible(template, userId) {
		return response.SendForbidden(c, "Template belongs to another issuer")
	}

	issueDate, err := spreadsheet.ParseFlexibleDate(body.IssueDate, time.Now())
	if err != nil {
		return response.SendFailed(c, "Unrecognized issue date format")
	}

	requestedGroup := ""
	if body.GroupID != nil {
		requestedGroup = *body.GroupID
	}
	groupID, err := resolveGroup(ctrl.groups, requestedGroup, userId)
	if errors.Is(err, errGroupDenied) {
		return response.SendFailed(c, "Group not found or not permitted")
	}
	if err != nil {
		return response.SendInternalError(c, err)
	}

	issuerName := body.IssuerName
	if issuerName == "" {
		issuerName = issuer.Name
	}

	cert := &model.Certificate{
		ID:             uuid.New().String(),
		UserID:         userId,
		TemplateID:     template.ID,
		GroupID:        groupID,
		RecipientName:  body.RecipientName,
		RecipientEmail: spreadsheet.NormalizeEmail(body.RecipientEmail),
		CourseTitle:    body.CourseTitle,
		IssuerName:     issuerName,
		IssueDate:      issueDate,
		Signature:      body.Signature,
		ExtraFields:    orderedExtras(body.ExtraFields),
		VerificationID: uuid.New().String(),
		Status:         model.StatusValid,
	}

	if err := ctrl.certs.Create(c.Context(), cert); err != nil {
		if errors.Is(err, bulk.ErrQuotaExceeded) {
			return response.SendFailed(c, "Issuance quota exhausted")
		}
		return response.SendInternalError(c, err)
	}

	if body.SendEmail && cert.RecipientEmail != "" {
		if err := ctrl.deliverer.Deliver(c.Context(), cert); err != nil {
			slog.Warn("Certificate created but delivery failed", "cert_id", cert.ID, "error", err)
		} else {
			sentAt := time.Now()
			cert.SentAt = &sentAt
			if err := ctrl.certs.MarkSent(c.Context(), cert.ID, sentAt); err != nil {
				slog.Warn("Failed to record sent time", "cert_id", cert.ID, "error", err)
			}
		}
	}

	slog.Info("Certificate created", "cert_id", cert.ID, "user_id", userId, "template_id", template.ID)
	return response.SendCreated(c, "Certificate created", cert)
}

// orderedExtras converts a JSON object payload into the stored ordered
// map. JSON objects carry no order, so keys are sorted for a stable
// round trip.
func orderedExtras(fields map[string]string) *shared.OrderedFields {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	extras := shared.NewOrderedFields()
	for _, key := range keys {
		extras.Set(key, fields[key])
	}
	return extras
}

func templateVisible(template *model.Template, userId string) bool {
	if template.IsPublic || template.UserID == nil {
		return true
	}
	return *template.UserID == userId
}
