// Package bulk coordinates spreadsheet-driven batch issuance: row
// validation, quota enforcement, a single transactional persist, and
// optional per-recipient delivery. Row problems never abort the batch;
// every input row ends up either created or in the error list.
package bulk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/proofdeck/proofdeck-api/internal/spreadsheet"
	"github.com/proofdeck/proofdeck-api/type/shared"
	"github.com/proofdeck/proofdeck-api/type/shared/model"
)

// ErrQuotaExceeded is returned by the store when the guarded quota
// decrement finds fewer credits than the batch needs.
var ErrQuotaExceeded = errors.New("issuance quota exhausted")

type RowError struct {
	Row     int    `json:"row" bson:"row"`
	Message string `json:"message" bson:"message"`
}

// Report is the outcome of one batch. Created plus the number of
// errors always equals Total.
type Report struct {
	Total   int        `json:"total" bson:"total"`
	Created int        `json:"created" bson:"created"`
	Errors  []RowError `json:"errors" bson:"errors"`
}

// Request carries everything one batch needs. The issuer's CertQuota
// is the in-memory budget for this run; the store re-checks it inside
// the persist transaction.
type Request struct {
	Issuer   *model.User
	Template *model.Template
	GroupID  *string
	Table    *spreadsheet.Table
	Deliver  bool
}

// CertificateStore persists batches. CreateBatch must insert all
// certificates and decrement the issuer quota in one transaction,
// guarded so the quota can never go negative; a concurrent batch that
// consumed the credits first surfaces as ErrQuotaExceeded.
type CertificateStore interface {
	CreateBatch(ctx context.Context, issuerID string, certs []*model.Certificate) error
	MarkSent(ctx context.Context, certID string, at time.Time) error
}

// Deliverer sends one finished credential to its recipient.
type Deliverer interface {
	Deliver(ctx context.Context, cert *model.Certificate) error
}

// Notifier tells the issuer what a completed batch did.
type Notifier interface {
	SendSummary(issuer *model.User, certs []*model.Certificate, report *Report)
}

type Coordinator struct {
	store    CertificateStore
	delivery Deliverer
	notifier Notifier
	now      func() time.Time
}

// NewCoordinator builds a coordinator. Delivery and notifier are
// optional; without them a batch only persists.
func NewCoordinator(store CertificateStore, delivery Deliverer, notifier Notifier) *Coordinator {
	return &Coordinator{
		store:    store,
		delivery: delivery,
		notifier: notifier,
		now:      time.Now,
	}
}

// Process runs one batch to completion. The returned error is reserved
// for batch-fatal conditions (bad request, storage failure); per-row
// problems land in the report instead.
func (c *Coordinator) Process(ctx context.Context, req *Request) (*Report, error) {
	if req == nil || req.Issuer == nil || req.Template == nil || req.Table == nil {
		return nil, fmt.Errorf("batch request is missing issuer, template or rows")
	}

	report := &Report{Total: len(req.Table.Rows)}
	remaining := req.Issuer.CertQuota

	var accepted []*model.Certificate
	var acceptedRows []int
	for _, row := range req.Table.Rows {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("batch cancelled at row %d: %w", row.Number, err)
		}

		// Quota is checked before field validation so a row that is both
		// past the budget and malformed reports the quota problem.
		if remaining <= 0 {
			report.Errors = append(report.Errors, RowError{Row: row.Number, Message: ErrQuotaExceeded.Error()})
			continue
		}

		cert, err := c.buildCertificate(req, row)
		if err != nil {
			report.Errors = append(report.Errors, RowError{Row: row.Number, Message: err.Error()})
			continue
		}
		remaining--

		accepted = append(accepted, cert)
		acceptedRows = append(acceptedRows, row.Number)
	}

	if len(accepted) > 0 {
		err := c.store.CreateBatch(ctx, req.Issuer.ID, accepted)
		switch {
		case errors.Is(err, ErrQuotaExceeded):
			// A concurrent batch spent the credits between the
			// in-memory check and the transaction.
			for _, rowNum := range acceptedRows {
				report.Errors = append(report.Errors, RowError{Row: rowNum, Message: ErrQuotaExceeded.Error()})
			}
			accepted = nil
		case err != nil:
			return report, fmt.Errorf("failed to persist batch: %w", err)
		}
	}
	report.Created = len(accepted)

	if req.Deliver && c.delivery != nil {
		c.deliverAll(ctx, accepted)
	}
	if c.notifier != nil && report.Created > 0 {
		c.notifier.SendSummary(req.Issuer, accepted, report)
	}

	slog.Info("batch issuance finished",
		"issuer_id", req.Issuer.ID,
		"template_id", req.Template.ID,
		"total", report.Total,
		"created", report.Created,
		"errors", len(report.Errors))

	return report, nil
}

// buildCertificate validates one row and shapes it into a record. Any
// returned error is a per-row error carrying the row's message.
func (c *Coordinator) buildCertificate(req *Request, row spreadsheet.Row) (*model.Certificate, error) {
	name := row.Get(spreadsheet.ColRecipientName)
	if name == "" {
		return nil, fmt.Errorf("missing recipient name")
	}
	course := row.Get(spreadsheet.ColCourseTitle)
	if course == "" {
		return nil, fmt.Errorf("missing course title")
	}

	issueDate, err := spreadsheet.ParseFlexibleDate(row.Get(spreadsheet.ColIssueDate), c.now())
	if err != nil {
		return nil, fmt.Errorf("invalid issue date %q", row.Get(spreadsheet.ColIssueDate))
	}

	issuerName := row.Get(spreadsheet.ColIssuerName)
	if issuerName == "" {
		issuerName = req.Issuer.Name
	}

	cert := &model.Certificate{
		ID:             uuid.New().String(),
		UserID:         req.Issuer.ID,
		TemplateID:     req.Template.ID,
		GroupID:        req.GroupID,
		RecipientName:  name,
		RecipientEmail: spreadsheet.NormalizeEmail(row.Get(spreadsheet.ColRecipientEmail)),
		CourseTitle:    course,
		IssuerName:     issuerName,
		IssueDate:      issueDate,
		Signature:      row.Get(spreadsheet.ColSignature),
		VerificationID: uuid.New().String(),
		Status:         model.StatusValid,
	}

	// The amount column is canonical for parsing but rides along as an
	// extra field so receipt rendering can find it.
	extras := row.Extras
	if amount := row.Get(spreadsheet.ColAmount); amount != "" {
		if extras == nil {
			extras = shared.NewOrderedFields()
		}
		if _, ok := extras.Get(spreadsheet.ColAmount); !ok {
			extras.Set(spreadsheet.ColAmount, amount)
		}
	}
	if extras != nil && extras.Len() > 0 {
		cert.ExtraFields = extras
	}

	return cert, nil
}

// deliverAll emails each created credential. A failed send is logged
// and skipped; the credential stays created and unsent.
func (c *Coordinator) deliverAll(ctx context.Context, certs []*model.Certificate) {
	for _, cert := range certs {
		if strings.TrimSpace(cert.RecipientEmail) == "" {
			continue
		}
		if err := c.delivery.Deliver(ctx, cert); err != nil {
			slog.Warn("failed to deliver credential",
				"cert_id", cert.ID,
				"recipient", cert.RecipientEmail,
				"error", err)
			continue
		}

		sentAt := c.now()
		cert.SentAt = &sentAt
		if err := c.store.MarkSent(ctx, cert.ID, sentAt); err != nil {
			slog.Warn("failed to record sent time", "cert_id", cert.ID, "error", err)
		}
	}
}
