package bulk

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/proofdeck/proofdeck-api/internal/spreadsheet"
	"github.com/proofdeck/proofdeck-api/type/shared/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	batches   [][]*model.Certificate
	sent      []string
	batchErr  error
	sentTimes map[string]time.Time
}

func (f *fakeStore) CreateBatch(_ context.Context, _ string, certs []*model.Certificate) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	f.batches = append(f.batches, certs)
	return nil
}

func (f *fakeStore) MarkSent(_ context.Context, certID string, at time.Time) error {
	f.sent = append(f.sent, certID)
	if f.sentTimes == nil {
		f.sentTimes = map[string]time.Time{}
	}
	f.sentTimes[certID] = at
	return nil
}

type fakeDeliverer struct {
	delivered []string
	failFor   map[string]bool
}

func (f *fakeDeliverer) Deliver(_ context.Context, cert *model.Certificate) error {
	if f.failFor[cert.RecipientEmail] {
		return fmt.Errorf("smtp unavailable")
	}
	f.delivered = append(f.delivered, cert.RecipientEmail)
	return nil
}

func makeRow(num int, name, course, date string) spreadsheet.Row {
	return spreadsheet.Row{
		Number: num,
		Fields: map[string]string{
			spreadsheet.ColRecipientName: name,
			spreadsheet.ColCourseTitle:   course,
			spreadsheet.ColIssueDate:     date,
		},
	}
}

func makeRequest(quota int, rows ...spreadsheet.Row) *Request {
	return &Request{
		Issuer:   &model.User{ID: "user-1", Name: "Acme Academy", CertQuota: quota},
		Template: &model.Template{ID: "tmpl-1", LayoutStyle: model.LayoutModern},
		Table:    &spreadsheet.Table{Rows: rows},
	}
}

func TestProcessHappyPath(t *testing.T) {
	store := &fakeStore{}
	coord := NewCoordinator(store, nil, nil)

	report, err := coord.Process(context.Background(), makeRequest(10,
		makeRow(2, "Jane Doe", "Intro to X", "2024-10-22"),
	))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Created)
	assert.Empty(t, report.Errors)
	require.Len(t, store.batches, 1)

	cert := store.batches[0][0]
	assert.Equal(t, "Jane Doe", cert.RecipientName)
	assert.Equal(t, "2024-10-22", cert.IssueDate.Format("2006-01-02"))
	assert.Equal(t, model.StatusValid, cert.Status)
	assert.NotEmpty(t, cert.VerificationID)
	assert.Equal(t, "Acme Academy", cert.IssuerName)
}

func TestProcessQuotaExhaustion(t *testing.T) {
	store := &fakeStore{}
	coord := NewCoordinator(store, nil, nil)

	report, err := coord.Process(context.Background(), makeRequest(1,
		makeRow(2, "A", "Course", "2024-10-22"),
		makeRow(3, "B", "Course", "2024-10-22"),
		makeRow(4, "C", "Course", "2024-10-22"),
	))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Created)
	require.Len(t, report.Errors, 2)
	assert.Equal(t, 3, report.Errors[0].Row)
	assert.Equal(t, 4, report.Errors[1].Row)
	for _, rowErr := range report.Errors {
		assert.Contains(t, rowErr.Message, "quota")
	}
	assert.Equal(t, report.Total, report.Created+len(report.Errors))
}

func TestProcessQuotaReportedBeforeFieldValidation(t *testing.T) {
	store := &fakeStore{}
	coord := NewCoordinator(store, nil, nil)

	// The second row is past the budget AND missing its recipient; the
	// quota problem is the one the issuer must see.
	report, err := coord.Process(context.Background(), makeRequest(1,
		makeRow(2, "A", "Course", "2024-10-22"),
		makeRow(3, "", "Course", "2024-10-22"),
	))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Created)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, 3, report.Errors[0].Row)
	assert.Contains(t, report.Errors[0].Message, "quota")
}

func TestProcessPerRowErrors(t *testing.T) {
	store := &fakeStore{}
	coord := NewCoordinator(store, nil, nil)

	report, err := coord.Process(context.Background(), makeRequest(10,
		makeRow(2, "", "Course", "2024-10-22"),
		makeRow(3, "B", "", "2024-10-22"),
		makeRow(4, "C", "Course", "not a date"),
		makeRow(5, "D", "Course", "45587"),
	))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Created)
	require.Len(t, report.Errors, 3)
	assert.Contains(t, report.Errors[0].Message, "recipient name")
	assert.Contains(t, report.Errors[1].Message, "course title")
	assert.Contains(t, report.Errors[2].Message, "invalid issue date")
	assert.Equal(t, report.Total, report.Created+len(report.Errors))

	cert := store.batches[0][0]
	assert.Equal(t, "2024-10-22", cert.IssueDate.Format("2006-01-02"))
}

func TestProcessConcurrentQuotaLoss(t *testing.T) {
	store := &fakeStore{batchErr: ErrQuotaExceeded}
	coord := NewCoordinator(store, nil, nil)

	report, err := coord.Process(context.Background(), makeRequest(5,
		makeRow(2, "A", "Course", "2024-10-22"),
		makeRow(3, "B", "Course", "2024-10-22"),
	))
	require.NoError(t, err)

	assert.Equal(t, 0, report.Created)
	assert.Len(t, report.Errors, 2)
}

func TestProcessDelivery(t *testing.T) {
	store := &fakeStore{}
	delivery := &fakeDeliverer{failFor: map[string]bool{"down@example.com": true}}
	coord := NewCoordinator(store, delivery, nil)

	ok := makeRow(2, "A", "Course", "2024-10-22")
	ok.Fields[spreadsheet.ColRecipientEmail] = "a@example.com"
	failing := makeRow(3, "B", "Course", "2024-10-22")
	failing.Fields[spreadsheet.ColRecipientEmail] = "down@example.com"
	noEmail := makeRow(4, "C", "Course", "2024-10-22")

	req := makeRequest(10, ok, failing, noEmail)
	req.Deliver = true

	report, err := coord.Process(context.Background(), req)
	require.NoError(t, err)

	// A failed or skipped send never subtracts from created.
	assert.Equal(t, 3, report.Created)
	assert.Equal(t, []string{"a@example.com"}, delivery.delivered)
	require.Len(t, store.sent, 1)

	certs := store.batches[0]
	assert.NotNil(t, certs[0].SentAt)
	assert.Nil(t, certs[1].SentAt)
	assert.Nil(t, certs[2].SentAt)
}

func TestProcessAmountRidesIntoExtras(t *testing.T) {
	store := &fakeStore{}
	coord := NewCoordinator(store, nil, nil)

	row := makeRow(2, "A", "Workshop", "2024-10-22")
	row.Fields[spreadsheet.ColAmount] = "$150.00"

	_, err := coord.Process(context.Background(), makeRequest(10, row))
	require.NoError(t, err)

	cert := store.batches[0][0]
	require.NotNil(t, cert.ExtraFields)
	amount, ok := cert.ExtraFields.Get(spreadsheet.ColAmount)
	assert.True(t, ok)
	assert.Equal(t, "$150.00", amount)
}

func TestStartAsync(t *testing.T) {
	store := &fakeStore{}
	coord := NewCoordinator(store, nil, nil)

	job := coord.StartAsync(context.Background(), makeRequest(10,
		makeRow(2, "A", "Course", "2024-10-22"),
	), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	report, err := job.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)

	status := job.Snapshot()
	assert.Equal(t, JobCompleted, status.State)
	assert.Equal(t, 1, status.Created)
}
