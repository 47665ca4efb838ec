package service

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbs-school/receipts-api/internal/application/events"
	"github.com/lbs-school/receipts-api/internal/domain/entity"
	domainRepo "github.com/lbs-school/receipts-api/internal/domain/repository"
	"github.com/lbs-school/receipts-api/pkg/apperror"
	"github.com/lbs-school/receipts-api/pkg/pagination"
)

// fakeReceiptRepo is an in-memory ReceiptRepository mirroring the GORM
// implementation's contract, including nil-nil for missing records.
type fakeReceiptRepo struct {
	receipts map[uuid.UUID]entity.Receipt
	creates  int
}

func newFakeReceiptRepo() *fakeReceiptRepo {
	return &fakeReceiptRepo{receipts: make(map[uuid.UUID]entity.Receipt)}
}

func (f *fakeReceiptRepo) Create(ctx context.Context, receipt *entity.Receipt) error {
	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	receipt.CreatedAt = time.Now()
	receipt.UpdatedAt = receipt.CreatedAt
	f.receipts[receipt.ID] = *receipt
	f.creates++
	return nil
}

func (f *fakeReceiptRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, ok := f.receipts[id]
	if !ok {
		return nil, nil
	}
	return &receipt, nil
}

func (f *fakeReceiptRepo) Update(ctx context.Context, receipt *entity.Receipt) error {
	receipt.UpdatedAt = time.Now()
	f.receipts[receipt.ID] = *receipt
	return nil
}

func (f *fakeReceiptRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.receipts, id)
	return nil
}

func (f *fakeReceiptRepo) ListByOwner(ctx context.Context, owner, search string, offset, limit int) ([]entity.Receipt, int64, error) {
	var matched []entity.Receipt
	term := strings.ToLower(search)
	for _, r := range f.receipts {
		if r.CreatedBy != owner {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(r.StudentName), term) &&
			!strings.Contains(strings.ToLower(r.ReceiptNo), term) &&
			!strings.Contains(strings.ToLower(r.StudentClass), term) &&
			!strings.Contains(strings.ToLower(r.FatherName), term) {
			continue
		}
		matched = append(matched, r)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeReceiptRepo) StatsByOwner(ctx context.Context, owner string) (*domainRepo.ReceiptStats, error) {
	stats := &domainRepo.ReceiptStats{}
	for _, r := range f.receipts {
		if r.CreatedBy == owner {
			stats.TotalReceipts++
			stats.TotalAmount += r.Amount
		}
	}
	return stats, nil
}

func newTestService() (*ReceiptService, *fakeReceiptRepo, *events.Broker) {
	repo := newFakeReceiptRepo()
	broker := events.NewBroker()
	svc := NewReceiptService(repo, broker, SchoolInfo{
		Name:          "L.B.S. Public School",
		Session:       "2025-26",
		ReceiptPrefix: "RCP",
	})
	return svc, repo, broker
}

func validCreateInput(owner string) *CreateReceiptInput {
	return &CreateReceiptInput{
		Owner:        owner,
		StudentName:  "Aarav Sharma",
		FatherName:   "Rajesh Sharma",
		StudentClass: "VII-B",
		FeeType:      "Tuition Fee",
		Amount:       2500,
		PaymentMode:  "Cash",
	}
}

func TestCreateReceiptDefaults(t *testing.T) {
	svc, _, _ := newTestService()

	receipt, err := svc.CreateReceipt(context.Background(), validCreateInput("staff@school.test"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(receipt.ReceiptNo, "RCP"))
	assert.Equal(t, "2025-26", receipt.Session)
	assert.NotEmpty(t, receipt.Date)
	assert.Equal(t, "staff@school.test", receipt.CreatedBy)
	assert.False(t, receipt.CreatedAt.IsZero())
	assert.Equal(t, "Two Thousand Five Hundred Rupees Only", receipt.AmountInWords)
}

func TestCreateReceiptValidation(t *testing.T) {
	svc, repo, _ := newTestService()

	tests := []struct {
		name   string
		mutate func(*CreateReceiptInput)
		field  string
	}{
		{"missing student name", func(in *CreateReceiptInput) { in.StudentName = " " }, "student_name"},
		{"missing father name", func(in *CreateReceiptInput) { in.FatherName = "" }, "father_name"},
		{"missing class", func(in *CreateReceiptInput) { in.StudentClass = "" }, "student_class"},
		{"zero amount", func(in *CreateReceiptInput) { in.Amount = 0 }, "amount"},
		{"negative amount", func(in *CreateReceiptInput) { in.Amount = -50 }, "amount"},
		{"unknown fee type", func(in *CreateReceiptInput) { in.FeeType = "Hostel Fee" }, "fee_type"},
		{"unknown payment mode", func(in *CreateReceiptInput) { in.PaymentMode = "Barter" }, "payment_mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCreateInput("staff@school.test")
			tt.mutate(input)

			_, err := svc.CreateReceipt(context.Background(), input)
			require.Error(t, err)

			appErr := apperror.GetAppError(err)
			assert.Equal(t, 422, appErr.Code)
			require.NotEmpty(t, appErr.Errors)
			assert.Equal(t, tt.field, appErr.Errors[0].Field)
		})
	}

	// Failed validation never reaches the store
	assert.Equal(t, 0, repo.creates)
}

func TestCreateReceiptPublishesEvent(t *testing.T) {
	svc, _, broker := newTestService()

	ch, cancel := broker.Subscribe("staff@school.test")
	defer cancel()

	receipt, err := svc.CreateReceipt(context.Background(), validCreateInput("staff@school.test"))
	require.NoError(t, err)

	select {
	case event := <-ch:
		assert.Equal(t, events.ActionCreated, event.Action)
		assert.Equal(t, receipt.ID, event.ReceiptID)
	case <-time.After(time.Second):
		t.Fatal("expected a created event")
	}
}

func TestStatsMatchList(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	owner := "staff@school.test"

	amounts := []int64{1200, 850, 4000}
	for _, amount := range amounts {
		input := validCreateInput(owner)
		input.Amount = amount
		_, err := svc.CreateReceipt(ctx, input)
		require.NoError(t, err)
	}

	// A different owner's receipts stay invisible
	other := validCreateInput("other@school.test")
	_, err := svc.CreateReceipt(ctx, other)
	require.NoError(t, err)

	result, err := svc.ListReceipts(ctx, owner, pagination.Default(), "")
	require.NoError(t, err)

	stats, err := svc.GetStats(ctx, owner)
	require.NoError(t, err)

	assert.Equal(t, int64(len(result.Items)), stats.TotalReceipts)

	var sum int64
	for _, r := range result.Items {
		sum += r.Amount
	}
	assert.Equal(t, sum, stats.TotalAmount)
	assert.Equal(t, int64(1200+850+4000), stats.TotalAmount)
}

func TestStatsEmptyOwner(t *testing.T) {
	svc, _, _ := newTestService()

	stats, err := svc.GetStats(context.Background(), "nobody@school.test")
	require.NoError(t, err)
	assert.Zero(t, stats.TotalReceipts)
	assert.Zero(t, stats.TotalAmount)

	result, err := svc.ListReceipts(context.Background(), "nobody@school.test", pagination.Default(), "")
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}

func TestSearchReceipts(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	owner := "staff@school.test"

	students := []struct {
		name, father, class, receiptNo string
	}{
		{"Aarav Sharma", "Rajesh Sharma", "VII-B", "RCP100001"},
		{"Diya Patel", "Nilesh Patel", "X-A", "RCP100002"},
		{"Kabir Singh", "Harpreet Singh", "VII-B", "LBS200001"},
	}
	for _, s := range students {
		input := validCreateInput(owner)
		input.StudentName = s.name
		input.FatherName = s.father
		input.StudentClass = s.class
		input.ReceiptNo = s.receiptNo
		_, err := svc.CreateReceipt(ctx, input)
		require.NoError(t, err)
	}

	// Empty term returns the full list
	all, err := svc.ListReceipts(ctx, owner, pagination.Default(), "")
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)

	tests := []struct {
		name string
		term string
		want int
	}{
		{"case-insensitive student name", "aarav", 1},
		{"partial father name", "patel", 1},
		{"class matches two", "vii-b", 2},
		{"receipt number prefix", "LBS", 1},
		{"no match", "zzz", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.ListReceipts(ctx, owner, pagination.Default(), tt.term)
			require.NoError(t, err)
			assert.Len(t, result.Items, tt.want)
		})
	}
}

func TestUpdateReceiptPartial(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateReceipt(ctx, validCreateInput("staff@school.test"))
	require.NoError(t, err)

	newAmount := int64(9999)
	updated, err := svc.UpdateReceipt(ctx, &UpdateReceiptInput{
		ID:     created.ID,
		Owner:  "staff@school.test",
		Amount: &newAmount,
	})
	require.NoError(t, err)

	assert.Equal(t, newAmount, updated.Amount)
	assert.Equal(t, created.StudentName, updated.StudentName)
	assert.Equal(t, created.FatherName, updated.FatherName)
	assert.Equal(t, created.ReceiptNo, updated.ReceiptNo)
	assert.Equal(t, created.CreatedBy, updated.CreatedBy)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateReceiptValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateReceipt(ctx, validCreateInput("staff@school.test"))
	require.NoError(t, err)

	badAmount := int64(0)
	_, err = svc.UpdateReceipt(ctx, &UpdateReceiptInput{
		ID:     created.ID,
		Owner:  "staff@school.test",
		Amount: &badAmount,
	})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)

	// Record unchanged after a failed update
	got, err := svc.GetReceipt(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Amount, got.Amount)
}

func TestUpdateReceiptNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	name := "Someone Else"
	_, err := svc.UpdateReceipt(context.Background(), &UpdateReceiptInput{
		ID:          uuid.New(),
		Owner:       "staff@school.test",
		StudentName: &name,
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestDeleteReceipt(t *testing.T) {
	svc, _, broker := newTestService()
	ctx := context.Background()
	owner := "staff@school.test"

	created, err := svc.CreateReceipt(ctx, validCreateInput(owner))
	require.NoError(t, err)

	ch, cancel := broker.Subscribe(owner)
	defer cancel()

	require.NoError(t, svc.DeleteReceipt(ctx, created.ID))

	select {
	case event := <-ch:
		assert.Equal(t, events.ActionDeleted, event.Action)
		assert.Equal(t, created.ID, event.ReceiptID)
	case <-time.After(time.Second):
		t.Fatal("expected a deleted event")
	}

	result, err := svc.ListReceipts(ctx, owner, pagination.Default(), "")
	require.NoError(t, err)
	assert.Empty(t, result.Items)

	// Second delete fails with NotFound
	err = svc.DeleteReceipt(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestListNewestFirst(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	owner := "staff@school.test"

	for i, name := range []string{"First Student", "Second Student", "Third Student"} {
		input := validCreateInput(owner)
		input.StudentName = name
		receipt, err := svc.CreateReceipt(ctx, input)
		require.NoError(t, err)

		// Separate the timestamps; the fake repo stamps CreatedAt itself
		stored := repo.receipts[receipt.ID]
		stored.CreatedAt = time.Now().Add(time.Duration(i) * time.Minute)
		repo.receipts[receipt.ID] = stored
	}

	result, err := svc.ListReceipts(ctx, owner, pagination.Default(), "")
	require.NoError(t, err)
	require.Len(t, result.Items, 3)
	assert.Equal(t, "Third Student", result.Items[0].StudentName)
	assert.Equal(t, "First Student", result.Items[2].StudentName)
}

func TestRenderPrintable(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	input := validCreateInput("staff@school.test")
	input.ReceiptNo = "RCP123456"
	input.Amount = 123456
	created, err := svc.CreateReceipt(ctx, input)
	require.NoError(t, err)

	text, err := svc.RenderPrintable(ctx, created.ID)
	require.NoError(t, err)

	assert.Contains(t, text, "L.B.S. Public School")
	assert.Contains(t, text, "FEE RECEIPT")
	assert.Contains(t, text, "RCP123456")
	assert.Contains(t, text, "Aarav Sharma")
	assert.Contains(t, text, "Rs. 123456")
	assert.Contains(t, text, "One Lakh Twenty Three Thousand Four Hundred Fifty Six Rupees Only")
	assert.Contains(t, text, "Thank you for your payment!")
}

func TestRenderPrintableNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.RenderPrintable(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
