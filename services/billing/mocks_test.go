package billing_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	billingRepo "riggerbackend/database/repository/billing"
	jobRepo "riggerbackend/database/repository/job"
	transactionRepo "riggerbackend/database/repository/transaction"
	"riggerbackend/models"

	"go.mongodb.org/mongo-driver/bson"
)

// In-memory transaction repository for testing. Contribution records go
// through the shared contribution repository, matching the single
// contributions collection both mongo repositories write to.
type memTransactionRepo struct {
	mu        sync.Mutex
	txns      map[string]*models.Transaction
	contribs  *memContributionRepo
	seq       int
	createErr error
	now       func() time.Time
}

func newMemTransactionRepo(now func() time.Time, contribs *memContributionRepo) *memTransactionRepo {
	return &memTransactionRepo{
		txns:     make(map[string]*models.Transaction),
		contribs: contribs,
		now:      now,
	}
}

func (m *memTransactionRepo) Create(ctx context.Context, txn *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if txn.Amount <= 0 {
		return transactionRepo.ErrInvalidAmount
	}
	m.seq++
	txn.ID = fmt.Sprintf("txn-%d", m.seq)
	if txn.Status == "" {
		txn.Status = models.StatusPending
	}
	txn.CreatedAt = m.now()
	txn.UpdatedAt = txn.CreatedAt
	m.txns[txn.ID] = txn
	return nil
}

func (m *memTransactionRepo) CreateWithContribution(ctx context.Context, txn *models.Transaction, rec *models.ContributionRecord) error {
	if err := m.Create(ctx, txn); err != nil {
		return err
	}
	rec.TransactionID = txn.ID
	rec.CreatedAt = txn.CreatedAt
	return m.contribs.Upsert(ctx, rec)
}

func (m *memTransactionRepo) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	txn, ok := m.txns[id]
	if !ok {
		return nil, transactionRepo.ErrNotFound
	}
	cp := *txn
	return &cp, nil
}

func (m *memTransactionRepo) UpdateStatus(ctx context.Context, id string, status models.TransactionStatus) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	txn, ok := m.txns[id]
	if !ok {
		return nil, transactionRepo.ErrNotFound
	}
	if txn.Status.IsTerminal() {
		return nil, transactionRepo.ErrInvalidTransition
	}
	txn.Status = status
	txn.UpdatedAt = m.now()
	cp := *txn
	return &cp, nil
}

func (m *memTransactionRepo) matches(txn *models.Transaction, filter transactionRepo.Filter) bool {
	if filter.Kind != "" && txn.Kind != filter.Kind {
		return false
	}
	if filter.Status != "" && txn.Status != filter.Status {
		return false
	}
	if filter.ContributionTracked != nil && txn.Contribution.Tracked != *filter.ContributionTracked {
		return false
	}
	if filter.From != nil && txn.CreatedAt.Before(*filter.From) {
		return false
	}
	if filter.To != nil && !txn.CreatedAt.Before(*filter.To) {
		return false
	}
	return true
}

func (m *memTransactionRepo) Find(ctx context.Context, filter transactionRepo.Filter, page transactionRepo.Page) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Transaction
	for _, txn := range m.txns {
		if m.matches(txn, filter) {
			out = append(out, *txn)
		}
	}
	return out, nil
}

func (m *memTransactionRepo) Count(ctx context.Context, filter transactionRepo.Filter) (int64, error) {
	found, _ := m.Find(ctx, filter, transactionRepo.Page{})
	return int64(len(found)), nil
}

func (m *memTransactionRepo) SumAmounts(ctx context.Context, filter transactionRepo.Filter) (float64, error) {
	found, _ := m.Find(ctx, filter, transactionRepo.Page{})
	var sum float64
	for _, txn := range found {
		sum += txn.Amount
	}
	return sum, nil
}

func (m *memTransactionRepo) SumContributions(ctx context.Context, filter transactionRepo.Filter) (float64, error) {
	found, _ := m.Find(ctx, filter, transactionRepo.Page{})
	var sum float64
	for _, txn := range found {
		sum += txn.Contribution.Amount
	}
	return sum, nil
}

func (m *memTransactionRepo) CreateReversal(ctx context.Context, originalID string, kind models.TransactionKind, reason string) (*models.Transaction, error) {
	m.mu.Lock()
	original, ok := m.txns[originalID]
	if !ok {
		m.mu.Unlock()
		return nil, transactionRepo.ErrNotFound
	}
	original.Status = models.StatusRefunded
	m.mu.Unlock()

	reversal := &models.Transaction{
		Kind:           kind,
		Status:         models.StatusCompleted,
		Amount:         original.Amount,
		Currency:       original.Currency,
		ReversalOf:     originalID,
		ReversalReason: reason,
	}
	if err := m.Create(ctx, reversal); err != nil {
		return nil, err
	}
	return reversal, nil
}

// In-memory job repository for testing.
type memJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*models.Job
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{jobs: make(map[string]*models.Job)}
}

func (m *memJobRepo) Create(ctx context.Context, job *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = job
	return nil
}

func (m *memJobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil, jobRepo.ErrNotFound
	}
	cp := *job
	return &cp, nil
}

func (m *memJobRepo) UpdateWithDocument(ctx context.Context, id string, updateDoc bson.M) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return jobRepo.ErrNotFound
	}
	if v, ok := updateDoc["status"].(string); ok {
		job.Status = v
	}
	if v, ok := updateDoc["actual_hours"].(float64); ok {
		job.ActualHours = v
	}
	return nil
}

func (m *memJobRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jobs, id)
	return nil
}

func (m *memJobRepo) Search(ctx context.Context, criteria jobRepo.SearchCriteria) ([]models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Job
	for _, job := range m.jobs {
		out = append(out, *job)
	}
	return out, nil
}

func (m *memJobRepo) ClaimForPayment(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return jobRepo.ErrNotFound
	}
	if job.PaymentStatus != models.PaymentUnpaid {
		return jobRepo.ErrAlreadyClaimed
	}
	job.PaymentStatus = models.PaymentProcessing
	return nil
}

func (m *memJobRepo) ReleasePaymentClaim(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if job, ok := m.jobs[id]; ok && job.PaymentStatus == models.PaymentProcessing {
		job.PaymentStatus = models.PaymentUnpaid
	}
	return nil
}

func (m *memJobRepo) MarkPaid(ctx context.Context, id, transactionID string, amount float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return jobRepo.ErrNotFound
	}
	now := time.Now()
	job.PaymentStatus = models.PaymentPaid
	job.PaymentTransactionID = transactionID
	job.PaidAmount = amount
	job.PaidAt = &now
	return nil
}

// In-memory billing repository for testing.
type memBillingRepo struct {
	mu             sync.Mutex
	subscriptions  map[string]*models.Subscription
	invoices       map[string]*models.Invoice
	paymentMethods map[string]*models.PaymentMethod
	seq            int
}

func newMemBillingRepo() *memBillingRepo {
	return &memBillingRepo{
		subscriptions:  make(map[string]*models.Subscription),
		invoices:       make(map[string]*models.Invoice),
		paymentMethods: make(map[string]*models.PaymentMethod),
	}
}

func (m *memBillingRepo) CreateSubscription(ctx context.Context, sub *models.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscriptions[sub.ID] = sub
	return nil
}

func (m *memBillingRepo) GetSubscriptionByID(ctx context.Context, id string) (*models.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.subscriptions[id]
	if !ok {
		return nil, billingRepo.ErrSubscriptionNotFound
	}
	cp := *sub
	return &cp, nil
}

func (m *memBillingRepo) UpdateSubscriptionWithDocument(ctx context.Context, id string, updateDoc bson.M) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.subscriptions[id]
	if !ok {
		return billingRepo.ErrSubscriptionNotFound
	}
	if v, ok := updateDoc["status"].(string); ok {
		sub.Status = v
	}
	if v, ok := updateDoc["current_period_start"].(time.Time); ok {
		sub.CurrentPeriodStart = v
	}
	if v, ok := updateDoc["current_period_end"].(time.Time); ok {
		sub.CurrentPeriodEnd = v
	}
	if v, ok := updateDoc["usage"].(models.UsageCounters); ok {
		sub.Usage = v
	}
	if v, ok := updateDoc["last_failure_reason"].(string); ok {
		sub.LastFailureReason = v
	}
	return nil
}

func (m *memBillingRepo) FindDueSubscriptions(ctx context.Context, now time.Time, limit int64) ([]models.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Subscription
	for _, sub := range m.subscriptions {
		if sub.Status == models.SubscriptionActive && !now.Before(sub.CurrentPeriodEnd) {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (m *memBillingRepo) CreateInvoice(ctx context.Context, inv *models.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	inv.ID = fmt.Sprintf("inv-%d", m.seq)
	m.invoices[inv.ID] = inv
	return nil
}

func (m *memBillingRepo) GetInvoiceByID(ctx context.Context, id string) (*models.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.invoices[id]
	if !ok {
		return nil, billingRepo.ErrInvoiceNotFound
	}
	cp := *inv
	return &cp, nil
}

func (m *memBillingRepo) MarkInvoicePaid(ctx context.Context, id, transactionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.invoices[id]
	if !ok {
		return billingRepo.ErrInvoiceNotFound
	}
	now := time.Now()
	inv.Status = "paid"
	inv.TransactionID = transactionID
	inv.PaidAt = &now
	return nil
}

func (m *memBillingRepo) CreatePaymentMethod(ctx context.Context, pm *models.PaymentMethod) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paymentMethods[pm.ID] = pm
	return nil
}

func (m *memBillingRepo) GetPaymentMethodByID(ctx context.Context, id string) (*models.PaymentMethod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pm, ok := m.paymentMethods[id]
	if !ok {
		return nil, billingRepo.ErrPaymentMethodNotFound
	}
	cp := *pm
	return &cp, nil
}

// Mock payment processor.
type mockProcessor struct {
	mu        sync.Mutex
	chargeErr error
	charges   []float64
	seq       int
}

func (m *mockProcessor) CreateCharge(ctx context.Context, amount float64, currency string, metadata map[string]string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.chargeErr != nil {
		return "", m.chargeErr
	}
	m.seq++
	m.charges = append(m.charges, amount)
	return fmt.Sprintf("ch-%d", m.seq), nil
}

func (m *mockProcessor) CaptureCharge(ctx context.Context, chargeID string, amount float64) error {
	return nil
}

func (m *mockProcessor) Refund(ctx context.Context, chargeID string, amount float64, reason string) error {
	return nil
}

var errProcessorDeclined = errors.New("card declined")

// Mock NGO notifier.
type mockNotifier struct {
	mu       sync.Mutex
	notified []*models.ContributionRecord
}

func (m *mockNotifier) NotifyContribution(ctx context.Context, rec *models.ContributionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notified = append(m.notified, rec)
	return nil
}

// Mock earnings aggregator recording applied payments.
type mockAggregator struct {
	mu       sync.Mutex
	applied  []appliedPayment
	applyErr error
}

type appliedPayment struct {
	workerID string
	amount   float64
	hours    float64
}

func (m *mockAggregator) ApplyPayment(ctx context.Context, workerID string, amount, hours float64) (*models.EarningSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.applyErr != nil {
		return nil, m.applyErr
	}
	m.applied = append(m.applied, appliedPayment{workerID, amount, hours})
	return &models.EarningSummary{WorkerID: workerID, TotalEarnings: amount}, nil
}

func (m *mockAggregator) GetSummary(ctx context.Context, workerID string) (*models.EarningSummary, error) {
	return &models.EarningSummary{WorkerID: workerID}, nil
}

func (m *mockAggregator) GenerateReport(ctx context.Context, workerID, period string) (*models.EarningsReport, error) {
	return &models.EarningsReport{WorkerID: workerID, Period: period}, nil
}

// In-memory contribution repository shared with the ledger service.
type memContributionRepo struct {
	mu      sync.Mutex
	records map[string]*models.ContributionRecord
	seq     int
}

func newMemContributionRepo() *memContributionRepo {
	return &memContributionRepo{records: make(map[string]*models.ContributionRecord)}
}

func (m *memContributionRepo) Upsert(ctx context.Context, rec *models.ContributionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.records[rec.TransactionID]; exists {
		return nil
	}
	m.seq++
	if rec.ID == "" {
		rec.ID = fmt.Sprintf("contrib-%d", m.seq)
	}
	m.records[rec.TransactionID] = rec
	return nil
}

func (m *memContributionRepo) GetByTransactionID(ctx context.Context, transactionID string) (*models.ContributionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[transactionID]
	if !ok {
		return nil, errors.New("contribution record not found")
	}
	cp := *rec
	return &cp, nil
}

func (m *memContributionRepo) QueryByPeriod(ctx context.Context, year, month int) ([]models.ContributionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ContributionRecord
	for _, rec := range m.records {
		if rec.Period.Year != year {
			continue
		}
		if month != 0 && rec.Period.Month != month {
			continue
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (m *memContributionRepo) QueryByRange(ctx context.Context, start, end time.Time) ([]models.ContributionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ContributionRecord
	for _, rec := range m.records {
		if !rec.CreatedAt.Before(start) && rec.CreatedAt.Before(end) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (m *memContributionRepo) SumByRange(ctx context.Context, start, end time.Time) (float64, int64, error) {
	records, _ := m.QueryByRange(ctx, start, end)
	var sum float64
	for _, rec := range records {
		sum += rec.Amount
	}
	return sum, int64(len(records)), nil
}

func (m *memContributionRepo) MarkPublished(ctx context.Context, id, reportURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.records {
		if rec.ID == id {
			now := time.Now()
			rec.Publication = &models.PublicationInfo{Published: true, ReportURL: reportURL, PublishedAt: &now}
			return nil
		}
	}
	return errors.New("contribution record not found")
}
