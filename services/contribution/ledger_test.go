package contribution_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	transactionRepo "riggerbackend/database/repository/transaction"
	"riggerbackend/models"
	"riggerbackend/services/contribution"
)

// In-memory contribution repository.
type memContributionRepo struct {
	mu      sync.Mutex
	records map[string]*models.ContributionRecord
	seq     int
	upserts int
}

func newMemContributionRepo() *memContributionRepo {
	return &memContributionRepo{records: make(map[string]*models.ContributionRecord)}
}

func (m *memContributionRepo) Upsert(ctx context.Context, rec *models.ContributionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	if _, exists := m.records[rec.TransactionID]; exists {
		return nil
	}
	m.seq++
	rec.ID = fmt.Sprintf("contrib-%d", m.seq)
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
	return nil
}

func (m *memContributionRepo) delete(transactionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, transactionID)
}

// Transaction repository stub serving a fixed slice.
type stubTransactionRepo struct {
	transactionRepo.TransactionRepository
	txns []models.Transaction
}

func (s *stubTransactionRepo) Find(ctx context.Context, filter transactionRepo.Filter, page transactionRepo.Page) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, txn := range s.txns {
		if filter.ContributionTracked != nil && txn.Contribution.Tracked != *filter.ContributionTracked {
			continue
		}
		if filter.From != nil && txn.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !txn.CreatedAt.Before(*filter.To) {
			continue
		}
		out = append(out, txn)
	}
	return out, nil
}

func trackedTransaction(id string, amount float64, createdAt time.Time) models.Transaction {
	return models.Transaction{
		ID:     id,
		Kind:   models.KindJobPayment,
		Status: models.StatusCompleted,
		Amount: amount * 200, // gross is irrelevant to the ledger
		Contribution: models.ContributionDetail{
			Percentage: 0.005,
			Amount:     amount,
			Tracked:    true,
		},
		CreatedAt: createdAt,
	}
}

var _ = Describe("DefaultLedgerService", func() {
	var (
		ctx     context.Context
		repo    *memContributionRepo
		txnStub *stubTransactionRepo
		svc     *contribution.DefaultLedgerService
		start   time.Time
		end     time.Time
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = newMemContributionRepo()
		txnStub = &stubTransactionRepo{}
		svc = &contribution.DefaultLedgerService{
			Repo:    repo,
			TxnRepo: txnStub,
			Logger:  zap.NewNop(),
		}
		start = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(1, 0, 0)
	})

	Describe("Record", func() {
		It("derives the period from the transaction's creation time", func() {
			txn := trackedTransaction("txn-1", 2.0, time.Date(2026, time.August, 9, 12, 0, 0, 0, time.UTC))
			rec, err := svc.Record(ctx, &txn)

			Expect(err).ToNot(HaveOccurred())
			Expect(rec.TransactionID).To(Equal("txn-1"))
			Expect(rec.Period.Year).To(Equal(2026))
			Expect(rec.Period.Month).To(Equal(8))
			Expect(rec.Period.Quarter).To(Equal(3))
			Expect(rec.Allocation).To(Equal(models.DefaultAllocationSplit()))
		})

		It("is a no-op when re-recording the same transaction", func() {
			txn := trackedTransaction("txn-1", 2.0, start)
			_, err := svc.Record(ctx, &txn)
			Expect(err).ToNot(HaveOccurred())
			_, err = svc.Record(ctx, &txn)
			Expect(err).ToNot(HaveOccurred())

			records, err := svc.QueryByPeriod(ctx, 2026, 0)
			Expect(err).ToNot(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(repo.upserts).To(Equal(2))
		})

		It("rejects a transaction that is not contribution-tracked", func() {
			txn := trackedTransaction("txn-1", 2.0, start)
			txn.Contribution.Tracked = false
			_, err := svc.Record(ctx, &txn)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Reconcile", func() {
		seed := func(n int) {
			for i := 0; i < n; i++ {
				txn := trackedTransaction(fmt.Sprintf("txn-%d", i), 2.0, start.AddDate(0, i%12, 0))
				txnStub.txns = append(txnStub.txns, txn)
				_, err := svc.Record(ctx, &txn)
				Expect(err).ToNot(HaveOccurred())
			}
		}

		Context("when both sides agree", func() {
			It("passes validation with matching totals and counts", func() {
				seed(10)

				report, err := svc.Reconcile(ctx, start, end)
				Expect(err).ToNot(HaveOccurred())
				Expect(report.ValidationPassed).To(BeTrue())
				Expect(report.Discrepancies).To(BeEmpty())
				Expect(report.TransactionCount).To(Equal(int64(10)))
				Expect(report.LedgerCount).To(Equal(int64(10)))
				Expect(report.TransactionTotal).To(BeNumerically("~", 20.0, 0.001))
				Expect(report.LedgerTotal).To(BeNumerically("~", 20.0, 0.001))
			})
		})

		Context("when a ledger entry is missing", func() {
			It("reports missing_record plus the total and count mismatches", func() {
				seed(5)
				repo.delete("txn-3")

				report, err := svc.Reconcile(ctx, start, end)
				Expect(err).ToNot(HaveOccurred())
				Expect(report.ValidationPassed).To(BeFalse())

				types := map[string]bool{}
				for _, d := range report.Discrepancies {
					types[d.Type] = true
				}
				Expect(types).To(HaveKey("missing_record"))
				Expect(types).To(HaveKey("total_mismatch"))
				Expect(types).To(HaveKey("count_mismatch"))
			})
		})

		Context("when a ledger amount differs", func() {
			It("reports amount_mismatch for that transaction", func() {
				seed(3)
				repo.records["txn-1"].Amount = 9.99

				report, err := svc.Reconcile(ctx, start, end)
				Expect(err).ToNot(HaveOccurred())
				Expect(report.ValidationPassed).To(BeFalse())

				var found *models.Discrepancy
				for i := range report.Discrepancies {
					if report.Discrepancies[i].Type == "amount_mismatch" {
						found = &report.Discrepancies[i]
					}
				}
				Expect(found).ToNot(BeNil())
				Expect(found.TransactionID).To(Equal("txn-1"))
				Expect(found.Expected).To(Equal(2.0))
				Expect(found.Actual).To(Equal(9.99))
			})
		})

		Context("when the ledger holds an orphaned entry", func() {
			It("reports orphaned_record", func() {
				seed(2)
				orphan := trackedTransaction("txn-ghost", 2.0, start)
				_, err := svc.Record(ctx, &orphan)
				Expect(err).ToNot(HaveOccurred())

				report, err := svc.Reconcile(ctx, start, end)
				Expect(err).ToNot(HaveOccurred())
				Expect(report.ValidationPassed).To(BeFalse())

				types := map[string]bool{}
				for _, d := range report.Discrepancies {
					types[d.Type] = true
				}
				Expect(types).To(HaveKey("orphaned_record"))
			})
		})

		Context("with sub-epsilon rounding noise", func() {
			It("tolerates a per-record difference under the epsilon", func() {
				seed(1)
				repo.records["txn-0"].Amount = 2.0 + contribution.ReconcileEpsilon/2

				report, err := svc.Reconcile(ctx, start, end)
				Expect(err).ToNot(HaveOccurred())
				Expect(report.ValidationPassed).To(BeTrue())
			})
		})

		It("never mutates either store", func() {
			seed(4)
			repo.delete("txn-2")

			_, err := svc.Reconcile(ctx, start, end)
			Expect(err).ToNot(HaveOccurred())

			// The deleted entry stays deleted and nothing was rewritten.
			records, err := svc.QueryByPeriod(ctx, 2026, 0)
			Expect(err).ToNot(HaveOccurred())
			Expect(records).To(HaveLen(3))
		})
	})
})
