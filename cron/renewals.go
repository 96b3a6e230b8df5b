package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"riggerbackend/config"
	billingRepo "riggerbackend/database/repository/billing"
	"riggerbackend/services/billing"

	"github.com/hibiken/asynq"
)

const TypeSubscriptionRenew = "subscription:renew"

// sweepInterval is how often due subscriptions are scanned and enqueued.
const sweepInterval = 15 * time.Minute

// sweepBatchSize caps how many due subscriptions one sweep enqueues.
const sweepBatchSize = 500

type renewalPayload struct {
	SubscriptionID string `json:"subscription_id"`
}

// InitRenewalWorker runs the async renewal worker in background: a
// periodic sweep enqueues due subscriptions, and the task handler runs
// each renewal through the billing service. Renewals are idempotent on
// the billing side, so a task retried after a crash is safe.
func InitRenewalWorker(repo billingRepo.BillingRepository, billingSvc billing.Service) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisRenewalQueue,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSubscriptionRenew, handleRenewalTask(billingSvc))

	go runSweeper(repo, asynq.NewClient(redisOpts))

	// Start async worker with retry logic
	go func() {
		log.Println("[RenewalWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[RenewalWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[RenewalWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// runSweeper periodically finds due subscriptions and enqueues a
// renewal task per subscription.
func runSweeper(repo billingRepo.BillingRepository, client *asynq.Client) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		sweepOnce(repo, client)
		<-ticker.C
	}
}

func sweepOnce(repo billingRepo.BillingRepository, client *asynq.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	due, err := repo.FindDueSubscriptions(ctx, time.Now().UTC(), sweepBatchSize)
	if err != nil {
		log.Printf("[RenewalSweeper] failed to list due subscriptions: %v", err)
		return
	}
	if len(due) == 0 {
		return
	}
	log.Printf("[RenewalSweeper] enqueuing %d due subscriptions", len(due))

	for _, sub := range due {
		payload, err := json.Marshal(renewalPayload{SubscriptionID: sub.ID})
		if err != nil {
			continue
		}
		task := asynq.NewTask(TypeSubscriptionRenew, payload)
		// TaskID dedupes: a subscription already queued this period is
		// not enqueued twice.
		if _, err := client.Enqueue(task,
			asynq.TaskID(sub.ID+":"+sub.CurrentPeriodEnd.Format(time.RFC3339)),
			asynq.MaxRetry(3),
		); err != nil {
			log.Printf("[RenewalSweeper] failed to enqueue %s: %v", sub.ID, err)
		}
	}
}

func handleRenewalTask(billingSvc billing.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p renewalPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[RenewalHandler] invalid payload: %v", err)
			return err
		}

		result := billingSvc.ProcessSubscriptionRenewal(ctx, p.SubscriptionID)
		if !result.Success {
			// NotDue and AlreadyProcessed mean another path already
			// handled this subscription; do not retry those.
			switch result.Error.Code {
			case billing.CodeNotDue, billing.CodeAlreadyProcessed:
				return nil
			case billing.CodeProcessorFailure:
				log.Printf("[RenewalHandler] charge failed for %s, subscription moved to past_due", p.SubscriptionID)
				return nil
			default:
				log.Printf("[RenewalHandler] renewal failed for %s: %s", p.SubscriptionID, result.Error.Code)
				return asynq.SkipRetry
			}
		}
		return nil
	}
}
