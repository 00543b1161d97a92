package queue

import (
	"context"
	"log"
	"sync"
	"time"

	"recipehub/internal/nutrition"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// MaxRetries is the maximum number of automatic retries for failed estimations.
	MaxRetries = 3
	// RetryDelay is the base delay between retries (exponential backoff).
	RetryDelay = 5 * time.Second
)

// CalorieUpdater defines the interface for persisting estimation results.
type CalorieUpdater interface {
	SetEstimatedCalories(ctx context.Context, id primitive.ObjectID, calories int) error
}

// Processor processes calorie estimation jobs from the queue.
type Processor struct {
	queue        *MemoryQueue
	estimator    nutrition.Estimator
	updater      CalorieUpdater
	workerCount  int
	wg           sync.WaitGroup
	shutdownOnce sync.Once
	shutdownCh   chan struct{}
}

// NewProcessor creates a new estimation job processor.
func NewProcessor(queue *MemoryQueue, estimator nutrition.Estimator, updater CalorieUpdater, workerCount int) *Processor {
	return &Processor{
		queue:       queue,
		estimator:   estimator,
		updater:     updater,
		workerCount: workerCount,
		shutdownCh:  make(chan struct{}),
	}
}

// Start begins processing jobs with the configured number of workers.
func (p *Processor) Start(ctx context.Context) {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
	log.Printf("Estimation processor started with %d workers", p.workerCount)
}

// Stop gracefully stops the processor, waiting for workers to finish.
func (p *Processor) Stop() {
	p.shutdownOnce.Do(func() {
		close(p.shutdownCh)
		p.queue.Close()
	})
	p.wg.Wait()
	log.Println("Estimation processor stopped")
}

func (p *Processor) worker(ctx context.Context, id int) {
	defer p.wg.Done()
	log.Printf("Worker %d started", id)

	for {
		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			if err == ErrQueueClosed || err == context.Canceled {
				log.Printf("Worker %d shutting down", id)
				return
			}
			continue
		}
		p.processJob(ctx, job)
	}
}

func (p *Processor) processJob(ctx context.Context, job EstimationJob) {
	log.Printf("Processing estimation job for recipe %s (attempt %d)", job.RecipeID.Hex(), job.RetryCount+1)

	calories, err := p.estimator.EstimateCalories(ctx, job.Name, job.Ingredients)
	if err != nil {
		log.Printf("Estimation failed for recipe %s: %v", job.RecipeID.Hex(), err)
		p.handleFailure(job)
		return
	}

	if err := p.updater.SetEstimatedCalories(ctx, job.RecipeID, calories); err != nil {
		log.Printf("Failed to store estimate for recipe %s: %v", job.RecipeID.Hex(), err)
		p.handleFailure(job)
		return
	}

	log.Printf("Estimation completed for recipe %s: %d calories", job.RecipeID.Hex(), calories)
}

// handleFailure schedules a retry with exponential backoff. Recipes carry
// no estimation status; after the final retry the recipe simply keeps no
// estimate and the owner can set one manually.
func (p *Processor) handleFailure(job EstimationJob) {
	job.RetryCount++

	if job.RetryCount >= MaxRetries {
		log.Printf("Max retries reached for recipe %s, giving up on estimation", job.RecipeID.Hex())
		return
	}

	delay := RetryDelay * time.Duration(1<<uint(job.RetryCount-1))
	log.Printf("Retrying recipe %s in %v (attempt %d/%d)", job.RecipeID.Hex(), delay, job.RetryCount+1, MaxRetries)

	// Schedule retry with delay. Uses shutdownCh instead of ctx so a
	// pending retry does not outlive the processor.
	go func() {
		select {
		case <-p.shutdownCh:
			log.Printf("Shutdown during retry delay for recipe %s, dropping job", job.RecipeID.Hex())
			return
		case <-time.After(delay):
			if err := p.queue.Enqueue(job); err != nil {
				log.Printf("Failed to re-enqueue job for recipe %s: %v", job.RecipeID.Hex(), err)
			}
		}
	}()
}
