package queue

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/agenciacriadores/crm-backend/internal/model"
	"github.com/agenciacriadores/crm-backend/internal/repository"
)

// TopicAuditLog carries AuditLogEntry payloads from the slot engine to
// whatever persists them.
const TopicAuditLog = "audit_log"

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is an in-process queue with retry, used when no broker is
// configured (and in tests).
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 3,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		log.Printf("Job failed (attempt %d/%d): %+v, error: %v\n", job.RetryCount, job.MaxRetries, job.Payload, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("Job permanently failed after %d attempts: %+v\n", job.MaxRetries, job.Payload)
			return // No requeue
		}

		// Exponential backoff before retry
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartAuditLogSubscriber persists audit entries published by the slot
// engine. Runs in-process; the standalone cmd/worker does the same job
// against RabbitMQ.
func StartAuditLogSubscriber(q Queue, auditRepo repository.AuditLogRepositoryInterface) {
	go func() {
		err := q.Subscribe(TopicAuditLog, func(payload any) error {
			entry, ok := payload.(*model.AuditLogEntry)
			if !ok {
				log.Println("⚠️ Invalid audit payload type, expected *model.AuditLogEntry")
				return nil // no retry
			}

			if err := auditRepo.Insert(entry); err != nil {
				log.Println("⚠️ Failed to persist audit entry:", err)
				return err // triggers retry in queue
			}
			return nil
		})

		if err != nil {
			log.Println("⚠️ Failed to start subscriber for audit_log:", err)
		}
	}()
}
