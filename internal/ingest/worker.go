package ingest

import (
	"sync"

	"logsift/internal/domain"
	"logsift/internal/parser"
)

// classified is the classifier output for one line
type classified struct {
	rec domain.Record
	ok  bool
}

// WorkerPool classifies lines in parallel. Results are written by line index,
// so the output keeps input order regardless of scheduling.
type WorkerPool struct {
	classifier parser.LineClassifier
	scheduler  Scheduler
	workers    int
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(classifier parser.LineClassifier, scheduler Scheduler, workers int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	return &WorkerPool{
		classifier: classifier,
		scheduler:  scheduler,
		workers:    workers,
	}
}

// Classify classifies every line and returns the results in input order.
func (wp *WorkerPool) Classify(lines []string) []classified {
	results := make([]classified, len(lines))
	if len(lines) == 0 {
		return results
	}

	var wg sync.WaitGroup
	for _, batch := range wp.scheduler.Schedule(len(lines), wp.workers) {
		if len(batch) == 0 {
			continue
		}
		wg.Add(1)
		go func(indexes []int) {
			defer wg.Done()
			for _, i := range indexes {
				rec, ok := wp.classifier.Classify(lines[i])
				results[i] = classified{rec: rec, ok: ok}
			}
		}(batch)
	}
	wg.Wait()

	return results
}
