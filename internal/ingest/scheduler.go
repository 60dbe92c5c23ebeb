package ingest

// Scheduler distributes line indexes across workers
type Scheduler interface {
	Schedule(lineCount, workerCount int) [][]int
}

// RoundRobinScheduler distributes lines evenly across workers
type RoundRobinScheduler struct{}

// NewRoundRobinScheduler creates a new RoundRobinScheduler
func NewRoundRobinScheduler() *RoundRobinScheduler {
	return &RoundRobinScheduler{}
}

// Schedule assigns line i to worker i % workerCount
func (s *RoundRobinScheduler) Schedule(lineCount, workerCount int) [][]int {
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > lineCount && lineCount > 0 {
		workerCount = lineCount
	}

	distribution := make([][]int, workerCount)
	for i := 0; i < lineCount; i++ {
		w := i % workerCount
		distribution[w] = append(distribution[w], i)
	}

	return distribution
}
