package engine

// Scheduler defers work until the current step has finished
type Scheduler interface {
	Schedule(task func())
}

// Queue is a FIFO work queue drained between turns.
// Tasks scheduled while a wave runs are held back for the next wave,
// which makes a cascade breadth-first.
type Queue struct {
	tasks []func()
}

var _ Scheduler = (*Queue)(nil)

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Schedule appends task to the queue
func (q *Queue) Schedule(task func()) {
	q.tasks = append(q.tasks, task)
}

// Len returns the number of pending tasks
func (q *Queue) Len() int {
	return len(q.tasks)
}

// RunWave runs the tasks queued before the call and returns how many ran
func (q *Queue) RunWave() int {
	wave := q.tasks
	q.tasks = nil
	for _, task := range wave {
		task()
	}
	return len(wave)
}

// Drain runs waves until nothing is pending and returns the number of waves
func (q *Queue) Drain() int {
	waves := 0
	for len(q.tasks) > 0 {
		q.RunWave()
		waves++
	}
	return waves
}

// Clear drops every pending task
func (q *Queue) Clear() {
	q.tasks = nil
}
