package engine

// JobQueue is a simple FIFO job queue for deferred component updates.
// Plug its Enqueue into AppContext.Scheduler so many synchronous
// mutations within one tick collapse into one render per instance,
// then call Flush at the tick boundary.
//
// The queue is single-threaded like the rest of the engine; the
// caller decides what a "tick" is (a websocket event, a frame, a
// test step).
type JobQueue struct {
	jobs     []func()
	flushing bool
}

// Enqueue appends a job. Safe to call while a flush is running; the
// job joins the current flush.
func (q *JobQueue) Enqueue(job func()) {
	q.jobs = append(q.jobs, job)
}

// Flush runs queued jobs until the queue drains, including jobs
// enqueued by earlier jobs in the same flush. Re-entrant flushes
// are no-ops.
func (q *JobQueue) Flush() {
	if q.flushing {
		return
	}
	q.flushing = true
	defer func() { q.flushing = false }()
	for len(q.jobs) > 0 {
		job := q.jobs[0]
		q.jobs = q.jobs[1:]
		job()
	}
}

// Len returns the number of queued jobs.
func (q *JobQueue) Len() int {
	return len(q.jobs)
}
