package swifttoo

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// JobState is the lifecycle state of an asynchronous API job.
type JobState string

const (
	JobQueued     JobState = "Queued"
	JobProcessing JobState = "Processing"
	JobAccepted   JobState = "Accepted"
	JobRejected   JobState = "Rejected"
)

// Status is the API's job record: identifiers plus any errors and warnings
// accumulated while the job was processed. A job with recorded errors is
// always Rejected.
type Status struct {
	JobNumber int      `json:"jobnumber"`
	State     JobState `json:"status"`
	TOOID     int      `json:"too_id,omitempty"`
	Errors    []string `json:"errors,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
	Began     *Time    `json:"began,omitempty"`
	Completed *Time    `json:"completed,omitempty"`
}

// Warn records a client-side warning on the status.
func (s *Status) Warn(format string, args ...any) {
	s.Warnings = append(s.Warnings, fmt.Sprintf(format, args...))
}

// Fail records a client-side error and forces the Rejected state.
func (s *Status) Fail(format string, args ...any) {
	s.Errors = append(s.Errors, fmt.Sprintf(format, args...))
	s.State = JobRejected
}

func (s *Status) Accepted() bool { return s.State == JobAccepted }
func (s *Status) Rejected() bool { return s.State == JobRejected }

// Done reports whether the job reached a terminal state.
func (s *Status) Done() bool { return s.Accepted() || s.Rejected() }

func (s *Status) String() string {
	if len(s.Errors) > 0 {
		return fmt.Sprintf("%s: %s", s.State, strings.Join(s.Errors, "; "))
	}
	return string(s.State)
}

// QueryJob fetches the current status of a submitted job.
func (c *Client) QueryJob(ctx context.Context, jobNumber int) (*Status, error) {
	if jobNumber <= 0 {
		return nil, fmt.Errorf("invalid job number %d", jobNumber)
	}
	var status Status
	if err := c.get(ctx, "/swift/queryjob/"+strconv.Itoa(jobNumber), url.Values{}, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// WaitForJob polls a job until it reaches a terminal state or the context is
// cancelled. A non-positive interval defaults to two seconds.
func (c *Client) WaitForJob(ctx context.Context, jobNumber int, interval time.Duration) (*Status, error) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		status, err := c.QueryJob(ctx, jobNumber)
		if err != nil {
			return nil, err
		}
		if status.Done() {
			c.logger.Info("job finished",
				slog.Int("jobNumber", jobNumber),
				slog.String("state", string(status.State)),
			)
			return status, nil
		}
		c.logger.Debug("job pending", slog.Int("jobNumber", jobNumber), slog.String("state", string(status.State)))

		select {
		case <-ctx.Done():
			return status, ctx.Err()
		case <-ticker.C:
		}
	}
}
