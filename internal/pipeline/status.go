package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Status represents the execution state of a step as reported by the
// surrounding application. The zero value is not valid; steps without a
// matching record default to StatusIdle during the overlay merge.
type Status string

const (
	// StatusIdle indicates the step has not started.
	StatusIdle Status = "Idle"
	// StatusRunning indicates the step is currently executing.
	StatusRunning Status = "Running"
	// StatusCompleted indicates the step finished successfully.
	StatusCompleted Status = "Completed"
	// StatusFailed indicates the step finished with an error.
	StatusFailed Status = "Failed"
)

// ParseStatus converts a raw string into a Status, rejecting values outside
// the known set.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusIdle, StatusRunning, StatusCompleted, StatusFailed:
		return s, nil
	default:
		return "", fmt.Errorf("unknown status %q", raw)
	}
}

// UnmarshalJSON validates the status at the decode boundary so malformed
// snapshots are rejected before they reach the merge.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// StatusRecord is one entry of a status snapshot: the runtime execution
// state of a single step. Timestamps are optional and absent for steps that
// have not started or not finished.
type StatusRecord struct {
	StepID    string     `json:"stepId"`
	Status    Status     `json:"status"`
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`
}

// DecodeStatusRecords reads a JSON status snapshot (an array of records)
// from r. Records referencing unknown steps are kept; deciding what to do
// with them is the merge's concern, not the decoder's.
func DecodeStatusRecords(r io.Reader) ([]StatusRecord, error) {
	var records []StatusRecord
	dec := json.NewDecoder(r)
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode status snapshot: %w", err)
	}
	return records, nil
}
