// Package roster pushes live presence changes to dashboard listeners.
// Every check-in and check-out is published with a monotonically
// increasing sequence number so that a reconnecting dashboard can discard
// stale deliveries.
package roster

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	channel = "roster:events"
	seqKey  = "roster:seq"
)

// Notification is one presence change on the live roster.
type Notification struct {
	Seq        uint64    `json:"seq"`
	EmployeeID string    `json:"employee_id"`
	FullName   string    `json:"full_name"`
	Kind       string    `json:"kind"` // COME or LEAVE
	At         time.Time `json:"at"`
}

// Notifier publishes roster notifications over redis pub/sub.
type Notifier struct {
	rdb *redis.Client
	log zerolog.Logger
}

func NewNotifier(rdb *redis.Client, log zerolog.Logger) *Notifier {
	return &Notifier{rdb: rdb, log: log}
}

// Notify assigns the next sequence number and publishes the event. A
// publish failure never fails the attendance operation that caused it.
func (n *Notifier) Notify(ctx context.Context, note Notification) {
	seq, err := n.rdb.Incr(ctx, seqKey).Result()
	if err != nil {
		n.log.Warn().Err(err).Msg("roster sequence unavailable")
		return
	}
	note.Seq = uint64(seq)

	payload, err := json.Marshal(note)
	if err != nil {
		n.log.Warn().Err(err).Msg("roster notification marshal failed")
		return
	}

	if err := n.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		n.log.Warn().Err(err).Msg("roster publish failed")
	}
}

// Listen subscribes to roster events and invokes fn for each delivery
// until ctx is cancelled.
func (n *Notifier) Listen(ctx context.Context, fn func(Notification)) error {
	sub := n.rdb.Subscribe(ctx, channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return errors.New("roster subscription closed")
			}
			var note Notification
			if err := json.Unmarshal([]byte(msg.Payload), &note); err != nil {
				n.log.Warn().Err(err).Msg("roster notification unmarshal failed")
				continue
			}
			fn(note)
		}
	}
}

// Cursor filters re-deliveries. Sequence numbers at or below the last
// admitted one are dropped, so a dashboard that resubscribes never
// processes the same change twice or out of order.
type Cursor struct {
	last uint64
}

func (c *Cursor) Admit(seq uint64) bool {
	if seq <= c.last {
		return false
	}
	c.last = seq
	return true
}

// Last reports the highest admitted sequence number.
func (c *Cursor) Last() uint64 { return c.last }
