package feed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/JamesPriceZV/stingraycatcher/internal/config"
	"github.com/JamesPriceZV/stingraycatcher/internal/ingest"
	"github.com/JamesPriceZV/stingraycatcher/internal/model"
)

// BatchHandler processes one batch of feed observations, typically by
// classifying it and emitting a report.
type BatchHandler func(ctx context.Context, sites []model.CellSite) error

// messageFetcher abstracts the Kafka reader so tests can feed canned
// messages without a broker.
type messageFetcher interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Consumer reads observation messages from Kafka and delivers them to a
// BatchHandler in size- or time-bounded batches.
type Consumer struct {
	reader    messageFetcher
	clock     clockwork.Clock
	logger    *slog.Logger
	batchSize int
	interval  time.Duration
}

// consumerState carries one in-progress batch together with the messages
// backing it, so offsets are committed only after the handler succeeds.
type consumerState struct {
	sites []model.CellSite
	msgs  []kafkago.Message
}

// NewConsumer creates a Kafka consumer for the configured feed topic.
func NewConsumer(cfg *config.Config, logger *slog.Logger) *Consumer {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: cfg.FeedBrokers,
		Topic:   cfg.FeedTopic,
		GroupID: cfg.FeedGroup,
	})
	return newConsumer(r, cfg, logger, clockwork.NewRealClock())
}

func newConsumer(r messageFetcher, cfg *config.Config, logger *slog.Logger, clock clockwork.Clock) *Consumer {
	c := &Consumer{
		reader:    r,
		clock:     clock,
		logger:    logger,
		batchSize: cfg.FeedBatchSize,
	}
	c.interval = cfg.FeedFlushInterval
	return c
}

// Close releases the underlying Kafka reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}

// Run consumes the feed until the context is cancelled, delivering batches
// to handler. Malformed messages are logged, committed, and skipped so a
// poison message cannot wedge the consumer group.
func (c *Consumer) Run(ctx context.Context, handler BatchHandler) error {
	c.logger.Info("feed consumer started",
		"batch_size", c.batchSize, "flush_interval", c.interval)

	fetched := make(chan fetchResult)
	go c.fetchLoop(ctx, fetched)

	state := &consumerState{}
	timer := c.clock.NewTimer(c.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			// Flush what we have so a shutdown never discards observations.
			return c.flush(context.WithoutCancel(ctx), state, handler)

		case <-timer.Chan():
			if err := c.flush(ctx, state, handler); err != nil {
				return err
			}
			timer.Reset(c.interval)

		case res, ok := <-fetched:
			if !ok {
				return c.flush(context.WithoutCancel(ctx), state, handler)
			}
			if res.err != nil {
				return res.err
			}
			c.accumulate(state, res.msg)
			if len(state.sites) >= c.batchSize {
				if err := c.flush(ctx, state, handler); err != nil {
					return err
				}
				timer.Reset(c.interval)
			}
		}
	}
}

type fetchResult struct {
	msg kafkago.Message
	err error
}

// fetchLoop blocks on the Kafka reader and forwards messages to the Run
// select loop. FetchMessage honors ctx, so cancellation unblocks it.
func (c *Consumer) fetchLoop(ctx context.Context, out chan<- fetchResult) {
	defer close(out)
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return
			}
			select {
			case out <- fetchResult{err: err}:
			case <-ctx.Done():
			}
			return
		}
		select {
		case out <- fetchResult{msg: msg}:
		case <-ctx.Done():
			return
		}
	}
}

// accumulate decodes one message into the current batch. Observations
// without coordinates and undecodable payloads are dropped, but their
// messages are still tracked so their offsets get committed.
func (c *Consumer) accumulate(state *consumerState, msg kafkago.Message) {
	state.msgs = append(state.msgs, msg)

	site, ok, err := ingest.DecodeObservation(msg.Value)
	if err != nil {
		c.logger.Warn("dropping malformed observation",
			"error", err, "partition", msg.Partition, "offset", msg.Offset)
		return
	}
	if !ok {
		c.logger.Warn("dropping observation without coordinates",
			"partition", msg.Partition, "offset", msg.Offset)
		return
	}
	state.sites = append(state.sites, site)
}

// flush delivers the current batch and commits its offsets. Offsets are
// committed only after the handler succeeds, so a failed batch is redelivered.
func (c *Consumer) flush(ctx context.Context, state *consumerState, handler BatchHandler) error {
	if len(state.msgs) == 0 {
		return nil
	}

	if len(state.sites) > 0 {
		if err := handler(ctx, state.sites); err != nil {
			return err
		}
	}

	if err := c.reader.CommitMessages(ctx, state.msgs...); err != nil {
		c.logger.Warn("commit offsets failed", "error", err, "messages", len(state.msgs))
	}

	state.sites = nil
	state.msgs = nil
	return nil
}
