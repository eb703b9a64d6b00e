package notifier

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/manualtls/manualtls/pkg/cert_provider/model"
	"github.com/manualtls/manualtls/pkg/cert_provider/storage"
	"github.com/manualtls/manualtls/pkg/cert_provider/storage/postgres"
	"github.com/manualtls/manualtls/pkg/util"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Database      util.PostgresDatabaseConfig
	CheckInterval int
	BatchSize     int
	Timeout       int
	MaxRetry      int
}

type NotifierOption func(n *Notifier)

func WithStorage(storage storage.WebhookStorage) NotifierOption {
	return func(n *Notifier) {
		n.storage = storage
	}
}

// Notifier delivers queued webhook events to their endpoints. Events that
// stay unreachable after the retry budget are dropped so the queue cannot
// wedge on a dead endpoint.
type Notifier struct {
	retry         int
	batchSize     int
	checkInterval time.Duration
	timeout       time.Duration
	storage       storage.WebhookStorage
}

func NewNotifierWithConfig(cfg Config, opts ...NotifierOption) (*Notifier, error) {
	res := &Notifier{
		retry:         cfg.MaxRetry,
		batchSize:     cfg.BatchSize,
		checkInterval: time.Second * time.Duration(cfg.CheckInterval),
		timeout:       time.Second * time.Duration(cfg.Timeout),
	}

	for _, opt := range opts {
		opt(res)
	}
	if res.storage == nil {
		webhookStorage, err := postgres.NewStorageWithConfig(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("create storage: %w", err)
		}
		res.storage = webhookStorage
	}

	return res, nil
}

func (n *Notifier) Run(ctx context.Context) {
	logrus.Info("Webhook notifier is now running")

	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(n.checkInterval):
			n._Proc(ctx)
		}
	}
}

func (n *Notifier) _Proc(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msgs, err := n.getEvent(ctx)
		if err != nil {
			logrus.Errorf("failed to get webhook event: %v", err)
			return
		}
		if len(msgs) == 0 {
			return
		}

		logrus.Debugf("Got %d webhook events", len(msgs))
		ids := make([]int64, 0, len(msgs))
		for i := range msgs {
			err = n.postEvent(ctx, msgs[i])
			if err != nil {
				logrus.Warnf("failed to post webhook event: %v", err)
				if !errors.Is(err, model.ErrWebhookUnreachable) {
					continue
				}
			}

			ids = append(ids, msgs[i].RecID)
		}

		if len(ids) == 0 {
			return
		}

		err = n.deleteEvent(ctx, ids...)
		if err != nil {
			logrus.Errorf("failed to delete webhook event: %v", err)
		}

		logrus.Debugf("POSTed %d webhook events", len(ids))
	}
}

func (n *Notifier) postEvent(ctx context.Context, msg storage.OutboxMsg) error {
	var event model.WebhookEvent
	err := json.Unmarshal(msg.Msg, &event)
	if err != nil {
		return fmt.Errorf("json unmarshal event: %v", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableKeepAlives = true
	transport.MaxIdleConnsPerHost = -1
	client := http.Client{Timeout: n.timeout, Transport: transport}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, event.Url, util.StructToJSONReader(event))
	if err != nil {
		return fmt.Errorf("create http request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-Key", msg.Key)

	err = retry.Do(
		func() error {
			resp, err := client.Do(req)
			if err != nil {
				logrus.Debugf("send http request: %v", err)
				return err
			}
			defer func() { _ = resp.Body.Close() }()
			if resp.StatusCode != http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				logrus.Debugf("%s returned %v: %s", event.Url, resp.StatusCode, string(body))
				return fmt.Errorf("unexpected status code: %v", resp.StatusCode)
			}

			return nil
		},
		retry.Attempts(uint(n.retry)),
		retry.Context(ctx),
	)

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("exceed maximum retries posting webhook event. %w", model.ErrWebhookUnreachable)
	}
	return nil
}

func (n *Notifier) getEvent(ctx context.Context) ([]storage.OutboxMsg, error) {
	tx, ctx, err := n.storage.CreateTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	outboxMsgs, err := n.storage.GetWebhookEvent(ctx, tx, n.batchSize)
	if err != nil {
		return nil, err
	}

	if len(outboxMsgs) == 0 {
		return nil, nil
	}

	return outboxMsgs, nil
}

func (n *Notifier) deleteEvent(ctx context.Context, recIDs ...int64) error {
	tx, ctx, err := n.storage.CreateTx(ctx, storage.TxOptionWithWrite(true), storage.TxOptionWithIsolationLevel(sql.LevelSerializable))
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = n.storage.DeleteWebhookEvent(ctx, tx, recIDs...)
	if err != nil {
		return err
	}
	err = tx.Commit(ctx)
	if err != nil {
		return err
	}

	return nil
}
