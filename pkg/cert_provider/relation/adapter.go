package relation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/manualtls/manualtls/pkg/cert_provider/leader"
	"github.com/manualtls/manualtls/pkg/cert_provider/model"
	"github.com/manualtls/manualtls/pkg/cert_provider/provision"
	"github.com/manualtls/manualtls/pkg/cert_provider/storage"
	"github.com/manualtls/manualtls/pkg/relay"
	"github.com/sirupsen/logrus"
)

// Adapter connects the provisioning engine to the relation hub. It consumes
// relation events, drives the engine, and commits the consumed offset per hub
// identity so the application resumes where it stopped. The offset row is
// shared by all units. Only the leader subscribes and advances it, so a
// promoted unit replays exactly the events the previous leader did not
// process.
type Adapter struct {
	hubAddress    string
	unitName      string
	checkInterval time.Duration

	certProvider provision.CertProvider
	elector      leader.Elector
	inboxStore   storage.HubInboxStorage
	client       relay.RelayClient

	done       chan struct{}
	closed     bool
	hubID      string
	subscribed bool
	mu         sync.Mutex
}

func NewAdapter(options ...AdapterOption) *Adapter {
	a := &Adapter{
		checkInterval: 5 * time.Second,
		done:          make(chan struct{}),
	}
	for _, opt := range options {
		opt(a)
	}

	if a.client == nil {
		a.client = relay.NewHubClient(
			relay.HubClientWithServerURL(a.hubAddress),
			relay.HubClientWithEventSink(a.eventSink),
			relay.HubClientWithConnectionStatusCallback(a.connectionStatusCallback),
		)
	}
	return a
}

// Client exposes the hub client so the outbox publisher can share the
// connection.
func (a *Adapter) Client() relay.RelayClient {
	return a.client
}

// Run watches leadership until the context is canceled or the adapter is
// closed. A unit promoted to leader picks up the shared subscription on the
// next check.
func (a *Adapter) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-a.done:
			return nil
		case <-ticker.C:
			a.ensureSubscribed(ctx)
		}
	}
}

func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true
	close(a.done)
	return a.client.Close()
}

func (a *Adapter) eventSink(ctx context.Context, event relay.Event) (string, error) {
	log := logrus.WithFields(logrus.Fields{"timestamp": event.Timestamp, "offset": event.Offset, "type": event.Type})
	log.Debugf("Received relation event")

	err := a.processEvent(ctx, event)
	if errors.Is(err, model.ErrNotLeader) {
		// A standby unit leaves the event and the shared offset to the
		// leader.
		log.Debugf("Skipped relation event on standby unit")
		return "", nil
	}
	if err != nil {
		log.Warnf("Failed to process relation event: %v", err)
		return "", err
	}

	if err := a.commitOffset(ctx, a.getHubID(), event.Offset); err != nil {
		log.Warnf("Failed to commit relation event offset: %v", err)
		return "", err
	}
	return "", nil
}

func (a *Adapter) processEvent(ctx context.Context, event relay.Event) error {
	ts := time.Now().Unix()

	switch relay.EventType(event.Type) {
	case relay.RelationCreated:
		payload := model.RelationLifecycleEvent{}
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			logrus.Warnf("Adapter: malformed relation created event: %v", err)
			return nil
		}
		req := provision.CreateRelationRequest{
			Requester:   a.unitName,
			RelationID:  payload.RelationID,
			Application: payload.Application,
		}
		if _, err := a.certProvider.CreateRelation(ctx, ts, req); err != nil {
			return filterProcessErr("relation created", err)
		}
	case relay.RequirerDatabag:
		payload := model.RequirerDatabagEvent{}
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			logrus.Warnf("Adapter: malformed requirer databag event: %v", err)
			return nil
		}
		req := provision.SyncRelationRequest{
			RelationID:                 payload.RelationID,
			Application:                payload.Application,
			Unit:                       payload.Unit,
			CertificateSigningRequests: payload.CertificateSigningRequests,
		}
		result, err := a.certProvider.SyncRelation(ctx, ts, req)
		if err != nil {
			return filterProcessErr("requirer databag", err)
		}
		if len(result.Announced) > 0 || len(result.Withdrawn) > 0 {
			logrus.Infof("Adapter: relation %s unit %s announced %d and withdrew %d certificate requests",
				payload.RelationID, payload.Unit, len(result.Announced), len(result.Withdrawn))
		}
	case relay.RelationBroken:
		payload := model.RelationLifecycleEvent{}
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			logrus.Warnf("Adapter: malformed relation broken event: %v", err)
			return nil
		}
		req := provision.BreakRelationRequest{
			Requester:  a.unitName,
			RelationID: payload.RelationID,
		}
		result, err := a.certProvider.BreakRelation(ctx, ts, req)
		if err != nil {
			return filterProcessErr("relation broken", err)
		}
		logrus.Infof("Adapter: relation %s removed with %d certificate requests purged", payload.RelationID, len(result.Purged))
	default:
		// ProviderDatabag events are this side's own output.
		logrus.Debugf("Adapter: unwanted event type: %d", event.Type)
	}
	return nil
}

// filterProcessErr keeps the event stream moving. Poison events are dropped,
// replayed teardowns are already applied, and leadership errors bubble up so
// the caller can leave the offset untouched.
func filterProcessErr(eventName string, err error) error {
	if errors.Is(err, model.ErrNotLeader) {
		return err
	}
	if errors.Is(err, model.ErrInvalidParameter) {
		logrus.Warnf("Adapter: dropped %s event: %v", eventName, err)
		return nil
	}
	if errors.Is(err, model.ErrDataNotFound) {
		logrus.Debugf("Adapter: %s event already applied", eventName)
		return nil
	}
	return err
}

func (a *Adapter) commitOffset(ctx context.Context, hubID string, offset int64) error {
	if hubID == "" {
		return errors.New("hub identity is not known yet")
	}

	tx, ctx, err := a.inboxStore.CreateTx(ctx, storage.TxOptionWithWrite(true), storage.TxOptionWithIsolationLevel(sql.LevelSerializable))
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := a.inboxStore.UpdateHubOffset(ctx, tx, hubID, offset); err != nil {
		return fmt.Errorf("failed to set hub offset: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (a *Adapter) connectionStatusCallback(ctx context.Context, cancel context.CancelCauseFunc, client relay.RelayClient, serverIdentity string, status bool) {
	logrus.Infof("Relation hub connection status for %q: %v", serverIdentity, status)
	if client == nil || !status {
		a.mu.Lock()
		a.hubID = ""
		a.subscribed = false
		a.mu.Unlock()
		return
	}

	a.mu.Lock()
	a.hubID = serverIdentity
	a.mu.Unlock()

	if !a.elector.IsLeader(ctx) {
		logrus.Infof("Unit %s is standby and leaves the hub subscription to the leader", a.unitName)
		return
	}

	if err := a.subscribe(ctx); err != nil {
		logrus.Errorf("Adapter: failed to subscribe to hub %q: %v", serverIdentity, err)
		if cancel != nil {
			cancel(err)
		}
	}
}

func (a *Adapter) ensureSubscribed(ctx context.Context) {
	a.mu.Lock()
	hubID := a.hubID
	subscribed := a.subscribed
	a.mu.Unlock()

	if hubID == "" || subscribed {
		return
	}
	if !a.elector.IsLeader(ctx) {
		return
	}
	if err := a.subscribe(ctx); err != nil {
		logrus.Warnf("Adapter: failed to subscribe to hub %q: %v", hubID, err)
	}
}

func (a *Adapter) subscribe(ctx context.Context) error {
	a.mu.Lock()
	hubID := a.hubID
	subscribed := a.subscribed
	a.mu.Unlock()

	if hubID == "" {
		return errors.New("hub identity is not known yet")
	}
	if subscribed {
		return nil
	}

	offset, err := a.getHubOffset(ctx, hubID)
	if err != nil {
		return err
	}

	// The subscription streams events with offsets strictly greater than
	// the stored one.
	subCtx, cancelSub := context.WithTimeout(ctx, 10*time.Second)
	defer cancelSub()
	if err := a.client.Subscribe(subCtx, offset); err != nil {
		return err
	}

	a.mu.Lock()
	a.subscribed = true
	a.mu.Unlock()
	logrus.Infof("Subscribed to relation hub %q from offset %d", hubID, offset)
	return nil
}

func (a *Adapter) getHubOffset(ctx context.Context, hubID string) (int64, error) {
	tx, ctx, err := a.inboxStore.CreateTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to create transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	offset, err := a.inboxStore.GetHubOffset(ctx, tx, hubID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to get hub offset: %w", err)
	}
	return offset, nil
}

func (a *Adapter) getHubID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hubID
}
