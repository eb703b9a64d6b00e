package relay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type HubServerOption func(s *HubServer)

type HubServer struct {
	httpServer *http.Server
	address    string
	certFile   *string
	keyFile    *string
	identity   string

	eventSource EventSource
	eventSink   EventSink

	wsUpgrader websocket.Upgrader

	mux         sync.Mutex
	closed      bool
	connCancels map[*websocket.Conn]context.CancelFunc
	subscribers map[chan struct{}]struct{}
}

// hubSession serves a single websocket connection. All outgoing messages go
// through sendChan so only the write loop touches the connection for writes.
type hubSession struct {
	server   *HubServer
	conn     *websocket.Conn
	sendChan chan Response

	subscribed bool
}

func NewHubServer(opts ...HubServerOption) *HubServer {
	server := &HubServer{
		connCancels: make(map[*websocket.Conn]context.CancelFunc),
		subscribers: make(map[chan struct{}]struct{}),
	}

	for _, opt := range opts {
		opt(server)
	}

	return server
}

func (s *HubServer) ListenAndServe() error {
	if s.httpServer != nil {
		return errors.New("server already started")
	}

	serverMux := http.NewServeMux()
	serverMux.Handle("/", s)

	s.httpServer = &http.Server{
		Addr:    s.address,
		Handler: serverMux,
	}

	if s.certFile != nil && s.keyFile != nil {
		return s.httpServer.ListenAndServeTLS(*s.certFile, *s.keyFile)
	} else if !(s.certFile == nil && s.keyFile == nil) {
		return errors.New("both certFile and keyFile must be specified")
	}

	return s.httpServer.ListenAndServe()
}

func (s *HubServer) Close() error {
	s.mux.Lock()
	s.closed = true
	cancels := make([]context.CancelFunc, 0, len(s.connCancels))
	for conn, cancel := range s.connCancels {
		conn.Close()
		cancels = append(cancels, cancel)
	}
	s.connCancels = make(map[*websocket.Conn]context.CancelFunc)
	s.mux.Unlock()

	for _, cancel := range cancels {
		cancel()
	}

	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(context.Background()); err != nil {
		return err
	}
	s.httpServer = nil
	return nil
}

func (s *HubServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Errorf("HubServer: failed to upgrade websocket: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	if !s.registerConn(conn, cancel) {
		cancel()
		conn.Close()
		return
	}
	defer s.unregisterConn(conn)

	session := &hubSession{
		server:   s,
		conn:     conn,
		sendChan: make(chan Response, 16),
	}
	session.run(ctx, cancel)
}

func (s *HubServer) registerConn(conn *websocket.Conn, cancel context.CancelFunc) bool {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.closed {
		return false
	}
	s.connCancels[conn] = cancel
	return true
}

func (s *HubServer) unregisterConn(conn *websocket.Conn) {
	s.mux.Lock()
	defer s.mux.Unlock()

	delete(s.connCancels, conn)
}

func (s *HubServer) addSubscriber() chan struct{} {
	s.mux.Lock()
	defer s.mux.Unlock()

	notifyChan := make(chan struct{}, 1)
	s.subscribers[notifyChan] = struct{}{}
	return notifyChan
}

func (s *HubServer) removeSubscriber(notifyChan chan struct{}) {
	s.mux.Lock()
	defer s.mux.Unlock()

	delete(s.subscribers, notifyChan)
}

func (s *HubServer) notifySubscribers() {
	s.mux.Lock()
	defer s.mux.Unlock()

	for notifyChan := range s.subscribers {
		select {
		case notifyChan <- struct{}{}:
		default:
		}
	}
}

func (s *hubSession) run(ctx context.Context, cancel context.CancelFunc) {
	defer s.conn.Close()

	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.writeLoop(ctx, cancel)
	}()
	defer wg.Wait()
	defer cancel()

	s.send(ctx, Response{RelayServerIdentifyResponse: &RelayServerIdentifyResponse{Identity: s.server.identity}})

	for {
		_, msg, err := s.conn.ReadMessage()
		if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
			return
		} else if err != nil {
			logrus.Debugf("HubServer: failed to read message: %v", err)
			return
		}

		req, err := ParseRequest(msg)
		if err != nil {
			logrus.Errorf("HubServer: failed to parse message: %v", err)
			s.send(ctx, Response{Notice: &RelayServerNotice{Message: "malformed request"}})
			continue
		}

		switch req := req.(type) {
		case *EventPublishRequest:
			s.handlePublish(ctx, req)
		case *SubscribeRequest:
			s.handleSubscribe(ctx, req)
		default:
			s.send(ctx, Response{Notice: &RelayServerNotice{Message: "unsupported request"}})
		}
	}
}

func (s *hubSession) handlePublish(ctx context.Context, req *EventPublishRequest) {
	event := Event{
		Timestamp: time.Now().Unix(),
		Type:      req.Type,
		Data:      req.Data,
	}

	eventID, err := s.server.eventSink(ctx, event)
	if err != nil {
		logrus.Errorf("HubServer: failed to store event %q: %v", req.RequestID, err)
		s.send(ctx, Response{EventPublishResponse: &EventPublishResponse{RequestID: req.RequestID, OK: false, Reason: err.Error()}})
		return
	}

	s.server.notifySubscribers()
	s.send(ctx, Response{EventPublishResponse: &EventPublishResponse{RequestID: req.RequestID, OK: true, Reason: eventID}})
}

func (s *hubSession) handleSubscribe(ctx context.Context, req *SubscribeRequest) {
	if s.subscribed {
		s.send(ctx, Response{Notice: &RelayServerNotice{Message: "already subscribed"}})
		return
	}
	s.subscribed = true

	notifyChan := s.server.addSubscriber()
	go func() {
		defer s.server.removeSubscriber(notifyChan)
		s.pumpEvents(ctx, req.SubscribeID, req.Offset, notifyChan)
	}()
}

// pumpEvents streams stored events with offsets greater than offset, then
// keeps polling for new ones. The first response carries no event and serves
// as the subscription acknowledgement.
func (s *hubSession) pumpEvents(ctx context.Context, subscribeID string, offset int64, notifyChan chan struct{}) {
	if !s.send(ctx, Response{SubscribeResponse: &SubscribeResponse{SubscribeID: subscribeID}}) {
		return
	}

	for {
		result, err := s.server.eventSource(ctx, EventSourcePullingRequest{Offset: offset, Length: 64})
		if err != nil {
			logrus.Errorf("HubServer: failed to pull events for subscription %q: %v", subscribeID, err)
			s.send(ctx, Response{Notice: &RelayServerNotice{Message: err.Error()}})
			return
		}

		for i := range result.Events {
			event := result.Events[i]
			if !s.send(ctx, Response{SubscribeResponse: &SubscribeResponse{SubscribeID: subscribeID, Event: &event}}) {
				return
			}
			offset = event.Offset
		}
		if len(result.Events) > 0 {
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-notifyChan:
		case <-time.After(5 * time.Second):
		}
	}
}

func (s *hubSession) send(ctx context.Context, resp Response) bool {
	select {
	case <-ctx.Done():
		return false
	case s.sendChan <- resp:
		return true
	}
}

func (s *hubSession) writeLoop(ctx context.Context, cancel context.CancelFunc) {
	for {
		select {
		case <-ctx.Done():
			return
		case resp := <-s.sendChan:
			jsonRaw, _ := json.Marshal(resp)
			if err := s.conn.WriteMessage(websocket.TextMessage, jsonRaw); err != nil {
				logrus.Errorf("HubServer: failed to write message: %v", err)
				cancel()
				return
			}
		}
	}
}
