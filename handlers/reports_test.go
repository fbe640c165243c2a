package handlers

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"wellness-admin/config"
	"wellness-admin/models"
)

type fakeSearch struct {
	index string
	query map[string]interface{}
	hits  []map[string]interface{}
	err   error
}

func (f *fakeSearch) IndexDocument(ctx context.Context, index string, id string, document interface{}) error {
	return nil
}

func (f *fakeSearch) Search(ctx context.Context, index string, query map[string]interface{}) ([]map[string]interface{}, error) {
	f.index, f.query = index, query
	return f.hits, f.err
}

func (f *fakeSearch) Close() error { return nil }

type sentMessage struct {
	topic string
	key   string
	value string
}

type fakeProducer struct {
	sent chan sentMessage
}

func (f *fakeProducer) SendMessage(ctx context.Context, topic string, key, value []byte) error {
	f.sent <- sentMessage{topic: topic, key: string(key), value: string(value)}
	return nil
}

func (f *fakeProducer) Close() error { return nil }

func TestReportsWithoutSearch(t *testing.T) {
	s := newTestServer(&fakeGateway{}, config.LoginModeBackend)
	body := s.get("/reports", s.signIn(t)).Body.String()
	if !strings.Contains(body, "Activity reporting is not configured.") {
		t.Error("notice missing")
	}
}

func TestReportsListsActivity(t *testing.T) {
	search := &fakeSearch{hits: []map[string]interface{}{
		{"event": "client_created", "actor": "expert", "summary": "Ali Veli", "at": "2025-01-15T09:00:00Z"},
		{"event": "user_logged_in", "actor": "dietitian2", "at": "2025-01-15T08:00:00Z"},
	}}
	s := newTestServer(&fakeGateway{}, config.LoginModeBackend)
	s.handler.search = search

	body := s.get("/reports", s.signIn(t)).Body.String()

	if search.index != "admin_activity" {
		t.Errorf("searched index %q", search.index)
	}
	if search.query["size"] != reportSize {
		t.Errorf("query size = %v", search.query["size"])
	}
	created, signedIn := strings.Index(body, "Client created"), strings.Index(body, "Signed in")
	if created < 0 || signedIn < created {
		t.Error("activity rows missing or out of order")
	}
	if !strings.Contains(body, "15.01.2025 09:00") {
		t.Error("timestamp not formatted")
	}
}

func TestReportsSearchFailure(t *testing.T) {
	s := newTestServer(&fakeGateway{}, config.LoginModeBackend)
	s.handler.search = &fakeSearch{err: errors.New("index missing")}

	body := s.get("/reports", s.signIn(t)).Body.String()
	if !strings.Contains(body, "Could not load recent activity.") {
		t.Error("error message missing")
	}
}

func TestLoginPublishesActivityEvent(t *testing.T) {
	producer := &fakeProducer{sent: make(chan sentMessage, 1)}
	gw := &fakeGateway{loginResp: &models.LoginResponse{Username: "dr.ayse", Role: "Dietitian", UserID: 42}}
	s := newTestServer(gw, config.LoginModeBackend)
	s.handler.events = producer

	s.post("/login", map[string][]string{"username": {"dr.ayse"}, "password": {"secret"}}, nil)

	select {
	case msg := <-producer.sent:
		if msg.topic != "admin_events" || msg.key != "dr.ayse" {
			t.Errorf("sent to %s with key %s", msg.topic, msg.key)
		}
		if !strings.Contains(msg.value, `"event":"user_logged_in"`) || !strings.Contains(msg.value, `"entityId":42`) {
			t.Errorf("payload = %s", msg.value)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no activity event published")
	}
}
