package sse

import (
	"testing"

	"evmaint_backend/platform/logger"
)

func newTestHub() *Hub {
	return NewHub(logger.New("development", false))
}

func TestPublishReachesStationClientsOnly(t *testing.T) {
	h := newTestHub()
	a := h.Subscribe("ST-1")
	b := h.Subscribe("ST-2")
	defer h.Unsubscribe(a)
	defer h.Unsubscribe(b)

	h.Publish("ST-1", Event{Type: EventTelemetry, StationID: "ST-1"})

	select {
	case ev := <-a.Events:
		if ev.Type != EventTelemetry {
			t.Fatalf("event type = %q", ev.Type)
		}
	default:
		t.Fatal("subscriber for ST-1 received nothing")
	}
	select {
	case ev := <-b.Events:
		t.Fatalf("subscriber for ST-2 received %+v", ev)
	default:
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	h := newTestHub()
	c := h.Subscribe("ST-1")
	h.Unsubscribe(c)

	if _, open := <-c.Events; open {
		t.Fatal("channel still open after unsubscribe")
	}

	// Publishing after unsubscribe must not panic or deliver.
	h.Publish("ST-1", Event{Type: EventTelemetry})
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	h := newTestHub()
	c := h.Subscribe("ST-1")
	defer h.Unsubscribe(c)

	for i := 0; i < cap(c.Events)+10; i++ {
		h.Publish("ST-1", Event{Type: EventTelemetry})
	}
	if len(c.Events) != cap(c.Events) {
		t.Fatalf("buffered %d events, want full buffer %d", len(c.Events), cap(c.Events))
	}
}

func TestCloseShutsDownAllClients(t *testing.T) {
	h := newTestHub()
	a := h.Subscribe("ST-1")
	b := h.Subscribe("ST-2")

	h.Close()

	if _, open := <-a.Events; open {
		t.Fatal("ST-1 channel open after hub close")
	}
	if _, open := <-b.Events; open {
		t.Fatal("ST-2 channel open after hub close")
	}
}
