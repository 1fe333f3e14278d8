package publish

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nerrad567/solar-export/internal/infrastructure/mqtt"
	"github.com/nerrad567/solar-export/internal/inverter"
)

type published struct {
	topic string
	doc   SpotDocument
}

type fakeClient struct {
	prefix  string
	sent    []published
	failOn  string
	failErr error
}

func (f *fakeClient) Topics() mqtt.Topics { return mqtt.Topics{Prefix: f.prefix} }

func (f *fakeClient) PublishJSON(topic string, v any) error {
	if topic == f.failOn {
		return f.failErr
	}
	f.sent = append(f.sent, published{topic: topic, doc: v.(SpotDocument)})
	return nil
}

func records() []inverter.Record {
	return []inverter.Record{
		{Name: "East", Type: "SB 3000", Serial: 11, Pac1: 239, EToday: 2100, PdcTotal: 260, PacTotal: 239},
		{Name: "West", Type: "SB 4000", Serial: 22, Pac1: 500, EToday: 4100, PdcTotal: 540, PacTotal: 500},
	}
}

func TestPublishSpot(t *testing.T) {
	client := &fakeClient{prefix: "pv"}
	p := New(client, "Home", nil)
	ts := time.Unix(1700000000, 0)

	n, err := p.PublishSpot(records(), ts)
	if err != nil {
		t.Fatalf("PublishSpot() error = %v", err)
	}
	if n != 3 || len(client.sent) != 3 {
		t.Fatalf("published %d documents (%d recorded), want 3", n, len(client.sent))
	}

	wantTopics := []string{"pv/11", "pv/22", "pv/plant"}
	for i, want := range wantTopics {
		if client.sent[i].topic != want {
			t.Errorf("topic[%d] = %q, want %q", i, client.sent[i].topic, want)
		}
	}

	total := client.sent[2].doc
	if total.Name != "Home" || total.Type != "Net" || total.Serial != 0 {
		t.Errorf("total identity = %s/%s/%d, want Home/Net/0", total.Name, total.Type, total.Serial)
	}
	if total.Values["Pac1"] != 739 {
		t.Errorf("total Pac1 = %v, want 739", total.Values["Pac1"])
	}
	if total.Values["EToday"] != 6.2 {
		t.Errorf("total EToday = %v, want 6.2", total.Values["EToday"])
	}
	if !total.Timestamp.Equal(ts) {
		t.Errorf("Timestamp = %v, want %v", total.Timestamp, ts)
	}
}

func TestPublishSpot_Empty(t *testing.T) {
	client := &fakeClient{}
	n, err := New(client, "Home", nil).PublishSpot(nil, time.Now())
	if err != nil || n != 0 || len(client.sent) != 0 {
		t.Errorf("PublishSpot(nil) = %d, %v; sent %d", n, err, len(client.sent))
	}
}

func TestPublishSpot_PartialFailure(t *testing.T) {
	cause := errors.New("broker gone")
	client := &fakeClient{prefix: "pv", failOn: "pv/11", failErr: cause}

	n, err := New(client, "Home", nil).PublishSpot(records(), time.Now())
	if !errors.Is(err, cause) {
		t.Errorf("PublishSpot() error = %v, want cause", err)
	}
	if n != 2 {
		t.Errorf("published %d, want 2 after one failure", n)
	}
}

func TestSpotDocument_JSON(t *testing.T) {
	r := records()[0]
	doc := NewSpotDocument(&r, time.Unix(1700000000, 0))

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if decoded["timestamp"] != "2023-11-14T22:13:20Z" {
		t.Errorf("timestamp = %v, want 2023-11-14T22:13:20Z", decoded["timestamp"])
	}
	values, ok := decoded["values"].(map[string]any)
	if !ok {
		t.Fatalf("values missing: %s", data)
	}
	if len(values) != 25 {
		t.Errorf("values has %d fields, want 25", len(values))
	}
}
