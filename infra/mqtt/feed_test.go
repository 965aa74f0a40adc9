package mqtt

import (
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/dispatchconsole/core/model"
	"github.com/kilianp07/dispatchconsole/infra/logger"
	"github.com/kilianp07/dispatchconsole/internal/eventbus"
)

type mockToken struct{}

func (t *mockToken) Wait() bool                       { return true }
func (t *mockToken) WaitTimeout(_ time.Duration) bool { return true }
func (t *mockToken) Error() error                     { return nil }
func (t *mockToken) Done() <-chan struct{}            { ch := make(chan struct{}); close(ch); return ch }

type mockClient struct {
	Disconnected bool
	Subscribed   string
}

func (m *mockClient) IsConnected() bool       { return true }
func (m *mockClient) Connect() paho.Token     { return &mockToken{} }
func (m *mockClient) Disconnect(quiesce uint) { m.Disconnected = true }
func (m *mockClient) Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token {
	m.Subscribed = topic
	return &mockToken{}
}

type mockMessage struct {
	topic   string
	payload []byte
}

func (m mockMessage) Duplicate() bool   { return false }
func (m mockMessage) Qos() byte         { return 0 }
func (m mockMessage) Retained() bool    { return false }
func (m mockMessage) Topic() string     { return m.topic }
func (m mockMessage) MessageID() uint16 { return 0 }
func (m mockMessage) Payload() []byte   { return m.payload }
func (m mockMessage) Ack()              {}

func TestPositionFeed_PublishesDecodedPositions(t *testing.T) {
	bus := eventbus.New[model.VehiclePosition]()
	defer bus.Close()
	sub := bus.Subscribe()

	f := &PositionFeed{bus: bus, logger: logger.NopLogger{}, topic: "fleet/+/position"}
	f.onPosition(nil, mockMessage{
		topic:   "fleet/7/position",
		payload: []byte(`{"vehicle_id":7,"lat":48.85,"lng":2.35}`),
	})

	select {
	case pos := <-sub:
		assert.Equal(t, model.VehiclePosition{VehicleID: 7, Lat: 48.85, Lng: 2.35}, pos)
	case <-time.After(time.Second):
		t.Fatal("no position published")
	}
}

func TestPositionFeed_DropsMalformedPayloads(t *testing.T) {
	bus := eventbus.New[model.VehiclePosition]()
	defer bus.Close()
	sub := bus.Subscribe()

	f := &PositionFeed{bus: bus, logger: logger.NopLogger{}}
	f.onPosition(nil, mockMessage{topic: "fleet/7/position", payload: []byte("not json")})
	f.onPosition(nil, mockMessage{topic: "fleet/7/position", payload: []byte(`{"lat":1,"lng":2}`)})

	select {
	case pos := <-sub:
		t.Fatalf("unexpected position %#v", pos)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPositionFeed_Close(t *testing.T) {
	mc := &mockClient{}
	f := &PositionFeed{cli: mc, logger: logger.NopLogger{}}
	f.Close()
	assert.True(t, mc.Disconnected)
}

func TestConfigDefaultsAndValidate(t *testing.T) {
	cfg := Config{Enabled: true, Broker: "tcp://localhost:1883"}
	cfg.SetDefaults()
	assert.Equal(t, "fleet/+/position", cfg.Topic)
	assert.Equal(t, "dispatch-console", cfg.ClientID)
	require.NoError(t, cfg.Validate())

	assert.Error(t, Config{Enabled: true}.Validate())
	assert.NoError(t, Config{}.Validate())
}
