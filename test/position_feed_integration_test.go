package test

import (
	"context"
	"os/exec"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/kilianp07/dispatchconsole/core/model"
	"github.com/kilianp07/dispatchconsole/infra/mqtt"
	"github.com/kilianp07/dispatchconsole/internal/eventbus"
	"github.com/kilianp07/dispatchconsole/test/util"
)

// TestPositionFeedEndToEnd publishes a vehicle position through a real broker
// and expects it decoded on the event bus.
func TestPositionFeedEndToEnd(t *testing.T) {
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed")
	}

	ctx := context.Background()
	broker, cleanup, err := util.StartMosquitto(ctx)
	if err != nil {
		t.Skip("mosquitto not available: " + err.Error())
	}
	defer cleanup()

	bus := eventbus.New[model.VehiclePosition]()
	defer bus.Close()
	sub := bus.Subscribe()

	feed, err := mqtt.NewPositionFeed(mqtt.Config{
		Enabled:  true,
		Broker:   broker,
		ClientID: "feed-under-test",
		Topic:    "fleet/+/position",
	}, bus)
	if err != nil {
		t.Fatalf("position feed: %v", err)
	}
	defer feed.Close()

	opts := paho.NewClientOptions().AddBroker(broker).SetClientID("simulator")
	pub := paho.NewClient(opts)
	if token := pub.Connect(); token.Wait() && token.Error() != nil {
		t.Fatalf("publisher connect: %v", token.Error())
	}
	defer pub.Disconnect(100)

	payload := `{"vehicle_id":7,"lat":48.8566,"lng":2.3522}`
	deadline := time.After(10 * time.Second)
	for {
		if token := pub.Publish("fleet/7/position", 0, false, payload); token.Wait() && token.Error() != nil {
			t.Fatalf("publish: %v", token.Error())
		}
		select {
		case pos := <-sub:
			if pos.VehicleID != 7 || pos.Lat != 48.8566 || pos.Lng != 2.3522 {
				t.Fatalf("unexpected position %#v", pos)
			}
			return
		case <-deadline:
			t.Fatal("no position received")
		case <-time.After(200 * time.Millisecond):
			// The subscription may land after the first publish; retry.
		}
	}
}
