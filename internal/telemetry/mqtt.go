// v1
// internal/telemetry/mqtt.go

// Package telemetry fans sensor readings out to an MQTT broker so dashboards
// can subscribe without polling the coordinator.
package telemetry

import (
	"encoding/json"
	"fmt"
	"log/slog"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"smartenv/nodes/internal/wire"
)

// MQTTPublisher pushes each reading to a fixed topic at QoS 0. Publish
// failures are logged and dropped.
type MQTTPublisher struct {
	client mqtt.Client
	topic  string
	lg     *slog.Logger
}

// NewMQTTPublisher connects to the broker. A connect failure is returned so
// the node can fail loud at boot rather than silently dropping telemetry.
func NewMQTTPublisher(broker, clientID, topic string, lg *slog.Logger) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().AddBroker(broker).SetClientID(clientID)
	c := mqtt.NewClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", broker, token.Error())
	}
	lg.Info("mqtt connected", "broker", broker, "topic", topic)
	return &MQTTPublisher{client: c, topic: topic, lg: lg}, nil
}

func (p *MQTTPublisher) Publish(t wire.Telemetry) {
	payload, err := json.Marshal(t)
	if err != nil {
		p.lg.Warn("telemetry marshal failed", "error", err)
		return
	}
	token := p.client.Publish(p.topic, 0, false, payload)
	token.Wait()
	if token.Error() != nil {
		p.lg.Warn("mqtt publish failed", "error", token.Error())
	}
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
