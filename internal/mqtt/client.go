package mqtt

import (
	"context"
	"net/url"
	"strings"

	"github.com/dchest/uniuri"
	"github.com/denwilliams/go-lumen-mqtt/internal/command"
	"github.com/denwilliams/go-lumen-mqtt/internal/logging"
	pm "github.com/eclipse/paho.mqtt.golang"
)

// Client subscribes to the command topic and feeds every message to
// the dispatcher. The topic layout is <prefix>/set/<device id>.
type Client struct {
	client         pm.Client
	baseTopic      string
	subscribeTopic string
}

func NewClient(uri *url.URL, baseTopic string, subscribeTopic string) *Client {
	opts := pm.NewClientOptions().
		AddBroker(uri.String()).
		SetClientID("lumen_mqtt_" + uniuri.New()).
		SetAutoReconnect(true).
		SetOnConnectHandler(onConnect).
		SetConnectionLostHandler(onConnectionLost)

	return &Client{
		client:         pm.NewClient(opts),
		baseTopic:      baseTopic,
		subscribeTopic: subscribeTopic,
	}
}

// Connect connects to the broker and subscribes the dispatcher to
// incoming command payloads. Decode failures are logged and dropped;
// the peer gets no reply over MQTT.
func (mc *Client) Connect(d *command.Dispatcher) error {
	if token := mc.client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}

	prefix := strings.Replace(mc.subscribeTopic, "#", "", 1)

	messageHandler := func(client pm.Client, msg pm.Message) {
		id := topicID(prefix, msg.Topic())
		if id == "" {
			return
		}

		payload := msg.Payload()
		logging.Debug("Received message for %s: %s", id, string(payload))

		go func() {
			if err := d.HandleMessage(context.Background(), id, payload); err != nil {
				logging.Warn("Dropping message for %s: %s", id, err)
			}
		}()
	}

	if token := mc.client.Subscribe(mc.subscribeTopic, 1, messageHandler); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	logging.Info("Subscribed to %s", mc.subscribeTopic)
	return nil
}

// Publish sends a payload to a topic below the base topic with QoS 1.
func (mc *Client) Publish(subtopic string, payload []byte) error {
	topic := mc.baseTopic + "/" + subtopic
	if token := mc.client.Publish(topic, 1, false, payload); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

func (mc *Client) Disconnect() {
	logging.Info("Disconnecting from MQTT")

	if token := mc.client.Unsubscribe(mc.subscribeTopic); token.Wait() && token.Error() != nil {
		logging.Warn("Error unsubscribing: %s", token.Error())
	}

	mc.client.Disconnect(250)
}

// topicID extracts the device id from a command topic. Empty means the
// topic is not ours or names no device.
func topicID(prefix string, topic string) string {
	if !strings.HasPrefix(topic, prefix) {
		return ""
	}
	return strings.Replace(topic, prefix, "", 1)
}

func onConnect(c pm.Client) {
	logging.Info("Connected to MQTT")
}

func onConnectionLost(c pm.Client, err error) {
	logging.Error("MQTT connection lost: %s", err)
}
