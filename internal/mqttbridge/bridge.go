// Package mqttbridge mirrors the card views onto an MQTT broker and accepts
// card actions from it.
//
// Topics, under the configured prefix:
//
//	<prefix>/status              "online" / "offline" (retained, last will)
//	<prefix>/cards/<entity_id>     card view JSON (retained, empty when removed)
//	<prefix>/cards/<entity_id>/set action JSON, e.g. {"control":"toggle"}
//	<prefix>/failures            command failures
package mqttbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/wheelibin/hadash/internal/cards"
	"github.com/wheelibin/hadash/internal/commands"
	"github.com/wheelibin/hadash/internal/config"
)

const (
	qos = 1

	connectTimeout    = 10 * time.Second
	publishTimeout    = 5 * time.Second
	disconnectQuiesce = 1000 // milliseconds
)

type cardBoard interface {
	Views() []cards.View
	Act(ctx context.Context, entityID string, action cards.Action) (cards.View, error)
}

// the part of the paho client the bridge uses
type client interface {
	Connect() mqtt.Token
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token
	Disconnect(quiesce uint)
}

type Bridge struct {
	logger *log.Logger
	client client
	prefix string
	board  cardBoard
	ctx    context.Context
}

func NewBridge(logger *log.Logger, cfg config.MQTT, board cardBoard) *Bridge {
	b := &Bridge{
		logger: logger,
		prefix: strings.TrimSuffix(cfg.TopicPrefix, "/"),
		board:  board,
		ctx:    context.Background(),
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectTimeout(connectTimeout).
		SetWill(b.statusTopic(), "offline", qos, true).
		SetOnConnectHandler(func(mqtt.Client) { b.OnConnect() }).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			logger.Warn("MQTT connection lost", "err", err)
		})
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	b.client = mqtt.NewClient(opts)
	return b
}

// for callers that bring their own client, who then call OnConnect once connected
func NewBridgeWithClient(logger *log.Logger, c client, topicPrefix string, board cardBoard) *Bridge {
	return &Bridge{
		logger: logger,
		client: c,
		prefix: strings.TrimSuffix(topicPrefix, "/"),
		board:  board,
		ctx:    context.Background(),
	}
}

// the context is used for the actions received until Close
func (b *Bridge) Connect(ctx context.Context) error {
	b.ctx = ctx
	if err := wait(b.client.Connect(), connectTimeout); err != nil {
		return fmt.Errorf("error connecting to MQTT broker: %w", err)
	}
	return nil
}

func (b *Bridge) Close() {
	if err := wait(b.client.Publish(b.statusTopic(), qos, true, "offline"), publishTimeout); err != nil {
		b.logger.Warn("Error publishing offline status", "err", err)
	}
	b.client.Disconnect(disconnectQuiesce)
}

// subscribes and republishes every card, on the first connect and after each reconnect
func (b *Bridge) OnConnect() {
	b.logger.Info("MQTT connected", "prefix", b.prefix)

	if err := wait(b.client.Subscribe(b.prefix+"/cards/+/set", qos, b.handleSet), publishTimeout); err != nil {
		b.logger.Error("Error subscribing to card actions", "err", err)
	}
	b.client.Publish(b.statusTopic(), qos, true, "online")

	for _, view := range b.board.Views() {
		b.PublishCard(view)
	}
}

func (b *Bridge) PublishCard(view cards.View) {
	payload, err := json.Marshal(view)
	if err != nil {
		b.logger.Error("Error encoding card view", "entity", view.EntityID, "err", err)
		return
	}
	b.client.Publish(b.cardTopic(view.EntityID), qos, true, payload)
}

// an empty retained message clears the card from the broker
func (b *Bridge) PublishRemoved(entityID string) {
	b.client.Publish(b.cardTopic(entityID), qos, true, []byte{})
}

func (b *Bridge) PublishFailure(failure commands.Failure) {
	payload, err := json.Marshal(failure)
	if err != nil {
		b.logger.Error("Error encoding command failure", "err", err)
		return
	}
	b.client.Publish(b.prefix+"/failures", qos, false, payload)
}

func (b *Bridge) handleSet(_ mqtt.Client, msg mqtt.Message) {
	entityID, ok := b.entityFromSetTopic(msg.Topic())
	if !ok {
		b.logger.Warn("Ignoring message on unexpected topic", "topic", msg.Topic())
		return
	}

	var action cards.Action
	if err := json.Unmarshal(msg.Payload(), &action); err != nil {
		b.logger.Warn("Ignoring invalid card action", "entity", entityID, "err", err)
		return
	}

	if _, err := b.board.Act(b.ctx, entityID, action); err != nil {
		b.logger.Warn("Card action failed", "entity", entityID, "control", action.Control, "err", err)
	}
}

func (b *Bridge) entityFromSetTopic(topic string) (string, bool) {
	rest, found := strings.CutPrefix(topic, b.prefix+"/cards/")
	if !found {
		return "", false
	}
	entityID, found := strings.CutSuffix(rest, "/set")
	if !found || entityID == "" || strings.Contains(entityID, "/") {
		return "", false
	}
	return entityID, true
}

func (b *Bridge) cardTopic(entityID string) string {
	return b.prefix + "/cards/" + entityID
}

func (b *Bridge) statusTopic() string {
	return b.prefix + "/status"
}

func wait(token mqtt.Token, timeout time.Duration) error {
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("timed out after %s", timeout)
	}
	return token.Error()
}
