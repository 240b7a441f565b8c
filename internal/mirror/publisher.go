package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"filament_dryer/internal/logger"
	"filament_dryer/internal/models"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	defaultQueueSize = 32
	publishQoS       = 1
	publishTimeout   = 5 * time.Second
)

// Message is the JSON body published for every snapshot.
type Message struct {
	models.DeviceSnapshot
	MirroredAt time.Time `json:"mirroredAt"`
}

// Publisher drains a queue of snapshots onto one topic.
type Publisher struct {
	client mqtt.Client
	topic  string
	queue  chan Message
	clock  func() time.Time
	log    *logger.Logger
}

func NewPublisher(client mqtt.Client, topic string, queueSize int, log *logger.Logger) *Publisher {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Publisher{
		client: client,
		topic:  topic,
		queue:  make(chan Message, queueSize),
		clock:  time.Now,
		log:    log.Named("mirror"),
	}
}

// Enqueue never blocks; it reports false when the snapshot was dropped.
func (p *Publisher) Enqueue(s models.DeviceSnapshot) bool {
	select {
	case p.queue <- Message{DeviceSnapshot: s, MirroredAt: p.clock().UTC()}:
		return true
	default:
		return false
	}
}

// Start publishes queued snapshots until ctx is canceled.
func (p *Publisher) Start(ctx context.Context) {
	p.log.Infow("mirror_started", "topic", p.topic)
	for {
		select {
		case <-ctx.Done():
			p.log.Infow("mirror_stopped")
			return
		case msg := <-p.queue:
			if err := p.publish(msg); err != nil {
				p.log.Warnw("mirror_publish_failed", "topic", p.topic, "err", err)
			}
		}
	}
}

func (p *Publisher) publish(msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	token := p.client.Publish(p.topic, publishQoS, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s: timed out", p.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", p.topic, err)
	}
	return nil
}
