// Package mirror republishes accepted dryer snapshots to an MQTT broker.
package mirror

import (
	"fmt"
	"time"

	"filament_dryer/internal/logger"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type ClientConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
}

// Connect opens an auto-reconnecting MQTT connection.
func Connect(cfg ClientConfig, log *logger.Logger) (mqtt.Client, error) {
	log = log.Named("mqtt")

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetAutoReconnect(true)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetOnConnectHandler(func(mqtt.Client) {
		log.Infow("mqtt_connected", "broker", cfg.Broker)
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Warnw("mqtt_connection_lost", "err", err)
	})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to mqtt broker %s: %w", cfg.Broker, token.Error())
	}
	return client, nil
}
