// v1
// internal/config/config.go

// Package config resolves runtime settings for all three binaries by
// layering defaults, an optional .properties file, and environment
// variables, in that order of increasing precedence.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Node carries the settings shared by both device agents.
type Node struct {
	// DeviceID names this node in wire payloads and command lookups.
	DeviceID string
	// CoordinatorURL is the base URL of the coordinator the node polls.
	CoordinatorURL string
	// HTTPBind is the local admin API listen address.
	HTTPBind string
	// PollInterval is the loop tick period.
	PollInterval time.Duration
	// HTTPTimeout bounds every coordinator round-trip.
	HTTPTimeout time.Duration
	// OLEDLines and OLEDCols fix the display geometry for text layout.
	OLEDLines int
	OLEDCols  int
	// BreakerMaxFailures and BreakerResetTimeout tune the transport breaker.
	BreakerMaxFailures  int
	BreakerResetTimeout time.Duration
}

// SensorNode configures the sensor/display agent.
type SensorNode struct {
	Node
	// Source selects the reading source: "sim" or "serial".
	Source     string
	SerialPort string
	SerialBaud int
	// MQTTBroker enables telemetry fan-out when non-empty.
	MQTTBroker string
	MQTTTopic  string
}

// ActuatorNode configures the actuator agent.
type ActuatorNode struct {
	Node
	// Sink selects the peripheral sink: "log" or "serial".
	Sink       string
	SerialPort string
	SerialBaud int
}

// Coordsim configures the development coordinator.
type Coordsim struct {
	HTTPBind string
	// KafkaBrokers enables the event journal when non-empty.
	KafkaBrokers []string
	JournalTopic string
	// PostgresDSN enables sensor-history persistence when non-empty.
	PostgresDSN string
	// ShutdownTimeout limits graceful HTTP shutdown.
	ShutdownTimeout time.Duration
}

// LoadSensorNode resolves the sensor node configuration. The properties file
// defaults to configs/sensornode.properties and can be moved with
// SENSORNODE_PROPERTIES_PATH.
func LoadSensorNode() (SensorNode, error) {
	r, err := newResolver("SENSORNODE_PROPERTIES_PATH", "configs/sensornode.properties")
	if err != nil {
		return SensorNode{}, err
	}
	cfg := SensorNode{
		Node:       r.node("sensornode", ":8091"),
		Source:     r.str("sensor.source", "SENSOR_SOURCE", "sim"),
		SerialPort: r.str("serial.port", "SERIAL_PORT", "/dev/ttyUSB0"),
		SerialBaud: r.num("serial.baud", "SERIAL_BAUD", 115200),
		MQTTBroker: r.str("mqtt.broker", "MQTT_BROKER", ""),
		MQTTTopic:  r.str("mqtt.topic", "MQTT_TOPIC", "smartenv/readings"),
	}
	if cfg.Source != "sim" && cfg.Source != "serial" {
		return SensorNode{}, fmt.Errorf("sensor.source must be sim or serial, got %q", cfg.Source)
	}
	return cfg, cfg.Node.validate()
}

// LoadActuatorNode resolves the actuator node configuration from
// configs/actuatornode.properties / ACTUATORNODE_PROPERTIES_PATH.
func LoadActuatorNode() (ActuatorNode, error) {
	r, err := newResolver("ACTUATORNODE_PROPERTIES_PATH", "configs/actuatornode.properties")
	if err != nil {
		return ActuatorNode{}, err
	}
	cfg := ActuatorNode{
		Node:       r.node("actuatornode", ":8092"),
		Sink:       r.str("actuator.sink", "ACTUATOR_SINK", "log"),
		SerialPort: r.str("serial.port", "SERIAL_PORT", "/dev/ttyUSB0"),
		SerialBaud: r.num("serial.baud", "SERIAL_BAUD", 115200),
	}
	if cfg.Sink != "log" && cfg.Sink != "serial" {
		return ActuatorNode{}, fmt.Errorf("actuator.sink must be log or serial, got %q", cfg.Sink)
	}
	return cfg, cfg.Node.validate()
}

// LoadCoordsim resolves the coordinator simulator configuration from
// configs/coordsim.properties / COORDSIM_PROPERTIES_PATH.
func LoadCoordsim() (Coordsim, error) {
	r, err := newResolver("COORDSIM_PROPERTIES_PATH", "configs/coordsim.properties")
	if err != nil {
		return Coordsim{}, err
	}
	return Coordsim{
		HTTPBind:        r.str("http.bind", "HTTP_BIND", ":8090"),
		KafkaBrokers:    splitAndTrim(r.str("kafka.brokers", "KAFKA_BROKERS", "")),
		JournalTopic:    r.str("journal.topic", "JOURNAL_TOPIC", "smartenv.events"),
		PostgresDSN:     r.str("postgres.dsn", "POSTGRES_DSN", ""),
		ShutdownTimeout: r.ms("shutdown.timeout.ms", "SHUTDOWN_TIMEOUT_MS", 5000),
	}, nil
}

func (n Node) validate() error {
	if n.CoordinatorURL == "" {
		return errors.New("coordinator.url required")
	}
	if n.OLEDLines <= 0 || n.OLEDCols <= 0 {
		return fmt.Errorf("display geometry must be positive, got %dx%d", n.OLEDLines, n.OLEDCols)
	}
	return nil
}

// resolver looks a key up as env first, then properties, then the default.
type resolver struct {
	props map[string]string
}

func newResolver(pathEnv, defaultPath string) (*resolver, error) {
	path := strings.TrimSpace(os.Getenv(pathEnv))
	if path == "" {
		path = defaultPath
	}
	props, err := loadProperties(path)
	if err != nil {
		return nil, err
	}
	return &resolver{props: props}, nil
}

func (r *resolver) node(device, defaultBind string) Node {
	return Node{
		DeviceID:            r.str("device.id", "DEVICE_ID", device),
		CoordinatorURL:      strings.TrimRight(r.str("coordinator.url", "COORDINATOR_URL", "http://localhost:8090"), "/"),
		HTTPBind:            r.str("http.bind", "HTTP_BIND", defaultBind),
		PollInterval:        r.ms("poll.interval.ms", "POLL_INTERVAL_MS", 2000),
		HTTPTimeout:         r.ms("http.timeout.ms", "HTTP_TIMEOUT_MS", 5000),
		OLEDLines:           r.num("oled.lines", "OLED_LINES", 4),
		OLEDCols:            r.num("oled.cols", "OLED_COLS", 21),
		BreakerMaxFailures:  r.num("breaker.max.failures", "BREAKER_MAX_FAILURES", 3),
		BreakerResetTimeout: r.ms("breaker.reset.timeout.ms", "BREAKER_RESET_TIMEOUT_MS", 10000),
	}
}

func (r *resolver) str(propKey, envKey, def string) string {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v
	}
	if v, ok := r.props[propKey]; ok {
		return v
	}
	return def
}

func (r *resolver) num(propKey, envKey string, def int) int {
	if v, err := strconv.Atoi(r.str(propKey, envKey, "")); err == nil {
		return v
	}
	return def
}

func (r *resolver) ms(propKey, envKey string, defMillis int) time.Duration {
	return time.Duration(r.num(propKey, envKey, defMillis)) * time.Millisecond
}

// loadProperties reads key=value lines; # and // start comment lines. A
// missing file is not an error so every binary can boot on defaults alone.
func loadProperties(path string) (map[string]string, error) {
	props := map[string]string{}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return props, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		props[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return props, nil
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
