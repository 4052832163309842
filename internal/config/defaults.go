package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "freight_db",
}

var defaultKafka = Kafka{
	Brokers: nil, // consumer disabled unless brokers are configured
	GroupID: "freight-broker-worker",
	Topic:   "load-events",
}

var defaultBroker = Broker{
	OperationTimeout: 3 * time.Second,
	RematchInterval:  15 * time.Second,
}

var defaultAddressGateway = AddressGateway{
	BaseURL:     "",
	Timeout:     2 * time.Second,
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    200 * time.Millisecond,
}

var defaultRateLimit = RateLimit{
	Enabled:    false,
	Rate:       50,
	Burst:      100,
	TTL:        10 * time.Minute,
	MaxBuckets: 100_000,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultKafka returns the default Kafka consumer settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultBroker returns the default brokerage engine settings.
func DefaultBroker() Broker {
	return defaultBroker
}

// DefaultAddressGateway returns the default address gateway settings.
func DefaultAddressGateway() AddressGateway {
	return defaultAddressGateway
}

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}
