package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "dispatch",
	Pass: "dispatch",
	Name: "dispatch_db",
}

var defaultKafka = Kafka{
	GroupID:      "service-dispatch",
	OrdersTopic:  "order-events",
	DriversTopic: "driver-registrations",
}

var defaultOrdersGateway = OrdersGateway{
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    2 * time.Second,
}

var defaultRateLimit = RateLimit{
	Enabled:    false,
	Rate:       50,
	Burst:      100,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

var defaultDispatch = Dispatch{
	OperationTimeout: 3 * time.Second,
	ClaimAttempts:    3,
	ETAOffset:        15 * time.Minute,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultKafka returns the default Kafka settings. Brokers default to
// empty, which disables the worker consumer.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultOrdersGateway returns the default orders gateway settings.
func DefaultOrdersGateway() OrdersGateway {
	return defaultOrdersGateway
}

// DefaultRateLimit returns the default rate limiter settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// DefaultDispatch returns the default dispatch settings.
func DefaultDispatch() Dispatch {
	return defaultDispatch
}
