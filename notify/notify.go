package notify

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"sentinelharness/model"
)

// Subject carries one JSON-encoded verdict per finished test case.
const Subject = "sentinel.harness.verdicts"

// Publisher streams verdicts to NATS so CI dashboards can follow a run
// without scraping harness output.
type Publisher struct {
	nc *nats.Conn
}

// Connect dials the NATS server. Callers only construct a Publisher
// when a server URL is configured.
func Connect(url string) (*Publisher, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	return &Publisher{nc: nc}, nil
}

// Publish sends one verdict.
func (p *Publisher) Publish(v model.Verdict) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}
	return p.nc.Publish(Subject, data)
}

// Close flushes and drops the connection.
func (p *Publisher) Close() {
	p.nc.Flush()
	p.nc.Close()
}
