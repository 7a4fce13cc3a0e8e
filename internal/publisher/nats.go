package publisher

import (
	"encoding/json"
	"log"
	"time"

	"github.com/nats-io/nats.go"
)

const resultSubject = "routes.optimized"

// PublisherMetrics is implemented by the composition root to observe
// event traffic without coupling this package to a metrics registry.
type PublisherMetrics interface {
	PublishedInc()
	PublishErrInc()
	SetConnected(connected bool)
}

// NATSPublisher emits a summary event for every completed optimization so
// downstream consumers (dashboards, dispatch systems) can react without
// polling the history endpoint.
type NATSPublisher struct {
	nc      *nats.Conn
	metrics PublisherMetrics
}

func NewNATSPublisher(url string, m PublisherMetrics) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("route-optimizer-service"),
		nats.DisconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.SetConnected(false)
			}
			log.Printf("nats disconnected")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.SetConnected(true)
			}
			log.Printf("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if m != nil {
				m.SetConnected(false)
			}
			log.Printf("nats closed")
		}),
	)
	if err != nil {
		return nil, err
	}
	if m != nil {
		m.SetConnected(true)
	}
	return &NATSPublisher{nc: nc, metrics: m}, nil
}

func (p *NATSPublisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		p.nc.Close()
	}
}

type OptimizationEvent struct {
	ID                   string    `json:"id"`
	Timestamp            time.Time `json:"timestamp"`
	StopCount            int       `json:"stop_count"`
	TransportMode        string    `json:"transport_mode"`
	Objective            string    `json:"objective"`
	Route                []int     `json:"route"`
	TotalDurationSeconds float64   `json:"total_duration_seconds"`
	TotalDistanceMeters  float64   `json:"total_distance_meters"`
}

func (p *NATSPublisher) PublishOptimization(evt OptimizationEvent) error {
	b, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	err = p.nc.Publish(resultSubject, b)
	if p.metrics != nil {
		if err != nil {
			p.metrics.PublishErrInc()
		} else {
			p.metrics.PublishedInc()
		}
	}
	return err
}
