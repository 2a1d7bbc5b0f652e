package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type HealthHandler struct {
	DataServiceURL string
	RabbitMQ       *amqp091.Connection
	StartTime      time.Time
	http           *http.Client
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(dataServiceURL string, rabbitMQ *amqp091.Connection) *HealthHandler {
	return &HealthHandler{
		DataServiceURL: dataServiceURL,
		RabbitMQ:       rabbitMQ,
		StartTime:      time.Now(),
		http:           &http.Client{Timeout: 3 * time.Second},
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	// Check data service
	if h.DataServiceURL != "" {
		resp, err := h.http.Get(h.DataServiceURL + "/health")
		if err != nil {
			deps["data_service"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				deps["data_service"] = "healthy"
			} else {
				deps["data_service"] = fmt.Sprintf("unhealthy: status %d", resp.StatusCode)
			}
		}
	} else {
		deps["data_service"] = "not configured"
	}

	// Check RabbitMQ
	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	// Determine overall status
	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	uptime := time.Since(h.StartTime).Round(time.Second).String()

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       uptime,
		Dependencies: deps,
	}

	w.Header().Set("Content-Type", "application/json")
	if status == "degraded" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	json.NewEncoder(w).Encode(response)
}
