package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	RoutingKeyCustomerStatusUpdated = "customer.status.updated"
	RoutingKeyHighRiskAlert         = "customer.risk.high"
	publisherAppID                  = "risk-dashboard"
)

type EventPublisher interface {
	PublishCustomerStatusUpdated(ctx context.Context, event CustomerStatusUpdatedEvent) error
	PublishHighRiskAlert(ctx context.Context, event HighRiskAlertEvent) error
}

type CustomerEventPayload struct {
	CustomerID           string  `json:"customerId"`
	Name                 string  `json:"name"`
	MonthlyIncome        float64 `json:"monthlyIncome"`
	MonthlyExpenses      float64 `json:"monthlyExpenses"`
	CreditScore          int     `json:"creditScore"`
	OutstandingLoans     float64 `json:"outstandingLoans"`
	LoanRepaymentHistory []int   `json:"loanRepaymentHistory"`
	AccountBalance       float64 `json:"accountBalance"`
	Status               string  `json:"status"`
}

type CustomerStatusUpdatedEvent struct {
	EventID        string               `json:"eventId"`
	Timestamp      time.Time            `json:"timestamp"`
	PreviousStatus string               `json:"previousStatus"`
	RiskScore      int                  `json:"riskScore"`
	Payload        CustomerEventPayload `json:"payload"`
}

type HighRiskAlertEvent struct {
	EventID    string    `json:"eventId"`
	Timestamp  time.Time `json:"timestamp"`
	CustomerID string    `json:"customerId"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	RiskScore  int       `json:"riskScore"`
}

func DecodeHighRiskAlert(body []byte) (HighRiskAlertEvent, error) {
	var alert HighRiskAlertEvent
	if err := json.Unmarshal(body, &alert); err != nil {
		return HighRiskAlertEvent{}, fmt.Errorf("failed to decode high risk alert: %w", err)
	}
	if alert.CustomerID == "" {
		return HighRiskAlertEvent{}, fmt.Errorf("failed to decode high risk alert: customerId is empty")
	}
	return alert, nil
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) PublishCustomerStatusUpdated(context.Context, CustomerStatusUpdatedEvent) error {
	return nil
}

func (NopPublisher) PublishHighRiskAlert(context.Context, HighRiskAlertEvent) error {
	return nil
}

var _ EventPublisher = NopPublisher{}
