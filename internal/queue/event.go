// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationQueueName is the durable queue reservation events are routed to.
const ReservationQueueName = "reservation.confirmed"

// ReservationConfirmedEvent is published when a reservation is submitted
// successfully.  It carries enough detail for consumers to log or notify
// without reading the session store.
type ReservationConfirmedEvent struct {
    SessionID   string  `json:"session_id"`
    VIN         string  `json:"vin"`
    Brand       string  `json:"brand"`
    Model       string  `json:"model"`
    RenterName  string  `json:"renter_name"`
    Email       string  `json:"email"`
    Phone       string  `json:"phone"`
    License     string  `json:"license"`
    StartDate   string  `json:"start_date"`
    Days        int     `json:"days"`
    PricePerDay float64 `json:"price_per_day"`
    Total       float64 `json:"total"`
    ConfirmedAt string  `json:"confirmed_at"`
}
