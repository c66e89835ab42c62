package domain

import "time"

// DashboardSnapshot is the pre-aggregated admin dashboard payload.
type DashboardSnapshot struct {
	LeadsByStatus  map[string]int  `json:"leads_by_status"`
	LeadsPerDay    []DayCount      `json:"leads_per_day"`
	OrdersByStatus map[string]int  `json:"orders_by_status"`
	RevenueCents   int64           `json:"revenue_cents"`
	TopProducts    []ProductVolume `json:"top_products"`
	DateFrom       string          `json:"date_from"`
	DateTo         string          `json:"date_to"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type ProductVolume struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}
