package model

import "time"

// LeadStatus represents the lifecycle state of a captured lead.
type LeadStatus string

const (
	LeadStatusActive       LeadStatus = "active"
	LeadStatusUnsubscribed LeadStatus = "unsubscribed"
)

// Lead is a captured alert subscription: an email address that wants to be
// notified about a query's results.
type Lead struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Query        string     `json:"query"`
	Source       string     `json:"source"`
	Status       LeadStatus `json:"status"`
	RequestCount int        `json:"request_count"`
	CreatedAt    time.Time  `json:"created_at"`
	LastActive   time.Time  `json:"last_active"`
}

// LeadStats summarizes captured leads for the admin view.
type LeadStats struct {
	TotalLeads    int            `json:"total_leads"`
	ActiveLeads   int            `json:"active_leads"`
	TopQueries    []QueryCount   `json:"top_queries"`
	LeadsBySource map[string]int `json:"leads_by_source"`
}

// QueryCount pairs a query with how many leads subscribed to it.
type QueryCount struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}
