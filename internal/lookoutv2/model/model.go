package model

import (
	"time"
)

const (
	MatchExact      = "exact"
	MatchAnyOf      = "anyOf"
	MatchStartsWith = "startsWith"
	MatchContains   = "contains"

	DirectionAsc  = "ASC"
	DirectionDesc = "DESC"
)

type Job struct {
	Annotations        map[string]string `json:"annotations,omitempty"`
	Cancelled          *time.Time        `json:"cancelled,omitempty"`
	JobId              string            `json:"jobId"`
	JobSet             string            `json:"jobSet"`
	LastTransitionTime time.Time         `json:"lastTransitionTime"`
	Namespace          *string           `json:"namespace,omitempty"`
	Owner              string            `json:"owner"`
	Priority           int64             `json:"priority"`
	PriorityClass      *string           `json:"priorityClass,omitempty"`
	Queue              string            `json:"queue"`
	State              string            `json:"state"`
	Submitted          time.Time         `json:"submitted"`
}

type Filter struct {
	Field        string      `json:"field"`
	Match        string      `json:"match"`
	Value        interface{} `json:"value"`
	IsAnnotation bool        `json:"isAnnotation,omitempty"`
}

type Order struct {
	Direction string `json:"direction"`
	Field     string `json:"field"`
}

// DefaultOrder sorts jobs oldest first, which keeps paging stable while jobs are being submitted.
func DefaultOrder() *Order {
	return &Order{Field: "jobId", Direction: DirectionAsc}
}
