package model

import (
	"fmt"
	"strings"
)

// Lead represents one lead record as served by the records endpoint.
// Dates stay as the server's ISO strings; the panel only displays them.
type Lead struct {
	EnrollDate string `json:"data_inscricao"`
	Name       string `json:"nome"`
	Document   string `json:"cpf"`
	Phone      string `json:"celular"`
	Email      string `json:"email"`
	Origin     string `json:"origem"`
	Hub        string `json:"polo"`
	Course     string `json:"curso"`
	Status     string `json:"status"`
	Advisor    string `json:"consultor"`
}

// Dimension is a filterable attribute of a lead record.
type Dimension string

const (
	DimStatus Dimension = "status"
	DimCourse Dimension = "course"
	DimHub    Dimension = "hub"
	DimOrigin Dimension = "origin"
)

// Dimensions lists the multi-valued filter axes in display order.
var Dimensions = []Dimension{DimStatus, DimCourse, DimHub, DimOrigin}

// Key returns the query-parameter name the server expects for the dimension.
// The wire contract predates this client and uses Portuguese names.
func (d Dimension) Key() string {
	switch d {
	case DimStatus:
		return "status"
	case DimCourse:
		return "curso"
	case DimHub:
		return "polo"
	case DimOrigin:
		return "origem"
	}
	return string(d)
}

// Title returns the human-readable label for the dimension.
func (d Dimension) Title() string {
	switch d {
	case DimStatus:
		return "Status"
	case DimCourse:
		return "Course"
	case DimHub:
		return "Hub"
	case DimOrigin:
		return "Origin"
	}
	return string(d)
}

// IsValid returns true if the dimension is a recognized axis.
func (d Dimension) IsValid() bool {
	switch d {
	case DimStatus, DimCourse, DimHub, DimOrigin:
		return true
	}
	return false
}

// ParseDimension maps an identifier or wire key to a Dimension.
func ParseDimension(s string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "status":
		return DimStatus, nil
	case "course", "curso":
		return DimCourse, nil
	case "hub", "polo":
		return DimHub, nil
	case "origin", "origem":
		return DimOrigin, nil
	}
	return "", fmt.Errorf("unknown dimension: %q", s)
}

// StatusCount is one entry of the by-status KPI breakdown.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"cnt"`
}

// KPISummary holds the aggregate figures for the current filter state.
type KPISummary struct {
	Total     int           `json:"total"`
	LastDate  string        `json:"last_date"`
	TopStatus *StatusCount  `json:"top_status"`
	ByStatus  []StatusCount `json:"by_status"`
}
