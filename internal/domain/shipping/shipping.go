package shipping

import (
	"context"
	"sort"
	"time"
)

// Province is a first-level administrative region
type Province struct {
	ID   int    `json:"id"`
	Name string `json:"province_name"`
}

// City is a regency or city inside a province
type City struct {
	ID         int    `json:"id"`
	ProvinceID int    `json:"province_id"`
	Type       string `json:"type"`
	Name       string `json:"city_name"`
	PostalCode string `json:"postal_code"`
}

// Subdistrict is a kecamatan inside a city
type Subdistrict struct {
	ID     int    `json:"id"`
	CityID int    `json:"city_id"`
	Name   string `json:"subdistrict_name"`
}

// CostQuery asks for delivery prices between two subdistricts
type CostQuery struct {
	Origin      int
	Destination int
	Weight      int
	Couriers    []string
}

// CostOption is one priced courier service
type CostOption struct {
	Courier     string `json:"courier"`
	CourierName string `json:"courier_name"`
	Service     string `json:"service"`
	Description string `json:"description"`
	Cost        int64  `json:"cost"`
	ETD         string `json:"etd"`
}

// WaybillEvent is one tracking checkpoint
type WaybillEvent struct {
	Time        time.Time `json:"time"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
}

// Waybill is the tracking state of a shipment
type Waybill struct {
	Number    string         `json:"waybill"`
	Courier   string         `json:"courier"`
	Status    string         `json:"status"`
	Delivered bool           `json:"delivered"`
	Receiver  string         `json:"receiver"`
	History   []WaybillEvent `json:"history"`
}

// DefaultCouriers are queried when the caller does not choose
var DefaultCouriers = []string{"jne", "pos", "tiki"}

// Provider is the port to the shipping and regional data service
type Provider interface {
	Provinces(ctx context.Context) ([]Province, error)
	Cities(ctx context.Context, provinceID int) ([]City, error)
	Subdistricts(ctx context.Context, cityID int) ([]Subdistrict, error)
	Cost(ctx context.Context, q CostQuery) ([]CostOption, error)
	Waybill(ctx context.Context, number, courier string) (*Waybill, error)
}

// SortByCost orders options from cheapest to most expensive, keeping
// the provider's order for equal prices
func SortByCost(options []CostOption) {
	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Cost < options[j].Cost
	})
}
