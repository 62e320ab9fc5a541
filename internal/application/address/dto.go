package address

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/address"
)

// AddressResponse represents an address in API responses
type AddressResponse struct {
	ID              uuid.UUID `json:"id"`
	PersonName      string    `json:"person_name"`
	PhoneNumber     string    `json:"phone_number"`
	PlaceName       string    `json:"place_name"`
	ProvinceID      int       `json:"ro_province_id"`
	CityID          int       `json:"ro_city_id"`
	SubdistrictID   int       `json:"ro_subdistrict_id"`
	ProvinceName    string    `json:"province_name"`
	CityName        string    `json:"city_name"`
	SubdistrictName string    `json:"subdistrict_name"`
	Address         string    `json:"address"`
	Description     string    `json:"description"`
	Lat             *float64  `json:"lat"`
	Long            *float64  `json:"long"`
	Main            bool      `json:"main"`
	FullAddress     string    `json:"full_address"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// StoreInput is the store-or-update payload. ID selects the address to
// update; Main requests the address to become the main one.
type StoreInput struct {
	ID   *uuid.UUID
	Main bool
	address.Input
}

// ToAddressResponse converts a domain Address
func ToAddressResponse(a *address.Address) AddressResponse {
	return AddressResponse{
		ID:              a.ID,
		PersonName:      a.PersonName,
		PhoneNumber:     a.PhoneNumber,
		PlaceName:       a.PlaceName,
		ProvinceID:      a.ProvinceID,
		CityID:          a.CityID,
		SubdistrictID:   a.SubdistrictID,
		ProvinceName:    a.ProvinceName,
		CityName:        a.CityName,
		SubdistrictName: a.SubdistrictName,
		Address:         a.Address,
		Description:     a.Description,
		Lat:             a.Lat,
		Long:            a.Long,
		Main:            a.Main,
		FullAddress:     a.FullText(),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// ToAddressResponses converts a slice of addresses
func ToAddressResponses(addresses []address.Address) []AddressResponse {
	out := make([]AddressResponse, len(addresses))
	for i := range addresses {
		out[i] = ToAddressResponse(&addresses[i])
	}
	return out
}
