package address

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Address is a shipping address of a user. The region ids refer to the
// shipping provider's province, city and subdistrict tables.
type Address struct {
	shared.BaseEntity
	UserID          uuid.UUID
	PersonName      string
	PhoneNumber     string
	PlaceName       string
	ProvinceID      int
	CityID          int
	SubdistrictID   int
	ProvinceName    string
	CityName        string
	SubdistrictName string
	Address         string
	Description     string
	Lat             *float64
	Long            *float64
	Main            bool
}

// Input carries the editable address fields
type Input struct {
	PersonName    string
	PhoneNumber   string
	PlaceName     string
	ProvinceID    int
	CityID        int
	SubdistrictID int
	Address       string
	Description   string
	Lat           *float64
	Long          *float64
}

// RegionNames are the display names resolved for the region ids
type RegionNames struct {
	Province    string
	City        string
	Subdistrict string
}

// New creates an address owned by userID
func New(userID uuid.UUID, in Input) (*Address, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User is required")
	}
	a := &Address{BaseEntity: shared.NewBaseEntity(), UserID: userID}
	if err := a.Apply(in); err != nil {
		return nil, err
	}
	return a, nil
}

// Apply validates in and copies it onto the address
func (a *Address) Apply(in Input) error {
	if err := validate(in); err != nil {
		return err
	}
	regionChanged := a.SubdistrictID != in.SubdistrictID || a.CityID != in.CityID || a.ProvinceID != in.ProvinceID

	a.PersonName = strings.TrimSpace(in.PersonName)
	a.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	a.PlaceName = strings.TrimSpace(in.PlaceName)
	a.ProvinceID = in.ProvinceID
	a.CityID = in.CityID
	a.SubdistrictID = in.SubdistrictID
	a.Address = strings.TrimSpace(in.Address)
	a.Description = in.Description
	a.Lat = in.Lat
	a.Long = in.Long
	if regionChanged {
		a.ProvinceName, a.CityName, a.SubdistrictName = "", "", ""
	}
	a.Touch()
	return nil
}

// SetRegionNames stores the resolved region names
func (a *Address) SetRegionNames(n RegionNames) {
	a.ProvinceName = n.Province
	a.CityName = n.City
	a.SubdistrictName = n.Subdistrict
}

// IsOwnedBy returns true if the address belongs to userID
func (a *Address) IsOwnedBy(userID uuid.UUID) bool {
	return a.UserID == userID
}

// FullText renders the address on one line for labels
func (a *Address) FullText() string {
	parts := []string{a.Address}
	for _, p := range []string{a.SubdistrictName, a.CityName, a.ProvinceName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func validate(in Input) error {
	required := []struct{ field, value string }{
		{"person_name", in.PersonName},
		{"phone_number", in.PhoneNumber},
		{"place_name", in.PlaceName},
		{"address", in.Address},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return shared.NewDomainError("INVALID_ADDRESS", r.field+" is required")
		}
		if r.field != "address" && utf8.RuneCountInString(r.value) > 255 {
			return shared.NewDomainError("INVALID_ADDRESS", r.field+" cannot exceed 255 characters")
		}
	}
	if in.ProvinceID <= 0 || in.CityID <= 0 || in.SubdistrictID <= 0 {
		return shared.NewDomainError("INVALID_REGION", "Province, city and subdistrict are required")
	}
	if in.Lat != nil && (*in.Lat < -90 || *in.Lat > 90) {
		return shared.NewDomainError("INVALID_COORDINATE", "Latitude must be between -90 and 90")
	}
	if in.Long != nil && (*in.Long < -180 || *in.Long > 180) {
		return shared.NewDomainError("INVALID_COORDINATE", "Longitude must be between -180 and 180")
	}
	return nil
}
