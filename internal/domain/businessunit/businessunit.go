// Package businessunit defines the managed hotel property aggregate with its
// configuration groups: contact blocks, display formats, calculation settings,
// free-form config entries and the reporting database connection.
package businessunit

import "time"

// BusinessUnit is a hotel property under a cluster.
type BusinessUnit struct {
	ID          uint
	ClusterID   uint
	Code        string
	Name        string
	AliasName   string
	Description string
	IsHQ        bool
	IsActive    bool

	HotelContact   ContactInfo
	CompanyContact ContactInfo
	Tax            TaxInfo

	DateFormat      string
	ShortDateFormat string
	LongDateFormat  string
	TimeFormat      string
	DatetimeFormat  string

	AmountFormat   *NumberFormat
	QuantityFormat *NumberFormat
	CurrencyFormat *NumberFormat
	PercentFormat  *NumberFormat

	CalculationMethod string
	DefaultCurrencyID uint

	Config       []ConfigEntry
	DBConnection *DBConnection

	CreatedAt time.Time
	CreatedBy uint
	UpdatedAt time.Time
	UpdatedBy uint
}

// UserAssignment is the business-unit side of the user↔BU join relation.
type UserAssignment struct {
	ID             uint
	BusinessUnitID uint
	UserID         uint
	Role           string
	IsDefault      bool
	IsActive       bool

	// Denormalized for list rendering.
	Username string
	Email    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeConfig drops incomplete config entries. An entry needs both a key
// and a label to be addressable; anything else is UI noise.
func (b *BusinessUnit) NormalizeConfig() {
	kept := b.Config[:0]
	for _, entry := range b.Config {
		if entry.Key == "" || entry.Label == "" {
			continue
		}
		kept = append(kept, entry)
	}
	b.Config = kept
}
