package businessunit

import (
	"fmt"

	"golang.org/x/text/language"
)

// ContactInfo is one grouped contact block (hotel or company).
type ContactInfo struct {
	Name    string `json:"name,omitempty"`
	Tel     string `json:"tel,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
	Zip     string `json:"zip,omitempty"`
}

// TaxInfo is the company tax registration block.
type TaxInfo struct {
	TaxID    string  `json:"tax_id,omitempty"`
	BranchNo string  `json:"branch_no,omitempty"`
	TaxRate  float64 `json:"tax_rate,omitempty"`
}

// NumberFormat describes how a numeric column is rendered. Locales is a
// BCP-47 tag such as "th-TH"; the digit fields follow the Intl.NumberFormat
// option names the platform has always used on the wire.
type NumberFormat struct {
	Locales               string `json:"locales"`
	MinimumIntegerDigits  int    `json:"minimumIntegerDigits,omitempty"`
	MinimumFractionDigits int    `json:"minimumFractionDigits,omitempty"`
	MaximumFractionDigits int    `json:"maximumFractionDigits,omitempty"`
}

// Validate checks the locales tag and digit ranges.
func (f *NumberFormat) Validate() error {
	if f.Locales == "" {
		return fmt.Errorf("number format requires a locales tag")
	}
	if _, err := language.Parse(f.Locales); err != nil {
		return fmt.Errorf("invalid locales tag %q: %w", f.Locales, err)
	}
	if f.MinimumIntegerDigits < 0 || f.MinimumIntegerDigits > 21 {
		return fmt.Errorf("minimumIntegerDigits out of range: %d", f.MinimumIntegerDigits)
	}
	if f.MinimumFractionDigits < 0 || f.MinimumFractionDigits > 20 {
		return fmt.Errorf("minimumFractionDigits out of range: %d", f.MinimumFractionDigits)
	}
	if f.MaximumFractionDigits < 0 || f.MaximumFractionDigits > 20 {
		return fmt.Errorf("maximumFractionDigits out of range: %d", f.MaximumFractionDigits)
	}
	if f.MaximumFractionDigits > 0 && f.MinimumFractionDigits > f.MaximumFractionDigits {
		return fmt.Errorf("minimumFractionDigits exceeds maximumFractionDigits")
	}
	return nil
}

// ConfigEntry is one free-form configuration row.
type ConfigEntry struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	DataType string `json:"data_type"`
	Value    any    `json:"value"`
}

// DBConnection is the reporting database connection descriptor.
type DBConnection struct {
	Driver   string            `json:"driver"`
	Host     string            `json:"host"`
	Port     int               `json:"port,omitempty"`
	Database string            `json:"database"`
	Username string            `json:"username,omitempty"`
	Password string            `json:"password,omitempty"`
	Options  map[string]string `json:"options,omitempty"`
}

const maskedPassword = "********"

// Masked returns a copy safe to put on the wire.
func (d *DBConnection) Masked() *DBConnection {
	if d == nil {
		return nil
	}
	masked := *d
	if masked.Password != "" {
		masked.Password = maskedPassword
	}
	return &masked
}

// IsMaskedPassword reports whether p is the mask placeholder, meaning the
// client sent back an unchanged connection blob.
func IsMaskedPassword(p string) bool {
	return p == maskedPassword
}
