package carmen

import "time"

// Paginate is the paging block of a list response.
type Paginate struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Perpage int   `json:"perpage"`
}

// Cluster is a tenant region.
type Cluster struct {
	ID          uint      `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	BUCount     int64     `json:"bu_count"`
	UsersCount  int64     `json:"users_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ClusterUser is an account assignment on a cluster.
type ClusterUser struct {
	ClusterID uint   `json:"cluster_id"`
	UserID    uint   `json:"user_id"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	IsActive  bool   `json:"is_active"`
}

// ContactInfo is a structured contact block on a business unit.
type ContactInfo struct {
	Name      string `json:"name,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	Country   string `json:"country,omitempty"`
	ZipCode   string `json:"zip_code,omitempty"`
	Telephone string `json:"telephone,omitempty"`
	Email     string `json:"email,omitempty"`
}

// NumberFormat describes how a numeric column is rendered.
type NumberFormat struct {
	Locales               string `json:"locales"`
	MinimumIntegerDigits  int    `json:"minimumIntegerDigits,omitempty"`
	MinimumFractionDigits int    `json:"minimumFractionDigits,omitempty"`
	MaximumFractionDigits int    `json:"maximumFractionDigits,omitempty"`
}

// ConfigEntry is one key of a business unit's configuration document.
type ConfigEntry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value any    `json:"value,omitempty"`
}

// DBConnection is a business unit's reporting database handle. Password is
// always masked on reads.
type DBConnection struct {
	Driver   string `json:"driver,omitempty"`
	Host     string `json:"host,omitempty"`
	Port     int    `json:"port,omitempty"`
	Database string `json:"database,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// BusinessUnit is a property under a cluster.
type BusinessUnit struct {
	ID                uint          `json:"id"`
	ClusterID         uint          `json:"cluster_id"`
	Code              string        `json:"code"`
	Name              string        `json:"name"`
	AliasName         string        `json:"alias_name,omitempty"`
	Description       string        `json:"description,omitempty"`
	IsHQ              bool          `json:"is_hq"`
	IsActive          bool          `json:"is_active"`
	HotelContact      *ContactInfo  `json:"hotel_contact,omitempty"`
	CompanyContact    *ContactInfo  `json:"company_contact,omitempty"`
	AmountFormat      *NumberFormat `json:"amount_format,omitempty"`
	QuantityFormat    *NumberFormat `json:"quantity_format,omitempty"`
	CurrencyFormat    *NumberFormat `json:"currency_format,omitempty"`
	PercentFormat     *NumberFormat `json:"percent_format,omitempty"`
	CalculationMethod string        `json:"calculation_method,omitempty"`
	Config            []ConfigEntry `json:"config,omitempty"`
	DBConnection      *DBConnection `json:"db_connection,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// BusinessUnitUser is an account assignment on a business unit.
type BusinessUnitUser struct {
	BusinessUnitID uint   `json:"business_unit_id"`
	UserID         uint   `json:"user_id"`
	Username       string `json:"username,omitempty"`
	Email          string `json:"email,omitempty"`
	Role           string `json:"role,omitempty"`
	IsDefault      bool   `json:"is_default"`
	IsActive       bool   `json:"is_active"`
}

// User is a platform account.
type User struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PlatformRole string    `json:"platform_role"`
	AliasName    string    `json:"alias_name,omitempty"`
	FirstName    string    `json:"first_name,omitempty"`
	MiddleName   string    `json:"middle_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	DisplayName  string    `json:"display_name"`
	Telephone    string    `json:"telephone,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ClusterAssignment is a profile row linking the account to a cluster.
type ClusterAssignment struct {
	ClusterID   uint   `json:"cluster_id"`
	ClusterCode string `json:"cluster_code"`
	ClusterName string `json:"cluster_name"`
	Role        string `json:"role"`
	IsActive    bool   `json:"is_active"`
}

// BusinessUnitAssignment is a profile row linking the account to a unit.
type BusinessUnitAssignment struct {
	BusinessUnitID   uint   `json:"business_unit_id"`
	BusinessUnitCode string `json:"business_unit_code"`
	BusinessUnitName string `json:"business_unit_name"`
	Role             string `json:"role"`
	IsDefault        bool   `json:"is_default"`
	IsActive         bool   `json:"is_active"`
}

// Profile is the signed-in account plus its assignments.
type Profile struct {
	User
	Clusters      []ClusterAssignment      `json:"clusters"`
	BusinessUnits []BusinessUnitAssignment `json:"business_units"`
}
