package domain

type Driver struct {
	ID             string `json:"id" validate:"required,excludesall=0x2C\r\n"`
	Name           string `json:"name" validate:"required,excludesall=0x2C\r\n"`
	ContactInfo    string `json:"contactInfo" validate:"required,excludesall=0x2C\r\n"`
	LicenseDetails string `json:"licenseDetails" validate:"required,excludesall=0x2C\r\n"`
}

func (d Driver) Key() string {
	return d.ID
}

// DayOffRequest é registrada pelo motorista e apenas listada pelo administrador.
type DayOffRequest struct {
	DriverID string `json:"driverId" validate:"required"`
	Date     string `json:"date" validate:"required"`
	Reason   string `json:"reason"`
}
