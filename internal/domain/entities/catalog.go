package entities

// Reference entities owned by the workshop backend. This service only decodes
// them; ids are assigned server-side and never mutated here.

// Client is a customer. Optional fields arrive as JSON null and decode to "".
type Client struct {
	ID       int64  `json:"id"`
	Name     string `json:"nombre"`
	Document string `json:"documento"`
	Phone    string `json:"telefono"`
	Email    string `json:"correo"`
	Company  string `json:"empresa"`
}

// Equipment is a machine owned by exactly one client.
type Equipment struct {
	ID          int64   `json:"id"`
	Brand       string  `json:"marca"`
	Model       string  `json:"modelo"`
	Serial      string  `json:"serial"`
	Description string  `json:"descripcion"`
	ClientID    int64   `json:"clienteId"`
	Client      *Client `json:"cliente"`
}

// Part is a catalog item. The backend treats Code as a natural dedup key.
type Part struct {
	ID          int64   `json:"id"`
	Code        string  `json:"codigo"`
	Description string  `json:"descripcion"`
	UnitCost    float64 `json:"costo"`
	GlobalStock int     `json:"stockGlobal"`
}

// Technician is a user that can be assigned to orders.
type Technician struct {
	ID     int64  `json:"id"`
	Name   string `json:"nombre"`
	Email  string `json:"email"`
	SiteID *int64 `json:"sedeId"`
}

// Site is a physical workshop location, read-only reference data for the
// admin site picker.
type Site struct {
	ID      int64  `json:"id"`
	Name    string `json:"nombre"`
	City    string `json:"ciudad"`
	Address string `json:"direccion"`
	Active  bool   `json:"activa"`
}
