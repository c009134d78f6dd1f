package entities

import "time"

// CollectionPoint é um local físico de entrega de resíduos
type CollectionPoint struct {
	ID            uint
	Name          string
	Description   string
	Accessibility *string
	Capacity      *string
	Images        []string
	IsActive      bool
	OperatorID    string
	Operator      *OperatorSummary
	Address       *Address
	Schedule      *Schedule
	WasteTypes    []WasteType
	Reviews       []Review
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OperatorSummary é o operador com apenas nome e email do usuário (nunca a senha)
type OperatorSummary struct {
	UserID           string
	OrganizationName string
	Telephone        string
	Website          *string
	UserName         string
	UserEmail        string
}

// Address é o endereço 1:1 de um ponto de coleta
type Address struct {
	Street    string
	Number    *string
	City      string
	Zip       string
	Country   string
	Latitude  float64
	Longitude float64
}

// Schedule é o horário 0:1 de um ponto de coleta
type Schedule struct {
	Monday       bool
	Tuesday      bool
	Wednesday    bool
	Thursday     bool
	Friday       bool
	Saturday     bool
	Sunday       bool
	OpeningTime  *string
	ClosingTime  *string
	Notes        *string
	IsAlwaysOpen bool
}

// WasteType é uma entidade de lookup de tipo de resíduo
type WasteType struct {
	ID          uint
	Name        string
	Color       *string
	Icon        *string
	Description *string
}

// Review é uma avaliação de um ponto de coleta (somente leitura aqui)
type Review struct {
	ID          uint
	Rating      int
	Comment     *string
	UserID      string
	UserName    string
	UserSurname *string
	CreatedAt   time.Time
}

// Coordinates é a projeção usada pelo mapa
type Coordinates struct {
	ID      uint
	Name    string
	Address *Address
}
