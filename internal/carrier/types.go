package carrier

import "github.com/shopspring/decimal"

// Item is one declared parcel. Weight is in grams, dimensions in centimetres.
type Item struct {
	SKU              string `json:"sku"`
	Weight           int    `json:"weight"`
	Height           int    `json:"height"`
	Width            int    `json:"width"`
	Length           int    `json:"length"`
	Description      string `json:"description"`
	ClassificationID int    `json:"classification_id"`
}

type Destination struct {
	Zipcode string `json:"zipcode"`
	Country string `json:"country"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Address string `json:"address,omitempty"`
}

type QuoteRequest struct {
	AccountID     string      `json:"account_id"`
	OriginID      string      `json:"origin_id"`
	DeclaredValue float64     `json:"declared_value"`
	Items         []Item      `json:"items"`
	Destination   Destination `json:"destination"`
}

type Recipient struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type ShipmentRequest struct {
	AccountID         string      `json:"account_id"`
	OriginID          string      `json:"origin_id"`
	ExternalReference string      `json:"external_reference"`
	DeclaredValue     float64     `json:"declared_value"`
	Items             []Item      `json:"items"`
	Destination       Destination `json:"destination"`
	Recipient         Recipient   `json:"recipient"`
}

type Shipment struct {
	ID     string
	Status string
	Price  decimal.Decimal
}
