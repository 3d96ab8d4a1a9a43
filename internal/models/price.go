package models

import "encoding/json"

// CurrencyGBP es la única moneda soportada
const CurrencyGBP = "GBP"

// PriceInfo es el precio embebido en productos, recambios y packs
type PriceInfo struct {
	IncVAT           *float64 `json:"inc_vat" bson:"inc_vat" validate:"required,gte=0"`
	ExVAT            *float64 `json:"ex_vat" bson:"ex_vat" validate:"required,gte=0"`
	Currency         string   `json:"currency" bson:"currency" validate:"omitempty,oneof=GBP"`
	FinanceAvailable bool     `json:"finance_available" bson:"finance_available"`
}

func (p *PriceInfo) UnmarshalJSON(data []byte) error {
	type alias PriceInfo
	a := alias{Currency: CurrencyGBP, FinanceAvailable: true}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = PriceInfo(a)
	return nil
}

// Amount devuelve el importe como puntero para los campos obligatorios
func Amount(v float64) *float64 {
	return &v
}

// Price construye un precio en GBP con financiación disponible
func Price(incVAT, exVAT float64) PriceInfo {
	return PriceInfo{IncVAT: Amount(incVAT), ExVAT: Amount(exVAT), Currency: CurrencyGBP, FinanceAvailable: true}
}

// Gross devuelve el precio con IVA, 0 si no está informado
func (p PriceInfo) Gross() float64 {
	if p.IncVAT == nil {
		return 0
	}
	return *p.IncVAT
}

func (p *PriceInfo) applyDefaults() {
	if p.Currency == "" {
		p.Currency = CurrencyGBP
	}
}

// Media agrupa imágenes y vídeos de un producto
type Media struct {
	Images     []string `json:"images" bson:"images" validate:"dive,http_url"`
	VideoURL   string   `json:"video_url,omitempty" bson:"video_url,omitempty" validate:"omitempty,http_url"`
	Spin360URL string   `json:"spin_360_url,omitempty" bson:"spin_360_url,omitempty" validate:"omitempty,http_url"`
}

func (m *Media) applyDefaults() {
	if m.Images == nil {
		m.Images = []string{}
	}
}

// FirstImage devuelve la primera imagen o "" si no hay ninguna
func (m Media) FirstImage() string {
	if len(m.Images) == 0 {
		return ""
	}
	return m.Images[0]
}

// SpecItem es un par etiqueta/valor de la ficha técnica
type SpecItem struct {
	Label string `json:"label" bson:"label" validate:"required"`
	Value string `json:"value" bson:"value" validate:"required"`
}
