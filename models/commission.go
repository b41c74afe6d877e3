package models

// Totals holds a price in both currencies. CLP is integral; USD is rounded
// to cents.
type Totals struct {
	CLP int64   `json:"totalClp"`
	USD float64 `json:"totalUsd"`
}

// ExtraSelection is either a FlatSelection or a PackSelection.
type ExtraSelection interface {
	isExtraSelection()
}

// FlatSelection lists the extras chosen for a regular service.
type FlatSelection struct {
	ExtraIDs []string `json:"extraIds"`
}

// PackSelection lists the extras chosen per unit of a pack service.
type PackSelection struct {
	Units []UnitSelection `json:"units"`
}

func (FlatSelection) isExtraSelection() {}
func (PackSelection) isExtraSelection() {}

// UnitSelection holds the extras chosen for one unit of a pack.
type UnitSelection struct {
	EmoteNumber int      `json:"emoteNumber"`
	ExtraIDs    []string `json:"extraIds"`
}

// Selection is the input of one composition pass.
type Selection struct {
	ServiceID       string
	DetailLevelName string
	VariantID       string
	ThemeID         string
	CustomTheme     string
	Extras          ExtraSelection
}

// SelectionRequest represents a selection as sent by the storefront
// Example (flat): {"serviceId": "chibi", "extraIds": ["background"]}
// Example (pack): {"serviceId": "emotes", "units": [{"emoteNumber": 1, "extraIds": ["sparkle"]}]}
type SelectionRequest struct {
	ServiceID       string          `json:"serviceId"`
	DetailLevelName string          `json:"detailLevel,omitempty"`
	VariantID       string          `json:"variantId,omitempty"`
	ThemeID         string          `json:"themeId,omitempty"`
	CustomTheme     string          `json:"customTheme,omitempty"`
	ExtraIDs        []string        `json:"extraIds,omitempty"`
	Units           []UnitSelection `json:"units,omitempty"`
}

// ToSelection converts the request into a Selection. The extras mode is
// decided by the service's pack flag, never by which fields are present.
func (r SelectionRequest) ToSelection(isMultiUnitPack bool) Selection {
	sel := Selection{
		ServiceID:       r.ServiceID,
		DetailLevelName: r.DetailLevelName,
		VariantID:       r.VariantID,
		ThemeID:         r.ThemeID,
		CustomTheme:     r.CustomTheme,
	}
	if isMultiUnitPack {
		sel.Extras = PackSelection{Units: r.Units}
	} else {
		sel.Extras = FlatSelection{ExtraIDs: r.ExtraIDs}
	}
	return sel
}

// SelectedCommission is one composed cart line item. It is treated as an
// immutable value; edits are a remove followed by an add.
type SelectedCommission struct {
	LocalID         int64           `json:"localId"`
	ServiceID       string          `json:"serviceId"`
	ServiceName     string          `json:"serviceName"`
	DetailLevelName string          `json:"detailLevel,omitempty"`
	VariantID       string          `json:"variantId,omitempty"`
	ThemeID         string          `json:"themeId,omitempty"`
	CustomTheme     string          `json:"customTheme,omitempty"`
	IsPack          bool            `json:"isPack"`
	ExtraIDs        []string        `json:"extraIds,omitempty"`
	Units           []UnitSelection `json:"units,omitempty"`
	Totals          Totals          `json:"totals"`
}

// Selection rebuilds the selection payload the commission was composed from.
func (c SelectedCommission) Selection() Selection {
	sel := Selection{
		ServiceID:       c.ServiceID,
		DetailLevelName: c.DetailLevelName,
		VariantID:       c.VariantID,
		ThemeID:         c.ThemeID,
		CustomTheme:     c.CustomTheme,
	}
	if c.IsPack {
		sel.Extras = PackSelection{Units: c.Units}
	} else {
		sel.Extras = FlatSelection{ExtraIDs: c.ExtraIDs}
	}
	return sel
}

// LineKind identifies a line of a commission breakdown
type LineKind string

const (
	LineBase        LineKind = "base"
	LineVariant     LineKind = "variant"
	LineTheme       LineKind = "theme"
	LineCustomTheme LineKind = "custom_theme"
	LineExtra       LineKind = "extra"
	LineUnit        LineKind = "unit"
	LineUnitExtra   LineKind = "unit_extra"
	LineUnitEmpty   LineKind = "unit_empty"
)

// LineItem is one line of a commission breakdown. Unpriced lines (theme,
// unit headers) carry zero amounts.
type LineItem struct {
	Kind        LineKind `json:"kind"`
	Label       string   `json:"label"`
	EmoteNumber int      `json:"emoteNumber,omitempty"`
	CLP         int64    `json:"clp"`
	USD         float64  `json:"usd"`
	Priced      bool     `json:"priced"`
}

// ComposeResponse represents the response of a compose preview
type ComposeResponse struct {
	Commission SelectedCommission `json:"commission"`
	Lines      []LineItem         `json:"lines"`
}

// CartResponse represents the session cart
type CartResponse struct {
	Items  []SelectedCommission `json:"items"`
	Totals Totals               `json:"totals"`
}

// CheckoutResponse represents the result of handing the cart off to chat
type CheckoutResponse struct {
	Message string `json:"message"`
	Link    string `json:"link"`
	Totals  Totals `json:"totals"`
}
