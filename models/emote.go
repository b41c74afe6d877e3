package models

// EmoteConfig customises the label and description of one unit of a pack
type EmoteConfig struct {
	ID          string `json:"id"`
	ServiceID   string `json:"serviceId"`
	EmoteNumber int    `json:"emoteNumber"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
}

// EmoteExtraAvailability is an explicit availability override for an extra
// on one unit of a pack. A missing row means the extra is available.
type EmoteExtraAvailability struct {
	ID          string `json:"id"`
	ServiceID   string `json:"serviceId"`
	ExtraID     string `json:"extraId"`
	EmoteNumber int    `json:"emoteNumber"`
	IsAvailable bool   `json:"isAvailable"`
}

// EmoteUnitView is the storefront view of one pack unit
// Example:
// {
//   "emoteNumber": 3,
//   "label": "Sleepy",
//   "description": "Yawning with a pillow",
//   "availableExtras": ["2b0d..."]
// }
type EmoteUnitView struct {
	EmoteNumber     int      `json:"emoteNumber"`
	Label           string   `json:"label"`
	Description     *string  `json:"description"`
	AvailableExtras []string `json:"availableExtras"`
}

// SetEmoteAvailabilityRequest represents the request body for toggling an override
// Example: {"isAvailable": false}
type SetEmoteAvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable"`
}
