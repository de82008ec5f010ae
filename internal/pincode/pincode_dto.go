package pincode

// ==================== REQUEST STRUCTS ====================

type ProductRef struct {
	ID    string `json:"id" validate:"required,uuid"`
	Title string `json:"title"`
}

type CheckDeliverabilityRequest struct {
	Pincode  string       `json:"pincode" validate:"required"`
	Products []ProductRef `json:"products" validate:"required,min=1,dive"`
}

type UpsertPincodeRequest struct {
	Pincode     string `json:"pincode" validate:"required"`
	District    string `json:"district" validate:"required"`
	Serviceable bool   `json:"serviceable"`
}

// ==================== RESPONSE STRUCTS ====================

type CheckResponse struct {
	Pincode       string `json:"pincode"`
	District      string `json:"district"`
	IsServiceable bool   `json:"isServiceable"`
}

type ProductDeliverability struct {
	ID              string `json:"id"`
	Title           string `json:"title,omitempty"`
	DeliveryMessage string `json:"deliveryMessage"`
}

type DeliverabilityResponse struct {
	Pincode                string                  `json:"pincode"`
	DeliveryDistrict       string                  `json:"deliveryDistrict"`
	IsAllDeliverable       bool                    `json:"isAllDeliverable"`
	DeliverableProducts    []ProductDeliverability `json:"deliverableProducts"`
	NonDeliverableProducts []ProductDeliverability `json:"nonDeliverableProducts"`
}
