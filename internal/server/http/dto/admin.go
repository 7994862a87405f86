package dto

// AdminCompleteRequest describes the manual completion override payload.
type AdminCompleteRequest struct {
	AdminID          int64  `json:"admin_id"`
	GatewayReference string `json:"paystack_reference"`
	AdminNotes       string `json:"admin_notes"`
}
