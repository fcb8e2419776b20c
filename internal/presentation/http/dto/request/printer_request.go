package request

// PrinterTargetRequest is the request body for creating or updating a
// printer target.
type PrinterTargetRequest struct {
	Name          string   `json:"name" binding:"required"`
	DriverName    string   `json:"driver_name"`
	DocumentKinds []string `json:"document_kinds" binding:"required,min=1"`
	Profiles      []string `json:"profiles" binding:"required,min=1"`
	Width         int      `json:"width"`
	CutPaper      *bool    `json:"cut_paper"`
	FeedLines     *int     `json:"feed_lines"`
	RelayURL      *string  `json:"relay_url"`
	Active        *bool    `json:"active"`
}