package domain

// ListInput is the request body for the candidate listing endpoint
type ListInput struct {
	Status   string  `json:"status" validate:"omitempty,oneof=identified scored contacted placed"`
	MinScore float64 `json:"min_score" validate:"omitempty,gte=0,lte=100"`
	Page     int     `json:"page" validate:"omitempty,gte=1"`
	PageSize int     `json:"page_size" validate:"omitempty,gte=1,lte=200"`
}

// Filter converts the request body into a repo filter
func (in ListInput) Filter() ListFilter {
	return ListFilter{
		Status:   Status(in.Status),
		MinScore: in.MinScore,
		Page:     in.Page,
		PageSize: in.PageSize,
	}
}
