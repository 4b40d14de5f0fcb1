package domain

// RunInput is the request body for the fusion run endpoint
type RunInput struct {
	Industry  string  `json:"industry" validate:"omitempty,max=120"`
	RoleLevel string  `json:"role_level" validate:"omitempty,max=120"`
	MinScore  float64 `json:"min_score" validate:"gte=0,lte=100"`
	Limit     int     `json:"limit" validate:"omitempty,gte=1,lte=1000"`
}

// Input converts the request body into a run input
func (in RunInput) Input() Input {
	return Input{
		Industry:  in.Industry,
		RoleLevel: in.RoleLevel,
		MinScore:  in.MinScore,
		Limit:     in.Limit,
	}
}
