package control

type Kind string

const (
	KindMultiplier Kind = "multiplier"
	KindHour       Kind = "hour"
)

type Request struct {
	Kind  Kind
	Value float64
}

type Response struct {
	Kind         Kind    `json:"kind"`
	Value        float64 `json:"value"`
	DisplayValue string  `json:"display_value"`
	Accepted     bool    `json:"accepted"`
}
