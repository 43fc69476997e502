package dto

// InfoResponse describes the service info endpoint payload.
type InfoResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Started int64  `json:"started"`
}
