package domain

import "time"

// Service is a listing for work offered by a seller: no price or image,
// availability is free text describing when the provider can be reached.
type Service struct {
	ID            string `json:"_id"`
	ServiceName   string `json:"serviceName"`
	AvailableTime string `json:"availableTime"`
	Location      string `json:"location"`
	SellerID      string `json:"sellerId"`
	SellerName    string `json:"sellerName"`
	Code          string `json:"code,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
}

func (s Service) EntityID() string { return s.ID }

func (s Service) Label() string { return s.ServiceName }

func (s Service) SearchKeys() []string {
	keys := []string{s.ServiceName, s.Location}
	if s.Code != "" {
		keys = append(keys, s.Code)
	}
	return keys
}

func (s Service) NameKey() string { return s.ServiceName }

func (s Service) Created() time.Time { return ParseServerTime(s.CreatedAt) }
