package domain

// Seller is a registered seller account. The password never appears here:
// it exists only in the registration payload and is never redisplayed.
type Seller struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (s Seller) FullName() string {
	if s.FirstName == "" {
		return s.LastName
	}
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

func (s Seller) EntityID() string { return s.ID }

func (s Seller) Label() string { return s.FullName() }

func (s Seller) SearchKeys() []string {
	return []string{s.FullName(), s.Email, s.Phone}
}

func (s Seller) NameKey() string { return s.FullName() }
