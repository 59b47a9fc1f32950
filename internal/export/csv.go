// Package export writes loaded catalogs as CSV for admin reporting.
package export

import (
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/rushikulya/marketkit/internal/domain"
)

type productRow struct {
	ID          string  `csv:"id"`
	Name        string  `csv:"name"`
	Description string  `csv:"description"`
	Price       float64 `csv:"price"`
	Available   bool    `csv:"available"`
	SellerName  string  `csv:"seller"`
	Location    string  `csv:"location"`
	Code        string  `csv:"code"`
	CreatedAt   string  `csv:"created_at"`
}

type serviceRow struct {
	ID            string `csv:"id"`
	ServiceName   string `csv:"service_name"`
	AvailableTime string `csv:"available_time"`
	Location      string `csv:"location"`
	SellerName    string `csv:"seller"`
	Code          string `csv:"code"`
	CreatedAt     string `csv:"created_at"`
}

type sellerRow struct {
	ID        string `csv:"id"`
	FirstName string `csv:"first_name"`
	LastName  string `csv:"last_name"`
	Email     string `csv:"email"`
	Phone     string `csv:"phone"`
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func Products(w io.Writer, items []domain.Product) error {
	rows := make([]productRow, 0, len(items))
	for _, p := range items {
		rows = append(rows, productRow{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Available:   p.Available,
			SellerName:  p.SellerName,
			Location:    p.Location,
			Code:        p.Code,
			CreatedAt:   stamp(p.Created()),
		})
	}
	return gocsv.Marshal(&rows, w)
}

func Services(w io.Writer, items []domain.Service) error {
	rows := make([]serviceRow, 0, len(items))
	for _, s := range items {
		rows = append(rows, serviceRow{
			ID:            s.ID,
			ServiceName:   s.ServiceName,
			AvailableTime: s.AvailableTime,
			Location:      s.Location,
			SellerName:    s.SellerName,
			Code:          s.Code,
			CreatedAt:     stamp(s.Created()),
		})
	}
	return gocsv.Marshal(&rows, w)
}

func Sellers(w io.Writer, items []domain.Seller) error {
	rows := make([]sellerRow, 0, len(items))
	for _, s := range items {
		rows = append(rows, sellerRow{
			ID:        s.ID,
			FirstName: s.FirstName,
			LastName:  s.LastName,
			Email:     s.Email,
			Phone:     s.Phone,
		})
	}
	return gocsv.Marshal(&rows, w)
}
