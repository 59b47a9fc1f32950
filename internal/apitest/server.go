// Package apitest runs an in-memory catalog API for tests. It mimics the
// collaborator's routes and response envelopes and counts every request so
// tests can assert that an operation issued no network traffic.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/rushikulya/marketkit/internal/domain"
)

type Server struct {
	*httptest.Server

	AdminUser string
	AdminPass string

	mu       sync.Mutex
	seq      int
	products []domain.Product
	services []domain.Service
	sellers  []domain.Seller
	passes   map[string]string
	hits     map[string]int
}

func New() *Server {
	s := &Server{
		AdminUser: "admin",
		AdminPass: "secret",
		passes:    map[string]string{},
		hits:      map[string]int{},
	}
	e := echo.New()
	e.HideBanner = true
	e.Use(s.count)

	e.GET("/api/admin/verify", s.verifyAdmin)
	e.POST("/api/sellers/login", s.loginSeller)
	e.POST("/api/sellers/register", s.registerSeller)

	e.GET("/api/products", s.listProducts)
	e.POST("/api/products", s.createProduct)
	e.PUT("/api/products/:id", s.updateProduct)
	e.DELETE("/api/products/:id", s.deleteProduct)

	e.GET("/api/services", s.listServices)
	e.POST("/api/services", s.createService)
	e.PUT("/api/services/:id", s.updateService)
	e.DELETE("/api/services/:id", s.deleteService)

	e.GET("/api/sellers", s.listSellers)
	e.PUT("/api/sellers/:id", s.updateSeller)
	e.DELETE("/api/sellers/:id", s.deleteSeller)

	e.POST("/api/uploads", s.upload)

	s.Server = httptest.NewServer(e)
	return s
}

func (s *Server) count(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		s.hits[c.Request().Method+" "+c.Request().URL.Path]++
		s.mu.Unlock()
		return next(c)
	}
}

// Hits returns how many requests matched "METHOD /path".
func (s *Server) Hits(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method+" "+path]
}

// TotalHits returns the number of requests served since startup.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.hits {
		n += v
	}
	return n
}

func (s *Server) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s%d", prefix, s.seq)
}

// SeedProduct registers a product and returns it with an assigned id.
func (s *Server) SeedProduct(p domain.Product) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = s.nextID("p")
	}
	s.products = append(s.products, p)
	return p
}

// SeedService registers a service and returns it with an assigned id.
func (s *Server) SeedService(sv domain.Service) domain.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sv.ID == "" {
		sv.ID = s.nextID("s")
	}
	s.services = append(s.services, sv)
	return sv
}

// SeedSeller registers a seller account with the given password.
func (s *Server) SeedSeller(sl domain.Seller, password string) domain.Seller {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sl.ID == "" {
		sl.ID = s.nextID("u")
	}
	s.sellers = append(s.sellers, sl)
	s.passes[sl.Email] = password
	return sl
}

func (s *Server) verifyAdmin(c echo.Context) error {
	user, pass, ok := c.Request().BasicAuth()
	if !ok || user != s.AdminUser || pass != s.AdminPass {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (s *Server) loginSeller(c echo.Context) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad request"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.passes[in.Email] == "" || s.passes[in.Email] != in.Password {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	}
	for _, sl := range s.sellers {
		if sl.Email == in.Email {
			return c.JSON(http.StatusOK, echo.Map{"success": true, "seller": sl})
		}
	}
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
}

func (s *Server) registerSeller(c echo.Context) error {
	var in struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
		Password  string `json:"password"`
	}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad request"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.passes[in.Email]; dup {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email already registered"})
	}
	sl := domain.Seller{
		ID:        s.nextID("u"),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
	}
	s.sellers = append(s.sellers, sl)
	s.passes[sl.Email] = in.Password
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "seller": sl})
}

func (s *Server) listProducts(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.products
	if sid := c.QueryParam("sellerId"); sid != "" {
		rows = nil
		for _, p := range s.products {
			if p.SellerID == sid {
				rows = append(rows, p)
			}
		}
	}
	if rows == nil {
		rows = []domain.Product{}
	}
	return c.JSON(http.StatusOK, rows)
}

func (s *Server) createProduct(c echo.Context) error {
	var p domain.Product
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad request"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextID("p")
	s.products = append(s.products, p)
	return c.JSON(http.StatusCreated, echo.Map{"product": p})
}

func (s *Server) updateProduct(c echo.Context) error {
	patch := map[string]interface{}{}
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad request"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID != c.Param("id") {
			continue
		}
		if v, ok := patch["name"].(string); ok {
			p.Name = v
		}
		if v, ok := patch["description"].(string); ok {
			p.Description = v
		}
		if v, ok := patch["price"].(float64); ok {
			p.Price = v
		}
		if v, ok := patch["imageUrl"].(string); ok {
			p.ImageURL = v
		}
		if v, ok := patch["available"].(bool); ok {
			p.Available = v
		}
		if v, ok := patch["location"].(string); ok {
			p.Location = v
		}
		s.products[i] = p
		return c.JSON(http.StatusOK, echo.Map{"product": p})
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
}

func (s *Server) deleteProduct(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == c.Param("id") {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return c.JSON(http.StatusOK, echo.Map{"success": true})
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
}

func (s *Server) listServices(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.services
	if sid := c.QueryParam("sellerId"); sid != "" {
		rows = nil
		for _, sv := range s.services {
			if sv.SellerID == sid {
				rows = append(rows, sv)
			}
		}
	}
	if rows == nil {
		rows = []domain.Service{}
	}
	return c.JSON(http.StatusOK, rows)
}

func (s *Server) createService(c echo.Context) error {
	var sv domain.Service
	if err := c.Bind(&sv); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad request"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sv.ID = s.nextID("s")
	s.services = append(s.services, sv)
	return c.JSON(http.StatusCreated, echo.Map{"service": sv})
}

func (s *Server) updateService(c echo.Context) error {
	patch := map[string]interface{}{}
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad request"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sv := range s.services {
		if sv.ID != c.Param("id") {
			continue
		}
		if v, ok := patch["serviceName"].(string); ok {
			sv.ServiceName = v
		}
		if v, ok := patch["availableTime"].(string); ok {
			sv.AvailableTime = v
		}
		if v, ok := patch["location"].(string); ok {
			sv.Location = v
		}
		s.services[i] = sv
		return c.JSON(http.StatusOK, echo.Map{"service": sv})
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "Service not found"})
}

func (s *Server) deleteService(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sv := range s.services {
		if sv.ID == c.Param("id") {
			s.services = append(s.services[:i], s.services[i+1:]...)
			return c.JSON(http.StatusOK, echo.Map{"success": true})
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "Service not found"})
}

func (s *Server) requireAuth(c echo.Context) bool {
	return c.Request().Header.Get(echo.HeaderAuthorization) != ""
}

func (s *Server) listSellers(c echo.Context) error {
	if !s.requireAuth(c) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required."})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.sellers
	if rows == nil {
		rows = []domain.Seller{}
	}
	return c.JSON(http.StatusOK, rows)
}

func (s *Server) updateSeller(c echo.Context) error {
	if !s.requireAuth(c) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required."})
	}
	patch := map[string]interface{}{}
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad request"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sl := range s.sellers {
		if sl.ID != c.Param("id") {
			continue
		}
		if v, ok := patch["firstName"].(string); ok {
			sl.FirstName = v
		}
		if v, ok := patch["lastName"].(string); ok {
			sl.LastName = v
		}
		if v, ok := patch["email"].(string); ok {
			sl.Email = v
		}
		if v, ok := patch["phone"].(string); ok {
			sl.Phone = v
		}
		s.sellers[i] = sl
		return c.JSON(http.StatusOK, echo.Map{"seller": sl})
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "Seller not found"})
}

func (s *Server) deleteSeller(c echo.Context) error {
	if !s.requireAuth(c) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required."})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sl := range s.sellers {
		if sl.ID == c.Param("id") {
			s.sellers = append(s.sellers[:i], s.sellers[i+1:]...)
			return c.JSON(http.StatusOK, echo.Map{"success": true})
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "Seller not found"})
}

func (s *Server) upload(c echo.Context) error {
	var size int64
	if f, err := c.FormFile("image"); err == nil {
		size = f.Size
	} else if v := c.FormValue("image"); v != "" {
		size = int64(len(v))
	} else {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image field missing"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusCreated, echo.Map{
		"url": fmt.Sprintf("http://cdn.local/%s-%d", s.nextID("img"), size),
	})
}
