// Package mockd is an in-memory stand-in for the backend, used by the
// mockd command during development and by tests. It reproduces the
// wire contract exactly: the response envelope, body-level status
// codes independent of the transport status, Laravel-style per-field
// error arrays and page envelopes.
package mockd

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const perPage = 10

// Account is a login the mock accepts.
type Account struct {
	Email    string
	Password string
	UserID   uint64
	Token    string
}

// Server holds the mock's state.
type Server struct {
	mu          sync.Mutex
	accounts    []Account
	collections map[string]*collection
}

type collection struct {
	nextID  uint64
	records []gin.H
}

// Option seeds the server.
type Option func(*Server)

// WithAccount adds a login the mock accepts.
func WithAccount(a Account) Option {
	return func(s *Server) { s.accounts = append(s.accounts, a) }
}

// WithRecords seeds a collection with records; ids are assigned in
// order.
func WithRecords(name string, records ...gin.H) Option {
	return func(s *Server) {
		col := s.collection(name)
		for _, r := range records {
			col.nextID++
			r["id"] = col.nextID
			col.records = append(col.records, r)
		}
	}
}

// DefaultAccount is the login seeded when no option supplies one.
var DefaultAccount = Account{
	Email:    "demo@tijarah.example",
	Password: "demo123",
	UserID:   1,
	Token:    "mock-token-1",
}

// New builds the gin engine serving the mock API.
func New(opts ...Option) *gin.Engine {
	s := &Server{collections: make(map[string]*collection)}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.accounts) == 0 {
		s.accounts = append(s.accounts, DefaultAccount)
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/login", s.login)
	r.POST("/register", s.register)

	authed := r.Group("/", s.requireBearer)
	authed.POST("/logout", func(c *gin.Context) { respond(c, 200, nil, "Logged out", nil) })

	for _, name := range []string{
		"customers", "items", "suppliers", "sales-invoices",
		"expenses", "purchase-orders", "payments", "staff", "sales-targets",
	} {
		s.mountCRUD(authed, name)
	}

	authed.GET("/territories", s.fixed([]gin.H{
		{"id": 1, "name": "Riyadh"},
		{"id": 2, "name": "Jeddah"},
		{"id": 3, "name": "Dammam"},
	}))
	authed.GET("/expense-types", s.fixed([]gin.H{
		{"id": 1, "name": "Fuel"},
		{"id": 2, "name": "Meals"},
		{"id": 3, "name": "Supplies"},
	}))
	for _, name := range []string{"customers", "suppliers", "items", "staff"} {
		name := name
		authed.GET("/"+name+"/all", func(c *gin.Context) {
			s.mu.Lock()
			records := append([]gin.H(nil), s.collection(name).records...)
			s.mu.Unlock()
			respond(c, 200, records, "", nil)
		})
	}

	return r
}

// respond writes the envelope. The transport status is always 200 on
// purpose: clients must trust the body status, and the mock keeps them
// honest.
func respond(c *gin.Context, status int, data any, message string, fieldErrors map[string][]string) {
	body := gin.H{"status": status}
	if data != nil {
		body["data"] = data
	}
	if message != "" {
		body["message"] = message
	}
	if len(fieldErrors) > 0 {
		body["errors"] = fieldErrors
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) collection(name string) *collection {
	col, ok := s.collections[name]
	if !ok {
		col = &collection{}
		s.collections[name] = col
	}
	return col
}

func (s *Server) requireBearer(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if header == "" || token == header {
		respond(c, 401, nil, "Unauthenticated", nil)
		c.Abort()
		return
	}
	for _, a := range s.accounts {
		if a.Token == token {
			c.Next()
			return
		}
	}
	respond(c, 401, nil, "Unauthenticated", nil)
	c.Abort()
}

func (s *Server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, 422, nil, "Invalid request", nil)
		return
	}
	for _, a := range s.accounts {
		if a.Email == req.Email && a.Password == req.Password {
			respond(c, 200, gin.H{
				"token": a.Token,
				"user": gin.H{
					"id":         a.UserID,
					"first_name": "Demo",
					"last_name":  "User",
					"email":      a.Email,
					"role_id":    1,
				},
			}, "", nil)
			return
		}
	}
	respond(c, 401, nil, "Invalid credentials", nil)
}

func (s *Server) register(c *gin.Context) {
	var req map[string]any
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, 422, nil, "Invalid request", nil)
		return
	}
	fieldErrors := map[string][]string{}
	for _, field := range []string{"first_name", "last_name", "email", "national_id", "password"} {
		if v, _ := req[field].(string); v == "" {
			fieldErrors[field] = []string{"The " + strings.ReplaceAll(field, "_", " ") + " field is required."}
		}
	}
	if len(fieldErrors) > 0 {
		respond(c, 422, nil, "The given data was invalid.", fieldErrors)
		return
	}
	respond(c, 200, nil, "Registered", nil)
}

func (s *Server) mountCRUD(g *gin.RouterGroup, name string) {
	path := "/" + name

	g.GET(path, func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}

		s.mu.Lock()
		records := append([]gin.H(nil), s.collection(name).records...)
		s.mu.Unlock()

		start := (page - 1) * perPage
		if start > len(records) {
			start = len(records)
		}
		end := start + perPage
		if end > len(records) {
			end = len(records)
		}

		var nextURL any
		if end < len(records) {
			nextURL = fmt.Sprintf("%s?page=%d", path, page+1)
		}
		respond(c, 200, gin.H{
			"current_page":  page,
			"data":          records[start:end],
			"next_page_url": nextURL,
			"per_page":      perPage,
			"total":         len(records),
		}, "", nil)
	})

	g.POST(path, func(c *gin.Context) {
		record := gin.H{}
		if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
			mf, err := c.MultipartForm()
			if err != nil {
				respond(c, 422, nil, "Invalid request", nil)
				return
			}
			for k, vs := range mf.Value {
				if len(vs) > 0 {
					record[k] = coerceFormValue(vs[0])
				}
			}
			for k, fs := range mf.File {
				if len(fs) > 0 {
					record[k+"_url"] = "/uploads/" + fs[0].Filename
				}
			}
		} else if err := c.ShouldBindJSON(&record); err != nil {
			respond(c, 422, nil, "Invalid request", nil)
			return
		}
		if v, _ := record["name"].(string); v == "" && requiresName(name) {
			respond(c, 422, nil, "The given data was invalid.",
				map[string][]string{"name": {"The name field is required."}})
			return
		}

		s.mu.Lock()
		col := s.collection(name)
		col.nextID++
		record["id"] = col.nextID
		col.records = append(col.records, record)
		s.mu.Unlock()
		respond(c, 200, record, "Saved", nil)
	})

	g.PUT(path+"/:id", func(c *gin.Context) {
		id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
		var record gin.H
		if err := c.ShouldBindJSON(&record); err != nil {
			respond(c, 422, nil, "Invalid request", nil)
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		col := s.collection(name)
		for i, r := range col.records {
			if toID(r["id"]) == id {
				record["id"] = id
				col.records[i] = record
				respond(c, 200, record, "Saved", nil)
				return
			}
		}
		respond(c, 404, nil, "Not found", nil)
	})

	g.DELETE(path+"/:id", func(c *gin.Context) {
		id, _ := strconv.ParseUint(c.Param("id"), 10, 64)

		s.mu.Lock()
		defer s.mu.Unlock()
		col := s.collection(name)
		for i, r := range col.records {
			if toID(r["id"]) == id {
				col.records = append(col.records[:i], col.records[i+1:]...)
				respond(c, 200, nil, "Deleted", nil)
				return
			}
		}
		respond(c, 404, nil, "Not found", nil)
	})
}

func (s *Server) fixed(records []gin.H) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, 200, records, "", nil)
	}
}

// coerceFormValue makes multipart fields round-trip like JSON ones:
// numeric strings become numbers so records decode into the same
// shapes regardless of how they were created.
func coerceFormValue(v string) any {
	if n, err := strconv.ParseFloat(v, 64); err == nil {
		return n
	}
	return v
}

func requiresName(collection string) bool {
	switch collection {
	case "customers", "items", "suppliers":
		return true
	}
	return false
}

func toID(v any) uint64 {
	switch n := v.(type) {
	case uint64:
		return n
	case float64:
		return uint64(n)
	case string:
		id, _ := strconv.ParseUint(n, 10, 64)
		return id
	}
	return 0
}
