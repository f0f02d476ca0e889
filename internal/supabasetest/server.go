// Package supabasetest runs an in-memory stand-in for the Supabase storage
// and PostgREST endpoints.
package supabasetest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

// Row is one stored record as the REST endpoint sees it.
type Row map[string]any

// Call is a request received by the fake.
type Call struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

type object struct {
	data        []byte
	contentType string
}

type Server struct {
	*httptest.Server

	// Fail, if set, is consulted before every request; a non-zero status
	// short-circuits the request with that status.
	Fail func(method, path string) int

	mu      sync.Mutex
	objects map[string]object
	tables  map[string][]Row
	calls   []Call
	nextID  int64
}

func New(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		objects: map[string]object{},
		tables:  map[string][]Row{},
	}

	r := gin.New()
	r.Use(s.record, s.authorize, s.inject)
	r.POST("/storage/v1/object/:bucket/*name", s.upload)
	r.Any("/rest/v1/*table", s.rest)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

func (s *Server) record(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	c.Set("body", body)

	s.mu.Lock()
	s.calls = append(s.calls, Call{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Query:  c.Request.URL.RawQuery,
		Header: c.Request.Header.Clone(),
		Body:   body,
	})
	s.mu.Unlock()
	c.Next()
}

func (s *Server) authorize(c *gin.Context) {
	key := c.GetHeader("apikey")
	if key == "" || c.GetHeader("Authorization") != "Bearer "+key {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid api key"})
		return
	}
	c.Next()
}

func (s *Server) inject(c *gin.Context) {
	if s.Fail == nil {
		c.Next()
		return
	}
	if status := s.Fail(c.Request.Method, c.Request.URL.Path); status != 0 {
		c.AbortWithStatusJSON(status, gin.H{"message": "injected failure"})
		return
	}
	c.Next()
}

func (s *Server) upload(c *gin.Context) {
	key := c.Param("bucket") + "/" + strings.TrimPrefix(c.Param("name"), "/")

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.objects[key]; exists {
		c.JSON(http.StatusBadRequest, gin.H{"message": "The resource already exists"})
		return
	}
	s.objects[key] = object{data: c.MustGet("body").([]byte), contentType: c.ContentType()}
	c.JSON(http.StatusOK, gin.H{"Key": key})
}

func (s *Server) rest(c *gin.Context) {
	table := strings.Trim(c.Param("table"), "/")
	if table == "" {
		c.JSON(http.StatusOK, gin.H{"swagger": "2.0"})
		return
	}

	switch c.Request.Method {
	case http.MethodPost:
		s.insert(c, table)
	case http.MethodPatch:
		s.patch(c, table)
	case http.MethodGet:
		s.list(c, table)
	case http.MethodHead:
		s.count(c, table)
	default:
		c.Status(http.StatusMethodNotAllowed)
	}
}

func (s *Server) insert(c *gin.Context, table string) {
	body := c.MustGet("body").([]byte)

	var rows []Row
	if strings.HasPrefix(strings.TrimSpace(string(body)), "[") {
		if err := json.Unmarshal(body, &rows); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
	} else {
		var row Row
		if err := json.Unmarshal(body, &row); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		rows = []Row{row}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		s.nextID++
		row["id"] = s.nextID
		s.tables[table] = append(s.tables[table], row)
	}
	c.Status(http.StatusCreated)
}

func (s *Server) patch(c *gin.Context, table string) {
	match, err := parseFilters(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var fields Row
	if err := json.Unmarshal(c.MustGet("body").([]byte), &fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.tables[table] {
		if !match(row) {
			continue
		}
		for k, v := range fields {
			row[k] = v
		}
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) list(c *gin.Context, table string) {
	query := c.Request.URL.Query()
	match, err := parseFilters(query)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	s.mu.Lock()
	rows := make([]Row, 0)
	for _, row := range s.tables[table] {
		if match(row) {
			rows = append(rows, row)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(rows, func(i, j int) bool { return idOf(rows[i]) < idOf(rows[j]) })

	offset, _ := strconv.Atoi(query.Get("offset"))
	if offset > len(rows) {
		offset = len(rows)
	}
	rows = rows[offset:]
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil && limit < len(rows) {
		rows = rows[:limit]
	}

	c.JSON(http.StatusOK, rows)
}

func (s *Server) count(c *gin.Context, table string) {
	s.mu.Lock()
	n := len(s.tables[table])
	s.mu.Unlock()

	if n == 0 {
		c.Header("Content-Range", "*/0")
	} else {
		c.Header("Content-Range", fmt.Sprintf("0-%d/%d", n-1, n))
	}
	c.Status(http.StatusOK)
}

var reserved = map[string]bool{"select": true, "order": true, "offset": true, "limit": true}

// parseFilters understands the two PostgREST operators the tools use:
// eq.<value> and is.null.
func parseFilters(query map[string][]string) (func(Row) bool, error) {
	type cond struct {
		column string
		isNull bool
		value  string
	}

	var conds []cond
	for column, values := range query {
		if reserved[column] {
			continue
		}
		for _, v := range values {
			switch {
			case v == "is.null":
				conds = append(conds, cond{column: column, isNull: true})
			case strings.HasPrefix(v, "eq."):
				conds = append(conds, cond{column: column, value: strings.TrimPrefix(v, "eq.")})
			default:
				return nil, fmt.Errorf("unsupported filter %s=%s", column, v)
			}
		}
	}

	return func(row Row) bool {
		for _, c := range conds {
			v, ok := row[c.column]
			if c.isNull {
				if ok && v != nil {
					return false
				}
				continue
			}
			if !ok || v == nil || fmt.Sprint(v) != c.value {
				return false
			}
		}
		return true
	}, nil
}

func idOf(row Row) int64 {
	switch v := row["id"].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

// Seed stores rows directly, assigning ids.
func (s *Server) Seed(table string, rows ...Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		s.nextID++
		row["id"] = s.nextID
		s.tables[table] = append(s.tables[table], row)
	}
}

// Rows returns a snapshot of a table.
func (s *Server) Rows(table string) []Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Row, 0, len(s.tables[table]))
	for _, row := range s.tables[table] {
		cp := Row{}
		for k, v := range row {
			cp[k] = v
		}
		out = append(out, cp)
	}
	return out
}

// Object returns an uploaded object and its content type.
func (s *Server) Object(bucket, name string) ([]byte, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[bucket+"/"+name]
	return obj.data, obj.contentType, ok
}

// ObjectNames lists the object names stored in bucket, sorted.
func (s *Server) ObjectNames(bucket string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var names []string
	for key := range s.objects {
		if name, ok := strings.CutPrefix(key, bucket+"/"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Calls returns the received requests matching method and path prefix.
func (s *Server) Calls(method, pathPrefix string) []Call {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Call
	for _, c := range s.calls {
		if c.Method == method && strings.HasPrefix(c.Path, pathPrefix) {
			out = append(out, c)
		}
	}
	return out
}
