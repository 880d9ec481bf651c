// Package placestest provides an in-process fake of the Places text query, detail and photo endpoints.
package placestest

import (
	"net/http"
	"net/http/httptest"
	"sync"

	"provider-enricher/internal/models"

	"github.com/gin-gonic/gin"
)

// Server serves scripted Places responses and records every call it receives.
type Server struct {
	*httptest.Server

	apiKey string

	mu             sync.Mutex
	candidates     map[string][]models.Candidate
	findFailures   map[string]int
	details        map[string]models.PlaceDetail
	detailFailures map[string]int
	photoFailure   int
	redirectPhotos bool

	findCalls   []string
	detailCalls []string
	photoCalls  []string
}

// NewServer starts a fake that only accepts requests carrying apiKey.
func NewServer(apiKey string) *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		apiKey:         apiKey,
		candidates:     make(map[string][]models.Candidate),
		findFailures:   make(map[string]int),
		details:        make(map[string]models.PlaceDetail),
		detailFailures: make(map[string]int),
	}

	r := gin.New()
	r.GET("/findplacefromtext/json", s.findPlace)
	r.GET("/details/json", s.placeDetails)
	r.GET("/photo", s.photo)
	r.GET("/image/:ref", s.image)

	s.Server = httptest.NewServer(r)
	return s
}

// AddCandidates scripts the candidates returned for a text query.
func (s *Server) AddCandidates(input string, candidates ...models.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[input] = append(s.candidates[input], candidates...)
}

// FailFind makes the text query for input answer with the given HTTP status.
func (s *Server) FailFind(input string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.findFailures[input] = status
}

// AddDetail scripts the detail result for placeID.
func (s *Server) AddDetail(placeID string, detail models.PlaceDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details[placeID] = detail
}

// FailDetail makes the detail lookup for placeID answer with the given HTTP status.
func (s *Server) FailDetail(placeID string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detailFailures[placeID] = status
}

// FailPhotos makes every photo request answer with the given HTTP status.
func (s *Server) FailPhotos(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photoFailure = status
}

// RedirectPhotos makes the photo endpoint redirect to an image URL, as the real service does.
func (s *Server) RedirectPhotos() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redirectPhotos = true
}

// FindCalls returns the text query inputs received so far, in order.
func (s *Server) FindCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.findCalls...)
}

// DetailCalls returns the place ids looked up so far, in order.
func (s *Server) DetailCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.detailCalls...)
}

// PhotoCalls returns the photo references requested so far, in order.
func (s *Server) PhotoCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.photoCalls...)
}

func (s *Server) authorized(c *gin.Context) bool {
	return c.Query("key") == s.apiKey
}

func (s *Server) findPlace(c *gin.Context) {
	input := c.Query("input")

	s.mu.Lock()
	s.findCalls = append(s.findCalls, input)
	status, failed := s.findFailures[input]
	candidates := s.candidates[input]
	s.mu.Unlock()

	if !s.authorized(c) {
		c.JSON(http.StatusOK, gin.H{"candidates": []models.Candidate{}, "status": "REQUEST_DENIED"})
		return
	}
	if failed {
		c.JSON(status, gin.H{"error": "scripted failure"})
		return
	}
	if len(candidates) == 0 {
		c.JSON(http.StatusOK, gin.H{"candidates": []models.Candidate{}, "status": "ZERO_RESULTS"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"candidates": candidates, "status": "OK"})
}

func (s *Server) placeDetails(c *gin.Context) {
	placeID := c.Query("place_id")

	s.mu.Lock()
	s.detailCalls = append(s.detailCalls, placeID)
	status, failed := s.detailFailures[placeID]
	detail, found := s.details[placeID]
	s.mu.Unlock()

	if !s.authorized(c) {
		c.JSON(http.StatusOK, gin.H{"status": "REQUEST_DENIED"})
		return
	}
	if failed {
		c.JSON(status, gin.H{"error": "scripted failure"})
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"status": "NOT_FOUND"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": detail, "status": "OK"})
}

func (s *Server) photo(c *gin.Context) {
	ref := c.Query("photo_reference")

	s.mu.Lock()
	s.photoCalls = append(s.photoCalls, ref)
	failure := s.photoFailure
	redirect := s.redirectPhotos
	s.mu.Unlock()

	if !s.authorized(c) {
		c.Status(http.StatusForbidden)
		return
	}
	if failure != 0 {
		c.Status(failure)
		return
	}
	if redirect {
		c.Redirect(http.StatusFound, "/image/"+ref)
		return
	}

	c.Data(http.StatusOK, "image/jpeg", []byte("jpeg"))
}

func (s *Server) image(c *gin.Context) {
	c.Data(http.StatusOK, "image/jpeg", []byte("jpeg"))
}
