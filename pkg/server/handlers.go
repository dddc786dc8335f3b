package server

import (
	"net/http"

	"github.com/workwAIse/alex-web/pkg/domain"
)

// --- Portfolio content ---

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.content.ListProjects(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err)
		return
	}
	if projects == nil {
		projects = []domain.Project{}
	}
	s.jsonResponse(w, http.StatusOK, projects)
}

func (s *Server) handleListGems(w http.ResponseWriter, r *http.Request) {
	gems, err := s.content.ListGems(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err)
		return
	}
	if gems == nil {
		gems = []domain.Gem{}
	}
	s.jsonResponse(w, http.StatusOK, gems)
}
