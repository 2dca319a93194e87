package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/aitutor/internal/document"
	"github.com/abhisek/aitutor/internal/llm"
	"github.com/abhisek/aitutor/internal/recovery"
	"github.com/abhisek/aitutor/internal/store"
)

// Preferences shape a generated learning path.
type Preferences struct {
	Role        string  `json:"role"`
	HoursPerDay float64 `json:"hours_per_day"`
	Language    string  `json:"language"`
	AgeGroup    string  `json:"age_group"`
}

func (p Preferences) withDefaults() Preferences {
	if p.Role == "" {
		p.Role = "Student"
	}
	if p.HoursPerDay <= 0 {
		p.HoursPerDay = 5
	}
	if p.Language == "" {
		p.Language = "English"
	}
	if p.AgeGroup == "" {
		p.AgeGroup = "Under 18"
	}
	return p
}

// PathRequest asks for a new learning path.
type PathRequest struct {
	Username    string      `json:"username"`
	Prompt      string      `json:"prompt"`
	Preferences Preferences `json:"preferences"`
}

// StoredPath is a generated, stored learning path.
type StoredPath struct {
	ID        string                `json:"id"`
	Username  string                `json:"username"`
	Path      document.LearningPath `json:"learning_path"`
	CreatedAt time.Time             `json:"created_at"`
}

// GenerateLearningPath generates and stores a learning path for the
// learner's request.
func (s *Service) GenerateLearningPath(ctx context.Context, req PathRequest) (*StoredPath, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidRequest)
	}
	if req.Prompt == "" {
		return nil, fmt.Errorf("%w: prompt is required", ErrInvalidRequest)
	}
	req.Preferences = req.Preferences.withDefaults()
	ctx = llm.WithPurpose(ctx, llm.PurposeLearningPath)

	base, instructions := buildPathPrompt(req)
	doc, err := s.orchestrators[recovery.ShapeLearningPath].Recover(ctx, recovery.Task{
		Prompt:       base,
		Instructions: instructions,
		Shape:        recovery.ShapeLearningPath,
	})
	if err != nil {
		return nil, err
	}

	out := &StoredPath{
		ID:        "path_" + uuid.NewString(),
		Username:  req.Username,
		Path:      document.DecodeLearningPath(doc.Data),
		CreatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(out.Path)
	if err != nil {
		return nil, fmt.Errorf("encode learning path: %w", err)
	}
	if err := s.paths.Save(ctx, &store.PathRecord{
		ID:        out.ID,
		Username:  out.Username,
		Name:      out.Path.Name,
		Data:      data,
		CreatedAt: out.CreatedAt,
	}); err != nil {
		return nil, err
	}

	s.log.Info("learning path generated", "path_id", out.ID, "topics", len(out.Path.Topics), "attempts", doc.Attempts)
	return out, nil
}

// LearningPaths lists a learner's stored paths, newest first.
func (s *Service) LearningPaths(ctx context.Context, username string, limit int) ([]StoredPath, error) {
	recs, err := s.paths.ListByUser(ctx, username, limit)
	if err != nil {
		return nil, err
	}
	out := make([]StoredPath, 0, len(recs))
	for _, rec := range recs {
		var p document.LearningPath
		if err := json.Unmarshal(rec.Data, &p); err != nil {
			return nil, fmt.Errorf("decode learning path %s: %w", rec.ID, err)
		}
		out = append(out, StoredPath{ID: rec.ID, Username: rec.Username, Path: p, CreatedAt: rec.CreatedAt})
	}
	return out, nil
}
