package catalog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/motodesk/backend/internal/domain/access"
	"github.com/motodesk/backend/internal/domain/shared"
)

// FallbackDescription is returned whenever the generator is unavailable,
// slow or failing. Listing creation must never block on description text.
const FallbackDescription = "Great condition vehicle, well maintained. Contact for details."

// Generator produces marketing copy for a vehicle listing. Implementations
// talk to an external text-generation service.
type Generator interface {
	GenerateDescription(ctx context.Context, profile VehicleProfile) (string, error)
}

// VehicleProfile carries the descriptive facts the generator writes from
type VehicleProfile struct {
	Make     string `json:"make"`
	Model    string `json:"model"`
	Year     int    `json:"year"`
	Color    string `json:"color"`
	Odometer int    `json:"odometer"`
}

// DescribeRequest represents a request for listing copy
type DescribeRequest struct {
	Make     string `json:"make" binding:"required"`
	Model    string `json:"model" binding:"required"`
	Year     int    `json:"year" binding:"required"`
	Color    string `json:"color"`
	Odometer int    `json:"odometer" binding:"gte=0"`
}

// DescribeResponse carries the generated text. Generated reports whether
// the text came from the generator or the fixed fallback.
type DescribeResponse struct {
	Description string `json:"description"`
	Generated   bool   `json:"generated"`
}

// DescriptionService produces listing descriptions with a hard deadline.
// A generator failure or timeout degrades to the fallback text; it is
// never surfaced to the caller as an error.
type DescriptionService struct {
	generator Generator
	timeout   time.Duration
	logger    *zap.Logger
}

// NewDescriptionService creates a new DescriptionService
func NewDescriptionService(generator Generator, timeout time.Duration, logger *zap.Logger) *DescriptionService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &DescriptionService{
		generator: generator,
		timeout:   timeout,
		logger:    logger,
	}
}

// Describe returns listing copy for the given vehicle facts
func (s *DescriptionService) Describe(ctx context.Context, role access.Role, req DescribeRequest) (*DescribeResponse, error) {
	if !access.Can(role, access.CapabilityMutateLifecycle) {
		return nil, shared.ErrForbidden
	}

	if s.generator == nil {
		return &DescribeResponse{Description: FallbackDescription}, nil
	}

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.generator.GenerateDescription(genCtx, VehicleProfile{
		Make:     req.Make,
		Model:    req.Model,
		Year:     req.Year,
		Color:    req.Color,
		Odometer: req.Odometer,
	})
	if err != nil || text == "" {
		s.logger.Warn("Description generation failed, using fallback", zap.Error(err))
		return &DescribeResponse{Description: FallbackDescription}, nil
	}

	return &DescribeResponse{Description: text, Generated: true}, nil
}
