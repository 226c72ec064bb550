package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/motodesk/backend/internal/domain/access"
	"github.com/motodesk/backend/internal/domain/shared"
)

type stubGenerator struct {
	text  string
	err   error
	delay time.Duration
}

func (g *stubGenerator) GenerateDescription(ctx context.Context, _ VehicleProfile) (string, error) {
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return g.text, g.err
}

func describeRequest() DescribeRequest {
	return DescribeRequest{
		Make:     "Hero",
		Model:    "Splendor Plus",
		Year:     2019,
		Color:    "Black",
		Odometer: 24500,
	}
}

func TestDescriptionService_Describe(t *testing.T) {
	gen := &stubGenerator{text: "Well kept 2019 Hero Splendor Plus in black, 24.5k km on the clock."}
	service := NewDescriptionService(gen, time.Second, zap.NewNop())

	resp, err := service.Describe(context.Background(), access.RoleFullAccess, describeRequest())

	require.NoError(t, err)
	assert.True(t, resp.Generated)
	assert.Equal(t, gen.text, resp.Description)
}

func TestDescriptionService_Describe_GeneratorErrorFallsBack(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream unavailable")}
	service := NewDescriptionService(gen, time.Second, zap.NewNop())

	resp, err := service.Describe(context.Background(), access.RoleFullAccess, describeRequest())

	require.NoError(t, err)
	assert.False(t, resp.Generated)
	assert.Equal(t, FallbackDescription, resp.Description)
}

func TestDescriptionService_Describe_TimeoutFallsBack(t *testing.T) {
	gen := &stubGenerator{text: "too late", delay: 200 * time.Millisecond}
	service := NewDescriptionService(gen, 10*time.Millisecond, zap.NewNop())

	resp, err := service.Describe(context.Background(), access.RoleFullAccess, describeRequest())

	require.NoError(t, err)
	assert.False(t, resp.Generated)
	assert.Equal(t, FallbackDescription, resp.Description)
}

func TestDescriptionService_Describe_NilGeneratorFallsBack(t *testing.T) {
	service := NewDescriptionService(nil, time.Second, zap.NewNop())

	resp, err := service.Describe(context.Background(), access.RoleRestricted, describeRequest())

	require.NoError(t, err)
	assert.Equal(t, FallbackDescription, resp.Description)
}

func TestDescriptionService_Describe_ForbiddenForReadOnly(t *testing.T) {
	service := NewDescriptionService(&stubGenerator{text: "anything"}, time.Second, zap.NewNop())

	_, err := service.Describe(context.Background(), access.RoleReadOnly, describeRequest())

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}
