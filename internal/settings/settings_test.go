package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/voxpop/pkg/voxpop/config"
	"github.com/cognicore/voxpop/pkg/voxpop/internalerr"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("VOXPOP_DATA_PATH", "reviews.csv")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", s.Addr)
	assert.Equal(t, "reviews.csv", s.DataPath)
	assert.Equal(t, config.PresetReviews, s.Preset)
	assert.Equal(t, 15*time.Second, s.ReadTimeout)
	assert.Equal(t, 30*time.Second, s.RequestTimeout)
	assert.NoError(t, s.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("VOXPOP_ADDR", "127.0.0.1:9090")
	t.Setenv("VOXPOP_PRESET", "topics")
	t.Setenv("VOXPOP_LOG_FORMAT", "json")
	t.Setenv("VOXPOP_REQUEST_TIMEOUT", "2s")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", s.Addr)
	assert.Equal(t, "json", s.LogFormat)
	assert.Equal(t, 2*time.Second, s.RequestTimeout)

	p, err := s.Profile()
	require.NoError(t, err)
	assert.Equal(t, config.PresetTopics, p.Name)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("VOXPOP_READ_TIMEOUT", "soon")

	_, err := Load()
	assert.True(t, errors.Is(err, internalerr.ErrInvalidConfig), "got %v", err)
}

func TestValidate(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)
	assert.True(t, errors.Is(s.Validate(), internalerr.ErrInvalidConfig))

	s.DataPath = "reviews.csv"
	s.RequestTimeout = 0
	assert.True(t, errors.Is(s.Validate(), internalerr.ErrInvalidConfig))
}

func TestProfileFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: support\nextends: topics\n"), 0o644))

	s := &Settings{ProfilePath: path, Preset: "ignored"}
	p, err := s.Profile()
	require.NoError(t, err)
	assert.Equal(t, "support", p.Name)
	assert.Equal(t, []string{"sentiment", "year"}, p.Dimensions)
}
