package filewatch

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aguxez/fitplan/models"
)

// ErrEmptyProfile is returned for an empty file, which is what a profile
// looks like between its creation and first write.
var ErrEmptyProfile = errors.New("profile file is empty")

// ParseProfile reads a YAML user profile and validates it. Fields left out
// keep the form defaults.
func ParseProfile(path string) (models.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.User{}, fmt.Errorf("reading profile file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return models.User{}, ErrEmptyProfile
	}

	u := models.DefaultUser()
	if err := yaml.Unmarshal(data, &u); err != nil {
		return models.User{}, fmt.Errorf("parsing profile: %w", err)
	}

	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	return u, nil
}
