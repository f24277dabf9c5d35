package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const learnerFile = "learner-id"

// localLearnerID returns the learner ID kept next to the database, creating
// one on first use so terminal sessions share progress across runs.
func localLearnerID(dbPath string) (string, error) {
	p := filepath.Join(filepath.Dir(dbPath), learnerFile)

	b, err := os.ReadFile(p)
	switch {
	case err == nil:
		if id := strings.TrimSpace(string(b)); id != "" {
			return id, nil
		}
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("read %s: %w", p, err)
	}

	id := uuid.NewString()
	if err := os.WriteFile(p, []byte(id+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", p, err)
	}
	return id, nil
}
