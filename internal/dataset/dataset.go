// Package dataset carga el dataset estático de cachorros.
// El orden del archivo es el orden de paginación.
package dataset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"puppy-store/internal/domain/puppies"

	"github.com/google/uuid"
)

//go:embed puppies.json
var defaultJSON []byte

var (
	ErrDuplicateID = errors.New("duplicate puppy id")
	ErrMissingName = errors.New("puppy name required")
)

type puppyJSON struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Age         *float64 `json:"age"`
	Location    string   `json:"location"`
}

// Default devuelve el dataset embebido en el binario.
func Default() ([]puppies.Puppy, error) {
	return Load(bytes.NewReader(defaultJSON))
}

// LoadFile carga un dataset alternativo (DATASET_PATH).
func LoadFile(path string) ([]puppies.Puppy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	out, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return out, nil
}

// Load parsea y valida un array JSON de cachorros.
// Un registro sin id recibe un UUID; una edad negativa se descarta.
func Load(r io.Reader) ([]puppies.Puppy, error) {
	var arr []puppyJSON
	if err := json.NewDecoder(r).Decode(&arr); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	out := make([]puppies.Puppy, 0, len(arr))
	seen := make(map[string]int, len(arr))

	for i, pj := range arr {
		id := strings.TrimSpace(pj.ID)
		if id == "" {
			id = uuid.NewString()
		}
		if prev, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateID, id, prev, i)
		}
		seen[id] = i

		name := strings.TrimSpace(pj.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: position %d", ErrMissingName, i)
		}

		p := puppies.Puppy{
			ID:          id,
			Name:        name,
			Description: strings.TrimSpace(pj.Description),
			ImageURL:    strings.TrimSpace(pj.ImageURL),
			Location:    strings.TrimSpace(pj.Location),
		}
		if pj.Age != nil && *pj.Age >= 0 && !math.IsInf(*pj.Age, 0) && !math.IsNaN(*pj.Age) {
			age := *pj.Age
			p.Age = &age
		}

		out = append(out, p)
	}

	return out, nil
}
