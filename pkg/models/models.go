// Package models describes the place datasets the CLI indexes.
package models

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/1F47E/geo-index-kdtree/pkg/geo"
	"github.com/1F47E/geo-index-kdtree/pkg/kdtree"
)

// ErrEmptyID is returned for a place without an id.
var ErrEmptyID = errors.New("place id is empty")

// Place is a named location with free-form attributes.
type Place struct {
	ID   string         `json:"id" yaml:"id"`
	Lat  float64        `json:"lat" yaml:"lat"`
	Lon  float64        `json:"lon" yaml:"lon"`
	Data map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

// Dataset is the file layout: a list of places under "places".
type Dataset struct {
	Places []Place `json:"places" yaml:"places"`
}

// Record validates the coordinates and converts the place into an indexable record.
func (p Place) Record() (kdtree.Record[string, map[string]any], error) {
	if p.ID == "" {
		return kdtree.Record[string, map[string]any]{}, ErrEmptyID
	}
	point, err := geo.NewPoint(p.Lat, p.Lon)
	if err != nil {
		return kdtree.Record[string, map[string]any]{}, fmt.Errorf("place %s: %w", p.ID, err)
	}
	return kdtree.NewRecord(p.ID, point, p.Data), nil
}

// LoadPlaces reads a YAML or JSON dataset from path.
func LoadPlaces(path string) ([]Place, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}

	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	return ds.Places, nil
}

// SavePlaces writes places to path as YAML.
func SavePlaces(path string, places []Place) error {
	data, err := yaml.Marshal(Dataset{Places: places})
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write dataset %s: %w", path, err)
	}
	return nil
}
