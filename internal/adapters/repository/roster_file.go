package repository

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/squadcraft/internal/domain/model"
)

// RosterDocument is the on-disk roster seed.
type RosterDocument struct {
	Season       string                    `json:"season"`
	Players      []model.Player            `json:"players"`
	Snapshots    []model.SeasonSnapshot    `json:"snapshots"`
	Performances []model.PerformanceRecord `json:"performances"`
}

// LoadRosterFile reads a YAML roster document and writes it into w.
// Snapshots without a season inherit the document season.
func LoadRosterFile(ctx context.Context, path string, w Writer) (RosterDocument, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return RosterDocument{}, fmt.Errorf("%w: load %s: %w", ErrRosterFile, path, err)
	}

	var doc RosterDocument
	if err := k.UnmarshalWithConf("", &doc, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return RosterDocument{}, fmt.Errorf("%w: decode %s: %w", ErrRosterFile, path, err)
	}

	for _, p := range doc.Players {
		if err := w.UpsertPlayer(ctx, p); err != nil {
			return doc, fmt.Errorf("%w: %w", ErrRosterFile, err)
		}
	}
	for _, s := range doc.Snapshots {
		if s.Season == "" {
			s.Season = doc.Season
		}
		if err := w.UpsertSnapshot(ctx, s); err != nil {
			return doc, fmt.Errorf("%w: %w", ErrRosterFile, err)
		}
	}
	for _, r := range doc.Performances {
		if err := w.AddPerformance(ctx, r); err != nil {
			return doc, fmt.Errorf("%w: %w", ErrRosterFile, err)
		}
	}
	return doc, nil
}
