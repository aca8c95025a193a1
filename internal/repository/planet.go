package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/starwars-api/internal/model"
)

const (
	planetsTable  = "planets"
	planetColumns = `id, name, description, diameter, rotation_period, orbital_period,
		gravity, population, climate, terrain, surface_water, url`
)

type PlanetRepository struct {
	db DBTX
}

func NewPlanetRepository(db DBTX) *PlanetRepository {
	return &PlanetRepository{db: db}
}

func (r *PlanetRepository) ListPlanets(ctx context.Context) ([]model.Planet, error) {
	rows, err := r.db.Query(ctx, `SELECT `+planetColumns+` FROM planets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list planets query: %w", err)
	}

	planets, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Planet])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:planets: %w", err)
	}

	return planets, nil
}

// CreatePlanet inserts p, ignoring p.ID, and returns the stored row.
func (r *PlanetRepository) CreatePlanet(ctx context.Context, p *model.Planet) (*model.Planet, error) {
	stmt := `
		INSERT INTO
			planets (
				name,
				description,
				diameter,
				rotation_period,
				orbital_period,
				gravity,
				population,
				climate,
				terrain,
				surface_water,
				url
			)
		VALUES
			(
				@name,
				@description,
				@diameter,
				@rotation_period,
				@orbital_period,
				@gravity,
				@population,
				@climate,
				@terrain,
				@surface_water,
				@url
			)
		RETURNING ` + planetColumns

	rows, err := r.db.Query(ctx, stmt, pgx.NamedArgs{
		"name":            p.Name,
		"description":     p.Description,
		"diameter":        p.Diameter,
		"rotation_period": p.RotationPeriod,
		"orbital_period":  p.OrbitalPeriod,
		"gravity":         p.Gravity,
		"population":      p.Population,
		"climate":         p.Climate,
		"terrain":         p.Terrain,
		"surface_water":   p.SurfaceWater,
		"url":             p.URL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute create planet query: %w", err)
	}

	planet, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Planet])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:planets: %w", err)
	}

	return planet, nil
}

func (r *PlanetRepository) GetPlanetByID(ctx context.Context, id int64) (*model.Planet, error) {
	rows, err := r.db.Query(ctx, `SELECT `+planetColumns+` FROM planets WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to execute get planet query: %w", err)
	}

	planet, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Planet])
	if err != nil {
		return nil, notFound("get planet", planetsTable, id, err)
	}

	return planet, nil
}

func (r *PlanetRepository) UpdatePlanet(ctx context.Context, id int64, params model.UpdatePlanetParams) (*model.Planet, error) {
	stmt, args, ok := buildUpdate(planetsTable, planetColumns, id, []assignment{
		{column: "name", value: params.Name},
	})
	if !ok {
		return r.GetPlanetByID(ctx, id)
	}

	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute update planet query: %w", err)
	}

	planet, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Planet])
	if err != nil {
		return nil, notFound("update planet", planetsTable, id, err)
	}

	return planet, nil
}

func (r *PlanetRepository) DeletePlanet(ctx context.Context, id int64) (*model.Planet, error) {
	rows, err := r.db.Query(ctx, `DELETE FROM planets WHERE id = $1 RETURNING `+planetColumns, id)
	if err != nil {
		return nil, fmt.Errorf("failed to execute delete planet query: %w", err)
	}

	planet, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Planet])
	if err != nil {
		return nil, notFound("delete planet", planetsTable, id, err)
	}

	return planet, nil
}
