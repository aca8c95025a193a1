package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/starwars-api/internal/model"
)

const (
	charactersTable  = "characters"
	characterColumns = `id, name, description, height, mass, hair_color, skin_color,
		eye_color, birth_year, gender, homeworld, url`
)

type CharacterRepository struct {
	db DBTX
}

func NewCharacterRepository(db DBTX) *CharacterRepository {
	return &CharacterRepository{db: db}
}

func (r *CharacterRepository) ListCharacters(ctx context.Context) ([]model.Character, error) {
	rows, err := r.db.Query(ctx, `SELECT `+characterColumns+` FROM characters ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list characters query: %w", err)
	}

	characters, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Character])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:characters: %w", err)
	}

	return characters, nil
}

func (r *CharacterRepository) CreateCharacter(ctx context.Context, ch *model.Character) (*model.Character, error) {
	stmt := `
		INSERT INTO
			characters (
				name,
				description,
				height,
				mass,
				hair_color,
				skin_color,
				eye_color,
				birth_year,
				gender,
				homeworld,
				url
			)
		VALUES
			(
				@name,
				@description,
				@height,
				@mass,
				@hair_color,
				@skin_color,
				@eye_color,
				@birth_year,
				@gender,
				@homeworld,
				@url
			)
		RETURNING ` + characterColumns

	rows, err := r.db.Query(ctx, stmt, pgx.NamedArgs{
		"name":        ch.Name,
		"description": ch.Description,
		"height":      ch.Height,
		"mass":        ch.Mass,
		"hair_color":  ch.HairColor,
		"skin_color":  ch.SkinColor,
		"eye_color":   ch.EyeColor,
		"birth_year":  ch.BirthYear,
		"gender":      ch.Gender,
		"homeworld":   ch.Homeworld,
		"url":         ch.URL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute create character query: %w", err)
	}

	character, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Character])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:characters: %w", err)
	}

	return character, nil
}

func (r *CharacterRepository) GetCharacterByID(ctx context.Context, id int64) (*model.Character, error) {
	rows, err := r.db.Query(ctx, `SELECT `+characterColumns+` FROM characters WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to execute get character query: %w", err)
	}

	character, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Character])
	if err != nil {
		return nil, notFound("get character", charactersTable, id, err)
	}

	return character, nil
}

func (r *CharacterRepository) UpdateCharacter(ctx context.Context, id int64, params model.UpdateCharacterParams) (*model.Character, error) {
	stmt, args, ok := buildUpdate(charactersTable, characterColumns, id, []assignment{
		{column: "name", value: params.Name},
		{column: "description", value: params.Description},
	})
	if !ok {
		return r.GetCharacterByID(ctx, id)
	}

	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute update character query: %w", err)
	}

	character, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Character])
	if err != nil {
		return nil, notFound("update character", charactersTable, id, err)
	}

	return character, nil
}

func (r *CharacterRepository) DeleteCharacter(ctx context.Context, id int64) (*model.Character, error) {
	rows, err := r.db.Query(ctx, `DELETE FROM characters WHERE id = $1 RETURNING `+characterColumns, id)
	if err != nil {
		return nil, fmt.Errorf("failed to execute delete character query: %w", err)
	}

	character, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Character])
	if err != nil {
		return nil, notFound("delete character", charactersTable, id, err)
	}

	return character, nil
}
