package model

// Character is a row of the characters table. Homeworld refers to a planet
// by id or name but is not a foreign key.
type Character struct {
	ID          int64   `db:"id"`
	Name        *string `db:"name"`
	Description *string `db:"description"`
	Height      *string `db:"height"`
	Mass        *string `db:"mass"`
	HairColor   *string `db:"hair_color"`
	SkinColor   *string `db:"skin_color"`
	EyeColor    *string `db:"eye_color"`
	BirthYear   *string `db:"birth_year"`
	Gender      *string `db:"gender"`
	Homeworld   *string `db:"homeworld"`
	URL         *string `db:"url"`
}

type CharacterRecord struct {
	ID          int64   `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Height      *string `json:"height"`
	Mass        *string `json:"mass"`
	HairColor   *string `json:"hair_color"`
	SkinColor   *string `json:"skin_color"`
	EyeColor    *string `json:"eye_color"`
	BirthYear   *string `json:"birth_year"`
	Gender      *string `json:"gender"`
	Homeworld   *string `json:"homeworld"`
	URL         *string `json:"url"`
}

func (ch *Character) Serialize() CharacterRecord {
	return CharacterRecord{
		ID:          ch.ID,
		Name:        ch.Name,
		Description: ch.Description,
		Height:      ch.Height,
		Mass:        ch.Mass,
		HairColor:   ch.HairColor,
		SkinColor:   ch.SkinColor,
		EyeColor:    ch.EyeColor,
		BirthYear:   ch.BirthYear,
		Gender:      ch.Gender,
		Homeworld:   ch.Homeworld,
		URL:         ch.URL,
	}
}

type CharacterResult struct {
	Character CharacterRecord `json:"character"`
}

type CharactersResult struct {
	Characters []CharacterRecord `json:"characters"`
}

// CreateCharacterRequest is the POST /characters body.
type CreateCharacterRequest struct {
	Name        Field `json:"name"`
	Description Field `json:"description"`
	Height      Field `json:"height"`
	Mass        Field `json:"mass"`
	HairColor   Field `json:"hair_color"`
	SkinColor   Field `json:"skin_color"`
	EyeColor    Field `json:"eye_color"`
	BirthYear   Field `json:"birth_year"`
	Gender      Field `json:"gender"`
	Homeworld   Field `json:"homeworld"`
	URL         Field `json:"url"`
}

func (r *CreateCharacterRequest) Validate() error {
	return validate.Struct(r)
}

// Character builds the row to insert; absent attributes become NULL.
func (r *CreateCharacterRequest) Character() *Character {
	return &Character{
		Name:        r.Name.Ptr(),
		Description: r.Description.Ptr(),
		Height:      r.Height.Ptr(),
		Mass:        r.Mass.Ptr(),
		HairColor:   r.HairColor.Ptr(),
		SkinColor:   r.SkinColor.Ptr(),
		EyeColor:    r.EyeColor.Ptr(),
		BirthYear:   r.BirthYear.Ptr(),
		Gender:      r.Gender.Ptr(),
		Homeworld:   r.Homeworld.Ptr(),
		URL:         r.URL.Ptr(),
	}
}

// UpdateCharacterRequest is the PUT /characters/:id body. Name and
// description are the mutable attributes.
type UpdateCharacterRequest struct {
	ID          int64 `param:"id" json:"-" validate:"required,min=1"`
	Name        Field `json:"name"`
	Description Field `json:"description"`
}

func (r *UpdateCharacterRequest) Validate() error {
	return validate.Struct(r)
}

type UpdateCharacterParams struct {
	Name        Field
	Description Field
}
