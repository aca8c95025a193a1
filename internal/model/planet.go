package model

// Planet is a row of the planets table. Every attribute is free-form text.
type Planet struct {
	ID             int64   `db:"id"`
	Name           *string `db:"name"`
	Description    *string `db:"description"`
	Diameter       *string `db:"diameter"`
	RotationPeriod *string `db:"rotation_period"`
	OrbitalPeriod  *string `db:"orbital_period"`
	Gravity        *string `db:"gravity"`
	Population     *string `db:"population"`
	Climate        *string `db:"climate"`
	Terrain        *string `db:"terrain"`
	SurfaceWater   *string `db:"surface_water"`
	URL            *string `db:"url"`
}

type PlanetRecord struct {
	ID             int64   `json:"id"`
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	Diameter       *string `json:"diameter"`
	RotationPeriod *string `json:"rotation_period"`
	OrbitalPeriod  *string `json:"orbital_period"`
	Gravity        *string `json:"gravity"`
	Population     *string `json:"population"`
	Climate        *string `json:"climate"`
	Terrain        *string `json:"terrain"`
	SurfaceWater   *string `json:"surface_water"`
	URL            *string `json:"url"`
}

func (p *Planet) Serialize() PlanetRecord {
	return PlanetRecord{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Diameter:       p.Diameter,
		RotationPeriod: p.RotationPeriod,
		OrbitalPeriod:  p.OrbitalPeriod,
		Gravity:        p.Gravity,
		Population:     p.Population,
		Climate:        p.Climate,
		Terrain:        p.Terrain,
		SurfaceWater:   p.SurfaceWater,
		URL:            p.URL,
	}
}

type PlanetResult struct {
	Planet PlanetRecord `json:"planet"`
}

type PlanetsResult struct {
	Planets []PlanetRecord `json:"planets"`
}

// CreatePlanetRequest is the POST /planets body. Numeric-looking attributes
// accept JSON numbers or strings and are stored as written.
type CreatePlanetRequest struct {
	Name           Field `json:"name"`
	Description    Field `json:"description"`
	Diameter       Field `json:"diameter"`
	RotationPeriod Field `json:"rotation_period"`
	OrbitalPeriod  Field `json:"orbital_period"`
	Gravity        Field `json:"gravity"`
	Population     Field `json:"population"`
	Climate        Field `json:"climate"`
	Terrain        Field `json:"terrain"`
	SurfaceWater   Field `json:"surface_water"`
	URL            Field `json:"url"`
}

func (r *CreatePlanetRequest) Validate() error {
	return validate.Struct(r)
}

// Planet builds the row to insert; absent attributes become NULL.
func (r *CreatePlanetRequest) Planet() *Planet {
	return &Planet{
		Name:           r.Name.Ptr(),
		Description:    r.Description.Ptr(),
		Diameter:       r.Diameter.Ptr(),
		RotationPeriod: r.RotationPeriod.Ptr(),
		OrbitalPeriod:  r.OrbitalPeriod.Ptr(),
		Gravity:        r.Gravity.Ptr(),
		Population:     r.Population.Ptr(),
		Climate:        r.Climate.Ptr(),
		Terrain:        r.Terrain.Ptr(),
		SurfaceWater:   r.SurfaceWater.Ptr(),
		URL:            r.URL.Ptr(),
	}
}

// UpdatePlanetRequest is the PUT /planets/:id body. Only name is mutable.
type UpdatePlanetRequest struct {
	ID   int64 `param:"id" json:"-" validate:"required,min=1"`
	Name Field `json:"name"`
}

func (r *UpdatePlanetRequest) Validate() error {
	return validate.Struct(r)
}

type UpdatePlanetParams struct {
	Name Field
}
