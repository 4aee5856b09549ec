package config

// ExperimentConfig represents the complete configuration for a prism tracing run
type ExperimentConfig struct {
	Metadata   Metadata   `yaml:"metadata"`
	Canvas     Canvas     `yaml:"canvas"`
	Optics     Optics     `yaml:"optics"`
	Generator  Generator  `yaml:"generator"`
	Placements Placements `yaml:"placements,omitempty"`
	Mesh       Mesh       `yaml:"mesh,omitempty"`
	Sources    []Source   `yaml:"sources,omitempty"`
	Exposure   Exposure   `yaml:"exposure"`
	Render     Render     `yaml:"render"`
}

type Metadata struct {
	Timestamp string `yaml:"timestamp"` // YYYY-MM-DD HH:MM:SS in UTC
	GitCommit string `yaml:"git_commit"`
	// Seed the generator actually used, so a random scene can be reproduced
	Seed *int64 `yaml:"seed,omitempty"`
}

type Canvas struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type Optics struct {
	AmbientIndex float64 `yaml:"ambient_index"`
	PrismIndex   float64 `yaml:"prism_index"`
	MaxBounces   int     `yaml:"max_bounces"`
	FresnelSplit bool    `yaml:"fresnel_split"`
	MaxBranches  int     `yaml:"max_branches,omitempty"`
	ExitOverscan float64 `yaml:"exit_overscan"`
	EscapeMargin float64 `yaml:"escape_margin"`
}

type Generator struct {
	Squares      int     `yaml:"squares"`
	Triangles    int     `yaml:"triangles"`
	SquareSize   float64 `yaml:"square_size"`
	TriangleSize float64 `yaml:"triangle_size"`
	Margin       float64 `yaml:"margin"`
	MaxAttempts  int     `yaml:"max_attempts"`
	Seed         *int64  `yaml:"seed,omitempty"`
}

// Placements describe prisms positioned by fiducial markers rather than generated
type Placements struct {
	Inline          []Placement `yaml:"inline,omitempty"`
	FromFile        string      `yaml:"from_file,omitempty"`
	TriangleMarkers []int       `yaml:"triangle_markers,omitempty"`
	SquareMarkers   []int       `yaml:"square_markers,omitempty"`
}

// Placement is one marker reading. The JSON tags match the tracker's feed.
type Placement struct {
	ID  int     `yaml:"id" json:"id"`
	X   float64 `yaml:"x" json:"x"`
	Y   float64 `yaml:"y" json:"y"`
	Yaw float64 `yaml:"yaw" json:"yaw"` // degrees
}

// Mesh imports prism footprints from a 3MF file instead of generating them
type Mesh struct {
	Path        string  `yaml:"path,omitempty"`
	SliceHeight float64 `yaml:"slice_height,omitempty"`
	Scale       float64 `yaml:"scale,omitempty"`
}

type Source struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	DX        float64 `yaml:"dx"`
	DY        float64 `yaml:"dy"`
	Rays      int     `yaml:"rays,omitempty"`
	SpreadDeg float64 `yaml:"spread_deg,omitempty"`
	// Directivity maps off-axis angle in degrees to gain in dB
	Directivity map[float64]float64 `yaml:"directivity,omitempty"`
}

type Exposure struct {
	Enabled  bool    `yaml:"enabled"`
	CellSize float64 `yaml:"cell_size"`
}

type Render struct {
	Image       string  `yaml:"image"`
	Annotations string  `yaml:"annotations"`
	Plot        string  `yaml:"plot"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	LineWidth   float64 `yaml:"line_width"`
}
