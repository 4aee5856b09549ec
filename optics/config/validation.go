package config

import (
	"fmt"
	"math"
	"strings"
)

// Validation helper functions
func validatePositive(field string, value float64) []ValidationError {
	if value <= 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must be positive",
		}}
	}
	return nil
}

func validateNonNegative(field string, value float64) []ValidationError {
	if value < 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must be non-negative",
		}}
	}
	return nil
}

func validateInRange(field string, value, min, max float64) []ValidationError {
	if value < min || value > max {
		return []ValidationError{{
			Field:   field,
			Message: fmt.Sprintf("must be between %v and %v", min, max),
		}}
	}
	return nil
}

func validateAngleRange(field string, angle float64) []ValidationError {
	if angle < -180 || angle > 180 {
		return []ValidationError{{
			Field:   field,
			Message: "angle must be between -180 and 180 degrees",
		}}
	}
	return nil
}

// ValidationError represents a structured validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FormatValidationErrors groups errors by their top-level section, in the order the sections
// first appear
func FormatValidationErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Validation Errors:\n")

	var order []string
	categories := map[string][]ValidationError{}
	for _, err := range errs {
		category := strings.SplitN(err.Field, ".", 2)[0]
		if _, seen := categories[category]; !seen {
			order = append(order, category)
		}
		categories[category] = append(categories[category], err)
	}

	for _, category := range order {
		b.WriteString(fmt.Sprintf("\n%s:\n", strings.ToUpper(category)))
		for _, err := range categories[category] {
			field := strings.TrimPrefix(err.Field, category+".")
			if field == category {
				field = "general"
			}
			b.WriteString(fmt.Sprintf("  - %s: %s\n", field, err.Message))
		}
	}

	return b.String()
}

// Validate performs validation on the entire configuration
func (c *ExperimentConfig) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, c.Canvas.Validate()...)
	errors = append(errors, c.Optics.Validate()...)
	errors = append(errors, c.Generator.Validate()...)
	errors = append(errors, c.Placements.Validate()...)
	errors = append(errors, c.Mesh.Validate()...)
	for i, s := range c.Sources {
		errors = append(errors, s.Validate(fmt.Sprintf("sources.%d", i))...)
	}
	errors = append(errors, c.Exposure.Validate()...)
	errors = append(errors, c.Render.Validate()...)
	return errors
}

func (c *Canvas) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, validatePositive("canvas.width", c.Width)...)
	errors = append(errors, validatePositive("canvas.height", c.Height)...)
	return errors
}

func (o *Optics) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, validatePositive("optics.ambient_index", o.AmbientIndex)...)
	errors = append(errors, validatePositive("optics.prism_index", o.PrismIndex)...)
	errors = append(errors, validatePositive("optics.max_bounces", float64(o.MaxBounces))...)
	errors = append(errors, validateNonNegative("optics.max_branches", float64(o.MaxBranches))...)
	errors = append(errors, validateNonNegative("optics.exit_overscan", o.ExitOverscan)...)
	errors = append(errors, validateNonNegative("optics.escape_margin", o.EscapeMargin)...)
	return errors
}

func (g *Generator) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, validateNonNegative("generator.squares", float64(g.Squares))...)
	errors = append(errors, validateNonNegative("generator.triangles", float64(g.Triangles))...)
	if g.Squares > 0 {
		errors = append(errors, validatePositive("generator.square_size", g.SquareSize)...)
	}
	if g.Triangles > 0 {
		errors = append(errors, validatePositive("generator.triangle_size", g.TriangleSize)...)
	}
	errors = append(errors, validateNonNegative("generator.margin", g.Margin)...)
	errors = append(errors, validateNonNegative("generator.max_attempts", float64(g.MaxAttempts))...)
	return errors
}

func (p *Placements) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, validateFile("placements.from_file", p.FromFile)...)

	for _, t := range p.TriangleMarkers {
		for _, s := range p.SquareMarkers {
			if t == s {
				errors = append(errors, ValidationError{
					Field:   "placements.square_markers",
					Message: fmt.Sprintf("marker %d is also a triangle marker", s),
				})
			}
		}
	}

	seen := map[int]bool{}
	for i, pl := range p.Inline {
		field := fmt.Sprintf("placements.inline.%d", i)
		if seen[pl.ID] {
			errors = append(errors, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("marker %d is placed more than once", pl.ID),
			})
		}
		seen[pl.ID] = true
		errors = append(errors, validateInRange(field+".yaw", pl.Yaw, -360, 360)...)
	}

	return errors
}

func (m *Mesh) Validate() []ValidationError {
	if m.Path == "" {
		return nil
	}
	var errors []ValidationError
	errors = append(errors, validateFile("mesh.path", m.Path)...)
	errors = append(errors, validatePositive("mesh.scale", m.Scale)...)
	return errors
}

func (s *Source) Validate(prefix string) []ValidationError {
	var errors []ValidationError

	if math.Hypot(s.DX, s.DY) < 1e-9 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".direction",
			Message: "dx and dy must not both be zero",
		})
	}
	errors = append(errors, validateNonNegative(prefix+".rays", float64(s.Rays))...)
	errors = append(errors, validateInRange(prefix+".spread_deg", s.SpreadDeg, 0, 360)...)

	for angle, gain := range s.Directivity {
		errors = append(errors, validateAngleRange(prefix+".directivity", angle)...)
		if gain > 0 {
			errors = append(errors, ValidationError{
				Field:   prefix + ".directivity",
				Message: fmt.Sprintf("gain at %v degrees must not be positive", angle),
			})
		}
	}

	return errors
}

func (e *Exposure) Validate() []ValidationError {
	if !e.Enabled {
		return nil
	}
	return validatePositive("exposure.cell_size", e.CellSize)
}

func (r *Render) Validate() []ValidationError {
	var errors []ValidationError
	if r.Image == "" {
		errors = append(errors, ValidationError{
			Field:   "render.image",
			Message: "output image name is required",
		})
	}
	errors = append(errors, validatePositive("render.width", float64(r.Width))...)
	errors = append(errors, validatePositive("render.height", float64(r.Height))...)
	errors = append(errors, validatePositive("render.line_width", r.LineWidth)...)
	return errors
}
