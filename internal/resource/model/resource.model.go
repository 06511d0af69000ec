package model

import (
	"strconv"

	"gestionrecursos/internal/shared"
)

// Record is one stored document's field set plus its store-level id, as
// returned to clients. The id lives only here; it is never persisted
// inside the field set.
type Record map[string]any

// Coercer normalizes a raw field value before it is stored.
type Coercer func(value any) (any, error)

// Kind configures the owner-scoped CRUD component for one resource
// collection: the collection name, the label used in user-facing messages,
// the required field set and per-field coercions.
type Kind struct {
	Collection string
	Singular   string
	Required   []string
	Coerce     map[string]Coercer
}

var Empleados = Kind{
	Collection: "empleados",
	Singular:   "Empleado",
	Required:   []string{"nombre", "email", "rol", "dni", "antiguedad", "pais"},
}

var Productos = Kind{
	Collection: "productos",
	Singular:   "Producto",
	Required:   []string{"nombre", "categoria", "precio", "moneda"},
	Coerce: map[string]Coercer{
		"precio": Numeric("El precio debe ser un número válido"),
	},
}

// Numeric returns a coercer that accepts JSON numbers and numeric strings
// and stores them as float64.
func Numeric(message string) Coercer {
	return func(value any) (any, error) {
		switch v := value.(type) {
		case float64:
			return v, nil
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, &shared.ValidationError{Message: message}
			}
			return f, nil
		default:
			return nil, &shared.ValidationError{Message: message}
		}
	}
}
