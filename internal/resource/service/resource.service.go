package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gestionrecursos/internal/resource/model"
	"gestionrecursos/internal/resource/repository"
	"gestionrecursos/internal/shared"
)

// Service implements the owner-scoped CRUD protocol for one resource kind.
// Ownership is keyed on the caller's email; the store never sees an
// unscoped mutation.
type Service struct {
	Store repository.DocumentStore
	Kind  model.Kind
}

func New(store repository.DocumentStore, kind model.Kind) *Service {
	return &Service{Store: store, Kind: kind}
}

// List returns the caller's records in the kind's collection. The store
// does not filter server-side; ownership scoping happens here.
func (s *Service) List(ctx context.Context, callerEmail string) ([]model.Record, error) {
	docs, err := s.Store.List(ctx, s.Kind.Collection)
	if err != nil {
		return nil, err
	}

	records := []model.Record{}
	for _, doc := range docs {
		if owner, _ := doc.Data["owner"].(string); owner != callerEmail {
			continue
		}
		records = append(records, recordOf(doc.ID, doc.Data))
	}
	return records, nil
}

// Upsert validates the payload and stores it. With an id it is a full
// overwrite of the caller's existing record; without one it creates a new
// record owned by the caller. The second return value reports whether a
// new record was created.
func (s *Service) Upsert(ctx context.Context, callerEmail string, payload map[string]any) (model.Record, bool, error) {
	for _, field := range s.Kind.Required {
		if isZero(payload[field]) {
			return nil, false, &shared.ValidationError{
				Message: fmt.Sprintf("El campo %s es requerido", field),
			}
		}
	}
	for field, coerce := range s.Kind.Coerce {
		v, err := coerce(payload[field])
		if err != nil {
			return nil, false, err
		}
		payload[field] = v
	}

	if id, ok := payload["id"].(string); ok && id != "" {
		return s.update(ctx, callerEmail, id, payload)
	}
	return s.create(ctx, callerEmail, payload)
}

func (s *Service) create(ctx context.Context, callerEmail string, payload map[string]any) (model.Record, bool, error) {
	data := cloneWithout(payload, "id", "owner")
	// The owner comes from the verified identity, never from the client.
	data["owner"] = callerEmail

	id, err := s.Store.Create(ctx, s.Kind.Collection, data)
	if err != nil {
		return nil, false, err
	}
	return recordOf(id, data), true, nil
}

func (s *Service) update(ctx context.Context, callerEmail, id string, payload map[string]any) (model.Record, bool, error) {
	existing, err := s.Store.Get(ctx, s.Kind.Collection, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, false, shared.ErrNotFound
	}
	if err != nil {
		return nil, false, err
	}

	owner, _ := existing["owner"].(string)
	if owner != callerEmail {
		return nil, false, s.forbidden("actualizar")
	}

	// Full replace: fields omitted from the payload are lost. The owner is
	// immutable after creation, so any client-supplied value is dropped and
	// the stored one re-stamped.
	data := cloneWithout(payload, "id", "owner")
	data["owner"] = owner

	ok, err := s.Store.SetOwned(ctx, s.Kind.Collection, id, owner, data)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		// Lost a race with a concurrent delete or ownership change.
		return nil, false, shared.ErrNotFound
	}
	return recordOf(id, data), false, nil
}

// Delete removes the caller's record with the given id.
func (s *Service) Delete(ctx context.Context, callerEmail, id string) error {
	existing, err := s.Store.Get(ctx, s.Kind.Collection, id)
	if errors.Is(err, shared.ErrNotFound) {
		return shared.ErrNotFound
	}
	if err != nil {
		return err
	}

	owner, _ := existing["owner"].(string)
	if owner != callerEmail {
		return s.forbidden("eliminar")
	}

	ok, err := s.Store.DeleteOwned(ctx, s.Kind.Collection, id, owner)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrNotFound
	}
	return nil
}

func (s *Service) forbidden(action string) error {
	return &shared.ForbiddenError{
		Reason:  fmt.Sprintf("No tienes permiso para %s este %s", action, strings.ToLower(s.Kind.Singular)),
		Message: fmt.Sprintf("Solo el propietario puede %s sus %s", action, s.Kind.Collection),
	}
}

func recordOf(id string, data map[string]any) model.Record {
	record := make(model.Record, len(data)+1)
	for k, v := range data {
		record[k] = v
	}
	record["id"] = id
	return record
}

func cloneWithout(data map[string]any, drop ...string) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	for _, k := range drop {
		delete(out, k)
	}
	return out
}

// isZero mirrors the required-field check clients already rely on: a field
// is missing when absent, null, an empty string, false or numeric zero.
func isZero(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	}
	return false
}
