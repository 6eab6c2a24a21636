/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gts-labs/gtscat/gts"
)

// okResult and errResult build the {"ok": ...} response envelopes shared by
// the entity-mutation handlers, so each handler states only its payload.
func okResult(fields map[string]any) map[string]any {
	fields["ok"] = true
	return fields
}

func errResult(fields map[string]any, message string) map[string]any {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["ok"] = false
	fields["error"] = message
	return fields
}

func clampLimit(limit int) int {
	switch {
	case limit < 1:
		return 1
	case limit > 1000:
		return 1000
	default:
		return limit
	}
}

// Entity Management Handlers

func (s *Server) handleGetEntities(w http.ResponseWriter, r *http.Request) {
	limit := clampLimit(s.getQueryParamInt(r, "limit", 100))
	s.writeJSON(w, http.StatusOK, s.storeRef().List(limit))
}

func (s *Server) handleGetEntity(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		s.writeError(w, http.StatusBadRequest, "Missing entity ID")
		return
	}

	entity := s.storeRef().Get(id)
	if entity == nil {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("Entity not found: %s", id))
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"id":      entity.GtsID.ID,
		"content": entity.Content,
	})
}

// decodeEntity reads an entity body and builds a gts.JsonEntity from it, or
// writes a 400 and returns ok=false if the body isn't valid JSON.
func (s *Server) decodeEntity(w http.ResponseWriter, r *http.Request) (*gts.JsonEntity, bool) {
	var content map[string]any
	if err := s.readJSON(r, &content); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return nil, false
	}
	return gts.NewJsonEntity(content, gts.DefaultEntityConfig()), true
}

// validateSchemaRefs runs x-gts-ref pattern validation on a schema entity
// being registered; non-schema entities skip it entirely.
func (s *Server) validateSchemaRefs(entity *gts.JsonEntity) error {
	if !entity.IsSchema {
		return nil
	}
	refErrors := gts.NewXGtsRefValidator(s.storeRef()).ValidateSchema(entity.Content, "", nil)
	if len(refErrors) == 0 {
		return nil
	}
	msgs := make([]string, len(refErrors))
	for i, err := range refErrors {
		msgs[i] = err.Error()
	}
	return fmt.Errorf("Validation failed: %s", strings.Join(msgs, "; "))
}

func (s *Server) handleAddEntity(w http.ResponseWriter, r *http.Request) {
	entity, ok := s.decodeEntity(w, r)
	if !ok {
		return
	}
	if entity.GtsID == nil {
		s.writeJSON(w, http.StatusOK, errResult(nil, "Unable to extract GTS ID from entity"))
		return
	}

	if err := s.validateSchemaRefs(entity); err != nil {
		s.writeJSON(w, http.StatusOK, errResult(nil, err.Error()))
		return
	}

	wantsValidation := r.URL.Query().Get("validation") == "true" && !entity.IsSchema
	if wantsValidation {
		if err := s.storeRef().Register(entity); err != nil {
			s.writeJSON(w, http.StatusOK, errResult(nil, err.Error()))
			return
		}
		if result := s.storeRef().ValidateInstance(entity.GtsID.ID); !result.OK {
			s.writeJSON(w, http.StatusOK, errResult(nil, result.Error))
			return
		}
		s.writeJSON(w, http.StatusOK, okResult(map[string]any{"gts_id": entity.GtsID.ID}))
		return
	}

	if err := s.storeRef().Register(entity); err != nil {
		s.writeJSON(w, http.StatusOK, errResult(nil, err.Error()))
		return
	}
	s.writeJSON(w, http.StatusOK, okResult(map[string]any{"gts_id": entity.GtsID.ID}))
}

func (s *Server) handleAddEntities(w http.ResponseWriter, r *http.Request) {
	var contents []map[string]any
	if err := s.readJSON(r, &contents); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON array")
		return
	}

	results := make([]map[string]any, len(contents))
	successCount := 0
	for i, content := range contents {
		results[i] = s.registerOne(content)
		if results[i]["ok"] == true {
			successCount++
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"ok":      successCount == len(contents),
		"count":   successCount,
		"total":   len(contents),
		"results": results,
	})
}

func (s *Server) registerOne(content map[string]any) map[string]any {
	entity := gts.NewJsonEntity(content, gts.DefaultEntityConfig())
	if entity.GtsID == nil {
		return errResult(nil, "Unable to extract GTS ID from entity")
	}
	if err := s.storeRef().Register(entity); err != nil {
		return errResult(nil, err.Error())
	}
	return okResult(map[string]any{"gts_id": entity.GtsID.ID})
}

func (s *Server) handleAddSchema(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TypeID string         `json:"type_id"`
		Schema map[string]any `json:"schema"`
	}
	if err := s.readJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := s.storeRef().RegisterSchema(req.TypeID, req.Schema); err != nil {
		s.writeJSON(w, http.StatusOK, errResult(map[string]any{"type_id": req.TypeID}, err.Error()))
		return
	}
	s.writeJSON(w, http.StatusOK, okResult(map[string]any{"type_id": req.TypeID}))
}

// Operation Handlers

// requireQueryParams writes a 400 and returns false if any of names is empty.
func (s *Server) requireQueryParams(w http.ResponseWriter, r *http.Request, names ...string) (map[string]string, bool) {
	values := make(map[string]string, len(names))
	var missing []string
	for _, name := range names {
		v := s.getQueryParam(r, name)
		values[name] = v
		if v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("Missing %s parameter", strings.Join(missing, " or ")))
		return nil, false
	}
	return values, true
}

// OP#1 - Validate ID
func (s *Server) handleValidateID(w http.ResponseWriter, r *http.Request) {
	params, ok := s.requireQueryParams(w, r, "gts_id")
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, gts.ValidateGtsID(params["gts_id"]))
}

// OP#2 - Extract ID
func (s *Server) handleExtractID(w http.ResponseWriter, r *http.Request) {
	var content map[string]any
	if err := s.readJSON(r, &content); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	s.writeJSON(w, http.StatusOK, gts.ExtractGtsID(content, gts.DefaultEntityConfig()))
}

// OP#3 - Parse ID
func (s *Server) handleParseID(w http.ResponseWriter, r *http.Request) {
	params, ok := s.requireQueryParams(w, r, "gts_id")
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, gts.ParseGtsID(params["gts_id"]))
}

// OP#4 - Match ID Pattern
func (s *Server) handleMatchIDPattern(w http.ResponseWriter, r *http.Request) {
	params, ok := s.requireQueryParams(w, r, "candidate", "pattern")
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, gts.MatchIDPattern(params["candidate"], params["pattern"]))
}

// OP#5 - UUID
func (s *Server) handleUUID(w http.ResponseWriter, r *http.Request) {
	params, ok := s.requireQueryParams(w, r, "gts_id")
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, gts.IDToUUID(params["gts_id"]))
}

// OP#6 - Validate Instance
func (s *Server) handleValidateInstance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InstanceID string `json:"instance_id"`
	}
	if err := s.readJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	s.writeJSON(w, http.StatusOK, s.storeRef().ValidateInstance(req.InstanceID))
}

// OP#7 - Resolve Relationships
func (s *Server) handleResolveRelationships(w http.ResponseWriter, r *http.Request) {
	params, ok := s.requireQueryParams(w, r, "gts_id")
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, s.storeRef().BuildSchemaGraph(params["gts_id"]))
}

// OP#8 - Compatibility
func (s *Server) handleCompatibility(w http.ResponseWriter, r *http.Request) {
	params, ok := s.requireQueryParams(w, r, "old_schema_id", "new_schema_id")
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, s.storeRef().CheckCompatibility(params["old_schema_id"], params["new_schema_id"]))
}

// OP#9 - Cast
func (s *Server) handleCast(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InstanceID string `json:"instance_id"`
		ToSchemaID string `json:"to_schema_id"`
	}
	if err := s.readJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := s.storeRef().Cast(req.InstanceID, req.ToSchemaID)
	if err != nil {
		s.writeJSON(w, http.StatusOK, map[string]any{"error": err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// OP#10 - Query
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	params, ok := s.requireQueryParams(w, r, "expr")
	if !ok {
		return
	}
	limit := clampLimit(s.getQueryParamInt(r, "limit", 100))
	s.writeJSON(w, http.StatusOK, s.storeRef().Query(params["expr"], limit))
}

// OP#11 - Attribute Access
func (s *Server) handleAttribute(w http.ResponseWriter, r *http.Request) {
	params, ok := s.requireQueryParams(w, r, "gts_with_path")
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, s.storeRef().GetAttribute(params["gts_with_path"]))
}
