package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/watchmon/pkg/domain"
	"github.com/umputun/watchmon/pkg/scheduler"
)

const defaultActionsLimit = 100

// watchedResponse is the JSON view of a watched item
type watchedResponse struct {
	ID        int64              `json:"id"`
	Platform  domain.Platform    `json:"platform"`
	Type      domain.ItemType    `json:"type"`
	SourceID  string             `json:"source_id"`
	Name      string             `json:"name,omitempty"`
	Metadata  map[string]string  `json:"metadata,omitempty"`
	Goal      string             `json:"goal"`
	Status    domain.WatchStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// actionResponse is the JSON view of an action
type actionResponse struct {
	ID               int64               `json:"id"`
	WatchedItemID    int64               `json:"watched_item_id"`
	Title            string              `json:"title"`
	Description      string              `json:"description,omitempty"`
	Priority         domain.Priority     `json:"priority"`
	Status           domain.ActionStatus `json:"status"`
	SourceContent    string              `json:"source_content,omitempty"`
	SourceMessageIDs []string            `json:"source_message_ids"`
	CreatedAt        time.Time           `json:"created_at"`
	CompletedAt      *time.Time          `json:"completed_at,omitempty"`
}

// createWatchedRequest is the body of POST /watched
type createWatchedRequest struct {
	Platform domain.Platform   `json:"platform"`
	Type     domain.ItemType   `json:"type"`
	SourceID string            `json:"source_id"`
	Name     string            `json:"name"`
	Metadata map[string]string `json:"metadata"`
	Goal     string            `json:"goal"`
}

// statusHandler returns server and scheduler status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	st := s.scheduler.Status()
	status := map[string]any{
		"status":    "ok",
		"version":   s.version,
		"time":      time.Now().UTC(),
		"scheduler": st,
	}
	renderJSON(w, r, http.StatusOK, status)
}

// syncHandler runs a sweep synchronously, refusing when one is already in flight
func (s *Server) syncHandler(w http.ResponseWriter, r *http.Request) {
	res, ok := s.scheduler.SyncNow(r.Context())
	if !ok {
		renderError(w, r, scheduler.ErrSweepInFlight, http.StatusConflict)
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// listWatchedHandler lists watched items, ?active=true limits to active ones
func (s *Server) listWatchedHandler(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	items, err := s.store.ListWatchedItems(r.Context(), activeOnly)
	if err != nil {
		lgr.Printf("[ERROR] failed to list watched items: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	resp := make([]watchedResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toWatchedResponse(item))
	}
	renderJSON(w, r, http.StatusOK, resp)
}

// createWatchedHandler adds a new watched item
func (s *Server) createWatchedHandler(w http.ResponseWriter, r *http.Request) {
	var req createWatchedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	item := &domain.WatchedItem{Platform: req.Platform, Type: req.Type, SourceID: req.SourceID, Name: req.Name,
		Metadata: req.Metadata, Goal: req.Goal, Status: domain.WatchActive}
	if err := s.store.CreateWatchedItem(r.Context(), item); err != nil {
		s.renderStoreError(w, r, "create watched item", err)
		return
	}
	lgr.Printf("[INFO] watching %s/%s %s", item.Platform, item.Type, item.DisplayName())
	renderJSON(w, r, http.StatusCreated, toWatchedResponse(*item))
}

// watchedStatusHandler pauses or resumes a watched item
func (s *Server) watchedStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Status domain.WatchStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	if err := s.store.SetWatchedItemStatus(r.Context(), id, req.Status); err != nil {
		s.renderStoreError(w, r, "update watched status", err)
		return
	}
	s.renderWatched(w, r, id)
}

// watchedGoalHandler replaces the goal of a watched item
func (s *Server) watchedGoalHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Goal string `json:"goal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	if err := s.store.UpdateWatchedItemGoal(r.Context(), id, req.Goal); err != nil {
		s.renderStoreError(w, r, "update watched goal", err)
		return
	}
	s.renderWatched(w, r, id)
}

// deleteWatchedHandler removes a watched item with its history and actions
func (s *Server) deleteWatchedHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteWatchedItem(r.Context(), id); err != nil {
		s.renderStoreError(w, r, "delete watched item", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listActionsHandler lists actions by descending priority.
// Supports status, item, min_priority and limit query parameters.
func (s *Server) listActionsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ActionFilter{
		Status:      domain.ActionStatus(q.Get("status")),
		MinPriority: domain.Priority(q.Get("min_priority")),
		Limit:       defaultActionsLimit,
	}
	if v := q.Get("item"); v != "" {
		itemID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			renderError(w, r, fmt.Errorf("invalid item ID"), http.StatusBadRequest)
			return
		}
		filter.WatchedItemID = itemID
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			renderError(w, r, fmt.Errorf("invalid limit"), http.StatusBadRequest)
			return
		}
		filter.Limit = limit
	}

	actions, err := s.store.ListActions(r.Context(), filter)
	if err != nil {
		s.renderStoreError(w, r, "list actions", err)
		return
	}
	resp := make([]actionResponse, 0, len(actions))
	for _, a := range actions {
		resp = append(resp, toActionResponse(a))
	}
	renderJSON(w, r, http.StatusOK, resp)
}

// actionStatusHandler completes, dismisses or reopens an action
func (s *Server) actionStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Status domain.ActionStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	if err := s.store.UpdateActionStatus(r.Context(), id, req.Status); err != nil {
		s.renderStoreError(w, r, "update action status", err)
		return
	}
	action, err := s.store.GetAction(r.Context(), id)
	if err != nil {
		s.renderStoreError(w, r, "get action", err)
		return
	}
	renderJSON(w, r, http.StatusOK, toActionResponse(*action))
}

// clearActionsHandler deletes all actions with the status given in ?status=.
// Clearing pending actions requires ?force=true.
func (s *Server) clearActionsHandler(w http.ResponseWriter, r *http.Request) {
	status := domain.ActionStatus(r.URL.Query().Get("status"))
	if status == domain.ActionPending && r.URL.Query().Get("force") != "true" {
		renderError(w, r, fmt.Errorf("clearing pending actions requires force=true"), http.StatusBadRequest)
		return
	}
	n, err := s.store.ClearActionsByStatus(r.Context(), status)
	if err != nil {
		s.renderStoreError(w, r, "clear actions", err)
		return
	}
	lgr.Printf("[INFO] cleared %d %s actions", n, status)
	renderJSON(w, r, http.StatusOK, map[string]int64{"deleted": n})
}

func (s *Server) renderWatched(w http.ResponseWriter, r *http.Request, id int64) {
	item, err := s.store.GetWatchedItem(r.Context(), id)
	if err != nil {
		s.renderStoreError(w, r, "get watched item", err)
		return
	}
	renderJSON(w, r, http.StatusOK, toWatchedResponse(*item))
}

// renderStoreError maps store sentinel errors to HTTP codes
func (s *Server) renderStoreError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalid):
		renderError(w, r, err, http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		renderError(w, r, err, http.StatusNotFound)
	case errors.Is(err, domain.ErrDuplicate):
		renderError(w, r, err, http.StatusConflict)
	default:
		lgr.Printf("[ERROR] failed to %s: %v", op, err)
		renderError(w, r, err, http.StatusInternalServerError)
	}
}

// pathID parses the {id} path value, rendering 400 on failure
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		renderError(w, r, fmt.Errorf("invalid ID"), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func toWatchedResponse(item domain.WatchedItem) watchedResponse {
	return watchedResponse{ID: item.ID, Platform: item.Platform, Type: item.Type, SourceID: item.SourceID, Name: item.Name,
		Metadata: item.Metadata, Goal: item.Goal, Status: item.Status, CreatedAt: item.CreatedAt, UpdatedAt: item.UpdatedAt}
}

func toActionResponse(a domain.Action) actionResponse {
	ids := a.SourceMessageIDs
	if ids == nil {
		ids = []string{}
	}
	return actionResponse{ID: a.ID, WatchedItemID: a.WatchedItemID, Title: a.Title, Description: a.Description,
		Priority: a.Priority, Status: a.Status, SourceContent: a.SourceContent, SourceMessageIDs: ids,
		CreatedAt: a.CreatedAt, CompletedAt: a.CompletedAt}
}
