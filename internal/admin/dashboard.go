// Labelboard - Course Label Management
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/labelboard

package admin

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/labelboard/internal/api"
	"github.com/tomtom215/labelboard/internal/labels"
	"github.com/tomtom215/labelboard/internal/logging"
	"github.com/tomtom215/labelboard/internal/models"
	"github.com/tomtom215/labelboard/internal/store"
	"github.com/tomtom215/labelboard/internal/xsrf"
)

// Dashboard page actions. GET actions render pages; POST actions
// mutate and redirect. The set is closed: the route table is checked
// against it at construction, so an unregistered or misspelled action
// cannot reach a handler.
const (
	ActionList   = "list_course_labels"
	ActionEdit   = "edit_course_label"
	ActionAdd    = "add_course_label"
	ActionDelete = "delete_course_label"
)

// Dashboard URLs. GET actions share ListURL and dispatch on the action
// query parameter; POST actions have dedicated paths.
const (
	ListURL   = "/list_course_labels"
	AddURL    = "/add_course_label"
	DeleteURL = "/delete_course_label"
)

var getActions = map[string]bool{
	ActionList: true,
	ActionEdit: true,
}

var postActions = map[string]bool{
	ActionAdd:    true,
	ActionDelete: true,
}

//go:embed templates/*.html
var templateFS embed.FS

type routeKey struct {
	method string
	action string
}

// Dashboard serves the label admin pages.
type Dashboard struct {
	service   *labels.Service
	tokens    *xsrf.Manager
	nav       *NavRegistry
	templates *template.Template
	routes    map[routeKey]http.HandlerFunc
}

// NewDashboard creates the dashboard, parsing the embedded templates
// and building the route table. Construction fails if any route names
// an action outside the closed set.
func NewDashboard(service *labels.Service, tokens *xsrf.Manager, nav *NavRegistry) (*Dashboard, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard templates: %w", err)
	}

	d := &Dashboard{
		service:   service,
		tokens:    tokens,
		nav:       nav,
		templates: tmpl,
	}

	d.routes = map[routeKey]http.HandlerFunc{
		{http.MethodGet, ActionList}:    d.handleList,
		{http.MethodGet, ActionEdit}:    d.handleEdit,
		{http.MethodPost, ActionAdd}:    d.handleAdd,
		{http.MethodPost, ActionDelete}: d.handleDelete,
	}

	for key := range d.routes {
		var known bool
		switch key.method {
		case http.MethodGet:
			known = getActions[key.action]
		case http.MethodPost:
			known = postActions[key.action]
		}
		if !known {
			return nil, fmt.Errorf("route %s %s names an unregistered action", key.method, key.action)
		}
	}

	return d, nil
}

// Routes mounts the dashboard on the given router.
func (d *Dashboard) Routes(r chi.Router) {
	r.Get(ListURL, d.dispatchGet)
	r.Post(AddURL, d.actionHandler(ActionAdd))
	r.Post(DeleteURL, d.actionHandler(ActionDelete))
}

// dispatchGet routes GET requests through the action table. An absent
// action parameter means the list page; an unknown one is rejected.
func (d *Dashboard) dispatchGet(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get("action")
	if action == "" {
		action = ActionList
	}

	handler, ok := d.routes[routeKey{http.MethodGet, action}]
	if !ok {
		http.Error(w, "unrecognized action", http.StatusBadRequest)
		return
	}
	handler(w, r)
}

func (d *Dashboard) actionHandler(action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handler, ok := d.routes[routeKey{r.Method, action}]
		if !ok {
			http.Error(w, "unrecognized action", http.StatusBadRequest)
			return
		}
		handler(w, r)
	}
}

func (d *Dashboard) render(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := d.templates.ExecuteTemplate(w, name, data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("template", name).Msg("failed to render template")
	}
}

func editHref(key string) string {
	return ListURL + "?action=" + ActionEdit + "&key=" + url.QueryEscape(key)
}

type listRow struct {
	Label       models.Label
	EditHref    string
	DeleteToken string
}

type listData struct {
	Nav       []NavEntry
	Rows      []listRow
	AddURL    string
	AddToken  string
	DeleteURL string
}

// handleList renders the label table with per-row edit links and
// delete forms. Each delete form carries a token bound to its row's
// key; the add form carries an unbound add token.
func (d *Dashboard) handleList(w http.ResponseWriter, r *http.Request) {
	all, err := d.service.List(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to list labels")
		http.Error(w, "failed to list labels", http.StatusInternalServerError)
		return
	}

	rows := make([]listRow, 0, len(all))
	for _, label := range all {
		deleteToken, err := d.tokens.CreateToken(ActionDelete, map[string]string{"key": label.ID})
		if err != nil {
			http.Error(w, "failed to create token", http.StatusInternalServerError)
			return
		}
		rows = append(rows, listRow{
			Label:       label,
			EditHref:    editHref(label.ID),
			DeleteToken: deleteToken,
		})
	}

	addToken, err := d.tokens.CreateToken(ActionAdd, nil)
	if err != nil {
		http.Error(w, "failed to create token", http.StatusInternalServerError)
		return
	}

	d.render(w, r, "labels_list.html", listData{
		Nav:       d.nav.Entries(),
		Rows:      rows,
		AddURL:    AddURL,
		AddToken:  addToken,
		DeleteURL: DeleteURL,
	})
}

type editData struct {
	Entries     []NavEntry
	Label       models.Label
	Exists      bool
	PutToken    string
	DeleteToken string
	RestPath    string
	ExitHref    string
}

// handleEdit renders the editor for one label. A nonexistent key still
// renders, as an empty editor carrying that key, so a stale link
// degrades to a blank form instead of an error page.
func (d *Dashboard) handleEdit(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")

	label, err := d.service.Get(r.Context(), key)
	exists := true
	if err != nil {
		if !errors.Is(err, store.ErrLabelNotFound) {
			logging.Ctx(r.Context()).Error().Err(err).Str("key", key).Msg("failed to load label")
			http.Error(w, "failed to load label", http.StatusInternalServerError)
			return
		}
		exists = false
		label = models.Label{ID: key}
	}

	putToken, err := d.tokens.CreateToken(api.ActionPut, map[string]string{"key": key})
	if err != nil {
		http.Error(w, "failed to create token", http.StatusInternalServerError)
		return
	}
	deleteToken, err := d.tokens.CreateToken(api.ActionDelete, map[string]string{"key": key})
	if err != nil {
		http.Error(w, "failed to create token", http.StatusInternalServerError)
		return
	}

	d.render(w, r, "labels_edit.html", editData{
		Entries:     d.nav.Entries(),
		Label:       label,
		Exists:      exists,
		PutToken:    putToken,
		DeleteToken: deleteToken,
		RestPath:    api.RestPath,
		ExitHref:    ListURL + "?action=" + ActionList,
	})
}

// handleAdd creates a label with placeholder content and redirects to
// its editor. The token is checked before the record is created.
func (d *Dashboard) handleAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	if !d.tokens.VerifyToken(r.PostFormValue("xsrf_token"), ActionAdd, nil) {
		http.Error(w, api.MsgBadToken, http.StatusForbidden)
		return
	}

	label, err := d.service.CreateDefault(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to create label")
		http.Error(w, "failed to create label", http.StatusInternalServerError)
		return
	}

	logging.Ctx(r.Context()).Info().Str("key", label.ID).Msg("label created")
	http.Redirect(w, r, editHref(label.ID), http.StatusSeeOther)
}

// handleDelete removes a label and returns to the list. Deleting an
// already absent key still redirects; the list page is the answer
// either way.
func (d *Dashboard) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	key := r.PostFormValue("key")
	if !d.tokens.VerifyToken(r.PostFormValue("xsrf_token"), ActionDelete, map[string]string{"key": key}) {
		http.Error(w, api.MsgBadToken, http.StatusForbidden)
		return
	}

	if err := d.service.Delete(r.Context(), key); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("key", key).Msg("failed to delete label")
		http.Error(w, "failed to delete label", http.StatusInternalServerError)
		return
	}

	logging.Ctx(r.Context()).Info().Str("key", key).Msg("label deleted")
	http.Redirect(w, r, ListURL+"?action="+ActionList, http.StatusSeeOther)
}
